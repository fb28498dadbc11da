package models

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"orderpad-service/internal/orderentry"
)

func TestSizeMapPreservesKeyOrder(t *testing.T) {
	in := SizeMap{
		{VarietyID: "zeta", Sizes: []string{"S", "M"}},
		{VarietyID: "alpha", Sizes: []string{"Free"}},
		{VarietyID: "mid", Sizes: []string{"28", "30", "32"}},
	}

	data, err := in.MarshalJSON()
	assert.NoError(t, err)
	assert.JSONEq(t, `{"zeta":["S","M"],"alpha":["Free"],"mid":["28","30","32"]}`, string(data))

	var out SizeMap
	assert.NoError(t, out.UnmarshalJSON(data))
	assert.Equal(t, in, out, "document order survives the round trip")
}

func TestSizeMapScanNullAndEmpty(t *testing.T) {
	var m SizeMap
	assert.NoError(t, m.Scan(nil))
	assert.Empty(t, m)

	assert.NoError(t, m.Scan([]byte(`{}`)))
	assert.Empty(t, m)

	assert.Error(t, m.Scan([]byte(`["not","an","object"]`)))
}

func TestSizeMapLookup(t *testing.T) {
	m := SizeMap{{VarietyID: "vA", Sizes: []string{"S"}}}
	assert.Equal(t, []string{"S"}, orderentry.SizeMap(m).Sizes("vA"))
	assert.Nil(t, orderentry.SizeMap(m).Sizes("vB"))
}
