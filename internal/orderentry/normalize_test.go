package orderentry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeGoldenRow(t *testing.T) {
	varieties := []Variety{{ID: "vA", Name: "A"}}
	items := []Item{{Name: "Kurti", Sizes: SizeMap{
		{VarietyID: "vA", Sizes: []string{"S", "M"}},
	}}}
	g := NewGrid(NewCatalog(items, varieties))

	g.Quantities.Set(0, "vA", "S", "3")
	g.Notes.SetColor(0, "vA", "Red")

	rows := g.Normalize(Header{Customer: "Acme", Date: "2024-01-01", Market: "North"})

	assert.Equal(t, []OrderRow{{
		Customer: "Acme",
		Date:     "2024-01-01",
		Market:   "North",
		Item:     "Kurti",
		Variety:  "A",
		Color:    "Red",
		Size:     "S",
		Quantity: 3,
		Comment:  "",
	}}, rows)
}

func TestNormalizeOrderingIsDeterministic(t *testing.T) {
	g := NewGrid(testCatalog())

	// Fill cells in scrambled order; output must follow catalog, size-map
	// and size-list order.
	g.Quantities.Set(1, "vC", "Free", "1")
	g.Quantities.Set(0, "vB", "3XL", "2")
	g.Quantities.Set(0, "vA", "XL", "4")
	g.Quantities.Set(0, "vA", "S", "5")

	rows := g.Normalize(Header{Customer: "Acme", Date: "2024-02-02"})

	var got []string
	for _, r := range rows {
		got = append(got, r.Item+"/"+r.Variety+"/"+r.Size)
	}
	assert.Equal(t, []string{
		"Kurti/A/S",
		"Kurti/A/XL",
		"Kurti/B/3XL",
		"Shirt/C/Free",
	}, got)
}

func TestNormalizeTrimsFields(t *testing.T) {
	g := NewGrid(testCatalog())
	g.Quantities.Set(0, "vA", "S", "1")
	g.Notes.SetColor(0, "vA", "  Blue ")
	g.Notes.SetComment(0, "vA", " rush order ")

	rows := g.Normalize(Header{Customer: "  Acme ", Date: "2024-03-03", Market: " North  "})

	assert.Len(t, rows, 1)
	assert.Equal(t, "Acme", rows[0].Customer)
	assert.Equal(t, "North", rows[0].Market)
	assert.Equal(t, "Blue", rows[0].Color)
	assert.Equal(t, "rush order", rows[0].Comment)
}

func TestNormalizeSkipsDanglingVariety(t *testing.T) {
	varieties := []Variety{{ID: "vA", Name: "A"}}
	items := []Item{{Name: "Kurti", Sizes: SizeMap{
		{VarietyID: "vA", Sizes: []string{"S"}},
		{VarietyID: "deleted-variety", Sizes: []string{"M", "L"}},
	}}}
	catalog := NewCatalog(items, varieties)
	g := NewGrid(catalog)

	g.Quantities.Set(0, "vA", "S", "2")
	g.Quantities.Set(0, "deleted-variety", "M", "9")

	rows := g.Normalize(Header{Customer: "Acme", Date: "2024-01-01"})
	assert.Len(t, rows, 1)
	assert.Equal(t, "A", rows[0].Variety)

	// The dangling id produces no renderable row either.
	gridRows := catalog.Rows(0)
	assert.Len(t, gridRows, 1)
	assert.Equal(t, "vA", gridRows[0].Variety.ID)
}

func TestNormalizeEmptyStoreYieldsNoRows(t *testing.T) {
	g := NewGrid(testCatalog())

	rows := g.Normalize(Header{Customer: "Acme", Date: "2024-01-01"})
	assert.Empty(t, rows)

	// The submission validator reports the missing quantities; normalization
	// itself never errors.
	err := ValidateSubmission(Header{Customer: "Acme"}, rows)
	assert.ErrorIs(t, err, ErrNoQuantities)
}

func TestValidateSubmissionRequiresCustomer(t *testing.T) {
	rows := []OrderRow{{Item: "Kurti", Quantity: 1}}

	assert.ErrorIs(t, ValidateSubmission(Header{Customer: "   "}, rows), ErrCustomerRequired)
	assert.NoError(t, ValidateSubmission(Header{Customer: "Acme"}, rows))
}

func TestCatalogConfigured(t *testing.T) {
	c := testCatalog()
	assert.True(t, c.Configured(0))
	assert.False(t, c.Configured(2), "item with empty size map is not configured")
	assert.False(t, c.Configured(99))
}
