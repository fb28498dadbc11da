package orderentry

import "strconv"

// CellKey addresses one quantity cell of the grid.
type CellKey struct {
	ItemIndex int
	VarietyID string
	Size      string
}

// QuantityStore is a sparse map from grid cell to quantity. Zero is never
// stored: writing a sanitized 0 removes the key, so "has any quantity" is an
// emptiness check and every stored value is > 0.
type QuantityStore struct {
	cells map[CellKey]int
}

// NewQuantityStore creates an empty store.
func NewQuantityStore() *QuantityStore {
	return &QuantityStore{cells: make(map[CellKey]int)}
}

// SanitizeQuantity reduces raw user input to a non-negative integer: digits
// are kept, everything else dropped, and unparsable input becomes 0.
func SanitizeQuantity(raw string) int {
	digits := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] >= '0' && raw[i] <= '9' {
			digits = append(digits, raw[i])
		}
	}
	if len(digits) == 0 {
		return 0
	}
	v, err := strconv.Atoi(string(digits))
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// Set sanitizes raw input and stores it, removing the key when the result is
// 0. Returns the sanitized value so the caller can echo it back to the input.
func (s *QuantityStore) Set(itemIndex int, varietyID, size, raw string) int {
	return s.put(CellKey{itemIndex, varietyID, size}, SanitizeQuantity(raw))
}

// Get returns the stored quantity, 0 when absent.
func (s *QuantityStore) Get(itemIndex int, varietyID, size string) int {
	return s.cells[CellKey{itemIndex, varietyID, size}]
}

// Bump adjusts a cell by one in the given direction (wheel gesture),
// clamping at 0. Returns the new value.
func (s *QuantityStore) Bump(itemIndex int, varietyID, size string, direction int) int {
	key := CellKey{itemIndex, varietyID, size}
	v := s.cells[key]
	if direction > 0 {
		v++
	} else {
		v--
	}
	if v < 0 {
		v = 0
	}
	return s.put(key, v)
}

// Reset empties the store. Used after a confirmed submission.
func (s *QuantityStore) Reset() {
	s.cells = make(map[CellKey]int)
}

// Len returns the number of nonzero cells.
func (s *QuantityStore) Len() int {
	return len(s.cells)
}

// Empty reports whether no quantities are set.
func (s *QuantityStore) Empty() bool {
	return len(s.cells) == 0
}

// Each calls fn for every stored cell. Iteration order is unspecified;
// callers needing determinism walk the catalog instead.
func (s *QuantityStore) Each(fn func(key CellKey, qty int)) {
	for k, v := range s.cells {
		fn(k, v)
	}
}

func (s *QuantityStore) put(key CellKey, v int) int {
	if v <= 0 {
		delete(s.cells, key)
		return 0
	}
	s.cells[key] = v
	return v
}
