package orderentry

// RowKey addresses one (item, variety) grid row.
type RowKey struct {
	ItemIndex int
	VarietyID string
}

// Note is the shared color and comment for a grid row. Both are free text;
// trimming happens at normalization time, not here.
type Note struct {
	Color   string `json:"color"`
	Comment string `json:"comment"`
}

// NotesStore is a sparse map from grid row to its note. A note may exist for
// a row whose quantities are all zero; such a row just contributes no
// submission rows.
type NotesStore struct {
	notes map[RowKey]Note
}

// NewNotesStore creates an empty store.
func NewNotesStore() *NotesStore {
	return &NotesStore{notes: make(map[RowKey]Note)}
}

// SetColor sets the color text for a row.
func (s *NotesStore) SetColor(itemIndex int, varietyID, color string) {
	key := RowKey{itemIndex, varietyID}
	n := s.notes[key]
	n.Color = color
	s.notes[key] = n
}

// SetComment sets the comment text for a row.
func (s *NotesStore) SetComment(itemIndex int, varietyID, comment string) {
	key := RowKey{itemIndex, varietyID}
	n := s.notes[key]
	n.Comment = comment
	s.notes[key] = n
}

// Get returns the note for a row, with empty strings when absent.
func (s *NotesStore) Get(itemIndex int, varietyID string) Note {
	return s.notes[RowKey{itemIndex, varietyID}]
}

// Reset empties the store.
func (s *NotesStore) Reset() {
	s.notes = make(map[RowKey]Note)
}
