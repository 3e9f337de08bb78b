package models

// Record is the feedback attached to one item.
type Record struct {
	Reactions map[string]int `json:"reactions"`
	Comments  []Comment      `json:"comments"`
}

// EmptyRecord is what an item with no stored feedback looks like.
func EmptyRecord() Record {
	return Record{Reactions: map[string]int{}, Comments: []Comment{}}
}

// Normalize replaces nil collections so a record decoded from
// `{}` or `{"reactions":null}` behaves like EmptyRecord.
func (r *Record) Normalize() {
	if r.Reactions == nil {
		r.Reactions = map[string]int{}
	}
	if r.Comments == nil {
		r.Comments = []Comment{}
	}
}

// Count returns the count for kind, 0 when absent.
func (r Record) Count(kind string) int {
	return r.Reactions[kind]
}

// Table maps item id to its record. It is persisted as a single blob.
type Table map[string]Record
