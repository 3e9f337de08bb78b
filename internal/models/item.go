package models

// Item is one static content card. Items are read-only input.
type Item struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Date       string   `json:"date"` // ISO-8601, e.g. 2025-11-10
	Summary    string   `json:"summary"`
	Detail     []string `json:"detail"`
	Tags       []string `json:"tags"`
	VisualNote string   `json:"visualNote,omitempty"`
}
