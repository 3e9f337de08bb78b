package models

// ReactionKind is one entry of the fixed emoji reaction catalog.
// ID is what gets persisted, so it must stay stable across releases.
type ReactionKind struct {
	ID     string
	Symbol string
	Label  string
}

// Reactions is the catalog shown under every item, in display order.
var Reactions = []ReactionKind{
	{ID: "thumbs", Symbol: "👍", Label: "This feels good / I like this"},
	{ID: "heart", Symbol: "❤️", Label: "I feel excited or emotionally seen"},
	{ID: "thinking", Symbol: "🤔", Label: "I have questions / I'm not sure yet"},
	{ID: "sparkles", Symbol: "✨", Label: "Interesting direction / new idea"},
	{ID: "confused", Symbol: "😕", Label: "Confusing or not working for me"},
}

// FindReaction looks a kind up by ID in kinds.
func FindReaction(kinds []ReactionKind, id string) (ReactionKind, bool) {
	for _, k := range kinds {
		if k.ID == id {
			return k, true
		}
	}
	return ReactionKind{}, false
}
