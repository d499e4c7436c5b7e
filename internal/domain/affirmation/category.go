// internal/domain/affirmation/category.go
package affirmation

// Category is a named grouping of affirmations with display metadata.
// The set is fixed at build time.
type Category struct {
	ID          string
	DisplayName string
	Icon        string // Emoji glyph shown next to the name
	Description string
}

// Rand is the random source used for selection. *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

const (
	// NoCategoriesPrompt is returned when no categories are given.
	NoCategoriesPrompt = "Select categories to receive personalized affirmations."
	// FallbackAffirmation is returned when a chosen category has no content.
	FallbackAffirmation = "Your reality is shaped by your thoughts. Choose them wisely."
)
