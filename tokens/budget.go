package tokens

import "math"

// Budget is the hard ceiling applied to assembled context.
// The token ceiling and ratio are fixed at construction; the character
// ceiling is derived from them.
type Budget struct {
	// MaxTokens is the token ceiling.
	MaxTokens int

	// CharsPerToken is the assumed average characters per token.
	CharsPerToken float64
}

// NewBudget creates a budget with the default characters-per-token ratio.
// A non-positive maxTokens falls back to DefaultMaxTokens.
func NewBudget(maxTokens int) Budget {
	return NewBudgetWithRatio(maxTokens, DefaultCharsPerToken)
}

// NewBudgetWithRatio creates a budget with a custom ratio.
// If charsPerToken is <= 0, the default ratio (4.0) is used.
func NewBudgetWithRatio(maxTokens int, charsPerToken float64) Budget {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	if charsPerToken <= 0 {
		charsPerToken = DefaultCharsPerToken
	}
	return Budget{
		MaxTokens:     maxTokens,
		CharsPerToken: charsPerToken,
	}
}

// DefaultBudget returns the 8000 token, 4 chars/token budget.
func DefaultBudget() Budget {
	return NewBudget(DefaultMaxTokens)
}

// MaxChars returns the character ceiling.
func (b Budget) MaxChars() int {
	return int(float64(b.MaxTokens) * b.ratio())
}

// EstimateTokens converts a character count to an estimated token count,
// rounding up.
func (b Budget) EstimateTokens(chars int) int {
	return ceilDiv(chars, b.ratio())
}

// Percentage returns the share of the character ceiling used by chars,
// rounded to the nearest whole percent. It is not clamped at 100.
func (b Budget) Percentage(chars int) int {
	maxChars := b.MaxChars()
	if maxChars <= 0 || chars <= 0 {
		return 0
	}
	return int(math.Round(float64(chars) / float64(maxChars) * 100))
}

// Fits reports whether chars characters fit within the ceiling.
func (b Budget) Fits(chars int) bool {
	return chars <= b.MaxChars()
}

// Counter returns an estimating counter using this budget's ratio.
func (b Budget) Counter() Counter {
	return NewEstimatingCounterWithRatio(b.ratio())
}

func (b Budget) ratio() float64 {
	if b.CharsPerToken <= 0 {
		return DefaultCharsPerToken
	}
	return b.CharsPerToken
}
