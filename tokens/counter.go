package tokens

import (
	"math"
	"unicode/utf8"
)

// DefaultCharsPerToken is the default character-to-token ratio.
// Approximately 4 characters equals 1 token for English text.
const DefaultCharsPerToken = 4.0

// Counter estimates token counts for text.
type Counter interface {
	// Count estimates the number of tokens in the given text.
	Count(text string) int

	// FitsInLimit returns true if the text fits within the token limit.
	FitsInLimit(text string, limit int) bool
}

// EstimatingCounter uses a character-to-token ratio for estimation.
type EstimatingCounter struct {
	// CharsPerToken is the average characters per token.
	// Default is 4, which works well for English text.
	CharsPerToken float64
}

// NewEstimatingCounterWithRatio creates a token counter with a custom ratio.
// If charsPerToken is <= 0, the default ratio (4.0) is used.
func NewEstimatingCounterWithRatio(charsPerToken float64) *EstimatingCounter {
	if charsPerToken <= 0 {
		charsPerToken = DefaultCharsPerToken
	}
	return &EstimatingCounter{
		CharsPerToken: charsPerToken,
	}
}

// Count estimates the number of tokens in the given text.
// Characters are counted as runes and the result is rounded up, so a
// single character is always at least one token.
func (c *EstimatingCounter) Count(text string) int {
	return ceilDiv(utf8.RuneCountInString(text), c.CharsPerToken)
}

// FitsInLimit returns true if the text fits within the token limit.
func (c *EstimatingCounter) FitsInLimit(text string, limit int) bool {
	return c.Count(text) <= limit
}

func ceilDiv(chars int, charsPerToken float64) int {
	if chars <= 0 {
		return 0
	}
	return int(math.Ceil(float64(chars) / charsPerToken))
}

// DefaultMaxTokens is the context ceiling used when no model limit applies.
const DefaultMaxTokens = 8000

// ModelLimits holds the context budget, in tokens, reserved for selected
// files when talking to a given model. Each value is below the model's
// full window; the rest is left for the prompt and the response.
var ModelLimits = map[string]int{
	// OpenAI
	"gpt-4o":        32000,
	"gpt-4o-mini":   32000,
	"gpt-4-turbo":   32000,
	"gpt-3.5-turbo": 8000,

	// Anthropic
	"claude-3-5-sonnet-20241022": 50000,
	"claude-3-5-haiku-20241022":  50000,
	"claude-3-opus-20240229":     50000,

	// Groq
	"llama-3.3-70b-versatile": 16000,
	"llama-3.1-70b-versatile": 16000,
	"mixtral-8x7b-32768":      16000,

	// Default fallback
	"default": DefaultMaxTokens,
}

// GetModelLimit returns the context budget for a model, or a default if not found.
func GetModelLimit(model string) int {
	if limit, ok := ModelLimits[model]; ok {
		return limit
	}
	return ModelLimits["default"]
}
