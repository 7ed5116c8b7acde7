package assembler

// Stats summarises the assembled context.
type Stats struct {
	// FileCount is the number of members, including any cut or dropped
	// by truncation.
	FileCount int `json:"fileCount"`

	// CharCount is the length of the assembled string in characters.
	CharCount int `json:"charCount"`

	// EstimatedTokens is CharCount divided by the budget ratio, rounded up.
	EstimatedTokens int `json:"estimatedTokens"`

	// MaxTokens is the budget's token ceiling.
	MaxTokens int `json:"maxTokens"`

	// Percentage is CharCount as a share of the character ceiling,
	// rounded. The truncation marker can push it slightly past 100.
	Percentage int `json:"percentage"`
}

// Listener receives stats after each state-changing mutation.
// A returned error is logged and otherwise ignored.
type Listener func(Stats) error

type listenerEntry struct {
	id int
	fn Listener
}
