// Package truncate cuts text to fit a character budget.
//
// A Truncator decides what is left of a block when the budget runs out:
//
//	tr := truncate.New()
//	out, ok := tr.Cut(block, 240) // first 240 runes + "\n... [truncated]"
//	out, ok = tr.Cut(block, 80)   // "", false: too little room to bother
//
// The marker and threshold are configurable:
//
//	tr := truncate.New().WithMarker(" [cut]").WithMinRemaining(0)
//
// # Convenience Functions
//
//	result := truncate.ToLines(text, 50)     // Truncate to 50 lines
//	result := truncate.ToLength(text, 500)   // Truncate to 500 characters
//
// All truncation counts runes rather than bytes so multi-byte characters
// are never split.
package truncate
