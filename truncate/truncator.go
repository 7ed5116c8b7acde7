package truncate

// DefaultMarker is appended to a block that was cut to fit the budget.
const DefaultMarker = "\n... [truncated]"

// DefaultMinRemaining is the room, in characters, a block needs before a
// partial copy is worth including. At or below it the block is dropped.
const DefaultMinRemaining = 100

// Truncator cuts a block down to the room left in a character budget.
type Truncator struct {
	marker       string
	minRemaining int
}

// New creates a truncator with the default marker and threshold.
func New() *Truncator {
	return &Truncator{
		marker:       DefaultMarker,
		minRemaining: DefaultMinRemaining,
	}
}

// WithMarker sets the truncation marker.
func (t *Truncator) WithMarker(marker string) *Truncator {
	t.marker = marker
	return t
}

// WithMinRemaining sets the threshold below which a block is dropped
// instead of cut. Negative values are treated as zero.
func (t *Truncator) WithMinRemaining(n int) *Truncator {
	if n < 0 {
		n = 0
	}
	t.minRemaining = n
	return t
}

// Cut returns the first remaining characters of block followed by the
// marker. When remaining does not exceed the threshold it returns "" and
// false, meaning nothing of the block should be emitted.
//
// The marker is not counted against remaining.
func (t *Truncator) Cut(block string, remaining int) (string, bool) {
	if remaining <= t.minRemaining {
		return "", false
	}
	runes := []rune(block)
	if remaining > len(runes) {
		remaining = len(runes)
	}
	return string(runes[:remaining]) + t.marker, true
}

// Marker returns the truncator's marker.
func (t *Truncator) Marker() string {
	return t.marker
}

// MinRemaining returns the truncator's threshold.
func (t *Truncator) MinRemaining() int {
	return t.minRemaining
}
