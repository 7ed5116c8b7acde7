package assembler

import (
	"log/slog"

	"github.com/randalmurphal/ctxkit/tokens"
	"github.com/randalmurphal/ctxkit/truncate"
)

// Option configures an Assembler.
type Option func(*Assembler)

// WithBudget sets the character budget. Default: 8000 tokens at 4 chars/token.
func WithBudget(b tokens.Budget) Option {
	return func(a *Assembler) { a.budget = b }
}

// WithCounter sets how Stats estimates tokens. Default: the budget's
// characters-per-token estimate.
func WithCounter(c tokens.Counter) Option {
	return func(a *Assembler) { a.counter = c }
}

// WithRootResolver sets the project root used to shorten block headers.
func WithRootResolver(r RootResolver) Option {
	return func(a *Assembler) { a.root = r }
}

// WithTruncator sets how an overflowing block is cut.
func WithTruncator(t *truncate.Truncator) Option {
	return func(a *Assembler) {
		if t != nil {
			a.truncator = t
		}
	}
}

// WithLogger sets the logger used for listener failures.
func WithLogger(l *slog.Logger) Option {
	return func(a *Assembler) {
		if l != nil {
			a.logger = l
		}
	}
}
