package assembler

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/randalmurphal/ctxkit/tokens"
	"github.com/randalmurphal/ctxkit/truncate"
)

// Reader fetches the full text content of an identifier.
// Implementations should honour ctx cancellation.
type Reader interface {
	Read(ctx context.Context, id string) (string, error)
}

// ReaderFunc adapts a function to the Reader interface.
type ReaderFunc func(ctx context.Context, id string) (string, error)

// Read implements Reader.
func (f ReaderFunc) Read(ctx context.Context, id string) (string, error) {
	return f(ctx, id)
}

// RootResolver supplies the project root used to display identifiers.
// ok is false when no project is open.
type RootResolver interface {
	Root() (root string, ok bool)
}

var errNoReader = errors.New("no reader configured")

// Assembler tracks the selected identifiers and their cached content.
type Assembler struct {
	reader    Reader
	root      RootResolver
	budget    tokens.Budget
	counter   tokens.Counter // nil uses the budget's estimate
	truncator *truncate.Truncator
	logger    *slog.Logger

	// opMu serialises mutations across the read in Add and Refresh.
	opMu sync.Mutex

	mu             sync.RWMutex
	members        []string
	contents       map[string]string
	listeners      []listenerEntry
	nextListenerID int
	closed         bool
}

// New creates an empty Assembler that reads content through reader.
func New(reader Reader, opts ...Option) *Assembler {
	a := &Assembler{
		reader:    reader,
		budget:    tokens.DefaultBudget(),
		truncator: truncate.New(),
		logger:    slog.Default(),
		contents:  make(map[string]string),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Budget returns the budget the assembler enforces.
func (a *Assembler) Budget() tokens.Budget {
	return a.budget
}

// Add reads id and appends it to the context.
//
// It fails with a DuplicateEntry error if id is already a member, and with
// a ReadError wrapping the cause if the read fails. On failure nothing
// changes and no listener runs.
func (a *Assembler) Add(ctx context.Context, id string) error {
	stats, listeners, err := a.add(ctx, id)
	if err != nil {
		return err
	}
	a.notify(stats, listeners)
	return nil
}

func (a *Assembler) add(ctx context.Context, id string) (Stats, []listenerEntry, error) {
	a.opMu.Lock()
	defer a.opMu.Unlock()

	a.mu.RLock()
	closed := a.closed
	_, exists := a.contents[id]
	a.mu.RUnlock()

	if closed {
		return Stats{}, nil, newError("add", id, KindClosed, nil)
	}
	if exists {
		return Stats{}, nil, newError("add", id, KindDuplicateEntry, nil)
	}

	content, err := a.read(ctx, id)
	if err != nil {
		return Stats{}, nil, newError("add", id, KindRead, err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.members = append(a.members, id)
	a.contents[id] = content
	return a.statsLocked(), a.listenersLocked(), nil
}

// Refresh re-reads the content of an existing member.
//
// It fails with NotMember if id is not in the context. On a read failure
// the previously cached content is kept. Listeners run only if the
// content actually changed.
func (a *Assembler) Refresh(ctx context.Context, id string) error {
	stats, listeners, changed, err := a.refresh(ctx, id)
	if err != nil {
		return err
	}
	if changed {
		a.notify(stats, listeners)
	}
	return nil
}

func (a *Assembler) refresh(ctx context.Context, id string) (Stats, []listenerEntry, bool, error) {
	a.opMu.Lock()
	defer a.opMu.Unlock()

	a.mu.RLock()
	closed := a.closed
	old, exists := a.contents[id]
	a.mu.RUnlock()

	if closed {
		return Stats{}, nil, false, newError("refresh", id, KindClosed, nil)
	}
	if !exists {
		return Stats{}, nil, false, newError("refresh", id, KindNotMember, nil)
	}

	content, err := a.read(ctx, id)
	if err != nil {
		return Stats{}, nil, false, newError("refresh", id, KindRead, err)
	}
	if content == old {
		return Stats{}, nil, false, nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.contents[id] = content
	return a.statsLocked(), a.listenersLocked(), true, nil
}

func (a *Assembler) read(ctx context.Context, id string) (string, error) {
	if a.reader == nil {
		return "", errNoReader
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return a.reader.Read(ctx, id)
}

// Remove drops id from the context. It returns false, without notifying
// listeners, if id was not a member.
func (a *Assembler) Remove(id string) bool {
	a.opMu.Lock()
	a.mu.Lock()

	idx := a.indexLocked(id)
	if idx < 0 || a.closed {
		a.mu.Unlock()
		a.opMu.Unlock()
		return false
	}
	a.members = append(a.members[:idx], a.members[idx+1:]...)
	delete(a.contents, id)
	stats, listeners := a.statsLocked(), a.listenersLocked()

	a.mu.Unlock()
	a.opMu.Unlock()

	a.notify(stats, listeners)
	return true
}

// Clear empties the context and notifies listeners.
func (a *Assembler) Clear() {
	a.opMu.Lock()
	a.mu.Lock()

	a.members = nil
	a.contents = make(map[string]string)
	stats, listeners := a.statsLocked(), a.listenersLocked()

	a.mu.Unlock()
	a.opMu.Unlock()

	a.notify(stats, listeners)
}

// Close clears the context and drops all listeners. Later calls to Add
// and Refresh fail with Closed; Remove returns false. Close is idempotent.
func (a *Assembler) Close() error {
	a.opMu.Lock()
	defer a.opMu.Unlock()
	a.mu.Lock()
	defer a.mu.Unlock()

	a.members = nil
	a.contents = make(map[string]string)
	a.listeners = nil
	a.closed = true
	return nil
}

// Members returns a copy of the identifiers in insertion order.
func (a *Assembler) Members() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make([]string, len(a.members))
	copy(out, a.members)
	return out
}

// Contains reports whether id is a member.
func (a *Assembler) Contains(id string) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	_, ok := a.contents[id]
	return ok
}

// Len returns the number of members.
func (a *Assembler) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.members)
}

// Assemble concatenates the members' blocks under the character ceiling.
// It returns "" when there are no members.
func (a *Assembler) Assemble() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out, _ := a.assembleLocked()
	return out
}

// Stats reports usage of the budget by the current assembled context.
func (a *Assembler) Stats() Stats {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.statsLocked()
}

// OnChange registers a listener and returns a function that removes it.
func (a *Assembler) OnChange(fn Listener) (unsubscribe func()) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.nextListenerID++
	id := a.nextListenerID
	a.listeners = append(a.listeners, listenerEntry{id: id, fn: fn})

	return func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		for i, l := range a.listeners {
			if l.id == id {
				a.listeners = append(a.listeners[:i:i], a.listeners[i+1:]...)
				return
			}
		}
	}
}

func (a *Assembler) assembleLocked() (string, int) {
	maxChars := a.budget.MaxChars()

	var sb strings.Builder
	total := 0
	for _, id := range a.members {
		content, ok := a.contents[id]
		if !ok {
			continue
		}

		block := "\n\n--- File: " + a.label(id) + " ---\n" + content + "\n"
		blockLen := utf8.RuneCountInString(block)

		if !a.budget.Fits(total + blockLen) {
			if cut, ok := a.truncator.Cut(block, maxChars-total); ok {
				sb.WriteString(cut)
			}
			break
		}

		sb.WriteString(block)
		total += blockLen
	}

	out := sb.String()
	return out, utf8.RuneCountInString(out)
}

func (a *Assembler) statsLocked() Stats {
	out, chars := a.assembleLocked()
	estimated := a.budget.EstimateTokens(chars)
	if a.counter != nil {
		estimated = a.counter.Count(out)
	}
	return Stats{
		FileCount:       len(a.members),
		CharCount:       chars,
		EstimatedTokens: estimated,
		MaxTokens:       a.budget.MaxTokens,
		Percentage:      a.budget.Percentage(chars),
	}
}

func (a *Assembler) listenersLocked() []listenerEntry {
	if len(a.listeners) == 0 {
		return nil
	}
	out := make([]listenerEntry, len(a.listeners))
	copy(out, a.listeners)
	return out
}

func (a *Assembler) indexLocked(id string) int {
	for i, m := range a.members {
		if m == id {
			return i
		}
	}
	return -1
}

// label returns id relative to the project root when id lies inside it,
// and id unchanged otherwise.
func (a *Assembler) label(id string) string {
	if a.root == nil {
		return id
	}
	root, ok := a.root.Root()
	if !ok || root == "" {
		return id
	}
	rel, err := filepath.Rel(root, id)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return id
	}
	return rel
}

func (a *Assembler) notify(stats Stats, listeners []listenerEntry) {
	for _, l := range listeners {
		a.invoke(l, stats)
	}
}

func (a *Assembler) invoke(l listenerEntry, stats Stats) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Warn("context change listener panicked",
				slog.Int("listener", l.id),
				slog.Any("panic", r))
		}
	}()
	if err := l.fn(stats); err != nil {
		a.logger.Warn("context change listener failed",
			slog.Int("listener", l.id),
			slog.Any("error", err))
	}
}
