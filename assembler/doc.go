// Package assembler keeps the set of files selected as model context and
// turns it into one prompt-ready string under a hard character budget.
//
// An Assembler owns two collections that always move together: the ordered
// member list and the cache of each member's content. Content is read once,
// through a Reader, when a member is added.
//
// # Usage
//
//	a := assembler.New(source.NewFileReader(),
//	    assembler.WithBudget(tokens.NewBudget(8000)),
//	    assembler.WithRootResolver(source.StaticRoot("/work/project")),
//	)
//	defer a.Close()
//
//	a.OnChange(func(s assembler.Stats) error {
//	    fmt.Printf("%d files, %d%% of budget\n", s.FileCount, s.Percentage)
//	    return nil
//	})
//
//	if err := a.Add(ctx, "/work/project/main.go"); err != nil {
//	    if errors.Is(err, assembler.ErrDuplicateEntry) { ... }
//	}
//	blob := a.Assemble()
//
// # Assembly
//
// Each member becomes a block:
//
//	"\n\n--- File: <label> ---\n<content>\n"
//
// Blocks are appended in insertion order. The first block that would push
// the output past the character ceiling is cut to the remaining room and
// followed by the truncation marker, provided more than 100 characters
// remain; otherwise it is dropped. Either way assembly stops there, so no
// later member is considered even if it would have fit.
//
// # Notifications
//
// Listeners registered with OnChange run synchronously, in registration
// order, after every mutation that changed state. A listener that returns
// an error or panics is logged and skipped; the mutation still succeeds.
//
// # Concurrency
//
// An Assembler is safe for concurrent use. Mutations are serialised,
// including the content read performed by Add, so a duplicate check can
// never race with a commit. Listeners run outside the internal locks and
// may call back into the Assembler.
package assembler
