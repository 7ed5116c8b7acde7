// Package ctxkit assembles selected files into a single prompt context
// that fits a token budget.
//
// The work is split across subpackages:
//
//   - assembler: the ordered set of context files, their cached content,
//     assembly under the character ceiling, and usage stats
//   - tokens: the budget and token estimation
//   - truncate: cutting the block that overflows the budget
//   - source: reading files, resolving the project root, watching for edits
//   - config: file and environment configuration
//   - prompt: composing chat, completion and refactor messages
//
// # Quick Start
//
//	reader := source.NewFileReader()
//	asm := assembler.New(reader,
//	    assembler.WithBudget(tokens.NewBudget(8000)),
//	    assembler.WithRootResolver(source.DetectRoot(".")),
//	)
//	defer asm.Close()
//
//	if err := asm.Add(ctx, "/path/to/main.go"); err != nil {
//	    return err
//	}
//	text := asm.Assemble()
//	stats := asm.Stats()
//
// The ctxkit command in cmd/ctxkit wraps the same flow.
package ctxkit
