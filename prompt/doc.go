// Package prompt composes the messages sent to a language model from a
// user request, editor state and the assembled file context.
//
// Templates use a Handlebars-like syntax:
//
//	engine := prompt.NewEngine()
//	out, err := engine.Render("Explain {{fence language code}}", map[string]any{
//	    "language": "go",
//	    "code":     "func main() {}",
//	})
//
// Supported markup: {{var}}, {{#if var}}...{{/if}}, {{#each list}}...{{/each}}
// and helper calls such as {{truncate text 200}}, {{lines text 20}},
// {{indent text 4}}, {{default value "fallback"}} and {{fence lang code}}.
//
// Composer covers the three editor actions:
//
//	c := prompt.NewComposer("")
//	msgs, err := c.Chat("Why does this panic?", prompt.Editor{
//	    Language:     "go",
//	    SelectedText: sel,
//	}, asm.Assemble())
package prompt
