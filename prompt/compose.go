package prompt

import "strings"

// DefaultSystemPrompt is the assistant persona used when none is configured.
const DefaultSystemPrompt = "You are an AI coding assistant integrated into the editor. " +
	"Help users with code questions, completions, and refactoring. Be concise and practical."

// Role is the speaker of a message.
type Role string

// Message roles.
const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

// Message is a provider-agnostic chat message.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Editor is the slice of editor state a prompt can refer to.
type Editor struct {
	FileName     string `json:"file_name,omitempty"`
	Language     string `json:"language,omitempty"`
	SelectedText string `json:"selected_text,omitempty"`
	FullText     string `json:"full_text,omitempty"`
}

const (
	chatTemplate = "{{message}}" +
		"{{#if selection}}\n\nContext:\n{{fence language selection}}{{/if}}" +
		"{{#if files}}\n\nProject files:{{files}}{{/if}}"

	completeTemplate = "Complete the following code. Only return the completion, no explanations:\n\n" +
		"{{fence language code}}"

	refactorTemplate = "Refactor this code to be cleaner, more efficient, and follow best practices. " +
		"Return only the refactored code:\n\n{{fence language code}}"
)

// Composer builds the messages sent for each editor action. The assembled
// file context, when non-empty, is appended to the user message.
type Composer struct {
	engine *Engine
	system string
}

// NewComposer creates a composer. An empty systemPrompt uses
// DefaultSystemPrompt.
func NewComposer(systemPrompt string) *Composer {
	if strings.TrimSpace(systemPrompt) == "" {
		systemPrompt = DefaultSystemPrompt
	}
	return &Composer{engine: NewEngine(), system: systemPrompt}
}

// SystemPrompt returns the system message content.
func (c *Composer) SystemPrompt() string {
	return c.system
}

// Chat composes a free-form question. Selected text in ed, if any, is
// attached as a fenced code block.
func (c *Composer) Chat(userMessage string, ed Editor, files string) ([]Message, error) {
	return c.compose(userMessage, ed.Language, ed.SelectedText, files)
}

// Complete asks the model to continue the active document.
func (c *Composer) Complete(ed Editor, files string) ([]Message, error) {
	if ed.FullText == "" {
		return nil, ErrNoDocument
	}
	msg, err := c.engine.Render(completeTemplate, map[string]any{
		"language": ed.Language,
		"code":     ed.FullText,
	})
	if err != nil {
		return nil, err
	}
	return c.compose(msg, "", "", files)
}

// Refactor asks the model to rewrite the selected text.
func (c *Composer) Refactor(ed Editor, files string) ([]Message, error) {
	if ed.SelectedText == "" {
		return nil, ErrNoSelection
	}
	msg, err := c.engine.Render(refactorTemplate, map[string]any{
		"language": ed.Language,
		"code":     ed.SelectedText,
	})
	if err != nil {
		return nil, err
	}
	return c.compose(msg, "", "", files)
}

func (c *Composer) compose(message, language, selection, files string) ([]Message, error) {
	user, err := c.engine.Render(chatTemplate, map[string]any{
		"message":   message,
		"language":  language,
		"selection": selection,
		"files":     files,
	})
	if err != nil {
		return nil, err
	}
	return []Message{
		{Role: RoleSystem, Content: c.system},
		{Role: RoleUser, Content: user},
	}, nil
}
