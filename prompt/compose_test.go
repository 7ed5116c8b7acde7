package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewComposer_DefaultSystemPrompt(t *testing.T) {
	assert.Equal(t, DefaultSystemPrompt, NewComposer("").SystemPrompt())
	assert.Equal(t, DefaultSystemPrompt, NewComposer("   ").SystemPrompt())
	assert.Equal(t, "be terse", NewComposer("be terse").SystemPrompt())
}

func TestComposer_Chat(t *testing.T) {
	c := NewComposer("")
	files := "\n\n--- File: main.go ---\npackage main\n"

	tests := []struct {
		name   string
		editor Editor
		files  string
		want   string
	}{
		{
			name: "message only",
			want: "What does this do?",
		},
		{
			name:   "with selection",
			editor: Editor{Language: "go", SelectedText: "x := 1"},
			want:   "What does this do?\n\nContext:\n```go\nx := 1\n```",
		},
		{
			name:  "with files",
			files: files,
			want:  "What does this do?\n\nProject files:" + files,
		},
		{
			name:   "selection and files",
			editor: Editor{SelectedText: "y"},
			files:  files,
			want:   "What does this do?\n\nContext:\n```\ny\n```\n\nProject files:" + files,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msgs, err := c.Chat("What does this do?", tt.editor, tt.files)
			require.NoError(t, err)
			require.Len(t, msgs, 2)

			assert.Equal(t, Message{Role: RoleSystem, Content: DefaultSystemPrompt}, msgs[0])
			assert.Equal(t, RoleUser, msgs[1].Role)
			assert.Equal(t, tt.want, msgs[1].Content)
		})
	}
}

func TestComposer_Complete(t *testing.T) {
	c := NewComposer("")

	msgs, err := c.Complete(Editor{Language: "python", FullText: "def f(", SelectedText: "ignored"}, "")
	require.NoError(t, err)

	assert.Equal(t,
		"Complete the following code. Only return the completion, no explanations:\n\n```python\ndef f(\n```",
		msgs[1].Content)

	_, err = c.Complete(Editor{}, "")
	assert.ErrorIs(t, err, ErrNoDocument)
}

func TestComposer_Refactor(t *testing.T) {
	c := NewComposer("")

	msgs, err := c.Refactor(Editor{Language: "js", SelectedText: "var a = 1"}, "\n\n--- File: a.js ---\nvar a = 1\n")
	require.NoError(t, err)

	assert.Contains(t, msgs[1].Content, "Return only the refactored code:\n\n```js\nvar a = 1\n```")
	assert.Contains(t, msgs[1].Content, "\n\nProject files:\n\n--- File: a.js ---")

	_, err = c.Refactor(Editor{Language: "js"}, "")
	assert.ErrorIs(t, err, ErrNoSelection)
}
