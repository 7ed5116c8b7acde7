package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/ctxkit/prompt"
)

func newPromptCmd(g *globalFlags) *cobra.Command {
	var (
		action    string
		message   string
		language  string
		selection string
		document  string
	)

	cmd := &cobra.Command{
		Use:   "prompt [FILE...]",
		Short: "Print the chat messages for an action with the files as context",
		Long: "prompt composes the system and user messages sent to a model.\n" +
			"Actions: chat (needs --message), complete (needs --document) and\n" +
			"refactor (needs --selection).",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.open(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			ed := prompt.Editor{Language: language, SelectedText: selection}
			if document != "" {
				text, err := s.reader.Read(cmd.Context(), document)
				if err != nil {
					return fmt.Errorf("read document: %w", err)
				}
				ed.FileName = filepath.Base(document)
				ed.FullText = text
			}

			s.addFiles(cmd.Context(), args)
			files := s.asm.Assemble()
			composer := prompt.NewComposer(s.cfg.SystemPrompt)

			var msgs []prompt.Message
			switch action {
			case "chat":
				if message == "" {
					return errors.New("chat needs --message")
				}
				msgs, err = composer.Chat(message, ed, files)
			case "complete":
				msgs, err = composer.Complete(ed, files)
			case "refactor":
				msgs, err = composer.Refactor(ed, files)
			default:
				return fmt.Errorf("unknown action %q", action)
			}
			if err != nil {
				return err
			}
			s.checkBudget(msgs)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(msgs)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&action, "action", "a", "chat", "chat, complete or refactor")
	f.StringVarP(&message, "message", "m", "", "user message for chat")
	f.StringVarP(&language, "language", "l", "", "language tag for code fences")
	f.StringVarP(&selection, "selection", "s", "", "selected text")
	f.StringVarP(&document, "document", "d", "", "file holding the active document")

	return cmd
}

// checkBudget warns when the composed messages, not just the file
// context, exceed the token budget.
func (s *session) checkBudget(msgs []prompt.Message) {
	var sb strings.Builder
	for _, m := range msgs {
		sb.WriteString(m.Content)
	}
	text := sb.String()

	budget := s.asm.Budget()
	counter := budget.Counter()
	if !counter.FitsInLimit(text, budget.MaxTokens) {
		s.logger.Warn("composed prompt exceeds token budget",
			slog.Int("estimated_tokens", counter.Count(text)),
			slog.Int("max_tokens", budget.MaxTokens))
	}
}
