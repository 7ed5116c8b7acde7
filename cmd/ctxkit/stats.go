package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/randalmurphal/ctxkit/assembler"
)

func newStatsCmd(g *globalFlags) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats FILE...",
		Short: "Report how much of the token budget the files use",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.open(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			s.addFiles(cmd.Context(), args)
			stats := s.asm.Stats()

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(stats)
			}
			printStats(cmd.OutOrStdout(), stats)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print stats as JSON")

	return cmd
}

func printStats(w io.Writer, s assembler.Stats) {
	fmt.Fprintf(w, "files:      %s\n", humanize.Comma(int64(s.FileCount)))
	fmt.Fprintf(w, "characters: %s\n", humanize.Comma(int64(s.CharCount)))
	fmt.Fprintf(w, "tokens:     ~%s / %s (%d%%)\n",
		humanize.Comma(int64(s.EstimatedTokens)),
		humanize.Comma(int64(s.MaxTokens)),
		s.Percentage)
}

// statsLine is the one-line form printed by watch.
func statsLine(s assembler.Stats) string {
	return fmt.Sprintf("%s files, %s chars, ~%s/%s tokens (%d%%)",
		humanize.Comma(int64(s.FileCount)),
		humanize.Comma(int64(s.CharCount)),
		humanize.Comma(int64(s.EstimatedTokens)),
		humanize.Comma(int64(s.MaxTokens)),
		s.Percentage)
}
