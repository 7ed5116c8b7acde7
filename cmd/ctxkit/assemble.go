package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/ctxkit/assembler"
	"github.com/randalmurphal/ctxkit/truncate"
)

func newAssembleCmd(g *globalFlags) *cobra.Command {
	var (
		lines int
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "assemble FILE...",
		Short: "Print the assembled context for the given files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.open(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			out := cmd.OutOrStdout()
			s.addFiles(cmd.Context(), args)
			printContext(out, s.asm.Assemble(), lines)

			if !cmd.Flags().Changed("watch") {
				watch = s.cfg.Watch
			}
			if !watch {
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return s.watch(ctx, func(assembler.Stats) error {
				printContext(out, s.asm.Assemble(), lines)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 0, "only print the first N lines (0 prints everything)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-print the context whenever a file changes (default from config)")

	return cmd
}

func printContext(w io.Writer, text string, lines int) {
	if lines > 0 {
		text = truncate.ToLines(text, lines)
	}
	fmt.Fprintln(w, text)
}
