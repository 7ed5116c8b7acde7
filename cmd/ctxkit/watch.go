package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/ctxkit/assembler"
)

func newWatchCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "watch FILE...",
		Short: "Keep files in context and print stats whenever one changes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.open(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			out := cmd.OutOrStdout()
			if s.addFiles(cmd.Context(), args) == 0 {
				return fmt.Errorf("none of the %d files could be added", len(args))
			}
			fmt.Fprintln(out, statsLine(s.asm.Stats()))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return s.watch(ctx, func(stats assembler.Stats) error {
				_, err := fmt.Fprintln(out, statsLine(stats))
				return err
			})
		},
	}
}
