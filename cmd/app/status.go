package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/astrosteveo/awesome-copilot-tui/internal/usecase"
)

func newStatusCmd(newSess sessFactory, exitCode *int) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the active snapshot and reconciliation summary for the project",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			sess, err := newSess(cmd, false)
			if err != nil {
				handleCmdError(exitCode, err)
				return
			}
			useColor := shouldUseColor(os.Stdout)
			views := sess.SnapshotViews()
			var enabled, diff int
			for _, v := range views {
				if v.EffectiveEnabled {
					enabled++
				}
				if v.LocalStatus == usecase.StatusDiff {
					diff++
				}
			}
			fmt.Fprintf(os.Stdout, "root:     %s\n", sess.Paths().Root)
			fmt.Fprintf(os.Stdout, "assets:   %d (%d enabled, %d diff from catalog)\n", len(views), enabled, diff)
			fmt.Fprintf(os.Stdout, "dirty:    %t\n", sess.Dirty())
			renderWarnings(os.Stdout, sess.Warnings(), useColor)
			*exitCode = exitSuccess
		},
	}
	return cmd
}
