package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/astrosteveo/awesome-copilot-tui/internal/usecase"
)

func newResetCmd(newSess sessFactory, exitCode *int) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Remove every installed file asset and clear all explicit toggles",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			if !yes {
				handleCmdError(exitCode, fmt.Errorf("reset is destructive, pass --yes to confirm: %w", usecase.ErrUsage))
				return
			}
			sess, err := newSess(cmd, false)
			if err != nil {
				handleCmdError(exitCode, err)
				return
			}
			if err := sess.Reset(cmd.Context()); err != nil {
				handleCmdError(exitCode, err)
				return
			}
			if err := sess.Save(cmd.Context()); err != nil {
				handleCmdError(exitCode, err)
				return
			}
			renderWarnings(os.Stderr, sess.Warnings(), shouldUseColor(os.Stderr))
			fmt.Fprintln(os.Stdout, "reset complete")
			*exitCode = exitSuccess
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the destructive reset")
	return cmd
}
