package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newSaveCmd(newSess sessFactory, exitCode *int) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Persist the current enablement record without changing any toggle",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			sess, err := newSess(cmd, false)
			if err != nil {
				handleCmdError(exitCode, err)
				return
			}
			if err := sess.Save(cmd.Context()); err != nil {
				handleCmdError(exitCode, err)
				return
			}
			renderWarnings(os.Stderr, sess.Warnings(), shouldUseColor(os.Stderr))
			fmt.Fprintln(os.Stdout, "enablement record saved")
			*exitCode = exitSuccess
		},
	}
	return cmd
}
