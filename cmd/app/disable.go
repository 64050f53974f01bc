package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newDisableCmd(newSess sessFactory, exitCode *int) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "disable KIND:PATH",
		Short: "Disable a single file asset and persist the change",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			key, err := parseAssetKey(args[0])
			if err != nil {
				handleCmdError(exitCode, err)
				return
			}
			sess, err := newSess(cmd, false)
			if err != nil {
				handleCmdError(exitCode, err)
				return
			}
			if err := sess.Disable(cmd.Context(), key); err != nil {
				handleCmdError(exitCode, err)
				return
			}
			if err := sess.Save(cmd.Context()); err != nil {
				handleCmdError(exitCode, err)
				return
			}
			renderWarnings(os.Stderr, sess.Warnings(), shouldUseColor(os.Stderr))
			fmt.Fprintf(os.Stdout, "disabled %s\n", key)
			*exitCode = exitSuccess
		},
	}
	return cmd
}
