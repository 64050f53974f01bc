package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newEnableCmd(newSess sessFactory, exitCode *int) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "enable KIND:PATH",
		Short: "Enable a single file asset and persist the change",
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
			if err := sess.Enable(cmd.Context(), key); err != nil {
				handleCmdError(exitCode, err)
				return
			}
			if err := sess.Save(cmd.Context()); err != nil {
				handleCmdError(exitCode, err)
				return
			}
			renderWarnings(os.Stderr, sess.Warnings(), shouldUseColor(os.Stderr))
			fmt.Fprintf(os.Stdout, "enabled %s\n", key)
			*exitCode = exitSuccess
		},
	}
	return cmd
}
