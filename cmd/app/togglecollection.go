package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newToggleCollectionCmd(newSess sessFactory, exitCode *int) *cobra.Command {
	var disable bool

	cmd := &cobra.Command{
		Use:   "toggle-collection COLLECTION_ID",
		Short: "Set every member of a collection to the same enablement state",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			sess, err := newSess(cmd, false)
			if err != nil {
				handleCmdError(exitCode, err)
				return
			}
			desired := !disable
			if err := sess.ToggleCollection(cmd.Context(), args[0], desired); err != nil {
				handleCmdError(exitCode, err)
				return
			}
			if err := sess.Save(cmd.Context()); err != nil {
				handleCmdError(exitCode, err)
				return
			}
			renderWarnings(os.Stderr, sess.Warnings(), shouldUseColor(os.Stderr))
			fmt.Fprintf(os.Stdout, "collection %s set to %t\n", args[0], desired)
			*exitCode = exitSuccess
		},
	}

	cmd.Flags().BoolVar(&disable, "disable", false, "disable every member instead of enabling")
	return cmd
}
