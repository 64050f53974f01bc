package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newReloadCmd(newSess sessFactory, exitCode *int) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reload",
		Short: "Sync the upstream catalog and rescan local assets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			sess, err := newSess(cmd, force)
			if err != nil {
				handleCmdError(exitCode, err)
				return
			}
			renderWarnings(os.Stderr, sess.Warnings(), shouldUseColor(os.Stderr))
			fmt.Fprintf(os.Stdout, "reloaded %d assets from %s\n", len(sess.SnapshotViews()), sess.Paths().Root)
			*exitCode = exitSuccess
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "ignore the freshness window and refetch the upstream catalog")
	return cmd
}
