package main

import (
	"os"

	"github.com/spf13/cobra"
)

func newListCmd(newSess sessFactory, exitCode *int) *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog assets and their effective enablement",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			sess, err := newSess(cmd, false)
			if err != nil {
				handleCmdError(exitCode, err)
				return
			}
			if filter != "" {
				sess.Filter(filter)
			}
			renderViews(os.Stdout, sess.SnapshotViews(), shouldUseColor(os.Stdout))
			renderWarnings(os.Stderr, sess.Warnings(), shouldUseColor(os.Stderr))
			*exitCode = exitSuccess
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "", "case-insensitive substring filter over name, path, slug, description, tags")
	return cmd
}
