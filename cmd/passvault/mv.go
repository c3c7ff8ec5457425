package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newMvCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "mv <old> <new>",
		Aliases: []string{"m", "move"},
		Short:   "Rename a vault and switch to it",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			oldName, newName := args[0], args[1]

			m := newManager(cmd)
			if err := m.Rename(context.Background(), oldName, newName); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed vault %q to %q, now active\n", oldName, newName)
			return nil
		},
	}

	return cmd
}
