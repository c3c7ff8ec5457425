package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "add <name>",
		Aliases: []string{"a"},
		Short:   "Create a fresh vault and switch to it",
		Long: "Provision a new empty vault using the identity of the currently active\n" +
			"vault, then make it active.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			m := newManager(cmd)
			if err := m.Add(context.Background(), name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created vault %q, now active\n", name)
			return nil
		},
	}

	return cmd
}
