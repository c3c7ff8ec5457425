package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newSwitchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "switch <name>",
		Aliases: []string{"s"},
		Short:   "Make the named vault the active one",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSwitch(cmd, args[0])
		},
	}

	return cmd
}

func runSwitch(cmd *cobra.Command, name string) error {
	m := newManager(cmd)
	if err := m.Switch(context.Background(), name); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Switched to vault %q\n", name)
	return nil
}
