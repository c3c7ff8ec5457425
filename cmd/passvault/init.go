package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pass-vault/passvault/internal/vault"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "init",
		Aliases: []string{"i"},
		Short:   "Initialise the vault root",
		Long: "Create the vault root. An existing password store at the store path is\n" +
			"migrated into a vault named main, which becomes active.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m := newManager(cmd)
			if err := m.Init(context.Background()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialised vault root at %s, vault %q is active\n",
				m.Root(), vault.DefaultVault)
			return nil
		},
	}

	return cmd
}
