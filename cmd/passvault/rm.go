package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pass-vault/passvault/internal/vault"
)

func newRmCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "rm <name>",
		Aliases: []string{"d", "remove", "del", "delete"},
		Short:   "Delete a vault and all its secrets",
		Long: "Permanently delete a vault. The active vault cannot be deleted; switch\n" +
			"away first. Declining the confirmation aborts cleanly.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			m := newManager(cmd)
			if err := checkRemovable(m, name); err != nil {
				return err
			}

			if !force {
				confirmed, err := confirmDelete(cmd, name)
				if err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborting.")
					return nil
				}
			}

			if err := m.Remove(context.Background(), name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed vault %q\n", name)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation prompt")

	return cmd
}

// checkRemovable verifies the preconditions Remove enforces again under the
// lock, so the user is never prompted for a deletion that cannot happen.
func checkRemovable(m *vault.Manager, name string) error {
	if err := vault.ValidateName(name); err != nil {
		return err
	}

	infos, err := m.List()
	if err != nil {
		return err
	}
	for _, info := range infos {
		if info.Name != name {
			continue
		}
		if info.Active {
			return fmt.Errorf("%w: %s", vault.ErrActiveVault, name)
		}
		return nil
	}
	return fmt.Errorf("%w: %s", vault.ErrNotFound, name)
}

func confirmDelete(cmd *cobra.Command, name string) (bool, error) {
	fmt.Fprintf(cmd.ErrOrStderr(), "Warning: this permanently deletes vault %q and every secret in it.\n", name)
	fmt.Fprintf(cmd.ErrOrStderr(), "Delete vault %q? (y/N) ", name)

	reader := bufio.NewReader(cmd.InOrStdin())
	answer, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}

	return strings.TrimSpace(strings.ToLower(answer)) == "y", nil
}
