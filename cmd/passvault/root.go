package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pass-vault/passvault/internal/config"
	"github.com/pass-vault/passvault/internal/database"
	"github.com/pass-vault/passvault/internal/vault"
)

var rootCmd = &cobra.Command{
	Use:   "passvault [vault]",
	Short: "passvault - isolated password-store vaults, one active at a time",
	Long: "passvault keeps multiple isolated password-store directories and switches\n" +
		"which one is active by maintaining a symlink at the store's working path.\n" +
		"Running passvault with a vault name switches to it; with no arguments it\n" +
		"lists all vaults.",
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return runList(cmd, "table")
		}
		return runSwitch(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newSwitchCmd())
	rootCmd.AddCommand(newMvCmd())
	rootCmd.AddCommand(newRmCmd())
	rootCmd.AddCommand(newCurrentCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newMCPCmd())
	rootCmd.AddCommand(newVersionCmd())
}

// journalWriter opens the journal on first append rather than up front: init
// has to create the vault root before the journal file underneath it can
// exist. One CLI invocation appends at most once.
type journalWriter struct {
	path string
}

func (w *journalWriter) Append(ctx context.Context, op, vaultName, detail string) error {
	j, err := database.Open(w.path)
	if err != nil {
		return err
	}
	defer func() {
		_ = j.Close()
	}()
	return j.Append(ctx, op, vaultName, detail)
}

func newManager(cmd *cobra.Command) *vault.Manager {
	return vault.NewManager(vault.Options{
		Journal: &journalWriter{path: config.GetJournalPath()},
		Events: func(msg string) {
			fmt.Fprintln(cmd.OutOrStdout(), msg)
		},
	})
}
