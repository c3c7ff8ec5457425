package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/pass-vault/passvault/internal/config"
	"github.com/pass-vault/passvault/internal/database"
	"github.com/pass-vault/passvault/internal/vault"
)

func newHistoryCmd() *cobra.Command {
	var (
		limit  int
		format string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent vault operations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if fi, err := os.Stat(config.GetVaultRoot()); err != nil || !fi.IsDir() {
				return vault.ErrNotInitialized
			}

			journal, err := database.Open(config.GetJournalPath())
			if err != nil {
				return err
			}
			defer func() {
				_ = journal.Close()
			}()

			records, err := journal.Recent(context.Background(), limit)
			if err != nil {
				return err
			}

			switch format {
			case "json":
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(records)
			case "table":
				outputHistoryTable(cmd, records)
				return nil
			default:
				return fmt.Errorf("invalid format: %s (valid values: table, json)", format)
			}
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of records to show")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table or json")

	return cmd
}

func outputHistoryTable(cmd *cobra.Command, records []database.Record) {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Time", "Op", "Vault", "Detail"})

	for _, rec := range records {
		t.AppendRow(table.Row{
			rec.CreatedAt.Local().Format(time.DateTime),
			rec.Op,
			rec.Vault,
			rec.Detail,
		})
	}

	t.Render()
}
