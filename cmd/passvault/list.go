package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pass-vault/passvault/internal/vault"
)

func newListCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"l"},
		Short:   "List vaults",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "Output format: table or json")

	return cmd
}

func runList(cmd *cobra.Command, format string) error {
	m := newManager(cmd)
	infos, err := m.List()
	if err != nil {
		return err
	}

	switch format {
	case "json":
		return outputJSON(cmd, infos)
	case "table":
		outputTable(cmd, infos)
		return nil
	default:
		return fmt.Errorf("invalid format: %s (valid values: table, json)", format)
	}
}

func outputJSON(cmd *cobra.Command, infos []vault.Info) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(infos)
}

func outputTable(cmd *cobra.Command, infos []vault.Info) {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Vault", "Active"})

	// Leave room for borders, padding and the active column.
	maxName := getTerminalWidth() - 14
	if maxName < 10 {
		maxName = 10
	}

	for _, info := range infos {
		marker := ""
		if info.Active {
			marker = "*"
		}
		t.AppendRow(table.Row{runewidth.Truncate(info.Name, maxName, "..."), marker})
	}

	t.Render()
}

func getTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	// Default width if terminal size cannot be determined
	return 80
}
