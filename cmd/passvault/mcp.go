package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/pass-vault/passvault/internal/mcp"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server",
		Long:  "Start the Model Context Protocol server for passvault",
		RunE: func(cmd *cobra.Command, args []string) error {
			server := mcp.NewServer(newManager(cmd))
			return server.Run(context.Background())
		},
	}

	return cmd
}
