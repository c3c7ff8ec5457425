// Package mcp exposes vault management over the Model Context Protocol.
package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/pass-vault/passvault/internal/vault"
)

// Server wraps the MCP server with vault-specific functionality. Removing a
// vault is deliberately not exposed: it is destructive and requires an
// interactive confirmation MCP cannot provide.
type Server struct {
	server  *mcp.Server
	manager *vault.Manager
}

// NewServer creates a new MCP server instance over the given manager.
func NewServer(manager *vault.Manager) *Server {
	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    "passvault",
		Version: "0.1.0",
	}, nil)

	s := &Server{
		server:  mcpServer,
		manager: manager,
	}

	s.registerTools()

	return s
}

// Run starts the MCP server with stdio transport.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "vault_list",
		Description: "List all vaults and which one is active",
	}, s.handleList)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "vault_current",
		Description: "Return the name of the active vault",
	}, s.handleCurrent)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "vault_switch",
		Description: "Make the named vault the active one",
	}, s.handleSwitch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "vault_add",
		Description: "Create a fresh vault sharing the active vault's identity and switch to it",
	}, s.handleAdd)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "vault_rename",
		Description: "Rename a vault and switch to it",
	}, s.handleRename)
}

// Input/Output types for each tool

type ListInput struct{}

type ListOutput struct {
	Vaults []vault.Info `json:"vaults"`
}

type CurrentInput struct{}

type CurrentOutput struct {
	Name string `json:"name"`
}

type SwitchInput struct {
	Name string `json:"name" jsonschema:"required,description=The vault to activate"`
}

type SwitchOutput struct {
	Message string `json:"message"`
}

type AddInput struct {
	Name string `json:"name" jsonschema:"required,description=The name of the vault to create"`
}

type AddOutput struct {
	Message string `json:"message"`
}

type RenameInput struct {
	From string `json:"from" jsonschema:"required,description=The current vault name"`
	To   string `json:"to" jsonschema:"required,description=The new vault name"`
}

type RenameOutput struct {
	Message string `json:"message"`
}

// Tool handlers

func (s *Server) handleList(ctx context.Context, req *mcp.CallToolRequest, input ListInput) (*mcp.CallToolResult, ListOutput, error) {
	infos, err := s.manager.List()
	if err != nil {
		return nil, ListOutput{}, fmt.Errorf("failed to list vaults: %w", err)
	}
	return nil, ListOutput{Vaults: infos}, nil
}

func (s *Server) handleCurrent(ctx context.Context, req *mcp.CallToolRequest, input CurrentInput) (*mcp.CallToolResult, CurrentOutput, error) {
	name, err := s.manager.Active()
	if err != nil {
		return nil, CurrentOutput{}, fmt.Errorf("failed to resolve active vault: %w", err)
	}
	return nil, CurrentOutput{Name: name}, nil
}

func (s *Server) handleSwitch(ctx context.Context, req *mcp.CallToolRequest, input SwitchInput) (*mcp.CallToolResult, SwitchOutput, error) {
	if err := s.manager.Switch(ctx, input.Name); err != nil {
		return nil, SwitchOutput{}, fmt.Errorf("failed to switch vault: %w", err)
	}
	return nil, SwitchOutput{
		Message: fmt.Sprintf("Switched to vault %s", input.Name),
	}, nil
}

func (s *Server) handleAdd(ctx context.Context, req *mcp.CallToolRequest, input AddInput) (*mcp.CallToolResult, AddOutput, error) {
	if err := s.manager.Add(ctx, input.Name); err != nil {
		return nil, AddOutput{}, fmt.Errorf("failed to add vault: %w", err)
	}
	return nil, AddOutput{
		Message: fmt.Sprintf("Created vault %s, now active", input.Name),
	}, nil
}

func (s *Server) handleRename(ctx context.Context, req *mcp.CallToolRequest, input RenameInput) (*mcp.CallToolResult, RenameOutput, error) {
	if err := s.manager.Rename(ctx, input.From, input.To); err != nil {
		return nil, RenameOutput{}, fmt.Errorf("failed to rename vault: %w", err)
	}
	return nil, RenameOutput{
		Message: fmt.Sprintf("Renamed vault %s to %s, now active", input.From, input.To),
	}, nil
}
