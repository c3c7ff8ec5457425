package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pass-vault/passvault/internal/vault"
)

func setupVaults(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	root := filepath.Join(tmp, "vaults")
	t.Setenv("PASSWORD_STORE_VAULT_DIR", root)
	t.Setenv("PASSWORD_STORE_DIR", filepath.Join(tmp, "store"))

	m := vault.NewManager(vault.Options{})
	if err := m.Init(context.Background()); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	// A second, inactive vault to delete.
	if err := os.Mkdir(filepath.Join(root, "work"), 0o700); err != nil {
		t.Fatalf("creating work vault: %v", err)
	}
	return root
}

func TestRmDeclinedConfirmationLeavesVaultIntact(t *testing.T) {
	root := setupVaults(t)

	cmd := newRmCmd()
	cmd.SetIn(strings.NewReader("n\n"))
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"work"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("expected declined confirmation to succeed, got %v", err)
	}
	if !strings.Contains(out.String(), "Aborting.") {
		t.Fatalf("expected abort message, got %q", out.String())
	}
	if !strings.Contains(errOut.String(), "(y/N)") {
		t.Fatalf("expected confirmation prompt on stderr, got %q", errOut.String())
	}
	if _, err := os.Stat(filepath.Join(root, "work")); err != nil {
		t.Fatalf("declined rm still deleted the vault: %v", err)
	}
}

func TestRmConfirmedDeletesVault(t *testing.T) {
	root := setupVaults(t)

	cmd := newRmCmd()
	cmd.SetIn(strings.NewReader("y\n"))
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"work"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("rm failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "work")); !os.IsNotExist(err) {
		t.Fatalf("expected vault directory gone")
	}
}

func TestRmMissingVaultFailsBeforePrompting(t *testing.T) {
	setupVaults(t)

	cmd := newRmCmd()
	cmd.SetIn(strings.NewReader("y\n"))
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"ghost"})

	err := cmd.Execute()
	if !errors.Is(err, vault.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if strings.Contains(errOut.String(), "(y/N)") {
		t.Fatalf("missing vault still prompted for confirmation: %q", errOut.String())
	}
}

func TestRmActiveVaultFailsBeforePrompting(t *testing.T) {
	root := setupVaults(t)

	cmd := newRmCmd()
	cmd.SetIn(strings.NewReader("y\n"))
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{vault.DefaultVault})

	err := cmd.Execute()
	if !errors.Is(err, vault.ErrActiveVault) {
		t.Fatalf("expected ErrActiveVault, got %v", err)
	}
	if strings.Contains(errOut.String(), "(y/N)") {
		t.Fatalf("active vault still prompted for confirmation: %q", errOut.String())
	}
	if _, err := os.Stat(filepath.Join(root, vault.DefaultVault)); err != nil {
		t.Fatalf("refused rm still deleted the vault: %v", err)
	}
}

func TestConfirmDeleteParsing(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{" y \n", true},
		{"n\n", false},
		{"yes\n", false},
		{"\n", false},
		{"", false},
	}

	for _, tc := range cases {
		cmd := newRmCmd()
		cmd.SetIn(strings.NewReader(tc.input))
		cmd.SetErr(&bytes.Buffer{})

		got, err := confirmDelete(cmd, "work")
		if err != nil {
			t.Fatalf("confirmDelete(%q) failed: %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("confirmDelete(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}
