// Package config resolves the filesystem locations passvault works with.
package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// GetStorePath returns the path the credential store expects to find its
// directory at. Once passvault has initialised, this path is a symlink to the
// active vault. PASSWORD_STORE_DIR takes precedence, matching the variable the
// store itself honours.
func GetStorePath() string {
	if explicit := os.Getenv("PASSWORD_STORE_DIR"); explicit != "" {
		return explicit
	}
	return filepath.Join(homeDir(), ".password-store")
}

// GetVaultRoot returns the directory that holds every vault plus the shared
// extensions directory.
func GetVaultRoot() string {
	if explicit := os.Getenv("PASSWORD_STORE_VAULT_DIR"); explicit != "" {
		return explicit
	}
	return filepath.Join(homeDir(), ".password-vaults")
}

// GetJournalPath returns the sqlite file recording vault operations.
func GetJournalPath() string {
	return filepath.Join(GetVaultRoot(), "journal.db")
}

func homeDir() string {
	xdg.Reload()

	home := xdg.Home
	if home == "" {
		var err error
		home, err = os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "passvault")
		}
	}
	return home
}
