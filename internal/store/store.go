// Package store talks to the external credential store program. The store is
// treated as an opaque directory tree; passvault only ever provisions a fresh
// one and reads the identity it encrypts against.
package store

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// IdentityFile is the well-known file inside a store whose first line names
// the identity the store encrypts against.
const IdentityFile = ".gpg-id"

// ErrNoIdentity indicates a store directory has no usable identity file.
var ErrNoIdentity = errors.New("store: no identity file")

// Provisioner initialises a fresh credential store at dir, encrypted against
// the given identity token.
type Provisioner interface {
	Provision(dir, identity string) error
}

// Exec provisions stores by invoking the pass binary with PASSWORD_STORE_DIR
// pointed at the target directory.
type Exec struct {
	// Command overrides the store binary. Defaults to "pass".
	Command string
}

func (e Exec) Provision(dir, identity string) error {
	bin := e.Command
	if bin == "" {
		bin = "pass"
	}

	cmd := exec.Command(bin, "init", identity)
	cmd.Env = append(os.Environ(), "PASSWORD_STORE_DIR="+dir)

	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("store: %s init failed: %w: %s", bin, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Identity reads the identity token of the store at dir, the first line of
// its identity file.
func Identity(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, IdentityFile))
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrNoIdentity, dir)
		}
		return "", err
	}

	line, _, _ := strings.Cut(string(data), "\n")
	line = strings.TrimSpace(line)
	if line == "" {
		return "", fmt.Errorf("%w: %s", ErrNoIdentity, dir)
	}
	return line, nil
}
