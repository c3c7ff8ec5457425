// Package vault implements the vault lifecycle and activation state machine.
//
// A vault is a directory under the vault root holding an opaque credential
// store. Exactly one vault is exposed to the store program at a time through
// the active pointer, a symlink at the store's fixed working path. All state
// lives on the filesystem; nothing is cached between operations.
package vault

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"github.com/pass-vault/passvault/internal/config"
	"github.com/pass-vault/passvault/internal/store"
)

const (
	// DefaultVault is the vault created by init.
	DefaultVault = "main"

	extensionsDirName = ".extensions"
	swapLinkName      = ".passvault-swap"

	dirPerm = 0o700

	lockTimeout    = 5 * time.Second
	lockRetryDelay = 100 * time.Millisecond
)

// Info describes one vault as reported by List.
type Info struct {
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// Journal records successful mutating operations. Append failures are
// swallowed by the manager: the journal is an audit aid, not part of the
// operation contract.
type Journal interface {
	Append(ctx context.Context, op, vault, detail string) error
}

// Options configures a Manager. Zero-value fields fall back to the
// environment-derived defaults from the config package.
type Options struct {
	Root      string
	StorePath string
	// LockPath defaults to a sibling of Root (<Root>.lock), not a child, so
	// init can take the lock before the root exists.
	LockPath    string
	Provisioner store.Provisioner
	Journal     Journal
	// Events receives one line per filesystem move or link, for auditability.
	Events func(msg string)
}

// Manager owns the vault root and the active pointer.
type Manager struct {
	root        string
	storePath   string
	lockPath    string
	provisioner store.Provisioner
	journal     Journal
	events      func(msg string)
}

func NewManager(opts Options) *Manager {
	if opts.Root == "" {
		opts.Root = config.GetVaultRoot()
	}
	if opts.StorePath == "" {
		opts.StorePath = config.GetStorePath()
	}
	if opts.LockPath == "" {
		opts.LockPath = opts.Root + ".lock"
	}
	if opts.Provisioner == nil {
		opts.Provisioner = store.Exec{}
	}

	return &Manager{
		root:        opts.Root,
		storePath:   opts.StorePath,
		lockPath:    opts.LockPath,
		provisioner: opts.Provisioner,
		journal:     opts.Journal,
		events:      opts.Events,
	}
}

// Root returns the vault root directory.
func (m *Manager) Root() string { return m.root }

// StorePath returns the active pointer path.
func (m *Manager) StorePath() string { return m.storePath }

// Init creates the vault root. A legacy store already present at the store
// path is migrated into a vault named main; its extensions subdirectory, if
// any, is hoisted into the shared extensions directory first. Ends with main
// active.
func (m *Manager) Init(ctx context.Context) error {
	unlock, err := m.lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	if m.initialized() {
		return fmt.Errorf("%w: %s", ErrAlreadyInitialized, m.root)
	}
	if err := os.MkdirAll(m.root, dirPerm); err != nil {
		return fmt.Errorf("vault: creating root: %w", err)
	}

	mainDir := m.dir(DefaultVault)
	sharedExt := m.extensionsDir()

	fi, err := os.Lstat(m.storePath)
	switch {
	case err == nil && fi.Mode()&os.ModeSymlink != 0:
		// Stale pointer, replaced by activation below.
	case err == nil && fi.IsDir():
		legacyExt := filepath.Join(m.storePath, extensionsDirName)
		if efi, err := os.Lstat(legacyExt); err == nil && efi.IsDir() {
			if err := m.move(legacyExt, sharedExt); err != nil {
				return err
			}
		}
		if err := m.move(m.storePath, mainDir); err != nil {
			return err
		}
	case err == nil:
		return fmt.Errorf("%w: %s", ErrSymlinkConflict, m.storePath)
	case !os.IsNotExist(err):
		return err
	}

	if err := os.MkdirAll(mainDir, dirPerm); err != nil {
		return fmt.Errorf("vault: creating %s: %w", DefaultVault, err)
	}
	if err := os.MkdirAll(sharedExt, dirPerm); err != nil {
		return fmt.Errorf("vault: creating extensions directory: %w", err)
	}
	if err := m.linkExtensions(mainDir); err != nil {
		return err
	}
	if err := m.activate(mainDir); err != nil {
		return err
	}

	m.record(ctx, "init", DefaultVault, "")
	return nil
}

// Add provisions a fresh vault sharing the identity of the currently active
// vault, then activates it.
func (m *Manager) Add(ctx context.Context, name string) error {
	unlock, err := m.lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	if !m.initialized() {
		return ErrNotInitialized
	}
	if err := ValidateName(name); err != nil {
		return err
	}

	dir := m.dir(name)
	if _, err := os.Lstat(dir); err == nil {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, name)
	}

	active, err := m.Active()
	if err != nil {
		return err
	}
	identity, err := store.Identity(m.dir(active))
	if err != nil {
		return fmt.Errorf("vault: reading identity of %s: %w", active, err)
	}

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("vault: creating %s: %w", name, err)
	}
	if err := m.provisioner.Provision(dir, identity); err != nil {
		_ = os.RemoveAll(dir)
		return fmt.Errorf("vault: provisioning %s: %w", name, err)
	}
	if err := m.linkExtensions(dir); err != nil {
		return err
	}
	if err := m.activate(dir); err != nil {
		return err
	}

	m.record(ctx, "add", name, "identity "+identity)
	return nil
}

// List enumerates vaults in name order, marking the one the active pointer
// resolves to. Read-only.
func (m *Manager) List() ([]Info, error) {
	if !m.initialized() {
		return nil, ErrNotInitialized
	}

	entries, err := os.ReadDir(m.root)
	if err != nil {
		return nil, fmt.Errorf("vault: reading root: %w", err)
	}

	var infos []Info
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		infos = append(infos, Info{
			Name:   name,
			Active: m.isActive(m.dir(name)),
		})
	}
	return infos, nil
}

// Switch repoints the active pointer at the named vault. Only the pointer
// moves; vault contents are untouched.
func (m *Manager) Switch(ctx context.Context, name string) error {
	unlock, err := m.lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	if !m.initialized() {
		return ErrNotInitialized
	}
	if err := ValidateName(name); err != nil {
		return err
	}

	dir := m.dir(name)
	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err := m.activate(dir); err != nil {
		return err
	}

	m.record(ctx, "switch", name, "")
	return nil
}

// Rename renames a vault and activates it under the new name. Activation
// happens even when the renamed vault was not active before; switching on
// rename is deliberate.
func (m *Manager) Rename(ctx context.Context, oldName, newName string) error {
	unlock, err := m.lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	if !m.initialized() {
		return ErrNotInitialized
	}
	if err := ValidateName(oldName); err != nil {
		return err
	}
	if err := ValidateName(newName); err != nil {
		return err
	}

	oldDir := m.dir(oldName)
	newDir := m.dir(newName)
	if fi, err := os.Stat(oldDir); err != nil || !fi.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotFound, oldName)
	}
	if _, err := os.Lstat(newDir); err == nil {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, newName)
	}

	if err := m.move(oldDir, newDir); err != nil {
		return err
	}
	if err := m.activate(newDir); err != nil {
		return err
	}

	m.record(ctx, "rename", newName, "from "+oldName)
	return nil
}

// Remove deletes a vault and all its contents. The active vault is refused;
// callers confirm with the user before invoking this.
func (m *Manager) Remove(ctx context.Context, name string) error {
	unlock, err := m.lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	if !m.initialized() {
		return ErrNotInitialized
	}
	if err := ValidateName(name); err != nil {
		return err
	}

	active, err := m.Active()
	if err != nil && !errors.Is(err, ErrNoActiveVault) {
		return err
	}
	if err == nil && active == name {
		return fmt.Errorf("%w: %s", ErrActiveVault, name)
	}

	dir := m.dir(name)
	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("vault: removing %s: %w", name, err)
	}

	m.record(ctx, "remove", name, "")
	return nil
}

// Active returns the name of the vault the active pointer resolves to.
func (m *Manager) Active() (string, error) {
	fi, err := os.Lstat(m.storePath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoActiveVault
		}
		return "", err
	}
	if fi.Mode()&os.ModeSymlink == 0 {
		return "", fmt.Errorf("%w: %s", ErrSymlinkConflict, m.storePath)
	}

	target, err := os.Readlink(m.storePath)
	if err != nil {
		return "", err
	}
	return filepath.Base(target), nil
}

// activate swaps the active pointer to dir. The pointer path must be absent
// or a symlink; anything else is a conflict and is never overwritten. The
// swap goes through a temporary sibling link renamed over the pointer, so no
// moment exists with zero active vaults.
func (m *Manager) activate(dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}

	if fi, err := os.Lstat(m.storePath); err == nil && fi.Mode()&os.ModeSymlink == 0 {
		return fmt.Errorf("%w: %s", ErrSymlinkConflict, m.storePath)
	}

	swap := filepath.Join(filepath.Dir(m.storePath), swapLinkName)
	_ = os.Remove(swap)
	if err := os.Symlink(abs, swap); err != nil {
		return fmt.Errorf("vault: creating pointer: %w", err)
	}
	if err := os.Rename(swap, m.storePath); err != nil {
		_ = os.Remove(swap)
		return fmt.Errorf("vault: swapping pointer: %w", err)
	}

	m.notify(fmt.Sprintf("%s -> %s", m.storePath, abs))
	return nil
}

// isActive reports whether the active pointer resolves to dir. Both sides are
// made absolute before comparing so relative callers cannot produce false
// negatives.
func (m *Manager) isActive(dir string) bool {
	target, err := os.Readlink(m.storePath)
	if err != nil {
		return false
	}
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return false
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	return absTarget == absDir
}

// linkExtensions links the shared extensions directory into dir so every
// vault sees the same extension set. Existing links are left alone.
func (m *Manager) linkExtensions(dir string) error {
	abs, err := filepath.Abs(m.extensionsDir())
	if err != nil {
		return err
	}

	link := filepath.Join(dir, extensionsDirName)
	if _, err := os.Lstat(link); err == nil {
		return nil
	}
	if err := os.Symlink(abs, link); err != nil {
		return fmt.Errorf("vault: linking extensions: %w", err)
	}

	m.notify(fmt.Sprintf("%s -> %s", link, abs))
	return nil
}

func (m *Manager) lock(ctx context.Context) (func(), error) {
	fl := flock.New(m.lockPath)

	lockCtx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()

	locked, err := fl.TryLockContext(lockCtx, lockRetryDelay)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return nil, fmt.Errorf("vault: acquiring lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", ErrLocked, m.lockPath)
	}
	return func() { _ = fl.Unlock() }, nil
}

func (m *Manager) move(src, dst string) error {
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("vault: moving %s: %w", src, err)
	}
	m.notify(fmt.Sprintf("%s -> %s", src, dst))
	return nil
}

func (m *Manager) record(ctx context.Context, op, vault, detail string) {
	if m.journal == nil {
		return
	}
	_ = m.journal.Append(ctx, op, vault, detail)
}

func (m *Manager) notify(msg string) {
	if m.events != nil {
		m.events(msg)
	}
}

func (m *Manager) initialized() bool {
	fi, err := os.Stat(m.root)
	return err == nil && fi.IsDir()
}

func (m *Manager) dir(name string) string {
	return filepath.Join(m.root, name)
}

func (m *Manager) extensionsDir() string {
	return filepath.Join(m.root, extensionsDirName)
}
