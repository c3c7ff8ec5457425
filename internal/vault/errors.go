package vault

import "errors"

// Every failure mode a caller may want to branch on is a sentinel, matched
// with errors.Is. Wording lives here; identity is the value itself.
var (
	// ErrAlreadyInitialized indicates the vault root already exists.
	ErrAlreadyInitialized = errors.New("vault: already initialized")
	// ErrNotInitialized indicates the vault root does not exist yet.
	ErrNotInitialized = errors.New("vault: not initialized, run init first")
	// ErrEmptyName indicates a required vault name was omitted.
	ErrEmptyName = errors.New("vault: name must not be empty")
	// ErrInvalidName indicates a vault name with path separators, whitespace
	// or a leading dot.
	ErrInvalidName = errors.New("vault: invalid name")
	// ErrAlreadyExists indicates a vault with the requested name exists.
	ErrAlreadyExists = errors.New("vault: already exists")
	// ErrNotFound indicates no vault with the requested name exists.
	ErrNotFound = errors.New("vault: not found")
	// ErrActiveVault indicates a destructive operation targeted the active
	// vault. Switch away first.
	ErrActiveVault = errors.New("vault: cannot delete the active vault")
	// ErrNoActiveVault indicates the active pointer is absent.
	ErrNoActiveVault = errors.New("vault: no active vault")
	// ErrSymlinkConflict indicates something other than a symlink occupies
	// the active pointer path. It is never overwritten.
	ErrSymlinkConflict = errors.New("vault: store path is not a symlink")
	// ErrLocked indicates another passvault invocation holds the lock.
	ErrLocked = errors.New("vault: locked by another process")
)
