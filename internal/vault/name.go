package vault

import (
	"fmt"
	"regexp"
	"strings"
)

var nameForbiddenPattern = regexp.MustCompile(`[\s/\\]`)

// ValidateName applies the single naming rule every operation shares: a vault
// name is non-empty, carries no path separators or whitespace, and does not
// start with a dot (dot entries in the vault root are reserved for shared
// infrastructure like the extensions directory).
func ValidateName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if strings.HasPrefix(name, ".") {
		return fmt.Errorf("%w: %q starts with a dot", ErrInvalidName, name)
	}
	if nameForbiddenPattern.MatchString(name) {
		return fmt.Errorf("%w: %q contains whitespace or path separators", ErrInvalidName, name)
	}
	return nil
}
