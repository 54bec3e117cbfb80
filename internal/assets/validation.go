package assets

import (
	"fmt"
	"strings"
)

// ValidateAssetName checks that an asset file name is safe to join onto a
// search directory. Returns ErrInvalidAssetName if the name is empty, holds
// a path separator or a NUL byte, or is a dot entry.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\\x00") || name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
