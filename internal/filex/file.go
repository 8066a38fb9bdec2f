package filex

import (
	"fmt"
	"os"
)

// EnsureDir creates dir (including parents) if it does not exist. The vault
// directory holds encrypted credentials, so it is created owner-only.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}
