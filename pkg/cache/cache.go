package cache

import (
	"fmt"
	"os"
	"path/filepath"
)

// AppName is the directory name used under the OS cache directory.
const AppName = "preco"

// Dir returns the cache root. Resolution order: $PRECO_HOME, then
// $XDG_CACHE_HOME/preco, then the OS user cache directory plus "preco".
func Dir() (string, error) {
	if home := os.Getenv("PRECO_HOME"); home != "" {
		return home, nil
	}
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user cache directory: %w", err)
	}
	return filepath.Join(base, AppName), nil
}

// CheckoutsDir returns the directory holding all hook repo checkouts.
func CheckoutsDir() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "checkouts"), nil
}

// CheckoutPath computes the content-addressed path for a checkout of the
// given repo URL at the given rev. When additional dependencies are present
// the rev segment carries a "+<hash>" suffix so dependency sets never share
// a checkout.
func CheckoutPath(url, rev string, deps []string) (string, error) {
	dir, err := CheckoutsDir()
	if err != nil {
		return "", err
	}
	seg := Encode(rev)
	if len(deps) > 0 {
		seg += "+" + DepsHash(deps)
	}
	return filepath.Join(dir, Encode(url), seg), nil
}
