package git

import (
	"fmt"
	"os"
	"path/filepath"
)

// HookPath returns where the named hook script lives for this repository.
func (r *Repository) HookPath(hookName string) string {
	return filepath.Join(r.Root, ".git", "hooks", hookName)
}

// InstallHook writes the named hook script, replacing any existing one.
// Hook scripts must be executable for git to run them.
func (r *Repository) InstallHook(hookName, script string) error {
	hooksDir := filepath.Join(r.Root, ".git", "hooks")
	if err := os.MkdirAll(hooksDir, 0o750); err != nil {
		return fmt.Errorf("failed to create hooks directory: %w", err)
	}

	// #nosec G306 -- hook scripts must be executable
	if err := os.WriteFile(r.HookPath(hookName), []byte(script), 0o744); err != nil {
		return fmt.Errorf("failed to write hook file: %w", err)
	}

	return nil
}

// RemoveHook deletes the named hook script. Missing hooks are not an error.
func (r *Repository) RemoveHook(hookName string) error {
	if err := os.Remove(r.HookPath(hookName)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove hook: %w", err)
	}
	return nil
}

// HasHook reports whether the named hook script exists.
func (r *Repository) HasHook(hookName string) bool {
	_, err := os.Stat(r.HookPath(hookName))
	return err == nil
}

// HookContent reads the named hook script. Missing hooks return an empty
// string with no error.
func (r *Repository) HookContent(hookName string) (string, error) {
	content, err := os.ReadFile(r.HookPath(hookName)) // #nosec G304 -- path under .git/hooks
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read hook file: %w", err)
	}
	return string(content), nil
}
