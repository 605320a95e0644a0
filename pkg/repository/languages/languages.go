// Package languages provisions per-hook sandboxes inside checkouts and
// derives the environment hook commands execute under. Python sandboxes
// are virtualenvs managed with uv, Node sandboxes are pnpm module dirs.
package languages

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/piispis/preco/pkg/config"
)

// Sandbox is a provisioned language environment plus the process
// environment changes hook commands need to use it.
type Sandbox struct {
	Path     string
	EnvSet   map[string]string
	EnvUnset []string
}

// Provisioner creates or reuses a sandbox for a checkout.
type Provisioner interface {
	Ensure(ctx context.Context, checkout string, deps []string) (*Sandbox, error)
}

// For returns the provisioner for a language. Languages without sandbox
// support return false; callers skip those hooks.
func For(lang config.Language) (Provisioner, bool) {
	switch lang {
	case config.LanguagePython:
		return &Python{}, true
	case config.LanguageNode:
		return &Node{}, true
	default:
		return nil, false
	}
}

// ProvisionError carries a failed provisioning step with the tool output.
type ProvisionError struct {
	Language config.Language
	Checkout string
	Output   string
	Err      error
}

func (e *ProvisionError) Error() string {
	msg := fmt.Sprintf("failed to provision %s environment in %s", e.Language, e.Checkout)
	if e.Output != "" {
		msg += ": " + e.Output
	}
	return msg
}

func (e *ProvisionError) Unwrap() error { return e.Err }

// runTool executes a provisioning command in dir with extra environment
// entries, returning combined output on failure.
func runTool(ctx context.Context, dir string, env []string, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), env...)

	var out strings.Builder
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		return strings.TrimSpace(out.String()), fmt.Errorf("%s failed: %w", name, err)
	}
	return strings.TrimSpace(out.String()), nil
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
