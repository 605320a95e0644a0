package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	gogit "github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderError_Chain(t *testing.T) {
	inner := errors.New("connection refused")
	mid := fmt.Errorf("failed to clone repo: %w", inner)
	outer := fmt.Errorf("hook fmt: %w", mid)

	var buf strings.Builder
	renderError(&buf, outer)

	assert.Equal(t,
		"error: hook fmt\n"+
			"  Caused by: failed to clone repo\n"+
			"  Caused by: connection refused\n",
		buf.String())
}

func TestRenderError_SingleLevel(t *testing.T) {
	var buf strings.Builder
	renderError(&buf, errors.New("boom"))
	assert.Equal(t, "error: boom\n", buf.String())
}

func TestRenderError_NonSuffixWrap(t *testing.T) {
	inner := errors.New("inner")
	outer := fmt.Errorf("outer wrapping %w detail", inner)

	var buf strings.Builder
	renderError(&buf, outer)

	// Messages that do not end with the cause render whole.
	assert.Contains(t, buf.String(), "error: outer wrapping inner detail\n")
	assert.Contains(t, buf.String(), "  Caused by: inner\n")
}

func TestShimScript(t *testing.T) {
	script := shimScript("/usr/local/bin/preco", "pre-commit")

	assert.Equal(t,
		"#!/bin/sh\n# preco-piispis-1\nexec /usr/local/bin/preco run --git-hook=pre-commit\n",
		script)
}

func TestShimScript_QuotesExePath(t *testing.T) {
	script := shimScript("/opt/my tools/preco", "pre-commit")
	assert.Contains(t, script, `"/opt/my tools/preco"`)
}

func initWorkRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	_, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	t.Chdir(dir)
	return dir
}

func TestInstallUninstall_RoundTrip(t *testing.T) {
	dir := initWorkRepo(t)
	hookPath := filepath.Join(dir, ".git", "hooks", "pre-commit")

	install := &InstallCommand{}
	require.Equal(t, 0, install.Run(nil))

	content, err := os.ReadFile(hookPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), shimMarker)

	// A second install without --force refuses.
	assert.Equal(t, 1, install.Run(nil))
	assert.Equal(t, 0, install.Run([]string{"--force"}))

	uninstall := &UninstallCommand{}
	require.Equal(t, 0, uninstall.Run(nil))
	_, err = os.Stat(hookPath)
	assert.True(t, os.IsNotExist(err))
}

func TestUninstall_LeavesForeignHooks(t *testing.T) {
	dir := initWorkRepo(t)
	hooksDir := filepath.Join(dir, ".git", "hooks")
	require.NoError(t, os.MkdirAll(hooksDir, 0o755))
	foreign := "#!/bin/sh\necho custom hook\n"
	hookPath := filepath.Join(hooksDir, "pre-commit")
	require.NoError(t, os.WriteFile(hookPath, []byte(foreign), 0o755))

	uninstall := &UninstallCommand{}
	require.Equal(t, 0, uninstall.Run(nil))

	content, err := os.ReadFile(hookPath)
	require.NoError(t, err)
	assert.Equal(t, foreign, string(content))
}

func TestValidateConfig(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	require.NoError(t, os.WriteFile(good, []byte(`
repos:
  - repo: https://example.test/hooks
    rev: v1
    hooks:
      - id: fmt
`), 0o644))
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("repos: {not: a list}\n"), 0o644))

	cmd := &ValidateConfigCommand{}
	assert.Equal(t, 0, cmd.Run([]string{good}))
	assert.Equal(t, 1, cmd.Run([]string{bad}))
	assert.Equal(t, 1, cmd.Run([]string{good, bad}))
}

func TestValidateManifest(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "hooks.yaml")
	require.NoError(t, os.WriteFile(good, []byte(`
- id: fmt
  entry: fmt
  language: python
`), 0o644))

	cmd := &ValidateManifestCommand{}
	assert.Equal(t, 0, cmd.Run([]string{good}))
	assert.Equal(t, 1, cmd.Run([]string{filepath.Join(dir, "missing.yaml")}))
}

func TestHelpCommand_UnknownCommand(t *testing.T) {
	cmd := &HelpCommand{}
	assert.Equal(t, 1, cmd.Run([]string{"frobnicate"}))
	assert.Equal(t, 0, cmd.Run([]string{"run"}))
	assert.Equal(t, 0, cmd.Run(nil))
}

func TestSampleConfig_WritesAndRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	cmd := &SampleConfigCommand{}
	require.Equal(t, 0, cmd.Run(nil))

	content, err := os.ReadFile(".pre-commit-config.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(content), "pre-commit-hooks")
	assert.Contains(t, string(content), "trailing-whitespace")

	assert.Equal(t, 1, cmd.Run(nil))
	assert.Equal(t, 0, cmd.Run([]string{"--force"}))
}
