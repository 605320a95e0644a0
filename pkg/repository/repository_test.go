package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piispis/preco/pkg/config"
)

func TestEnsure_LocalAndMetaRejected(t *testing.T) {
	store := NewStore()

	_, err := store.Ensure(context.Background(), config.Repo{Repo: "local"}, nil)
	var notImpl *NotImplementedError
	require.ErrorAs(t, err, &notImpl)

	_, err = store.Ensure(context.Background(), config.Repo{Repo: "meta"}, nil)
	require.ErrorAs(t, err, &notImpl)
}

func TestEnsure_UnsupportedScheme(t *testing.T) {
	store := NewStore()

	_, err := store.Ensure(context.Background(),
		config.Repo{Repo: "git@github.com:x/y", Rev: "v1"}, nil)

	var unsupported *UnsupportedSchemeError
	require.ErrorAs(t, err, &unsupported)
	assert.Contains(t, err.Error(), "git@github.com:x/y")
}

func TestEnsure_TrustsExistingCheckout(t *testing.T) {
	store := &Store{CheckoutsRoot: t.TempDir()}
	repo := config.Repo{Repo: "https://example.test/hooks", Rev: "v1.0.0"}

	path, err := store.checkoutPath(repo.Repo, repo.Rev, nil)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(path, 0o755))

	got, err := store.Ensure(context.Background(), repo, nil)
	require.NoError(t, err)
	assert.Equal(t, path, got)
}

func TestEnsure_CloneFailureWrapsStderr(t *testing.T) {
	store := &Store{CheckoutsRoot: t.TempDir()}
	repo := config.Repo{
		Repo: "https://127.0.0.1:1/no-such-repo",
		Rev:  "v1.0.0",
	}

	_, err := store.Ensure(context.Background(), repo, nil)

	var checkout *CheckoutError
	require.ErrorAs(t, err, &checkout)
	assert.Equal(t, repo.Repo, checkout.URL)
	assert.Equal(t, "v1.0.0", checkout.Rev)
	assert.NotNil(t, errors.Unwrap(checkout))
}

func TestCheckoutPath_DepsGetOwnCheckout(t *testing.T) {
	store := &Store{CheckoutsRoot: t.TempDir()}

	plain, err := store.checkoutPath("https://example.test/hooks", "v1", nil)
	require.NoError(t, err)
	withDeps, err := store.checkoutPath("https://example.test/hooks", "v1", []string{"black==23.1"})
	require.NoError(t, err)

	assert.NotEqual(t, plain, withDeps)
	assert.Equal(t, filepath.Dir(plain), filepath.Dir(withDeps))
}

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, config.ManifestFileName), []byte(content), 0o644))
	return dir
}

func TestLoader_MemoizesParses(t *testing.T) {
	dir := writeManifest(t, `
- id: fmt
  entry: fmt
  language: python
`)

	loader := NewLoader()
	first, err := loader.LoadHooks(dir)
	require.NoError(t, err)
	require.Len(t, first, 1)

	// A rewritten manifest is not re-read within the same run.
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, config.ManifestFileName), []byte("- id: other\n  entry: x\n  language: node\n"), 0o644))

	second, err := loader.LoadHooks(dir)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLoader_MissingManifest(t *testing.T) {
	dir := t.TempDir()

	_, err := NewLoader().LoadHooks(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ManifestFileName)
	assert.Contains(t, err.Error(), dir)
}

func TestFindHook(t *testing.T) {
	specs := []config.HookSpec{{ID: "a"}, {ID: "b"}}

	spec, err := FindHook(specs, "b", "/tmp/co")
	require.NoError(t, err)
	assert.Equal(t, "b", spec.ID)

	_, err = FindHook(specs, "missing", "/tmp/co")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `hook "missing" not found in checkout /tmp/co`)
}

func TestResolve_ConfigOverrides(t *testing.T) {
	specs := []config.HookSpec{{
		ID:       "fmt",
		Name:     "spec name",
		Entry:    "fmt-entry",
		Language: config.LanguagePython,
		Args:     []string{"--spec"},
		Files:    `\.py$`,
	}}
	cfg := config.HookConfig{
		ID:    "fmt",
		Name:  "config name",
		Args:  []string{"--config"},
		Types: config.TypeList{"python"},
	}

	resolved, err := Resolve(cfg, specs, "/tmp/co")
	require.NoError(t, err)

	assert.Equal(t, "config name", resolved.Name)
	assert.Equal(t, []string{"--config"}, resolved.Args)
	assert.Equal(t, config.TypeList{"python"}, resolved.Types)
	// Execution fields always come from the manifest.
	assert.Equal(t, "fmt-entry", resolved.Entry)
	assert.Equal(t, config.LanguagePython, resolved.Language)
	assert.Equal(t, `\.py$`, resolved.Files)
}

func TestResolve_SpecDefaultsKept(t *testing.T) {
	serial := true
	noFiles := false
	specs := []config.HookSpec{{
		ID:            "fmt",
		Entry:         "fmt",
		Language:      config.LanguageNode,
		RequireSerial: serial,
		PassFilenames: &noFiles,
	}}

	resolved, err := Resolve(config.HookConfig{ID: "fmt"}, specs, "/tmp/co")
	require.NoError(t, err)

	assert.True(t, resolved.RequireSerial)
	assert.False(t, resolved.PassFiles())
}

func TestResolve_IgnoredOptionsCleared(t *testing.T) {
	always := true
	specs := []config.HookSpec{{
		ID:           "fmt",
		Entry:        "fmt",
		Language:     config.LanguagePython,
		ExcludeTypes: config.TypeList{"binary"},
		Verbose:      true,
	}}
	cfg := config.HookConfig{
		ID:              "fmt",
		AlwaysRun:       &always,
		LogFile:         "out.log",
		LanguageVersion: "3.12",
	}

	resolved, err := Resolve(cfg, specs, "/tmp/co")
	require.NoError(t, err)

	assert.Nil(t, resolved.ExcludeTypes)
	assert.False(t, resolved.AlwaysRun)
	assert.False(t, resolved.Verbose)
	assert.Empty(t, resolved.LogFile)
	assert.Empty(t, resolved.LanguageVersion)
}
