package repository

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/piispis/preco/pkg/cache"
	"github.com/piispis/preco/pkg/config"
)

// Store materializes hook repositories at content-addressed paths under
// the checkout cache. A checkout that exists on disk is trusted as
// populated; `clean` is the only invalidation.
type Store struct {
	// CheckoutsRoot overrides the default cache location, for tests.
	CheckoutsRoot string
}

// NewStore returns a store over the user's checkout cache.
func NewStore() *Store { return &Store{} }

// Ensure returns the checkout path for the repo pinned at its revision,
// cloning it first when absent. Extra dependencies change the path, so a
// hook with additional_dependencies gets its own checkout.
func (s *Store) Ensure(ctx context.Context, repo config.Repo, deps []string) (string, error) {
	switch repo.Kind() {
	case config.RepoLocal:
		return "", &NotImplementedError{Feature: "local repos"}
	case config.RepoMeta:
		return "", &NotImplementedError{Feature: "meta repos"}
	}
	if !strings.HasPrefix(repo.Repo, "http://") && !strings.HasPrefix(repo.Repo, "https://") {
		return "", &UnsupportedSchemeError{Repo: repo.Repo}
	}

	path, err := s.checkoutPath(repo.Repo, repo.Rev, deps)
	if err != nil {
		return "", err
	}
	if dirExists(path) {
		return path, nil
	}

	release, err := cache.Lock(path)
	if err != nil {
		return "", fmt.Errorf("failed to lock checkout %s: %w", path, err)
	}
	defer release()

	// A concurrent clone may have finished while we waited on the lock.
	if dirExists(path) {
		return path, nil
	}

	if err := s.clone(ctx, repo.Repo, repo.Rev, path); err != nil {
		return "", err
	}

	return path, nil
}

// clone fetches the pinned revision into a temp sibling and renames it
// into place, so a killed clone never leaves a half-populated checkout
// that would be trusted later.
func (s *Store) clone(ctx context.Context, url, rev, path string) error {
	tmp, err := os.MkdirTemp(filepath.Dir(path), filepath.Base(path)+".tmp-")
	if err != nil {
		return fmt.Errorf("failed to create temp checkout dir: %w", err)
	}
	defer os.RemoveAll(tmp)

	target := filepath.Join(tmp, "clone")
	cmd := exec.CommandContext(ctx, "git",
		"-c", "advice.detachedHead=false",
		"clone", "--depth=1", "--branch", rev, url, target)

	var stderr strings.Builder
	cmd.Stderr = &stderr
	cmd.Stdout = &stderr

	if err := cmd.Run(); err != nil {
		return &CheckoutError{
			URL:    url,
			Rev:    rev,
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
	}

	if err := os.Rename(target, path); err != nil {
		// Racing winner already renamed; their checkout serves.
		if dirExists(path) {
			return nil
		}
		return fmt.Errorf("failed to move checkout into place: %w", err)
	}

	return nil
}

func (s *Store) checkoutPath(url, rev string, deps []string) (string, error) {
	if s.CheckoutsRoot != "" {
		seg := cache.Encode(rev)
		if len(deps) > 0 {
			seg += "+" + cache.DepsHash(deps)
		}
		return filepath.Join(s.CheckoutsRoot, cache.Encode(url), seg), nil
	}
	return cache.CheckoutPath(url, rev, deps)
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
