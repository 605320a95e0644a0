package repository

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/piispis/preco/pkg/config"
)

// Loader reads hook manifests out of checkouts, memoizing parses so a
// repo listed many times in a config is decoded once per run.
type Loader struct {
	mu    sync.Mutex
	cache map[string][]config.HookSpec
}

// NewLoader returns an empty loader.
func NewLoader() *Loader {
	return &Loader{cache: make(map[string][]config.HookSpec)}
}

// LoadHooks returns the hook specs published by the checkout.
func (l *Loader) LoadHooks(checkoutPath string) ([]config.HookSpec, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if specs, ok := l.cache[checkoutPath]; ok {
		return specs, nil
	}

	specs, err := config.LoadManifest(filepath.Join(checkoutPath, config.ManifestFileName))
	if err != nil {
		return nil, err
	}

	l.cache[checkoutPath] = specs
	return specs, nil
}

// FindHook locates a published hook by id.
func FindHook(specs []config.HookSpec, id, checkoutPath string) (*config.HookSpec, error) {
	for i := range specs {
		if specs[i].ID == id {
			return &specs[i], nil
		}
	}
	return nil, fmt.Errorf("hook %q not found in checkout %s", id, checkoutPath)
}
