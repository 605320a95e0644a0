package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"
)

// pathLocks hands out one mutex per target path so goroutines in this
// process queue on the mutex instead of spinning on the OS lock.
var pathLocks = struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}{locks: make(map[string]*sync.Mutex)}

func mutexFor(path string) *sync.Mutex {
	pathLocks.mu.Lock()
	defer pathLocks.mu.Unlock()
	mu, ok := pathLocks.locks[path]
	if !ok {
		mu = &sync.Mutex{}
		pathLocks.locks[path] = mu
	}
	return mu
}

// Lock acquires an exclusive lock for the given cache path: an in-process
// mutex first, then an advisory file lock on "<path>.lock" so concurrent
// processes serialize too. The returned function releases both. Callers
// must re-check their existence sentinel after acquiring, since the
// previous holder may have done the work already.
func Lock(path string) (release func(), err error) {
	if mkdirErr := os.MkdirAll(filepath.Dir(path), 0o750); mkdirErr != nil {
		return nil, fmt.Errorf("failed to create lock parent directory: %w", mkdirErr)
	}

	mu := mutexFor(path)
	mu.Lock()

	fl := flock.New(path + ".lock")
	if lockErr := fl.Lock(); lockErr != nil {
		mu.Unlock()
		return nil, fmt.Errorf("failed to lock %s: %w", fl.Path(), lockErr)
	}

	return func() {
		_ = fl.Unlock() //nolint:errcheck // lock release is best effort
		mu.Unlock()
	}, nil
}
