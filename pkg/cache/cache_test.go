package cache

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirPrefersPrecoHome(t *testing.T) {
	t.Setenv("PRECO_HOME", "/tmp/preco-home")
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")

	dir, err := Dir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/preco-home", dir)
}

func TestDirFallsBackToXDG(t *testing.T) {
	t.Setenv("PRECO_HOME", "")
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")

	dir, err := Dir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg", "preco"), dir)
}

func TestCheckoutPath(t *testing.T) {
	t.Setenv("PRECO_HOME", "/tmp/preco-home")

	path, err := CheckoutPath("https://example.test/x", "v1", nil)
	require.NoError(t, err)
	assert.Equal(
		t,
		filepath.Join("/tmp/preco-home", "checkouts", "https__example.test_x", "v1"),
		path,
	)
}

func TestCheckoutPathWithDeps(t *testing.T) {
	t.Setenv("PRECO_HOME", "/tmp/preco-home")

	plain, err := CheckoutPath("https://example.test/x", "v1", nil)
	require.NoError(t, err)
	withFoo1, err := CheckoutPath("https://example.test/x", "v1", []string{"foo==1.0"})
	require.NoError(t, err)
	withFoo2, err := CheckoutPath("https://example.test/x", "v1", []string{"foo==2.0"})
	require.NoError(t, err)

	assert.NotEqual(t, plain, withFoo1)
	assert.NotEqual(t, withFoo1, withFoo2)
	assert.Contains(t, filepath.Base(withFoo1), "+")
}

func TestLockSerializesWriters(t *testing.T) {
	target := filepath.Join(t.TempDir(), "entry")

	var mu sync.Mutex
	var inCritical int
	var maxInCritical int

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := Lock(target)
			require.NoError(t, err)
			defer release()

			mu.Lock()
			inCritical++
			if inCritical > maxInCritical {
				maxInCritical = inCritical
			}
			mu.Unlock()

			mu.Lock()
			inCritical--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxInCritical)
}

func TestLockReentersAfterRelease(t *testing.T) {
	target := filepath.Join(t.TempDir(), "entry")

	release, err := Lock(target)
	require.NoError(t, err)
	release()

	release, err = Lock(target)
	require.NoError(t, err)
	release()
}
