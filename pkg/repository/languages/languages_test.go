package languages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piispis/preco/pkg/cache"
	"github.com/piispis/preco/pkg/config"
)

func TestFor(t *testing.T) {
	p, ok := For(config.LanguagePython)
	require.True(t, ok)
	assert.IsType(t, &Python{}, p)

	n, ok := For(config.LanguageNode)
	require.True(t, ok)
	assert.IsType(t, &Node{}, n)

	_, ok = For(config.Language("rust"))
	assert.False(t, ok)
}

func TestPythonSandboxName(t *testing.T) {
	assert.Equal(t, ".preco-venv", pythonSandboxName(nil))

	deps := []string{"black==23.1"}
	want := ".preco-venv-" + cache.DepsHash(deps)
	assert.Equal(t, want, pythonSandboxName(deps))
	assert.NotEqual(t, pythonSandboxName(deps), pythonSandboxName([]string{"flake8"}))
}

func TestNodeSandboxName(t *testing.T) {
	assert.Equal(t, "node_modules_preco", nodeSandboxName(nil))

	deps := []string{"eslint@8"}
	assert.Equal(t, "node_modules_preco-"+cache.DepsHash(deps), nodeSandboxName(deps))
}

func TestProvisionError(t *testing.T) {
	err := &ProvisionError{
		Language: config.LanguagePython,
		Checkout: "/cache/co",
		Output:   "uv: command not found",
	}
	assert.Contains(t, err.Error(), "python")
	assert.Contains(t, err.Error(), "/cache/co")
	assert.Contains(t, err.Error(), "uv: command not found")
}
