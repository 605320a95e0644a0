package languages

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piispis/preco/pkg/cache"
	"github.com/piispis/preco/pkg/config"
)

// Node provisions a pnpm-managed module directory inside the checkout.
type Node struct{}

func nodeSandboxName(deps []string) string {
	if len(deps) == 0 {
		return "node_modules_preco"
	}
	return "node_modules_preco-" + cache.DepsHash(deps)
}

// Ensure installs the checkout's packages into a dedicated modules dir
// when it is missing. The directory's existence is the sentinel.
func (n *Node) Ensure(ctx context.Context, checkout string, deps []string) (*Sandbox, error) {
	name := nodeSandboxName(deps)
	sandbox := filepath.Join(checkout, name)

	if !dirExists(sandbox) {
		release, err := cache.Lock(sandbox)
		if err != nil {
			return nil, fmt.Errorf("failed to lock sandbox %s: %w", sandbox, err)
		}
		defer release()

		if !dirExists(sandbox) {
			if err := n.provision(ctx, checkout, name, deps); err != nil {
				return nil, err
			}
		}
	}

	return &Sandbox{
		Path: sandbox,
		EnvSet: map[string]string{
			"NODE_PATH": sandbox,
			"PATH": filepath.Join(checkout, "node_modules", ".bin") +
				string(os.PathListSeparator) + os.Getenv("PATH"),
		},
	}, nil
}

func (n *Node) provision(ctx context.Context, checkout, name string, deps []string) error {
	fail := func(output string, err error) error {
		os.RemoveAll(filepath.Join(checkout, name))
		return &ProvisionError{
			Language: config.LanguageNode,
			Checkout: checkout,
			Output:   output,
			Err:      err,
		}
	}

	env := []string{"NPM_UPDATE_NOTIFIER=false"}
	if out, err := runTool(ctx, checkout, env, "pnpm",
		"install", "--modules-dir", name); err != nil {
		return fail(out, err)
	}

	if len(deps) > 0 {
		add := append([]string{"add", "--modules-dir", name}, deps...)
		if out, err := runTool(ctx, checkout, env, "pnpm", add...); err != nil {
			return fail(out, err)
		}
	}

	return nil
}
