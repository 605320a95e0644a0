package languages

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piispis/preco/pkg/cache"
	"github.com/piispis/preco/pkg/config"
)

// Python provisions a uv-managed virtualenv inside the checkout and
// installs the checkout itself as an editable package.
type Python struct{}

// pythonSandboxName returns the venv directory name. Extra dependencies
// get their own venv so dependency sets never share an environment.
func pythonSandboxName(deps []string) string {
	if len(deps) == 0 {
		return ".preco-venv"
	}
	return ".preco-venv-" + cache.DepsHash(deps)
}

// Ensure creates the venv when missing. Existence of the venv directory
// is the sentinel; concurrent provisioners serialize on a path lock.
func (p *Python) Ensure(ctx context.Context, checkout string, deps []string) (*Sandbox, error) {
	venv := filepath.Join(checkout, pythonSandboxName(deps))

	if !dirExists(venv) {
		release, err := cache.Lock(venv)
		if err != nil {
			return nil, fmt.Errorf("failed to lock sandbox %s: %w", venv, err)
		}
		defer release()

		if !dirExists(venv) {
			if err := p.provision(ctx, checkout, venv, deps); err != nil {
				return nil, err
			}
		}
	}

	return &Sandbox{
		Path: venv,
		EnvSet: map[string]string{
			"VIRTUAL_ENV": venv,
			"PATH":        filepath.Join(venv, "bin") + string(os.PathListSeparator) + os.Getenv("PATH"),
		},
		EnvUnset: []string{"PYTHONHOME"},
	}, nil
}

func (p *Python) provision(ctx context.Context, checkout, venv string, deps []string) error {
	fail := func(output string, err error) error {
		os.RemoveAll(venv)
		return &ProvisionError{
			Language: config.LanguagePython,
			Checkout: checkout,
			Output:   output,
			Err:      err,
		}
	}

	if out, err := runTool(ctx, checkout, nil, "uv", "venv", venv); err != nil {
		return fail(out, err)
	}

	install := append([]string{"pip", "install", "-e", checkout}, deps...)
	env := []string{"VIRTUAL_ENV=" + venv}
	if out, err := runTool(ctx, checkout, env, "uv", install...); err != nil {
		return fail(out, err)
	}

	return nil
}
