package commands

import (
	"fmt"
	"os"

	"github.com/buildkite/shellwords"
	"github.com/mitchellh/cli"
)

// InstallCommand writes the hook shims into .git/hooks.
type InstallCommand struct {
	BaseCommand
}

// InstallOptions holds command-line options for the install command.
type InstallOptions struct {
	Force bool `short:"f" long:"force" description:"Overwrite existing hook files"`
	CommonOptions
}

// Help returns the help text for the install command.
func (c *InstallCommand) Help() string {
	c.Name = "install"
	c.Description = "Install the git hook shims that invoke preco on commit."
	c.Examples = []Example{
		{Command: "preco install", Description: "Install the pre-commit shim"},
		{Command: "preco install --force", Description: "Replace hooks installed by other tools"},
	}
	var opts InstallOptions
	return c.GenerateHelp(&opts)
}

// Synopsis returns a short description of the install command.
func (c *InstallCommand) Synopsis() string {
	return "Install git hook shims"
}

// Run executes the install command.
func (c *InstallCommand) Run(args []string) int {
	var opts InstallOptions
	_, helped, err := c.ParseArgsWithHelp(&opts, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if helped {
		return 0
	}
	if err := c.ApplyCommon(opts.CommonOptions); err != nil {
		renderError(os.Stderr, err)
		return 1
	}

	repo, err := c.RequireGitRepository()
	if err != nil {
		renderError(os.Stderr, err)
		return 1
	}

	exe, err := os.Executable()
	if err != nil {
		renderError(os.Stderr, fmt.Errorf("failed to locate executable: %w", err))
		return 1
	}

	for _, name := range hooksToInstall {
		if repo.HasHook(name) && !opts.Force {
			fmt.Fprintf(os.Stderr,
				"error: hook already exists at %s, use --force to overwrite\n",
				repo.HookPath(name))
			return 1
		}
		if err := repo.InstallHook(name, shimScript(exe, name)); err != nil {
			renderError(os.Stderr, err)
			return 1
		}
		fmt.Printf("installed %s hook at %s\n", name, repo.HookPath(name))
	}

	return 0
}

// shimScript renders the hook shim. The marker comment is what uninstall
// looks for before removing a file.
func shimScript(exe, hookName string) string {
	return fmt.Sprintf("#!/bin/sh\n# %s\nexec %s run --git-hook=%s\n",
		shimMarker, shellwords.QuotePosix(exe), hookName)
}

// InstallCommandFactory creates a new install command instance.
func InstallCommandFactory() (cli.Command, error) {
	return &InstallCommand{}, nil
}
