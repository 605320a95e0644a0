package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/cli"
)

// UninstallCommand removes the hook shims this tool installed.
type UninstallCommand struct {
	BaseCommand
}

// UninstallOptions holds command-line options for the uninstall command.
type UninstallOptions struct {
	CommonOptions
}

// Help returns the help text for the uninstall command.
func (c *UninstallCommand) Help() string {
	c.Name = "uninstall"
	c.Description = "Remove the hook shims installed by preco. Hook files written by anything else are left alone."
	c.Examples = []Example{
		{Command: "preco uninstall"},
	}
	var opts UninstallOptions
	return c.GenerateHelp(&opts)
}

// Synopsis returns a short description of the uninstall command.
func (c *UninstallCommand) Synopsis() string {
	return "Remove installed hook shims"
}

// Run executes the uninstall command.
func (c *UninstallCommand) Run(args []string) int {
	var opts UninstallOptions
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

	for _, name := range hooksToInstall {
		content, err := repo.HookContent(name)
		if err != nil {
			renderError(os.Stderr, err)
			return 1
		}
		switch {
		case content == "":
			// No hook installed, nothing to do.
		case !strings.Contains(content, shimMarker):
			fmt.Printf("%s hook at %s was not installed by preco, leaving it in place\n",
				name, repo.HookPath(name))
		default:
			if err := repo.RemoveHook(name); err != nil {
				renderError(os.Stderr, err)
				return 1
			}
			fmt.Printf("removed %s hook\n", name)
		}
	}

	return 0
}

// UninstallCommandFactory creates a new uninstall command instance.
func UninstallCommandFactory() (cli.Command, error) {
	return &UninstallCommand{}, nil
}
