package commands

import (
	"fmt"
	"os"

	"github.com/mitchellh/cli"

	"github.com/piispis/preco/pkg/config"
)

// ValidateManifestCommand checks hook manifest files.
type ValidateManifestCommand struct {
	BaseCommand
}

// ValidateManifestOptions holds command-line options for validate-manifest.
type ValidateManifestOptions struct {
	Help bool `short:"h" long:"help" description:"Show this help message"`
}

// Help returns the help text for the validate-manifest command.
func (c *ValidateManifestCommand) Help() string {
	c.Name = "validate-manifest"
	c.Description = "Validate .pre-commit-hooks.yaml files."
	c.Examples = []Example{
		{Command: "preco validate-manifest", Description: "Validate the manifest in the working directory"},
		{Command: "preco validate-manifest hooks.yaml", Description: "Validate a specific file"},
	}
	var opts ValidateManifestOptions
	return c.GenerateHelp(&opts)
}

// Synopsis returns a short description of the validate-manifest command.
func (c *ValidateManifestCommand) Synopsis() string {
	return "Validate hook manifest files"
}

// Run executes the validate-manifest command.
func (c *ValidateManifestCommand) Run(args []string) int {
	var opts ValidateManifestOptions
	remaining, helped, err := c.ParseArgsWithHelp(&opts, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if helped {
		return 0
	}

	paths := remaining
	if len(paths) == 0 {
		paths = []string{config.ManifestFileName}
	}

	status := 0
	for _, path := range paths {
		if _, err := config.LoadManifest(path); err != nil {
			renderError(os.Stderr, err)
			status = 1
		}
	}
	return status
}

// ValidateManifestCommandFactory creates a new validate-manifest command instance.
func ValidateManifestCommandFactory() (cli.Command, error) {
	return &ValidateManifestCommand{}, nil
}
