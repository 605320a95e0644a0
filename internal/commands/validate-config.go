package commands

import (
	"fmt"
	"os"

	"github.com/mitchellh/cli"

	"github.com/piispis/preco/pkg/config"
)

// ValidateConfigCommand checks project configuration files.
type ValidateConfigCommand struct {
	BaseCommand
}

// ValidateConfigOptions holds command-line options for validate-config.
type ValidateConfigOptions struct {
	Help bool `short:"h" long:"help" description:"Show this help message"`
}

// Help returns the help text for the validate-config command.
func (c *ValidateConfigCommand) Help() string {
	c.Name = "validate-config"
	c.Description = "Validate .pre-commit-config.yaml files."
	c.Examples = []Example{
		{Command: "preco validate-config", Description: "Validate the default config file"},
		{Command: "preco validate-config other.yaml", Description: "Validate a specific file"},
	}
	var opts ValidateConfigOptions
	return c.GenerateHelp(&opts)
}

// Synopsis returns a short description of the validate-config command.
func (c *ValidateConfigCommand) Synopsis() string {
	return "Validate project configuration files"
}

// Run executes the validate-config command.
func (c *ValidateConfigCommand) Run(args []string) int {
	var opts ValidateConfigOptions
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
		paths = []string{config.ConfigFileName}
	}

	status := 0
	for _, path := range paths {
		if _, err := config.Load(path); err != nil {
			renderError(os.Stderr, err)
			status = 1
		}
	}
	return status
}

// ValidateConfigCommandFactory creates a new validate-config command instance.
func ValidateConfigCommandFactory() (cli.Command, error) {
	return &ValidateConfigCommand{}, nil
}
