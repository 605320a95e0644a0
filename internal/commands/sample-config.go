package commands

import (
	"fmt"
	"os"

	"github.com/mitchellh/cli"
	"gopkg.in/yaml.v3"

	"github.com/piispis/preco/pkg/config"
)

// SampleConfigCommand writes a starter configuration file.
type SampleConfigCommand struct {
	BaseCommand
}

// SampleConfigOptions holds command-line options for sample-config.
type SampleConfigOptions struct {
	Force bool `short:"f" long:"force" description:"Overwrite an existing config file"`
	Help  bool `short:"h" long:"help"  description:"Show this help message"`
}

// Help returns the help text for the sample-config command.
func (c *SampleConfigCommand) Help() string {
	c.Name = "sample-config"
	c.Description = "Write a starter .pre-commit-config.yaml to the working directory."
	c.Examples = []Example{
		{Command: "preco sample-config", Description: "Create the starter config"},
		{Command: "preco sample-config --force", Description: "Replace an existing config"},
	}
	var opts SampleConfigOptions
	return c.GenerateHelp(&opts)
}

// Synopsis returns a short description of the sample-config command.
func (c *SampleConfigCommand) Synopsis() string {
	return "Write a sample configuration file"
}

// Run executes the sample-config command.
func (c *SampleConfigCommand) Run(args []string) int {
	var opts SampleConfigOptions
	_, helped, err := c.ParseArgsWithHelp(&opts, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if helped {
		return 0
	}

	if _, statErr := os.Stat(config.ConfigFileName); statErr == nil && !opts.Force {
		fmt.Fprintf(os.Stderr,
			"error: %s already exists, use --force to overwrite\n", config.ConfigFileName)
		return 1
	}

	out, err := yaml.Marshal(config.DefaultConfig())
	if err != nil {
		renderError(os.Stderr, fmt.Errorf("failed to render sample config: %w", err))
		return 1
	}
	if err := os.WriteFile(config.ConfigFileName, out, 0o600); err != nil {
		renderError(os.Stderr, fmt.Errorf("failed to write sample config: %w", err))
		return 1
	}

	fmt.Printf("wrote %s\n", config.ConfigFileName)
	return 0
}

// SampleConfigCommandFactory creates a new sample-config command instance.
func SampleConfigCommandFactory() (cli.Command, error) {
	return &SampleConfigCommand{}, nil
}
