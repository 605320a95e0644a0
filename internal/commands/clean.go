package commands

import (
	"fmt"
	"os"

	"github.com/mitchellh/cli"

	"github.com/piispis/preco/pkg/cache"
)

// CleanCommand deletes the checkout cache.
type CleanCommand struct {
	BaseCommand
}

// CleanOptions holds command-line options for the clean command.
type CleanOptions struct {
	CommonOptions
}

// Help returns the help text for the clean command.
func (c *CleanCommand) Help() string {
	c.Name = "clean"
	c.Description = "Delete all cached repository checkouts and their sandboxes. They are recreated on the next run."
	c.Examples = []Example{
		{Command: "preco clean"},
	}
	var opts CleanOptions
	return c.GenerateHelp(&opts)
}

// Synopsis returns a short description of the clean command.
func (c *CleanCommand) Synopsis() string {
	return "Delete the checkout cache"
}

// Run executes the clean command.
func (c *CleanCommand) Run(args []string) int {
	var opts CleanOptions
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

	dir, err := cache.Dir()
	if err != nil {
		renderError(os.Stderr, err)
		return 1
	}

	if _, statErr := os.Stat(dir); os.IsNotExist(statErr) {
		fmt.Printf("nothing to clean at %s\n", dir)
		return 0
	}

	if err := os.RemoveAll(dir); err != nil {
		renderError(os.Stderr, fmt.Errorf("failed to remove cache: %w", err))
		return 1
	}

	fmt.Printf("cleaned %s\n", dir)
	return 0
}

// CleanCommandFactory creates a new clean command instance.
func CleanCommandFactory() (cli.Command, error) {
	return &CleanCommand{}, nil
}
