package commands

import (
	"fmt"

	"github.com/mitchellh/cli"
)

// HelpCommand shows help for the tool or for a specific command.
type HelpCommand struct {
	BaseCommand
}

// commandHelp maps every registered command to its one-line description.
var commandHelp = map[string]string{
	"run":               "Run the configured hooks against staged files (or all files with --all-files).",
	"install":           "Install the git hook shims. Run once per repository.",
	"uninstall":         "Remove hook shims installed by preco.",
	"clean":             "Delete cached repository checkouts and sandboxes.",
	"validate-config":   "Check that a .pre-commit-config.yaml file is valid.",
	"validate-manifest": "Check that a .pre-commit-hooks.yaml file is valid.",
	"sample-config":     "Write a starter .pre-commit-config.yaml.",
	"help":              "Show help for commands.",
}

// Help returns the general help text.
func (c *HelpCommand) Help() string {
	return `
Show help for a specific command.

Usage: preco help [COMMAND]

Available commands:
  run                 Run hooks against staged files
  install             Install git hook shims
  uninstall           Remove installed hook shims
  clean               Delete the checkout cache
  validate-config     Validate .pre-commit-config.yaml files
  validate-manifest   Validate .pre-commit-hooks.yaml files
  sample-config       Write a sample configuration file

`
}

// Synopsis returns a short description of the help command.
func (c *HelpCommand) Synopsis() string {
	return "Show help for a specific command"
}

// Run executes the help command.
func (c *HelpCommand) Run(args []string) int {
	if len(args) == 0 {
		fmt.Print(c.Help())
		return 0
	}

	command := args[0]
	if help, exists := commandHelp[command]; exists {
		fmt.Printf("Command: %s\n\n%s\n\nFor detailed usage, run:\n  preco %s --help\n",
			command, help, command)
		return 0
	}

	fmt.Printf("Unknown command: %s\n\nAvailable commands:\n", command)
	for cmd := range commandHelp {
		fmt.Printf("  %s\n", cmd)
	}
	return 1
}

// HelpCommandFactory creates a new help command instance.
func HelpCommandFactory() (cli.Command, error) {
	return &HelpCommand{}, nil
}
