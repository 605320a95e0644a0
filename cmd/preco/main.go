// Package main is the preco command-line tool: a git hook runner that
// checks out hook repositories, provisions their language sandboxes and
// runs the configured hooks.
package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/mitchellh/cli"

	"github.com/piispis/preco/internal/commands"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"    //nolint:unused // set by the release pipeline
	date    = "unknown" //nolint:unused // set by the release pipeline
)

func main() {
	c := cli.NewCLI("preco", version)
	c.Args = os.Args[1:]
	c.HelpFunc = customHelpFunc
	c.Commands = map[string]cli.CommandFactory{
		"run":               commands.RunCommandFactory,
		"install":           commands.InstallCommandFactory,
		"uninstall":         commands.UninstallCommandFactory,
		"clean":             commands.CleanCommandFactory,
		"sample-config":     commands.SampleConfigCommandFactory,
		"validate-config":   commands.ValidateConfigCommandFactory,
		"validate-manifest": commands.ValidateManifestCommandFactory,
		"help":              commands.HelpCommandFactory,
	}

	exitStatus, err := c.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(exitStatus)
}

// customHelpFunc renders the top-level help with commands listed
// alphabetically.
func customHelpFunc(cmdFactories map[string]cli.CommandFactory) string {
	var commandNames []string
	for name := range cmdFactories {
		if name != "help" {
			commandNames = append(commandNames, name)
		}
	}
	sort.Strings(commandNames)

	usageLine := "usage: preco [-h] [--version]\n"
	usageLine += "             {" + strings.Join(commandNames, ",") + "}\n"
	usageLine += "             ...\n"

	return usageLine + `
A git hook runner for multi-language pre-commit hooks.

positional arguments:
  {` + strings.Join(commandNames, ",") + `}
    clean               Delete cached repository checkouts and sandboxes
    install             Install the git hook shims
    run                 Run hooks against staged files
    sample-config       Write a sample .pre-commit-config.yaml file
    uninstall           Remove installed hook shims
    validate-config     Validate .pre-commit-config.yaml files
    validate-manifest   Validate .pre-commit-hooks.yaml files

optional arguments:
  -h, --help            show this help message and exit
  --version             show program's version number and exit
`
}
