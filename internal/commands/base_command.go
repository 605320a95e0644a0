// Package commands implements the CLI commands behind the mitchellh/cli
// registry in cmd/preco.
package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/piispis/preco/pkg/git"
	"github.com/piispis/preco/pkg/logging"
)

// CommonOptions are the flags every command accepts.
type CommonOptions struct {
	Cwd     string `long:"cwd"     description:"Change to this directory before running"`
	Tracing bool   `long:"tracing" description:"Enable debug logging" env:"PRECO_TRACING"`
	Help    bool   `short:"h" long:"help" description:"Show this help message"`
}

// BaseCommand provides the shared plumbing for all commands.
type BaseCommand struct {
	Name        string
	Description string
	Examples    []Example
	Notes       []string
}

// ApplyCommon installs the logger and honors --cwd. Call it right after
// parsing, before anything touches the filesystem.
func (bc *BaseCommand) ApplyCommon(opts CommonOptions) error {
	logging.Setup(opts.Tracing)
	if opts.Cwd != "" {
		if err := os.Chdir(opts.Cwd); err != nil {
			return fmt.Errorf("failed to change directory: %w", err)
		}
	}
	return nil
}

// RequireGitRepository ensures the working directory is inside a git
// repository and opens it.
func (bc *BaseCommand) RequireGitRepository() (*git.Repository, error) {
	repo, err := git.NewRepository("")
	if err != nil {
		return nil, fmt.Errorf("not in a git repository: %w", err)
	}
	return repo, nil
}

// ParseArgsWithHelp parses arguments, treating a help request as a clean
// no-op rather than an error.
func (bc *BaseCommand) ParseArgsWithHelp(opts any, args []string) ([]string, bool, error) {
	parser := flags.NewParser(opts, flags.Default)
	parser.Usage = OptionsUsage

	remaining, err := parser.ParseArgs(args)
	if err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return nil, true, nil
		}
		return nil, false, fmt.Errorf("error parsing arguments: %w", err)
	}

	return remaining, false, nil
}

// GenerateHelp renders the command's help text along with the flag table.
func (bc *BaseCommand) GenerateHelp(opts any) string {
	parser := flags.NewParser(opts, flags.Default)
	parser.Usage = OptionsUsage

	formatter := &HelpFormatter{
		Command:     bc.Name,
		Description: bc.Description,
		Examples:    bc.Examples,
		Notes:       bc.Notes,
	}
	return formatter.FormatHelp(parser)
}

// ConfigFileExists checks that the config file is present.
func (bc *BaseCommand) ConfigFileExists(configPath string) error {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return fmt.Errorf("config file not found: %s", configPath)
	}
	return nil
}
