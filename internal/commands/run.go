package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/mitchellh/cli"

	"github.com/piispis/preco/pkg/config"
	"github.com/piispis/preco/pkg/hook"
	"github.com/piispis/preco/pkg/logging"
)

// RunCommand executes the configured hooks.
type RunCommand struct {
	BaseCommand
}

// RunOptions holds command-line options for the run command.
type RunOptions struct {
	Config   string `short:"c" long:"config"         description:"Path to config file" default:".pre-commit-config.yaml"`
	AllFiles bool   `short:"a" long:"all-files"      description:"Run on all tracked files instead of staged files"`
	DryRun   bool   `          long:"dry-run"        description:"Configure everything but skip hook execution"`
	Stage    string `          long:"git-hook-stage" description:"Stage the run is for" default:"pre-commit"`
	GitHook  string `          long:"git-hook"       description:"Stage alias used by installed hook shims" hidden:"true"`
	Cwd      string `          long:"cwd"            description:"Change to this directory before running"`
	Verbose  bool   `short:"v" long:"verbose"        description:"Let hook output through to the terminal"`
	Tracing  bool   `          long:"tracing"        description:"Enable debug logging" env:"PRECO_TRACING"`
	Help     bool   `short:"h" long:"help"           description:"Show this help message"`
}

// Help returns the help text for the run command.
func (c *RunCommand) Help() string {
	c.Name = "run"
	c.Description = "Run the configured hooks against staged files."
	c.Examples = []Example{
		{Command: "preco run", Description: "Run hooks on staged files"},
		{Command: "preco run --all-files", Description: "Run hooks on every tracked file"},
		{Command: "preco run black", Description: "Run a single hook by id or alias"},
		{Command: "preco run --dry-run", Description: "Prepare checkouts and sandboxes only"},
	}
	var opts RunOptions
	return c.GenerateHelp(&opts)
}

// Synopsis returns a short description of the run command.
func (c *RunCommand) Synopsis() string {
	return "Run hooks against staged files"
}

// Run executes the run command.
func (c *RunCommand) Run(args []string) int {
	var opts RunOptions
	remaining, helped, err := c.ParseArgsWithHelp(&opts, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if helped {
		return 0
	}

	logging.Setup(opts.Tracing)

	if opts.Cwd != "" {
		if err := os.Chdir(opts.Cwd); err != nil {
			renderError(os.Stderr, err)
			return 1
		}
	}

	// Shims pass the hook name through --git-hook; it doubles as the
	// stage selector.
	stageName := opts.Stage
	if opts.GitHook != "" {
		stageName = opts.GitHook
	}
	stage, err := config.ParseStage(stageName)
	if err != nil {
		renderError(os.Stderr, err)
		return 1
	}

	orchestrator, err := hook.New(hook.Options{
		ConfigPath: opts.Config,
		Stage:      stage,
		HookIDs:    remaining,
		AllFiles:   opts.AllFiles,
		DryRun:     opts.DryRun,
		Verbose:    opts.Verbose,
		Color:      isatty.IsTerminal(os.Stdout.Fd()),
	})
	if err != nil {
		renderError(os.Stderr, err)
		return 1
	}

	ok, err := orchestrator.Run(context.Background())
	if err != nil {
		renderError(os.Stderr, err)
		return 1
	}
	if !ok {
		return 1
	}
	return 0
}

// RunCommandFactory creates a new run command instance.
func RunCommandFactory() (cli.Command, error) {
	return &RunCommand{}, nil
}
