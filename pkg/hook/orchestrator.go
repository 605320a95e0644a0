// Package hook orchestrates a run: it configures every hook in parallel
// (checkouts, manifests, sandboxes), then executes them sequentially in
// config order.
package hook

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/piispis/preco/pkg/config"
	"github.com/piispis/preco/pkg/git"
	"github.com/piispis/preco/pkg/hook/commands"
	"github.com/piispis/preco/pkg/hook/execution"
	"github.com/piispis/preco/pkg/hook/formatting"
	"github.com/piispis/preco/pkg/hook/matching"
	"github.com/piispis/preco/pkg/identify"
	"github.com/piispis/preco/pkg/repository"
	"github.com/piispis/preco/pkg/repository/languages"
)

// State tracks a hook through the run.
type State int

// Hook states, in lifecycle order.
const (
	StatePending State = iota
	StateConfiguring
	StateReady
	StateSkipped
	StateFailed
	StateRunning
	StateSuccess
	StateFailure
)

// Options selects what a run covers.
type Options struct {
	ConfigPath string
	Stage      string
	HookIDs    []string
	AllFiles   bool
	DryRun     bool
	Verbose    bool
	Color      bool
	Out        io.Writer
}

// task is one configured hook instance: the config entry, its resolved
// spec and everything Phase A prepared for Phase B.
type task struct {
	repo       config.Repo
	cfgHook    config.HookConfig
	resolved   *config.HookSpec
	state      State
	skipReason string
	checkout   string
	files      []string
	sandbox    *languages.Sandbox
}

// Orchestrator wires the stores and runs the two phases.
type Orchestrator struct {
	opts       Options
	gitRepo    *git.Repository
	store      *repository.Store
	loader     *repository.Loader
	classifier identify.Classifier
}

// New builds an orchestrator over the repository containing the working
// directory.
func New(opts Options) (*Orchestrator, error) {
	gitRepo, err := git.NewRepository("")
	if err != nil {
		return nil, err
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Stage == "" {
		opts.Stage = config.StagePreCommit
	}
	return &Orchestrator{
		opts:       opts,
		gitRepo:    gitRepo,
		store:      repository.NewStore(),
		loader:     repository.NewLoader(),
		classifier: identify.NewRegistry(),
	}, nil
}

// Run executes the configured hooks and reports whether all of them
// passed. Configuration errors are returned; hook failures are not
// errors, they show in the bool.
func (o *Orchestrator) Run(ctx context.Context) (bool, error) {
	cfg, err := config.Load(o.configPath())
	if err != nil {
		return false, err
	}

	fileSet, err := o.buildFileSet()
	if err != nil {
		return false, err
	}
	slog.Debug("candidate files", "count", fileSet.Len())

	run := matching.NewRunConfig(cfg.Files, cfg.Exclude)

	tasks, err := o.configure(ctx, cfg, run, fileSet)
	if err != nil {
		return false, err
	}

	return o.execute(ctx, cfg, tasks), nil
}

func (o *Orchestrator) configPath() string {
	if o.opts.ConfigPath != "" {
		return o.opts.ConfigPath
	}
	return config.ConfigFileName
}

// buildFileSet classifies the candidate files once: the full index with
// --all-files, the staged set otherwise. The staged mode refuses to run
// over a partially staged worktree, where hooks would observe content
// that differs from what gets committed.
func (o *Orchestrator) buildFileSet() (*matching.FileSet, error) {
	var files []string
	var err error
	if o.opts.AllFiles {
		files, err = o.gitRepo.TrackedFiles()
	} else {
		dirty, dirtyErr := o.gitRepo.UnstagedTrackedChanges()
		if dirtyErr != nil {
			return nil, dirtyErr
		}
		if len(dirty) > 0 {
			return nil, fmt.Errorf(
				"unstaged changes to tracked files; stage or stash them first: %s",
				strings.Join(dirty, ", "))
		}
		files, err = o.gitRepo.StagedFiles()
	}
	if err != nil {
		return nil, err
	}
	return matching.NewFileSet(files, o.classifier), nil
}

// configure is Phase A: one task per repository, bounded by CPU count.
// Every hook ends Ready, Skipped or Failed; any error aborts the run
// before anything executes.
func (o *Orchestrator) configure(
	ctx context.Context,
	cfg *config.Config,
	run matching.RunConfig,
	fileSet *matching.FileSet,
) ([]*task, error) {
	repoTasks := make([][]*task, len(cfg.Repos))
	for i, repo := range cfg.Repos {
		for _, cfgHook := range repo.Hooks {
			if !o.selected(cfgHook) {
				continue
			}
			repoTasks[i] = append(repoTasks[i], &task{repo: repo, cfgHook: cfgHook})
		}
	}

	var (
		g, gctx = errgroup.WithContext(ctx)
		errs    = make([]error, len(cfg.Repos))
	)
	g.SetLimit(runtime.NumCPU())
	for i := range repoTasks {
		if len(repoTasks[i]) == 0 {
			continue
		}
		g.Go(func() error {
			logger := slog.With("repo", repoTasks[i][0].repo.Repo)
			errs[i] = o.configureRepo(gctx, logger, repoTasks[i], run, fileSet)
			return nil
		})
	}
	_ = g.Wait() // failures travel through errs

	var combined *multierror.Error
	for _, err := range errs {
		combined = multierror.Append(combined, err)
	}
	if err := combined.ErrorOrNil(); err != nil {
		return nil, err
	}

	var tasks []*task
	for _, batch := range repoTasks {
		tasks = append(tasks, batch...)
	}
	return tasks, nil
}

// selected applies the positional hook id filter; an id matches on the
// hook's id or its alias. No filter selects everything.
func (o *Orchestrator) selected(cfgHook config.HookConfig) bool {
	if len(o.opts.HookIDs) == 0 {
		return true
	}
	return slices.Contains(o.opts.HookIDs, cfgHook.ID) ||
		(cfgHook.Alias != "" && slices.Contains(o.opts.HookIDs, cfgHook.Alias))
}

// configureRepo prepares every hook of one repository. Resolve and
// provisioning problems mark the hook Failed and collect into the
// returned error; skips are not errors.
func (o *Orchestrator) configureRepo(
	ctx context.Context,
	logger *slog.Logger,
	tasks []*task,
	run matching.RunConfig,
	fileSet *matching.FileSet,
) error {
	var errs *multierror.Error
	for _, t := range tasks {
		t.state = StateConfiguring
		if err := o.configureHook(ctx, logger, t, run, fileSet); err != nil {
			t.state = StateFailed
			errs = multierror.Append(errs, fmt.Errorf("hook %s: %w", t.cfgHook.ID, err))
		}
	}
	return errs.ErrorOrNil()
}

func (o *Orchestrator) configureHook(
	ctx context.Context,
	logger *slog.Logger,
	t *task,
	run matching.RunConfig,
	fileSet *matching.FileSet,
) error {
	// A config-level stages override can rule the hook out before the
	// checkout even exists.
	if t.cfgHook.Stages != nil && !t.cfgHook.Stages.Includes(o.opts.Stage) {
		t.state = StateSkipped
		t.skipReason = "not in stage " + o.opts.Stage
		return nil
	}

	checkout, err := o.store.Ensure(ctx, t.repo, t.cfgHook.AdditionalDeps)
	if err != nil {
		return err
	}
	t.checkout = checkout

	specs, err := o.loader.LoadHooks(checkout)
	if err != nil {
		return err
	}

	resolved, err := repository.Resolve(t.cfgHook, specs, checkout)
	if err != nil {
		return err
	}
	t.resolved = resolved

	if !resolved.Stages.Includes(o.opts.Stage) {
		t.state = StateSkipped
		t.skipReason = "not in stage " + o.opts.Stage
		return nil
	}

	matched := matching.Select(run, fileSet, resolved)
	if len(matched.Files) == 0 {
		t.state = StateSkipped
		t.skipReason = "no matching files"
		return nil
	}
	t.files = matched.Files

	provisioner, ok := languages.For(resolved.Language)
	if !ok {
		logger.Warn(fmt.Sprintf("Unsupported language: %s", resolved.Language),
			"hook", resolved.ID)
		t.state = StateSkipped
		t.skipReason = fmt.Sprintf("Unsupported language: %s", resolved.Language)
		return nil
	}

	logger.Debug("provisioning sandbox", "hook", resolved.ID, "language", resolved.Language)
	sandbox, err := provisioner.Ensure(ctx, checkout, resolved.AdditionalDeps)
	if err != nil {
		return err
	}
	t.sandbox = sandbox
	t.state = StateReady
	return nil
}

// execute is Phase B: the sequential hook loop. Returns true when every
// launched hook passed.
func (o *Orchestrator) execute(ctx context.Context, cfg *config.Config, tasks []*task) bool {
	formatter := formatting.NewFormatter(o.opts.Out, o.opts.Color)
	ok := true

	for _, t := range tasks {
		if t.state == StateSkipped {
			formatter.Skipped(t.displayName(), t.skipReason)
			continue
		}
		if t.state != StateReady {
			continue
		}

		if o.opts.DryRun {
			t.state = StateSkipped
			t.skipReason = "dry-run"
			formatter.Skipped(t.displayName(), t.skipReason)
			continue
		}

		t.state = StateRunning
		start := time.Now()
		results, runErr := o.dispatch(ctx, t)
		elapsed := time.Since(start)

		if runErr == nil && execution.Summarize(results) {
			t.state = StateSuccess
			formatter.Passed(t.displayName(), elapsed)
			continue
		}

		t.state = StateFailure
		ok = false
		formatter.Failed(t.displayName(), elapsed)
		if runErr != nil {
			slog.Error("hook failed", "hook", t.resolved.ID, "error", runErr)
		}
		execution.LogFailures(slog.Default(), results)

		if cfg.FailFast {
			break
		}
	}

	return ok
}

// dispatch packs and runs one hook's commands.
func (o *Orchestrator) dispatch(ctx context.Context, t *task) ([]execution.CommandResult, error) {
	prefix, err := commands.Command(t.resolved.Entry, t.resolved.Args)
	if err != nil {
		return nil, err
	}

	files := t.files
	if !t.resolved.PassFiles() {
		files = nil
	}

	packed := commands.Pack(prefix, files,
		runtime.NumCPU(), commands.MaxCommandLength, t.resolved.RequireSerial)

	batch := execution.Batch{
		Commands: packed,
		WorkDir:  o.gitRepo.Root,
		Verbose:  o.opts.Verbose,
		Serial:   t.resolved.RequireSerial,
	}
	if t.sandbox != nil {
		batch.EnvSet = t.sandbox.EnvSet
		batch.EnvUnset = t.sandbox.EnvUnset
	}

	return execution.Run(ctx, batch), nil
}

func (t *task) displayName() string {
	if t.resolved != nil {
		return t.resolved.DisplayName()
	}
	return t.cfgHook.ID
}
