package repository

import (
	"fmt"
	"log/slog"

	"github.com/piispis/preco/pkg/config"
)

// Resolve merges a config hook entry with the manifest spec it selects.
// Config values win for the user-facing fields; execution fields (entry,
// language, pass_filenames, require_serial) always come from the manifest.
// Options this tool does not honor are warned about and dropped.
func Resolve(cfg config.HookConfig, specs []config.HookSpec, checkoutPath string) (*config.HookSpec, error) {
	spec, err := FindHook(specs, cfg.ID, checkoutPath)
	if err != nil {
		return nil, err
	}

	resolved := *spec
	resolved.ID = cfg.ID

	if cfg.Alias != "" {
		resolved.Alias = cfg.Alias
	}
	if cfg.Name != "" {
		resolved.Name = cfg.Name
	}
	if cfg.Description != "" {
		resolved.Description = cfg.Description
	}
	if cfg.Files != "" {
		resolved.Files = cfg.Files
	}
	if cfg.Exclude != "" {
		resolved.Exclude = cfg.Exclude
	}
	if cfg.Types != nil {
		resolved.Types = cfg.Types
	}
	if cfg.TypesOr != nil {
		resolved.TypesOr = cfg.TypesOr
	}
	if cfg.Stages != nil {
		resolved.Stages = cfg.Stages
	}
	if cfg.AdditionalDeps != nil {
		resolved.AdditionalDeps = cfg.AdditionalDeps
	}
	if cfg.Args != nil {
		// Config args replace spec args entirely.
		resolved.Args = cfg.Args
	}

	warnIgnored(cfg, &resolved)

	return &resolved, nil
}

// warnIgnored reports options that parse but are not honored, then clears
// them so nothing downstream acts on them.
func warnIgnored(cfg config.HookConfig, resolved *config.HookSpec) {
	if len(cfg.ExcludeTypes) > 0 || len(resolved.ExcludeTypes) > 0 {
		value := resolved.ExcludeTypes
		if len(cfg.ExcludeTypes) > 0 {
			value = cfg.ExcludeTypes
		}
		slog.Warn(fmt.Sprintf("not implemented: exclude_types; not honoring %v", []string(value)),
			"hook", cfg.ID)
	}
	resolved.ExcludeTypes = nil

	if cfg.AlwaysRun != nil || resolved.AlwaysRun {
		slog.Warn("not implemented: always_run; not honoring it", "hook", cfg.ID)
	}
	resolved.AlwaysRun = false

	if cfg.Verbose || resolved.Verbose {
		slog.Warn("not implemented: verbose; not honoring it", "hook", cfg.ID)
	}
	resolved.Verbose = false

	if cfg.LogFile != "" || resolved.LogFile != "" {
		slog.Warn("not implemented: log_file; not honoring it", "hook", cfg.ID)
	}
	resolved.LogFile = ""

	if cfg.LanguageVersion != "" || resolved.LanguageVersion != "" {
		slog.Warn("not implemented: language_version; not honoring it", "hook", cfg.ID)
	}
	resolved.LanguageVersion = ""
}
