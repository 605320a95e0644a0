package matching

import (
	"sort"

	"github.com/dlclark/regexp2"

	"github.com/piispis/preco/pkg/config"
)

// RunConfig carries the run-wide filters from the top level of the
// project configuration.
type RunConfig struct {
	Files   *regexp2.Regexp
	Exclude *regexp2.Regexp
}

// NewRunConfig compiles the global patterns, warning on patterns that do
// not compile. A failed pattern is treated as absent.
func NewRunConfig(files, exclude string) RunConfig {
	return RunConfig{
		Files:   CompileWarn("files", files),
		Exclude: CompileWarn("exclude", exclude),
	}
}

// MatchingFiles is the per-hook selection result.
type MatchingFiles struct {
	Root  string
	Files []string
}

// Select filters the candidate set down to the files the hook runs on.
// Filters apply in order: global include, global exclude, hook exclude,
// hook include, type gate.
func Select(run RunConfig, fs *FileSet, hook *config.HookSpec) MatchingFiles {
	hookFiles := CompileWarn("files", hook.Files)
	hookExclude := CompileWarn("exclude", hook.Exclude)

	var selected []string
	for _, file := range fs.Files() {
		if run.Files != nil && !matches(run.Files, file) {
			continue
		}
		if run.Exclude != nil && matches(run.Exclude, file) {
			continue
		}
		if hookExclude != nil && matches(hookExclude, file) {
			continue
		}
		if hookFiles != nil && !matches(hookFiles, file) {
			continue
		}
		if !typeGate(fs, file, hook.Types, hook.TypesOr) {
			continue
		}
		selected = append(selected, file)
	}
	sort.Strings(selected)

	return MatchingFiles{Files: selected}
}

// typeGate applies the `types` and `types_or` lists. `types` requires
// every tag, `types_or` requires at least one; a file passes when either
// non-empty list accepts it. With both lists empty the gate is off.
func typeGate(fs *FileSet, file string, types, typesOr config.TypeList) bool {
	if len(types) == 0 && len(typesOr) == 0 {
		return true
	}

	if len(types) > 0 {
		all := true
		for _, tag := range types {
			if !fs.HasType(file, tag) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}

	if len(typesOr) > 0 {
		for _, tag := range typesOr {
			if fs.HasType(file, tag) {
				return true
			}
		}
	}

	return false
}
