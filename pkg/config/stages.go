package config

import (
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// Git hook stages a hook can be restricted to.
const (
	StagePreCommit        = "pre-commit"
	StagePreMergeCommit   = "pre-merge-commit"
	StagePrePush          = "pre-push"
	StagePreRebase        = "pre-rebase"
	StageCommitMsg        = "commit-msg"
	StagePostCheckout     = "post-checkout"
	StagePostCommit       = "post-commit"
	StagePostMerge        = "post-merge"
	StagePostRewrite      = "post-rewrite"
	StagePrepareCommitMsg = "prepare-commit-msg"
	StageManual           = "manual"
)

// Stages lists every recognized stage name.
var Stages = []string{
	StagePreCommit,
	StagePreMergeCommit,
	StagePrePush,
	StagePreRebase,
	StageCommitMsg,
	StagePostCheckout,
	StagePostCommit,
	StagePostMerge,
	StagePostRewrite,
	StagePrepareCommitMsg,
	StageManual,
}

// stageAliases maps the deprecated short spellings to their canonical names.
var stageAliases = map[string]string{
	"commit":       StagePreCommit,
	"merge-commit": StagePreMergeCommit,
	"push":         StagePrePush,
	"rebase":       StagePreRebase,
}

// NormalizeStage maps deprecated stage aliases to their canonical names.
// Names without an alias pass through unchanged.
func NormalizeStage(stage string) string {
	if canonical, ok := stageAliases[stage]; ok {
		return canonical
	}
	return stage
}

// ParseStage validates a stage name from the command line.
func ParseStage(stage string) (string, error) {
	stage = NormalizeStage(stage)
	if !slices.Contains(Stages, stage) {
		return "", fmt.Errorf("unknown hook stage: %s", stage)
	}
	return stage, nil
}

// StageList is a list of stage names, normalized at decode time. Unknown
// stage names are kept as written; they simply never match a run.
type StageList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *StageList) UnmarshalYAML(value *yaml.Node) error {
	var raw []string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	stages := make(StageList, 0, len(raw))
	for _, stage := range raw {
		stages = append(stages, NormalizeStage(stage))
	}
	*s = stages
	return nil
}

// Includes reports whether the list allows the given stage. An empty list
// allows every stage.
func (s StageList) Includes(stage string) bool {
	return len(s) == 0 || slices.Contains([]string(s), stage)
}
