package config

// HookSpec is a published hook definition from a repository manifest. The
// resolver also uses it as the merged result of a manifest entry plus the
// project-level overrides, so it carries every field either side can set.
type HookSpec struct {
	ID                      string    `yaml:"id"`
	Alias                   string    `yaml:"alias,omitempty"`
	Name                    string    `yaml:"name,omitempty"`
	Description             string    `yaml:"description,omitempty"`
	Entry                   string    `yaml:"entry"`
	Language                Language  `yaml:"language"`
	Args                    []string  `yaml:"args,omitempty"`
	Files                   string    `yaml:"files,omitempty"`
	Exclude                 string    `yaml:"exclude,omitempty"`
	Types                   TypeList  `yaml:"types,omitempty"`
	TypesOr                 TypeList  `yaml:"types_or,omitempty"`
	ExcludeTypes            TypeList  `yaml:"exclude_types,omitempty"`
	Stages                  StageList `yaml:"stages,omitempty"`
	AdditionalDeps          []string  `yaml:"additional_dependencies,omitempty"`
	PassFilenames           *bool     `yaml:"pass_filenames,omitempty"`
	AlwaysRun               bool      `yaml:"always_run,omitempty"`
	RequireSerial           bool      `yaml:"require_serial,omitempty"`
	MinimumPreCommitVersion string    `yaml:"minimum_pre_commit_version,omitempty"`
	LanguageVersion         string    `yaml:"language_version,omitempty"`
	LogFile                 string    `yaml:"log_file,omitempty"`
	Verbose                 bool      `yaml:"verbose,omitempty"`
}

// PassFiles reports whether selected filenames are appended to the hook's
// command line. Defaults to true when the manifest does not say otherwise.
func (h *HookSpec) PassFiles() bool {
	if h.PassFilenames == nil {
		return true
	}
	return *h.PassFilenames
}

// DisplayName is the label shown while the hook runs.
func (h *HookSpec) DisplayName() string {
	if h.Name != "" {
		return h.Name
	}
	return h.ID
}

// Language identifies the runtime a hook's entry executes under. Unknown
// values keep their raw name so skip messages can report them.
type Language string

// Languages with sandbox support.
const (
	LanguagePython Language = "python"
	LanguageNode   Language = "node"
)

// Supported reports whether the language has an execution strategy.
func (l Language) Supported() bool {
	return l == LanguagePython || l == LanguageNode
}
