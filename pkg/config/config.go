// Package config parses the project configuration (.pre-commit-config.yaml)
// and hook repository manifests (.pre-commit-hooks.yaml). Both documents are
// decoded strictly: unknown keys reject the file.
package config

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/piispis/preco/pkg/identify"
)

// ConfigFileName is the default name for the project configuration file.
const ConfigFileName = ".pre-commit-config.yaml"

// ManifestFileName is the hook manifest inside each hook repository.
const ManifestFileName = ".pre-commit-hooks.yaml"

// Config represents the .pre-commit-config.yaml structure.
type Config struct {
	MinimumPreCommitVersion string `yaml:"minimum_pre_commit_version,omitempty"`
	Files                   string `yaml:"files,omitempty"`
	Exclude                 string `yaml:"exclude,omitempty"`
	Repos                   []Repo `yaml:"repos"`
	FailFast                bool   `yaml:"fail_fast,omitempty"`
}

// RepoKind classifies the `repo` key of a config entry.
type RepoKind int

const (
	// RepoRemote is an http(s) URL pointing at a hook repository.
	RepoRemote RepoKind = iota
	// RepoLocal is the literal "local" (not implemented).
	RepoLocal
	// RepoMeta is the literal "meta" (not implemented).
	RepoMeta
)

// Repo represents one repository entry of the project configuration.
type Repo struct {
	Repo  string       `yaml:"repo"`
	Rev   string       `yaml:"rev,omitempty"`
	Hooks []HookConfig `yaml:"hooks"`
}

// Kind classifies the repository reference.
func (r Repo) Kind() RepoKind {
	switch r.Repo {
	case "local":
		return RepoLocal
	case "meta":
		return RepoMeta
	default:
		return RepoRemote
	}
}

// HookConfig is one hook entry of the project configuration: the id that
// selects a published hook plus the fields a user may override. Fields a
// config cannot override (entry, language, pass_filenames) still parse;
// the resolver decides what is honored.
type HookConfig struct {
	ID                      string    `yaml:"id"`
	Alias                   string    `yaml:"alias,omitempty"`
	Name                    string    `yaml:"name,omitempty"`
	Description             string    `yaml:"description,omitempty"`
	Entry                   string    `yaml:"entry,omitempty"`
	Language                Language  `yaml:"language,omitempty"`
	Files                   string    `yaml:"files,omitempty"`
	Exclude                 string    `yaml:"exclude,omitempty"`
	Types                   TypeList  `yaml:"types,omitempty"`
	TypesOr                 TypeList  `yaml:"types_or,omitempty"`
	ExcludeTypes            TypeList  `yaml:"exclude_types,omitempty"`
	AdditionalDeps          []string  `yaml:"additional_dependencies,omitempty"`
	Args                    []string  `yaml:"args,omitempty"`
	Stages                  StageList `yaml:"stages,omitempty"`
	AlwaysRun               *bool     `yaml:"always_run,omitempty"`
	PassFilenames           *bool     `yaml:"pass_filenames,omitempty"`
	MinimumPreCommitVersion string    `yaml:"minimum_pre_commit_version,omitempty"`
	LanguageVersion         string    `yaml:"language_version,omitempty"`
	LogFile                 string    `yaml:"log_file,omitempty"`
	Verbose                 bool      `yaml:"verbose,omitempty"`
}

// TypeList is a list of file type tags. Tags outside the classifier's
// vocabulary are dropped at decode time with a warning, never an error.
// A decoded TypeList is non-nil even when every tag was dropped, which
// keeps "set but empty" distinguishable from "not set".
type TypeList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *TypeList) UnmarshalYAML(value *yaml.Node) error {
	var raw []string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	tags := make(TypeList, 0, len(raw))
	for _, tag := range raw {
		if !identify.Known(tag) {
			slog.Warn(fmt.Sprintf("Type %q is unknown and will be ignored", tag))
			continue
		}
		tags = append(tags, tag)
	}
	*t = tags
	return nil
}

// Load reads and strictly decodes the project configuration.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = ConfigFileName
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- user-named config file
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return nil, fmt.Errorf("config file %s is empty", configPath)
	}

	var cfg Config
	if err := strictUnmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}

	return &cfg, nil
}

// LoadManifest reads and strictly decodes a hook manifest. A missing file is
// an error naming the expected path.
func LoadManifest(manifestPath string) ([]HookSpec, error) {
	if _, err := os.Stat(manifestPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("could not find %s in %s",
			ManifestFileName, filepath.Dir(manifestPath))
	}

	data, err := os.ReadFile(manifestPath) // #nosec G304 -- path under the checkout cache
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", manifestPath, err)
	}

	var specs []HookSpec
	if err := strictUnmarshal(data, &specs); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", manifestPath, err)
	}

	seen := make(map[string]struct{}, len(specs))
	for _, spec := range specs {
		if spec.ID == "" {
			return nil, fmt.Errorf("manifest %s: hook without id", manifestPath)
		}
		if spec.Entry == "" {
			return nil, fmt.Errorf("manifest %s: hook %s has no entry", manifestPath, spec.ID)
		}
		if _, dup := seen[spec.ID]; dup {
			return nil, fmt.Errorf("manifest %s: duplicate hook id %s", manifestPath, spec.ID)
		}
		seen[spec.ID] = struct{}{}
	}

	return specs, nil
}

// strictUnmarshal decodes YAML rejecting unknown keys.
func strictUnmarshal(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(out)
}

// Validate checks structural requirements the YAML schema cannot express.
func (c *Config) Validate() error {
	for i, repo := range c.Repos {
		if repo.Repo == "" {
			return fmt.Errorf("repo %d: repository URL is required", i)
		}
		if repo.Rev == "" && repo.Kind() == RepoRemote {
			return fmt.Errorf("repo %d: revision is required", i)
		}
		for j, hook := range repo.Hooks {
			if hook.ID == "" {
				return fmt.Errorf("repo %d, hook %d: hook ID is required", i, j)
			}
		}
	}
	return nil
}

// DefaultConfig returns the starter configuration written by sample-config.
func DefaultConfig() *Config {
	return &Config{
		Repos: []Repo{
			{
				Repo: "https://github.com/pre-commit/pre-commit-hooks",
				Rev:  "v4.5.0",
				Hooks: []HookConfig{
					{ID: "trailing-whitespace"},
					{ID: "end-of-file-fixer"},
					{ID: "check-yaml"},
				},
			},
		},
	}
}
