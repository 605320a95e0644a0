// Package identify classifies files into pre-commit style type tags based on
// their extension and their filename, mirroring the tag vocabulary hooks use
// in `types` and `types_or` filters.
package identify

import "sort"

// Classifier reports the type tags carried by a file. Extensions are queried
// lowercased and without the leading dot; names are queried as the bare
// basename. Implementations return nil for inputs they do not recognize.
type Classifier interface {
	ExtensionTypes(ext string) []string
	NameTypes(name string) []string
}

const (
	tagText   = "text"
	tagBinary = "binary"
)

// Structural tags assigned by the file-set builder rather than by lookup
// tables. They are part of the known vocabulary so configs may filter on
// them.
var structuralTags = []string{
	"file", "directory", "symlink", "socket", "fifo",
	"executable", "non-executable", tagText, tagBinary,
}

// extensionTags maps a lowercased extension (no dot) to its tags. Text-like
// entries carry "text" so `types: [text]` works the way hook authors expect.
var extensionTags = map[string][]string{
	"py":    {tagText, "python"},
	"pyi":   {tagText, "pyi", "python"},
	"pyx":   {tagText, "cython"},
	"js":    {tagText, "javascript"},
	"jsx":   {tagText, "jsx"},
	"mjs":   {tagText, "javascript"},
	"cjs":   {tagText, "javascript"},
	"ts":    {tagText, "ts"},
	"tsx":   {tagText, "tsx"},
	"yaml":  {tagText, "yaml"},
	"yml":   {tagText, "yaml"},
	"json":  {tagText, "json"},
	"json5": {tagText, "json5"},
	"md":    {tagText, "markdown"},
	"mdx":   {tagText, "mdx"},
	"rst":   {tagText, "rst"},
	"go":    {tagText, "go"},
	"mod":   {tagText, "go-mod"},
	"sum":   {tagText, "go-sum"},
	"sh":    {tagText, "shell"},
	"bash":  {tagText, "bash", "shell"},
	"zsh":   {tagText, "shell", "zsh"},
	"fish":  {tagText, "fish", "shell"},
	"css":   {tagText, "css"},
	"scss":  {tagText, "scss"},
	"sass":  {tagText, "sass"},
	"less":  {tagText, "less"},
	"html":  {tagText, "html"},
	"htm":   {tagText, "html"},
	"xml":   {tagText, "xml"},
	"xsl":   {tagText, "xml"},
	"xsd":   {tagText, "xml"},
	"svg":   {tagText, "image", "svg", "xml"},
	"toml":  {tagText, "toml"},
	"ini":   {tagText, "ini"},
	"cfg":   {tagText, "ini"},
	"rs":    {tagText, "rust"},
	"java":  {tagText, "java"},
	"c":     {tagText, "c"},
	"h":     {tagText, "c", "header"},
	"cpp":   {tagText, "c++"},
	"cc":    {tagText, "c++"},
	"cxx":   {tagText, "c++"},
	"hpp":   {tagText, "c++", "header"},
	"rb":    {tagText, "ruby"},
	"php":   {tagText, "php"},
	"pl":    {tagText, "perl"},
	"pm":    {tagText, "perl"},
	"swift": {tagText, "swift"},
	"kt":    {tagText, "kotlin"},
	"kts":   {tagText, "kotlin"},
	"scala": {tagText, "scala"},
	"r":     {tagText, "r"},
	"tex":   {tagText, "tex"},
	"sql":   {tagText, "sql"},
	"dart":  {tagText, "dart"},
	"hs":    {tagText, "haskell"},
	"ex":    {tagText, "elixir"},
	"exs":   {tagText, "elixir"},
	"erl":   {tagText, "erlang"},
	"cs":    {tagText, "c#"},
	"ps1":   {tagText, "powershell"},
	"lua":   {tagText, "lua"},
	"clj":   {tagText, "clojure"},
	"jl":    {tagText, "julia"},
	"vim":   {tagText, "vim"},
	"tf":    {tagText, "terraform"},
	"vue":   {tagText, "vue"},
	"proto": {tagText, "proto"},
	"cmake": {tagText, "cmake"},
	"txt":   {tagText, "plain-text"},
	"csv":   {tagText, "csv"},
	"lock":  {tagText, "lockfile"},
	"patch": {tagText, "diff"},
	"diff":  {tagText, "diff"},
	"png":   {tagBinary, "image", "png"},
	"jpg":   {tagBinary, "image", "jpeg"},
	"jpeg":  {tagBinary, "image", "jpeg"},
	"gif":   {tagBinary, "image", "gif"},
	"ico":   {tagBinary, "icon"},
	"pdf":   {tagBinary, "pdf"},
	"zip":   {tagBinary, "zip"},
	"gz":    {tagBinary, "gzip"},
	"tar":   {tagBinary, "tar"},
	"whl":   {tagBinary, "wheel", "zip"},
	"exe":   {tagBinary, "exe"},
	"so":    {tagBinary, "shared-object"},
	"woff":  {tagBinary, "woff"},
	"woff2": {tagBinary, "woff2"},
}

// nameTags maps well-known basenames that carry no usable extension.
var nameTags = map[string][]string{
	"Dockerfile":      {tagText, "dockerfile"},
	"Containerfile":   {tagText, "dockerfile"},
	"Makefile":        {tagText, "makefile"},
	"makefile":        {tagText, "makefile"},
	"GNUmakefile":     {tagText, "makefile"},
	"BUILD":           {tagText, "bazel"},
	"WORKSPACE":       {tagText, "bazel"},
	"Gemfile":         {tagText, "ruby"},
	"Rakefile":        {tagText, "ruby"},
	"setup.py":        {tagText, "python"},
	"setup.cfg":       {tagText, "ini"},
	"pyproject.toml":  {tagText, "pyproject", "toml"},
	"go.mod":          {tagText, "go-mod"},
	"go.sum":          {tagText, "go-sum"},
	"package.json":    {tagText, "json", "package-json"},
	"Jenkinsfile":     {tagText, "groovy", "jenkins"},
	"Vagrantfile":     {tagText, "ruby"},
	"CMakeLists.txt":  {tagText, "cmake", "plain-text"},
	".gitignore":      {tagText, "gitignore"},
	".gitattributes":  {tagText, "gitattributes"},
	".gitmodules":     {tagText, "gitmodules", "ini"},
	".editorconfig":   {tagText, "editorconfig", "ini"},
	".dockerignore":   {tagText, "dockerignore"},
	"LICENSE":         {tagText, "license", "plain-text"},
	"COPYING":         {tagText, "license", "plain-text"},
	"Pipfile":         {tagText, "toml"},
	"requirements.in": {tagText, "requirements", "plain-text"},
}

// knownTags is the full tag vocabulary, built once from the tables above.
var knownTags = buildKnownTags()

func buildKnownTags() map[string]struct{} {
	known := make(map[string]struct{})
	for _, tag := range structuralTags {
		known[tag] = struct{}{}
	}
	for _, tags := range extensionTags {
		for _, tag := range tags {
			known[tag] = struct{}{}
		}
	}
	for _, tags := range nameTags {
		for _, tag := range tags {
			known[tag] = struct{}{}
		}
	}
	return known
}

// Known reports whether tag is part of the built-in vocabulary. Config
// loading uses it to drop unrecognized tags from `types` lists.
func Known(tag string) bool {
	_, ok := knownTags[tag]
	return ok
}

// KnownTags returns the vocabulary sorted, for diagnostics.
func KnownTags() []string {
	tags := make([]string, 0, len(knownTags))
	for tag := range knownTags {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Registry is the built-in Classifier backed by the static tables.
type Registry struct{}

// NewRegistry returns the built-in classifier.
func NewRegistry() *Registry { return &Registry{} }

// ExtensionTypes returns the tags for a lowercased extension without the
// leading dot, or nil when the extension is unrecognized.
func (*Registry) ExtensionTypes(ext string) []string {
	return extensionTags[ext]
}

// NameTypes returns the tags for a bare basename, or nil when the name is
// unrecognized.
func (*Registry) NameTypes(name string) []string {
	return nameTags[name]
}
