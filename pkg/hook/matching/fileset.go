package matching

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/piispis/preco/pkg/identify"
)

// FileSet holds candidate files with their type tags precomputed, so the
// per-hook filters run on lookups instead of reclassifying.
type FileSet struct {
	files []string
	tags  map[string]map[string]struct{}
}

// NewFileSet classifies each file once. Tags come from the lowercased
// extension and the basename; every regular file also carries "file".
func NewFileSet(files []string, classifier identify.Classifier) *FileSet {
	fs := &FileSet{
		files: make([]string, 0, len(files)),
		tags:  make(map[string]map[string]struct{}, len(files)),
	}

	for _, file := range files {
		if _, dup := fs.tags[file]; dup {
			continue
		}
		fs.files = append(fs.files, file)

		tags := map[string]struct{}{"file": {}}
		base := filepath.Base(file)
		if ext := strings.TrimPrefix(filepath.Ext(base), "."); ext != "" {
			for _, tag := range classifier.ExtensionTypes(strings.ToLower(ext)) {
				tags[tag] = struct{}{}
			}
		}
		for _, tag := range classifier.NameTypes(base) {
			tags[tag] = struct{}{}
		}
		fs.tags[file] = tags
	}

	return fs
}

// Files returns the files in insertion order.
func (fs *FileSet) Files() []string {
	return fs.files
}

// Len returns the number of files.
func (fs *FileSet) Len() int {
	return len(fs.files)
}

// WithType returns the files carrying the tag, in insertion order.
func (fs *FileSet) WithType(tag string) []string {
	var out []string
	for _, file := range fs.files {
		if fs.HasType(file, tag) {
			out = append(out, file)
		}
	}
	return out
}

// HasType reports whether the file carries the tag.
func (fs *FileSet) HasType(file, tag string) bool {
	_, ok := fs.tags[file][tag]
	return ok
}

// TypesOf returns the file's tags, sorted.
func (fs *FileSet) TypesOf(file string) []string {
	tags := make([]string, 0, len(fs.tags[file]))
	for tag := range fs.tags[file] {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
