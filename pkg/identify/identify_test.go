package identify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtensionTypes(t *testing.T) {
	reg := NewRegistry()

	tests := []struct {
		name string
		ext  string
		want []string
	}{
		{name: "python source", ext: "py", want: []string{"text", "python"}},
		{name: "yaml long form", ext: "yaml", want: []string{"text", "yaml"}},
		{name: "yaml short form", ext: "yml", want: []string{"text", "yaml"}},
		{name: "binary image", ext: "png", want: []string{"binary", "image", "png"}},
		{name: "unknown extension", ext: "qqq", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reg.ExtensionTypes(tt.ext))
		})
	}
}

func TestNameTypes(t *testing.T) {
	reg := NewRegistry()

	assert.Contains(t, reg.NameTypes("Dockerfile"), "dockerfile")
	assert.Contains(t, reg.NameTypes("Makefile"), "makefile")
	assert.Contains(t, reg.NameTypes("go.mod"), "go-mod")
	assert.Nil(t, reg.NameTypes("random.bin"))
}

func TestKnown(t *testing.T) {
	// Structural tags are known even though no table row mentions them.
	assert.True(t, Known("file"))
	assert.True(t, Known("executable"))

	assert.True(t, Known("python"))
	assert.True(t, Known("dockerfile"))
	assert.False(t, Known("klingon"))
	assert.False(t, Known(""))
}

func TestKnownTagsSortedAndComplete(t *testing.T) {
	tags := KnownTags()
	assert.IsNonDecreasing(t, tags)
	assert.Contains(t, tags, "text")
	assert.Contains(t, tags, "binary")
	for _, tag := range tags {
		assert.True(t, Known(tag))
	}
}
