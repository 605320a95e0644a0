package commands

import (
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/buildkite/shellwords"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommand(t *testing.T) {
	cmd, err := Command("black", []string{"--check"})
	require.NoError(t, err)
	assert.Equal(t, "black --check", cmd)
}

func TestCommand_MultiWordEntry(t *testing.T) {
	cmd, err := Command("python -m flake8", nil)
	require.NoError(t, err)
	assert.Equal(t, "python -m flake8", cmd)
}

func TestCommand_QuotesSpecialWords(t *testing.T) {
	cmd, err := Command("check", []string{"--msg=hello world"})
	require.NoError(t, err)

	words, err := shellwords.SplitPosix(cmd)
	require.NoError(t, err)
	assert.Equal(t, []string{"check", "--msg=hello world"}, words)
}

func TestCommand_EmptyEntry(t *testing.T) {
	_, err := Command("", nil)
	require.Error(t, err)
}

func TestPack_NilFilesRunsOnce(t *testing.T) {
	cmds := Pack("lint", nil, 4, MaxCommandLength, false)
	assert.Equal(t, []string{"lint"}, cmds)
}

func TestPack_EmptyFilesRunsNothing(t *testing.T) {
	cmds := Pack("lint", []string{}, 4, MaxCommandLength, false)
	assert.Empty(t, cmds)
}

func TestPack_SerialSingleBatch(t *testing.T) {
	cmds := Pack("lint", []string{"a.go", "b.go", "c.go"}, 4, MaxCommandLength, true)
	require.Len(t, cmds, 1)
	assert.Equal(t, "lint a.go b.go c.go", cmds[0])
}

func TestPack_SpreadsAcrossParallelism(t *testing.T) {
	cmds := Pack("lint", []string{"a.go", "b.go", "c.go", "d.go"}, 2, MaxCommandLength, false)
	require.Len(t, cmds, 2)
	assert.Equal(t, "lint a.go c.go", cmds[0])
	assert.Equal(t, "lint b.go d.go", cmds[1])
}

func TestPack_RespectsLimit(t *testing.T) {
	files := make([]string, 50000)
	for i := range files {
		files[i] = fmt.Sprintf("pkg/deeply/nested/path/file_%05d.go", i)
	}

	cmds := Pack("lint", files, 1, MaxCommandLength, true)
	require.Greater(t, len(cmds), 1)

	var got []string
	for _, cmd := range cmds {
		assert.Less(t, len(cmd), MaxCommandLength+1)
		require.True(t, strings.HasPrefix(cmd, "lint "))
		words, err := shellwords.SplitPosix(strings.TrimPrefix(cmd, "lint "))
		require.NoError(t, err)
		got = append(got, words...)
	}

	// Every file appears exactly once across the batches.
	sort.Strings(got)
	want := append([]string(nil), files...)
	sort.Strings(want)
	assert.Equal(t, want, got)
}

func TestPack_QuotedFilenames(t *testing.T) {
	cmds := Pack("lint", []string{"with space.go"}, 1, MaxCommandLength, true)
	require.Len(t, cmds, 1)

	words, err := shellwords.SplitPosix(cmds[0])
	require.NoError(t, err)
	assert.Equal(t, []string{"lint", "with space.go"}, words)
}
