package formatting

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassedLine(t *testing.T) {
	var buf strings.Builder
	f := NewFormatter(&buf, false)

	f.Passed("trailing-whitespace", 10*time.Millisecond)

	line := strings.TrimSuffix(buf.String(), "\n")
	assert.True(t, strings.HasPrefix(line, "trailing-whitespace."))
	assert.True(t, strings.HasSuffix(line, "Passed"))
	assert.Len(t, line, 79)
}

func TestFailedLine(t *testing.T) {
	var buf strings.Builder
	f := NewFormatter(&buf, false)

	f.Failed("lint", 0)

	line := strings.TrimSuffix(buf.String(), "\n")
	assert.True(t, strings.HasSuffix(line, "Failed"))
	assert.Len(t, line, 79)
}

func TestSkippedLineWithReason(t *testing.T) {
	var buf strings.Builder
	f := NewFormatter(&buf, false)

	f.Skipped("lint", "no matching files")

	line := strings.TrimSuffix(buf.String(), "\n")
	assert.True(t, strings.HasSuffix(line, "Skipped (no matching files)"))
	assert.Len(t, line, 79)
}

func TestSlowHookGetsDuration(t *testing.T) {
	var buf strings.Builder
	f := NewFormatter(&buf, false)

	f.Passed("slow-hook", 2500*time.Millisecond)

	line := strings.TrimSuffix(buf.String(), "\n")
	assert.True(t, strings.HasSuffix(line, "Passed (2.5s)"))
	assert.Len(t, line, 79)
}

func TestFastHookOmitsDuration(t *testing.T) {
	var buf strings.Builder
	f := NewFormatter(&buf, false)

	f.Passed("fast-hook", 1900*time.Millisecond)
	assert.NotContains(t, buf.String(), "(")
}

func TestLongNameKeepsOneDot(t *testing.T) {
	var buf strings.Builder
	f := NewFormatter(&buf, false)

	name := strings.Repeat("x", 90)
	f.Passed(name, 0)

	line := strings.TrimSuffix(buf.String(), "\n")
	require.True(t, strings.HasPrefix(line, name))
	assert.Equal(t, name+".Passed", line)
}
