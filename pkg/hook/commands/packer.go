// Package commands turns a hook's entry, args and selected files into the
// shell command strings handed to the executor, splitting long file lists
// into batches that stay under the command length limit.
package commands

import (
	"fmt"
	"strings"

	"github.com/buildkite/shellwords"
)

// MaxCommandLength bounds a packed command string. Mirrors the xargs
// default derived from the common ARG_MAX.
const MaxCommandLength = 128 * 1024

// Command builds the invocation prefix from a hook's entry and args. The
// entry is split like a posix shell, args are appended, and every word is
// requoted so the result survives `sh -c`.
func Command(entry string, args []string) (string, error) {
	words, err := shellwords.SplitPosix(entry)
	if err != nil {
		return "", fmt.Errorf("failed to parse entry %q: %w", entry, err)
	}
	if len(words) == 0 {
		return "", fmt.Errorf("entry %q produced no command", entry)
	}
	words = append(words, args...)

	quoted := make([]string, len(words))
	for i, word := range words {
		quoted[i] = shellwords.QuotePosix(word)
	}

	return strings.Join(quoted, " "), nil
}

// Pack appends files to the command prefix, producing one command string
// per batch. A nil file list means the hook takes no filenames and runs
// once as the bare prefix; an empty non-nil list means nothing matched
// and no commands are produced.
//
// Batches are filled greedily up to limit. When that yields fewer batches
// than parallelism and the hook permits concurrency, files are spread
// round-robin across parallelism batches instead; respreading may push a
// batch past limit, which callers accept for short file lists.
func Pack(prefix string, files []string, parallelism, limit int, serial bool) []string {
	if files == nil {
		return []string{prefix}
	}
	if len(files) == 0 {
		return []string{}
	}
	if limit <= 0 {
		limit = MaxCommandLength
	}

	quoted := make([]string, len(files))
	for i, file := range files {
		quoted[i] = shellwords.QuotePosix(file)
	}

	batches := greedyBatches(prefix, quoted, limit)
	if !serial && len(batches) < parallelism && parallelism > 1 {
		batches = roundRobinBatches(quoted, parallelism)
	}

	commands := make([]string, 0, len(batches))
	for _, batch := range batches {
		commands = append(commands, prefix+" "+strings.Join(batch, " "))
	}
	return commands
}

// greedyBatches fills each batch until adding another word would reach
// the limit, counting the prefix and the separating spaces.
func greedyBatches(prefix string, quoted []string, limit int) [][]string {
	var batches [][]string
	var current []string
	size := 0

	base := len(prefix) + 1
	for _, word := range quoted {
		if len(current) > 0 && base+size+len(word)+1 >= limit {
			batches = append(batches, current)
			current = nil
			size = 0
		}
		current = append(current, word)
		size += len(word) + 1
	}
	if len(current) > 0 {
		batches = append(batches, current)
	}
	return batches
}

// roundRobinBatches spreads words across n batches to keep every worker
// busy, dropping batches that receive nothing.
func roundRobinBatches(quoted []string, n int) [][]string {
	batches := make([][]string, n)
	for i, word := range quoted {
		batches[i%n] = append(batches[i%n], word)
	}

	filled := batches[:0]
	for _, batch := range batches {
		if len(batch) > 0 {
			filled = append(filled, batch)
		}
	}
	return filled
}
