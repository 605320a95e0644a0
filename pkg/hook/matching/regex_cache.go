// Package matching selects the files a hook runs on: pattern filters,
// type tag classification and the merge of global and per-hook rules.
package matching

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/dlclark/regexp2"
)

// regexCache memoizes compiled patterns process-wide. Config and manifest
// patterns repeat across hooks, and compiling them is not free.
var regexCache = struct {
	sync.Mutex
	compiled map[string]*regexp2.Regexp
}{compiled: make(map[string]*regexp2.Regexp)}

// Compile compiles a Python-style pattern, caching the result. Failed
// patterns are cached as nil so the warning logic stays in one place.
func Compile(pattern string) (*regexp2.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}

	regexCache.Lock()
	defer regexCache.Unlock()

	if re, ok := regexCache.compiled[pattern]; ok {
		if re == nil {
			return nil, fmt.Errorf("invalid regex: %s", pattern)
		}
		return re, nil
	}

	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		regexCache.compiled[pattern] = nil
		return nil, fmt.Errorf("invalid regex %q: %w", pattern, err)
	}

	regexCache.compiled[pattern] = re
	return re, nil
}

// CompileWarn compiles a pattern, logging a warning and returning nil when
// the pattern does not compile. A nil result never matches.
func CompileWarn(field, pattern string) *regexp2.Regexp {
	re, err := Compile(pattern)
	if err != nil {
		slog.Warn(fmt.Sprintf("unable to compile regex for `%s`", field),
			"pattern", pattern, "error", err)
		return nil
	}
	return re
}

// matches reports whether the pattern matches anywhere in path. regexp2
// returns an error only for timeouts, which unanchored path patterns do
// not hit; treat it as no match.
func matches(re *regexp2.Regexp, path string) bool {
	if re == nil {
		return false
	}
	ok, err := re.MatchString(path)
	return err == nil && ok
}
