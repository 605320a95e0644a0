// Package cache resolves the on-disk checkout cache: filesystem-safe path
// encoding, hashing of additional dependencies, cache root resolution, and
// the per-path locks that serialize concurrent writers to a cache entry.
package cache

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
)

// asciiPunctuation is the set of printable ASCII punctuation characters.
// '/' and ':' are part of it but are rewritten before the membership test.
const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Encode maps an arbitrary string (repo URL, git rev) to a path segment
// that is safe on every filesystem we care about. The mapping is
// deterministic and injective: '/' becomes '_', ':' becomes '__', ASCII
// alphanumerics and punctuation pass through, and every other rune is
// escaped as 'u' plus its lowercase hex scalar value, at least two digits.
func Encode(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '/':
			b.WriteByte('_')
		case r == ':':
			b.WriteString("__")
		case r < utf8.RuneSelf && (isASCIIAlphanumeric(r) || strings.ContainsRune(asciiPunctuation, r)):
			b.WriteRune(r)
		default:
			fmt.Fprintf(&b, "u%02x", r)
		}
	}
	return b.String()
}

func isASCIIAlphanumeric(r rune) bool {
	return r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
}

// DepsHash hashes a list of additional dependencies into a short stable
// identifier used to keep sandboxes for distinct dependency sets apart.
// Each dependency is fed to the hash followed by a NUL byte, so the hash
// is sensitive to both ordering and element boundaries.
func DepsHash(deps []string) string {
	h := xxhash.New()
	for _, dep := range deps {
		_, _ = h.WriteString(dep)
		_, _ = h.Write([]byte{0})
	}
	return strconv.FormatUint(h.Sum64(), 16)
}
