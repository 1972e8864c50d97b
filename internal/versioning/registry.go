// Package versioning tracks the supported documentation versions and resolves
// the synthetic "latest" alias to a concrete version.
package versioning

import (
	"sort"
	"strings"

	"git.home.luguber.info/inful/docportal/internal/config"
)

// Registry holds the supported versions in display order.
type Registry struct {
	supported []string
	def       string
}

// NewRegistry creates a registry from configuration. The configured order is
// preserved for selector display.
func NewRegistry(supported []string, def string) *Registry {
	return &Registry{supported: append([]string(nil), supported...), def: def}
}

// Supported returns the supported versions in configured order.
func (r *Registry) Supported() []string {
	return append([]string(nil), r.supported...)
}

// Default returns the default (latest) concrete version.
func (r *Registry) Default() string {
	return r.def
}

// Resolve maps a requested version, including the "latest" alias, to a
// concrete supported version. ok is false for unknown versions.
func (r *Registry) Resolve(requested string) (string, bool) {
	if requested == config.LatestAlias {
		return r.def, true
	}
	for _, v := range r.supported {
		if v == requested {
			return v, true
		}
	}
	return "", false
}

// SortVersions orders version strings newest-first using a numeric-aware
// comparison of dotted segments (v10 sorts after v9).
func SortVersions(versions []string) {
	sort.Slice(versions, func(i, j int) bool {
		return compareVersions(versions[i], versions[j]) > 0
	})
}

func compareVersions(a, b string) int {
	as := strings.Split(strings.TrimPrefix(a, "v"), ".")
	bs := strings.Split(strings.TrimPrefix(b, "v"), ".")
	for i := 0; i < len(as) || i < len(bs); i++ {
		av, bv := segment(as, i), segment(bs, i)
		if av != bv {
			if av < bv {
				return -1
			}
			return 1
		}
	}
	return 0
}

func segment(parts []string, i int) int {
	if i >= len(parts) {
		return 0
	}
	n := 0
	for _, ch := range parts[i] {
		if ch < '0' || ch > '9' {
			break
		}
		n = n*10 + int(ch-'0')
	}
	return n
}
