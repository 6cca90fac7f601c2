// Package draftmark is a terminal rich-text editor with markdown-like
// formatting shortcuts and a pluggable document store.
package draftmark

import (
	_ "embed"
	"regexp"
	"strings"
)

var semverRE = regexp.MustCompile(`^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)(?:-[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*)?(?:\+[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*)?$`)

//go:embed VERSION
var embeddedVersion string

// Version returns the release version in SemVer form (without `v`).
func Version() string {
	return strings.TrimSpace(embeddedVersion)
}

// UserAgent identifies draftmark in version output and store client names,
// e.g. "draftmark/0.1.0". A non-empty build string (set by ldflags in the
// binary) is appended in parentheses.
func UserAgent(build string) string {
	s := "draftmark/" + Version()
	if build = strings.TrimSpace(build); build != "" {
		s += " (" + build + ")"
	}
	return s
}

// IsSemver reports whether v matches SemVer 2.0.0.
func IsSemver(v string) bool {
	return semverRE.MatchString(strings.TrimSpace(v))
}
