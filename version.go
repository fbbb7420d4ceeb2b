// Package autotab provides inline, context-aware completion suggestions for
// Bubble Tea text fields.
//
// The root package only carries release metadata. See the suggest package for
// the suggestion engine and overlay for its rendering.
package autotab

import (
	_ "embed"
	"regexp"
	"runtime"
	"strings"
)

var semverRE = regexp.MustCompile(`^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)(?:-[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*)?(?:\+[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*)?$`)

//go:embed VERSION
var embeddedVersion string

// Version returns the release version in SemVer format (without `v`).
func Version() string {
	return strings.TrimSpace(embeddedVersion)
}

// VersionTag returns the git tag form of Version (with leading `v`).
func VersionTag() string {
	return "v" + Version()
}

// IsSemver reports whether v matches SemVer 2.0.0.
func IsSemver(v string) bool {
	return semverRE.MatchString(strings.TrimSpace(v))
}

// UserAgent is sent with every completion request.
func UserAgent() string {
	return "autotab/" + Version() + " (" + runtime.GOOS + "/" + runtime.GOARCH + ")"
}
