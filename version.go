// Package mention recognises trigger tokens (@person, #hashtag, <>relation)
// in edited text and turns committed suggestions into immutable inline
// annotations.
//
// The work is split across packages: vocab holds candidate lists, match
// scans text at the caret, session tracks the suggestion list, annotation
// stores spans, commit replaces trigger text, and annotator ties them to a
// host editor through a narrow shell interface. The editor package is a
// ready-made Bubble Tea host.
package mention

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"
)

var semverRE = regexp.MustCompile(`^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)(?:-[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*)?(?:\+[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*)?$`)

//go:embed VERSION
var embeddedVersion string

// Version returns the module version in SemVer format (without `v`).
func Version() string {
	return strings.TrimSpace(embeddedVersion)
}

// IsSemver reports whether v matches SemVer 2.0.0.
func IsSemver(v string) bool {
	return semverRE.MatchString(strings.TrimSpace(v))
}

// BuildString formats the version with build metadata injected through
// ldflags. Empty fields are reported as "unknown".
func BuildString(commit, date string) string {
	if commit == "" {
		commit = "unknown"
	}
	if date == "" {
		date = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version(), commit, date)
}
