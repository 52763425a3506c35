package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// specialPrefixes mark specs that point at a non-registry source.
var specialPrefixes = []string{
	"file:",
	"link:",
	"workspace:",
	"git+",
	"github:",
	"http://",
	"https://",
	"npm:",
	"patch:",
}

// versionTriplePattern finds the first major.minor(.patch) run in a spec.
var versionTriplePattern = regexp.MustCompile(`(\d+)\.(\d+)(?:\.(\d+))?`)

// Looseness scores used to break ties between specs with equal version triples.
const (
	LoosenessOther      = 0
	LoosenessComparator = 1
	LoosenessTilde      = 2
	LoosenessCaret      = 3
	LoosenessExact      = 4
	LoosenessWildcard   = 5
)

// VersionSpec is the version constraint of one dependency as written in a manifest.
// String constraints keep their text. Any other JSON value is kept verbatim.
type VersionSpec struct {
	text string
	raw  json.RawMessage
}

// NewVersionSpec returns a string version spec.
func NewVersionSpec(text string) VersionSpec {
	return VersionSpec{text: text}
}

// RawVersionSpec returns a spec for an arbitrary JSON value.
// JSON strings are decoded so that they behave like NewVersionSpec.
// Bytes that are not valid JSON are kept as the text of a string spec.
func RawVersionSpec(raw json.RawMessage) VersionSpec {
	var spec VersionSpec
	if err := spec.UnmarshalJSON(raw); err != nil {
		return NewVersionSpec(string(raw))
	}
	return spec
}

// IsString reports whether the spec was written as a JSON string.
func (s VersionSpec) IsString() bool {
	return s.raw == nil
}

// String returns the spec text, or the raw JSON for non-string specs.
func (s VersionSpec) String() string {
	if s.raw != nil {
		return string(s.raw)
	}
	return s.text
}

// Equal reports whether both specs are the same string.
// Non-string specs are never equal, not even to themselves.
func (s VersionSpec) Equal(other VersionSpec) bool {
	return s.IsString() && other.IsString() && s.text == other.text
}

// IsSpecial reports whether the spec references a path, VCS, URL, alias or patch
// instead of a version range. Non-string specs are always special.
func (s VersionSpec) IsSpecial() bool {
	if !s.IsString() {
		return true
	}
	for _, prefix := range specialPrefixes {
		if strings.HasPrefix(s.text, prefix) {
			return true
		}
	}
	return false
}

// Triple extracts the first numeric version triple in the spec.
// The patch component defaults to 0 when absent.
func (s VersionSpec) Triple() (VersionTriple, bool) {
	if !s.IsString() {
		return VersionTriple{}, false
	}
	m := versionTriplePattern.FindStringSubmatch(s.text)
	if m == nil {
		return VersionTriple{}, false
	}
	return VersionTriple{
		Major: parseComponent(m[1]),
		Minor: parseComponent(m[2]),
		Patch: parseComponent(m[3]),
	}, true
}

// Looseness scores how permissive the spec's operator is.
func (s VersionSpec) Looseness() int {
	t := strings.TrimSpace(s.text)
	switch {
	case t == "*":
		return LoosenessWildcard
	case t != "" && t[0] >= '0' && t[0] <= '9':
		return LoosenessExact
	case strings.HasPrefix(t, "^"):
		return LoosenessCaret
	case strings.HasPrefix(t, "~"):
		return LoosenessTilde
	case strings.ContainsAny(t, "<>") || strings.Contains(t, "||"):
		return LoosenessComparator
	default:
		return LoosenessOther
	}
}

// MarshalJSON writes string specs without HTML escaping and raw specs verbatim.
func (s VersionSpec) MarshalJSON() ([]byte, error) {
	if s.raw != nil {
		return s.raw, nil
	}
	return marshalString(s.text)
}

// UnmarshalJSON accepts any JSON value.
func (s *VersionSpec) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return err
		}
		*s = VersionSpec{text: text}
		return nil
	}
	if !json.Valid(trimmed) {
		return ErrManifestParseFailed
	}
	*s = VersionSpec{raw: append(json.RawMessage(nil), trimmed...)}
	return nil
}

// VersionTriple is a comparable major.minor.patch version.
type VersionTriple struct {
	Major uint64
	Minor uint64
	Patch uint64
}

// Compare returns -1, 0 or 1 ordering t against other by major, minor and patch.
func (t VersionTriple) Compare(other VersionTriple) int {
	for _, pair := range [3][2]uint64{
		{t.Major, other.Major},
		{t.Minor, other.Minor},
		{t.Patch, other.Patch},
	} {
		switch {
		case pair[0] > pair[1]:
			return 1
		case pair[0] < pair[1]:
			return -1
		}
	}
	return 0
}

// parseComponent converts a digit run, saturating on overflow.
func parseComponent(digits string) uint64 {
	if digits == "" {
		return 0
	}
	n, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return math.MaxUint64
	}
	return n
}

// marshalString encodes s as a JSON string leaving <, > and & literal.
func marshalString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
