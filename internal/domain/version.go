package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Version is a semantic major.minor.patch triple.
type Version struct {
	Major int
	Minor int
	Patch int
}

// ParseVersion accepts "22.17.1" and the nodejs-style "v22.17.1" form.
// Missing minor or patch components default to zero.
func ParseVersion(raw string) (Version, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(raw), "v")
	if trimmed == "" {
		return Version{}, fmt.Errorf("%w: empty version string", ErrMalformedVersion)
	}

	parts := strings.SplitN(trimmed, ".", 3)
	components := [3]int{}
	for i, part := range parts {
		value, err := strconv.Atoi(part)
		if err != nil || value < 0 {
			return Version{}, fmt.Errorf("%w: %q", ErrMalformedVersion, raw)
		}
		components[i] = value
	}

	return Version{Major: components[0], Minor: components[1], Patch: components[2]}, nil
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// MajorMinor identifies the release line the version belongs to.
func (v Version) MajorMinor() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Compare returns -1, 0 or 1 ordering by major, then minor, then patch.
func (v Version) Compare(other Version) int {
	if v.Major != other.Major {
		return compareInt(v.Major, other.Major)
	}
	if v.Minor != other.Minor {
		return compareInt(v.Minor, other.Minor)
	}
	return compareInt(v.Patch, other.Patch)
}

func (v Version) Less(other Version) bool {
	return v.Compare(other) < 0
}

// SameLine reports whether both versions share a major.minor release line.
func (v Version) SameLine(other Version) bool {
	return v.Major == other.Major && v.Minor == other.Minor
}

// EvenMajor reports whether the major component is even. Odd Node.js majors
// are development lines and never LTS-eligible.
func (v Version) EvenMajor() bool {
	return v.Major%2 == 0
}

func (v Version) IsZero() bool {
	return v == Version{}
}

// MarshalJSON renders the dotted form so plans serialize as "22.17.1"
// instead of a struct of components.
func (v Version) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

func (v *Version) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	parsed, err := ParseVersion(raw)
	if err != nil {
		return err
	}

	*v = parsed
	return nil
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
