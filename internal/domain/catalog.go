package domain

import "sort"

// Release is one entry of the Node.js upstream catalog.
type Release struct {
	Version  Version
	LTSLabel string
}

// IsLTS reports whether upstream marked the release as long-term support.
func (r Release) IsLTS() bool {
	return r.LTSLabel != ""
}

// Channel is one entry of the .NET releases index. ChannelVersion is the
// "X.Y" line identifier, LatestSDK the newest SDK build published for it.
type Channel struct {
	ChannelVersion string
	ReleaseType    ReleaseType
	SupportPhase   SupportPhase
	LatestSDK      Version
}

type ReleaseType string

const (
	ReleaseTypeLTS ReleaseType = "lts"
	ReleaseTypeSTS ReleaseType = "sts"
)

type SupportPhase string

const (
	PhaseActive      SupportPhase = "active"
	PhaseMaintenance SupportPhase = "maintenance"
	PhaseEOL         SupportPhase = "eol"
	PhasePreview     SupportPhase = "preview"
	PhaseGoLive      SupportPhase = "go-live"
)

// Tier is the policy role a supported version plays.
type Tier string

const (
	TierCurrent        Tier = "current"
	TierActiveLTS      Tier = "active-lts"
	TierMaintenanceLTS Tier = "maintenance-lts"
	TierLTS            Tier = "lts"
)

// SupportedVersion pairs a version with the tier that selected it.
type SupportedVersion struct {
	Version Version
	Tier    Tier
}

// SupportedSet is the deduplicated, ascending set of versions the tool
// ensures are installed. Default is the version new shells should resolve
// to (Node only; zero for .NET).
type SupportedSet struct {
	Versions []SupportedVersion
	Default  Version
}

// Contains reports whether the exact version triple is in the set.
func (s SupportedSet) Contains(v Version) bool {
	for _, sv := range s.Versions {
		if sv.Version == v {
			return true
		}
	}
	return false
}

// Lines returns the distinct supported major.minor identifiers.
func (s SupportedSet) Lines() map[string]struct{} {
	lines := make(map[string]struct{}, len(s.Versions))
	for _, sv := range s.Versions {
		lines[sv.Version.MajorMinor()] = struct{}{}
	}
	return lines
}

// NewSupportedSet deduplicates by exact version, keeping the first tier
// that claimed each version, and sorts ascending.
func NewSupportedSet(defaultVersion Version, versions ...SupportedVersion) SupportedSet {
	seen := make(map[Version]struct{}, len(versions))
	deduped := make([]SupportedVersion, 0, len(versions))
	for _, sv := range versions {
		if _, ok := seen[sv.Version]; ok {
			continue
		}
		seen[sv.Version] = struct{}{}
		deduped = append(deduped, sv)
	}

	sort.Slice(deduped, func(i, j int) bool {
		return deduped[i].Version.Less(deduped[j].Version)
	})

	return SupportedSet{Versions: deduped, Default: defaultVersion}
}
