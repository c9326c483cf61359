package application

import (
	"fmt"
	"sort"

	"github.com/bmaertens/upkeep/internal/domain"
)

// ResolveNode reduces the raw Node.js catalog to the supported set:
// Current (greatest even major), Active LTS (greatest LTS release) and
// Maintenance LTS (greatest release of the second-most-recent LTS major).
// Absent LTS tiers are omitted without error; an undeterminable Current is
// fatal. The returned set's Default is Current.
func ResolveNode(releases []domain.Release) (domain.SupportedSet, []string, error) {
	if len(releases) == 0 {
		return domain.SupportedSet{}, nil, fmt.Errorf("%w: empty catalog", domain.ErrCatalogUnavailable)
	}

	var warnings []string

	current, ok := latestEvenMajor(releases)
	if !ok {
		return domain.SupportedSet{}, nil, fmt.Errorf("%w: catalog has no even-major release", domain.ErrNoCurrentRelease)
	}

	supported := []domain.SupportedVersion{
		{Version: current, Tier: domain.TierCurrent},
	}

	ltsMajors := distinctLTSMajorsDescending(releases)
	if len(ltsMajors) == 0 {
		warnings = append(warnings, "catalog carries no LTS releases; only Current will be kept")
	}

	if len(ltsMajors) >= 1 {
		active, _ := latestLTSOfMajor(releases, ltsMajors[0])
		supported = append(supported, domain.SupportedVersion{Version: active, Tier: domain.TierActiveLTS})
	}
	if len(ltsMajors) >= 2 {
		maintenance, _ := latestLTSOfMajor(releases, ltsMajors[1])
		supported = append(supported, domain.SupportedVersion{Version: maintenance, Tier: domain.TierMaintenanceLTS})
	}

	return domain.NewSupportedSet(current, supported...), warnings, nil
}

// ResolveDotnet reduces the .NET releases index to the supported set:
// Current (latest SDK of the newest active STS channel) plus the latest SDK
// of every LTS channel still in active or maintenance phase. EOL and
// preview channels are excluded. A channel without a usable latest SDK
// degrades to absent with a warning.
func ResolveDotnet(channels []domain.Channel) (domain.SupportedSet, []string, error) {
	if len(channels) == 0 {
		return domain.SupportedSet{}, nil, fmt.Errorf("%w: empty releases index", domain.ErrCatalogUnavailable)
	}

	var warnings []string
	var current domain.Version
	supported := make([]domain.SupportedVersion, 0, len(channels))

	for _, channel := range channels {
		switch channel.SupportPhase {
		case domain.PhaseActive, domain.PhaseMaintenance:
		default:
			continue
		}

		if channel.LatestSDK.IsZero() {
			warnings = append(warnings, fmt.Sprintf("channel %s has no usable latest SDK, skipping", channel.ChannelVersion))
			continue
		}

		switch channel.ReleaseType {
		case domain.ReleaseTypeSTS:
			if channel.SupportPhase == domain.PhaseActive && current.Less(channel.LatestSDK) {
				current = channel.LatestSDK
			}
		case domain.ReleaseTypeLTS:
			supported = append(supported, domain.SupportedVersion{Version: channel.LatestSDK, Tier: domain.TierLTS})
		}
	}

	if current.IsZero() {
		return domain.SupportedSet{}, warnings, fmt.Errorf("%w: no STS channel in its active window", domain.ErrNoCurrentRelease)
	}
	supported = append(supported, domain.SupportedVersion{Version: current, Tier: domain.TierCurrent})

	return domain.NewSupportedSet(domain.Version{}, supported...), warnings, nil
}

func latestEvenMajor(releases []domain.Release) (domain.Version, bool) {
	var best domain.Version
	found := false
	for _, release := range releases {
		if !release.Version.EvenMajor() {
			continue
		}
		if !found || best.Less(release.Version) {
			best = release.Version
			found = true
		}
	}
	return best, found
}

func distinctLTSMajorsDescending(releases []domain.Release) []int {
	seen := map[int]struct{}{}
	majors := make([]int, 0, 4)
	for _, release := range releases {
		if !release.IsLTS() {
			continue
		}
		if _, ok := seen[release.Version.Major]; ok {
			continue
		}
		seen[release.Version.Major] = struct{}{}
		majors = append(majors, release.Version.Major)
	}

	sort.Sort(sort.Reverse(sort.IntSlice(majors)))
	return majors
}

func latestLTSOfMajor(releases []domain.Release, major int) (domain.Version, bool) {
	var best domain.Version
	found := false
	for _, release := range releases {
		if !release.IsLTS() || release.Version.Major != major {
			continue
		}
		if !found || best.Less(release.Version) {
			best = release.Version
			found = true
		}
	}
	return best, found
}
