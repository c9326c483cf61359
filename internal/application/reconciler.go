package application

import (
	"sort"

	"github.com/bmaertens/upkeep/internal/domain"
)

// ReconcileNode diffs the supported set against the locally installed Node
// versions. A supported version is satisfied by any installed version of
// the same major at or above it, so a locally newer patch never triggers a
// reinstall. Every installed version whose exact triple is not supported is
// scheduled for removal.
func ReconcileNode(supported domain.SupportedSet, installed []domain.InstalledVersion) domain.Plan {
	plan := domain.Plan{}

	for _, sv := range supported.Versions {
		if nodeSatisfied(sv.Version, installed) {
			continue
		}
		plan.Installs = append(plan.Installs, sv.Version)
	}

	for _, iv := range installed {
		if supported.Contains(iv.Version) {
			continue
		}
		plan.Removals = append(plan.Removals, domain.Removal{
			Version: iv.Version,
			Path:    iv.Path,
			Reason:  domain.RemovalUnsupported,
		})
	}

	sortPlan(&plan)
	return plan
}

// ReconcileDotnet diffs the supported set against the locally installed
// .NET SDKs. Compatibility is per major.minor line at a greater-or-equal
// patch. Removal is two-phase: SDKs on unsupported lines go first, then
// superseded patches within supported lines. The highest installed patch
// of a supported line is always retained, whether or not it matches the
// catalog's exact patch.
func ReconcileDotnet(supported domain.SupportedSet, installed []domain.InstalledVersion) domain.Plan {
	plan := domain.Plan{}

	for _, sv := range supported.Versions {
		if dotnetSatisfied(sv.Version, installed) {
			continue
		}
		plan.Installs = append(plan.Installs, sv.Version)
	}

	lines := supported.Lines()
	highestPerLine := map[string]domain.Version{}
	for _, iv := range installed {
		line := iv.Version.MajorMinor()
		if best, ok := highestPerLine[line]; !ok || best.Less(iv.Version) {
			highestPerLine[line] = iv.Version
		}
	}

	for _, iv := range installed {
		line := iv.Version.MajorMinor()
		if _, ok := lines[line]; !ok {
			plan.Removals = append(plan.Removals, domain.Removal{
				Version: iv.Version,
				Path:    iv.Path,
				Reason:  domain.RemovalUnsupported,
			})
			continue
		}
		if iv.Version != highestPerLine[line] {
			plan.Removals = append(plan.Removals, domain.Removal{
				Version: iv.Version,
				Path:    iv.Path,
				Reason:  domain.RemovalSuperseded,
			})
		}
	}

	sortPlan(&plan)
	return plan
}

func nodeSatisfied(want domain.Version, installed []domain.InstalledVersion) bool {
	for _, iv := range installed {
		if iv.Version.Major == want.Major && want.Compare(iv.Version) <= 0 {
			return true
		}
	}
	return false
}

func dotnetSatisfied(want domain.Version, installed []domain.InstalledVersion) bool {
	for _, iv := range installed {
		if iv.Version.SameLine(want) && want.Compare(iv.Version) <= 0 {
			return true
		}
	}
	return false
}

func sortPlan(plan *domain.Plan) {
	sort.Slice(plan.Installs, func(i, j int) bool {
		return plan.Installs[i].Less(plan.Installs[j])
	})
	sort.Slice(plan.Removals, func(i, j int) bool {
		return plan.Removals[i].Version.Less(plan.Removals[j].Version)
	})
}
