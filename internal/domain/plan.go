package domain

// RemovalReason explains why the reconciler scheduled a version for removal.
type RemovalReason string

const (
	// RemovalUnsupported marks versions whose release line fell out of the
	// supported set entirely.
	RemovalUnsupported RemovalReason = "unsupported"
	// RemovalSuperseded marks older patches of a line that remains
	// supported; the highest installed patch of the line is retained.
	RemovalSuperseded RemovalReason = "superseded"
)

// Removal is one scheduled uninstall.
type Removal struct {
	Version Version
	Path    string
	Reason  RemovalReason
}

// Plan is the reconciliation outcome: versions to install and versions to
// remove, both sorted ascending. A Plan is a value object computed once per
// run and never mutated afterwards.
type Plan struct {
	Installs []Version
	Removals []Removal
}

// Empty reports whether the plan requires no action.
func (p Plan) Empty() bool {
	return len(p.Installs) == 0 && len(p.Removals) == 0
}
