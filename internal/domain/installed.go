package domain

// InstalledVersion is one locally installed runtime with its on-disk
// location. Active marks the version the shell currently resolves to.
type InstalledVersion struct {
	Version Version
	Path    string
	Active  bool
}
