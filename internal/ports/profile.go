package ports

// ProfileState reports what the profile configurator did.
type ProfileState string

const (
	ProfileUpdated       ProfileState = "updated"
	ProfileAlreadySet    ProfileState = "already-set"
	ProfileSkippedOther  ProfileState = "skipped-foreign-install"
	ProfileNotConfigured ProfileState = "not-configured"
)

// ProfileResult describes the outcome of an EnsurePath call.
type ProfileResult struct {
	State   ProfileState
	Profile string
	Message string
}

// ProfileUpdater persists PATH changes for the managed runtime into the
// user's shell profile.
type ProfileUpdater interface {
	EnsurePath(binDir string) (ProfileResult, error)
}
