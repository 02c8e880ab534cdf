package structures

const (
	ModeTest   = "test"
	ModeReview = "review"
)

// CliFlags carries everything the command line decided before config is loaded.
type CliFlags struct {
	ConfigPath string
	DebugMode  bool
	Mode       string
	// Directory overrides snapshots.root when set.
	Directory string
	AcceptAll bool
}
