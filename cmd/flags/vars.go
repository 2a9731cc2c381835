package flags

// Global
var (
	Dev bool

	LogStd bool

	DisableLogColor bool

	DataDir string

	EnvNoPrefix bool

	SkipConfig bool

	SkipEnv bool

	// Ephemeral keeps the account in process memory instead of the database.
	Ephemeral bool
)

// Server
var (
	DisableRateLimit bool
)

const ENV_PREFIX = "WATCHBILI_"
