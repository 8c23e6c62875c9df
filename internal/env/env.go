package env

// Set at build time through -ldflags.
var (
	Version    = "dev"
	CommitHash = "none"
	BuildTime  = "unknown"
)
