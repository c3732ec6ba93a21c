package version

// Version information populated by the build process
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildTime  = "unknown"
	BinaryName = "mackerel-mcp-server"
)

// Info returns formatted version information
func Info() string {
	return BinaryName + " " + Version + " (commit: " + CommitHash + ", built: " + BuildTime + ")"
}

// UserAgent returns the User-Agent sent to the Mackerel API
func UserAgent() string {
	return BinaryName + "/" + Version
}
