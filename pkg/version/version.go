// Package version reports the hmibroker build.
package version

// Set with -ldflags "-X github.com/carverauto/hmibroker/pkg/version.version=..."
//
//nolint:gochecknoglobals // ldflags injection
var (
	version = "dev"
	commit  = "none"
)

// Version returns the release version.
func Version() string {
	return version
}

// Commit returns the source revision the binary was built from.
func Commit() string {
	return commit
}

// String renders version and commit for logs and -version output.
func String() string {
	return "hmibroker " + version + " (" + commit + ")"
}
