package version

// Version is the current release of husky-installer.
// Bump it on every release.
const Version = "1.2.0"

// FullVersion returns the version with the v prefix
func FullVersion() string {
	return "v" + Version
}
