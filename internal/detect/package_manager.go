package detect

import (
	"os"
	"path/filepath"
)

// PackageManager is the JavaScript package manager used by a project.
type PackageManager string

const (
	NPM  PackageManager = "npm"
	Yarn PackageManager = "yarn"
	PNPM PackageManager = "pnpm"
	Bun  PackageManager = "bun"
)

type lockFile struct {
	name string
	pm   PackageManager
}

// lockFiles is checked in order; the first one present wins.
var lockFiles = []lockFile{
	{name: "bun.lockb", pm: Bun},
	{name: "bun.lock", pm: Bun},
	{name: "pnpm-lock.yaml", pm: PNPM},
	{name: "yarn.lock", pm: Yarn},
	{name: "package-lock.json", pm: NPM},
}

// LockFileNames returns every lock file the detector knows about.
func LockFileNames() []string {
	names := make([]string, len(lockFiles))
	for i, lf := range lockFiles {
		names[i] = lf.name
	}
	return names
}

// DetectPackageManager picks the package manager from the lock file found in
// dir, falling back to npm.
func DetectPackageManager(dir string) PackageManager {
	for _, lf := range lockFiles {
		if _, err := os.Stat(filepath.Join(dir, lf.name)); err == nil {
			return lf.pm
		}
	}
	return NPM
}

func (pm PackageManager) String() string {
	return string(pm)
}

// AddDevArgs returns the command that adds deps as dev dependencies.
func (pm PackageManager) AddDevArgs(deps []string) (string, []string) {
	var args []string
	switch pm {
	case Yarn, PNPM, Bun:
		args = []string{"add", "-D"}
	default:
		pm = NPM
		args = []string{"install", "-D"}
	}
	return string(pm), append(args, deps...)
}

// RunScript returns the command line that runs a package.json script.
func (pm PackageManager) RunScript(script string) string {
	return string(pm) + " run " + script
}
