package platform

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/notes/pkg/adapters/fs"
)

// DevDirName is the directory under os.TempDir() used by the dev sandbox.
const DevDirName = "notes-dev"

// IsDevRun checks if the current process is running via `go run` or `go test`.
func IsDevRun() bool {
	exe, err := os.Executable()
	if err != nil {
		return false
	}

	// go run builds into the system temp directory.
	if strings.HasPrefix(strings.ToLower(exe), strings.ToLower(os.TempDir())) {
		return true
	}

	return strings.HasSuffix(exe, ".test") || strings.HasSuffix(exe, ".test.exe")
}

// DefaultStatePath returns ~/.config/notes/notesStore.json, or the file name
// alone when the home directory is unknown.
func DefaultStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return fs.DefaultFileName
	}
	return filepath.Join(home, ".config", "notes", fs.DefaultFileName)
}

// DefaultBadgerPath returns the database directory used by the badger backend.
func DefaultBadgerPath() string {
	return filepath.Join(filepath.Dir(DefaultStatePath()), "badger")
}

// ResolveStatePath determines the actual state location. When forceTemp is
// set, paths outside the system temp directory are re-rooted into
// os.TempDir()/notes-dev so dev runs never touch the user's real state.
func ResolveStatePath(userPath string, forceTemp bool) string {
	if userPath == "" {
		userPath = DefaultStatePath()
	}
	if !forceTemp {
		return userPath
	}

	clean := filepath.Clean(userPath)
	if abs, err := filepath.Abs(clean); err == nil {
		clean = abs
	}
	rel, err := filepath.Rel(os.TempDir(), clean)
	if err == nil && !strings.HasPrefix(rel, "..") {
		return clean
	}

	name := filepath.Base(clean)
	if name == "." || name == string(os.PathSeparator) {
		name = fs.DefaultFileName
	}
	return filepath.Join(os.TempDir(), DevDirName, name)
}
