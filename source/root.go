package source

import (
	"os"
	"path/filepath"
)

// StaticRoot is a fixed project root. The empty string means no project.
type StaticRoot string

// Root implements assembler.RootResolver.
func (s StaticRoot) Root() (string, bool) {
	return string(s), s != ""
}

// WorkDirRoot resolves the project root to the process working directory.
type WorkDirRoot struct{}

// Root implements assembler.RootResolver.
func (WorkDirRoot) Root() (string, bool) {
	wd, err := os.Getwd()
	if err != nil {
		return "", false
	}
	return wd, true
}

// DefaultRootMarkers are the entries that identify a project root.
var DefaultRootMarkers = []string{".git", "go.mod", "package.json", ".brackets.json"}

// DetectRoot walks up from dir looking for any of markers and returns the
// first directory containing one. With no markers, DefaultRootMarkers is
// used. It returns "" when nothing is found.
func DetectRoot(dir string, markers ...string) StaticRoot {
	if len(markers) == 0 {
		markers = DefaultRootMarkers
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}

	for {
		for _, m := range markers {
			if _, err := os.Stat(filepath.Join(abs, m)); err == nil {
				return StaticRoot(abs)
			}
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return ""
		}
		abs = parent
	}
}
