package tempfile

import (
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

// subdirectory used by the home and working directory fallbacks
const extsortTempDirName = ".extsort"

var (
	resolveOnce sync.Once
	diskDir     string // best location that is likely not tmpfs
	anyDir      string // best location when memory backed storage is acceptable
)

// GetTempDir returns the directory new stores are created in.
// A non-empty dir is returned as is when it is usable.
// Otherwise a default is chosen once per process: with preferDiskBacked set,
// locations that are traditionally disk backed (like /var/tmp) are tried before os.TempDir().
// The returned directory may not exist yet.
func GetTempDir(dir string, preferDiskBacked bool) string {
	if dir != "" && isDirectoryUsable(dir) {
		return dir
	}
	resolveOnce.Do(func() {
		diskDir = firstUsable(candidates(true))
		anyDir = firstUsable(candidates(false))
	})
	if preferDiskBacked {
		return diskDir
	}
	return anyDir
}

func firstUsable(dirs []string) string {
	for _, d := range dirs {
		if isDirectoryUsable(d) {
			return d
		}
	}
	return os.TempDir()
}

// candidates lists default locations in order of preference.
func candidates(preferDiskBacked bool) []string {
	var dirs []string
	if preferDiskBacked {
		dirs = append(dirs, diskBackedCandidates()...)
	}
	dirs = append(dirs, os.TempDir())
	return append(dirs, fallbackCandidates()...)
}

// diskBackedCandidates returns locations that are unlikely to be memory backed.
func diskBackedCandidates() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{"/var/tmp", "/private/var/tmp"}
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly", "solaris":
		return []string{"/var/tmp"}
	default:
		// windows temp dirs are disk backed already
		return nil
	}
}

// fallbackCandidates returns process owned subdirectories of the home and working directories.
func fallbackCandidates() []string {
	var dirs []string
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, extsortTempDirName))
	}
	if wd, err := os.Getwd(); err == nil {
		dirs = append(dirs, filepath.Join(wd, extsortTempDirName))
	}
	return dirs
}

// isDirectoryUsable reports whether dir is an existing directory or does not exist yet.
// Writability is left to the caller creating files in it.
func isDirectoryUsable(dir string) bool {
	stat, err := os.Stat(dir)
	if err != nil {
		return os.IsNotExist(err)
	}
	return stat.IsDir()
}
