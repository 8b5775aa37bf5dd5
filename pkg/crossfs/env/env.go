// Package env answers questions about the host environment: who is running,
// where their home and temporary directories are and which drives exist.
package env

import (
	"os"
	"os/user"
	"runtime"

	"github.com/adrg/xdg"
	"github.com/google/uuid"

	"github.com/arthur-debert/crossfs/pkg/crossfs/path"
)

// Root returns the root of the system drive: "/" on POSIX hosts and the
// system drive such as "C:\" on Windows.
func Root() string {
	if runtime.GOOS == "windows" {
		if d := os.Getenv("SystemDrive"); d != "" {
			return d + `\`
		}
		return `C:\`
	}
	return "/"
}

// User returns the login name of the current user, or "" when it cannot be
// determined.
func User() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return os.Getenv("USERNAME")
}

// Home returns the current user's home directory.
func Home() string {
	return xdg.Home
}

// HomeOf returns the home directory of the named user, or "" when there is
// no such user.
func HomeOf(name string) string {
	u, err := user.Lookup(name)
	if err != nil {
		return ""
	}
	return u.HomeDir
}

// Tmp returns the directory for temporary files.
func Tmp() string {
	return os.TempDir()
}

// Cwd returns the working directory, or "" if it was removed.
func Cwd() string {
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}

// Sep returns the separator the host prefers.
func Sep() string {
	return string(path.HostSep)
}

// UUID returns a new random (version 4) UUID in its canonical form.
func UUID() string {
	return uuid.NewString()
}

// TempPath returns a path in Tmp that does not exist yet, named prefix
// followed by a UUID. Nothing is created.
func TempPath(prefix string) string {
	return path.Join(Tmp(), prefix+uuid.NewString())
}

// Drives returns the roots of all mounted drives. POSIX hosts have the
// single root "/".
func Drives() []string {
	if runtime.GOOS != "windows" {
		return []string{"/"}
	}
	var drives []string
	for c := 'A'; c <= 'Z'; c++ {
		d := string(c) + `:\`
		if _, err := os.Stat(d); err == nil {
			drives = append(drives, d)
		}
	}
	return drives
}
