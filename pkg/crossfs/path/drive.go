package path

import (
	"path/filepath"
	"strings"
)

// Seps lists every character accepted as a separator, regardless of host.
const Seps = `/\`

// HostSep is the preferred separator of the running platform.
const HostSep byte = filepath.Separator

// IsSep reports whether c is a path separator.
func IsSep(c byte) bool {
	return c == '/' || c == '\\'
}

// DriveLen returns the length of the drive prefix of p.
//
//	""                    -> 0
//	"file.txt"            -> 0
//	"/usr/local"          -> 1
//	"C:\Windows\System32" -> 3
func DriveLen(p string) int {
	switch {
	case p == "":
		return 0
	case p[0] == '/':
		return 1
	case len(p) >= 3 && isLetter(p[0]) && p[1] == ':' && p[2] == '\\':
		return 3
	}
	return 0
}

// Drive returns the drive prefix of p, or "" for a relative path.
func Drive(p string) string {
	return p[:DriveLen(p)]
}

// IsAbsolute reports whether p has a drive prefix.
func IsAbsolute(p string) bool {
	return DriveLen(p) > 0
}

// IsRelative reports whether p has no drive prefix.
func IsRelative(p string) bool {
	return !IsAbsolute(p)
}

// IsRoot reports whether p consists of nothing but its drive prefix and
// trailing separators.
func IsRoot(p string) bool {
	n := DriveLen(p)
	return n > 0 && strings.TrimLeft(p[n:], Seps) == ""
}

// Sep returns the separator a path is written with. Drive prefixes decide
// first, then the first separator found in p. A path without any separator
// uses HostSep.
//
//	Sep("/bin")               -> '/'
//	Sep("C:\\Windows")        -> '\'
//	Sep("Users\\x/Downloads") -> '\'
//	Sep("bin")                -> HostSep
func Sep(p string) byte {
	switch DriveLen(p) {
	case 1:
		return '/'
	case 3:
		return '\\'
	}
	if i := strings.IndexAny(p, Seps); i >= 0 {
		return p[i]
	}
	return HostSep
}

// Join appends name to dir using the separator dir is written with.
// No separator is added when dir is empty or already ends with one.
func Join(dir, name string) string {
	switch {
	case dir == "":
		return name
	case name == "":
		return dir
	case IsSep(dir[len(dir)-1]):
		return dir + name
	}
	return dir + string(Sep(dir)) + name
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func lastSep(p string) int {
	return strings.LastIndexAny(p, Seps)
}
