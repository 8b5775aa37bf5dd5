package path

import (
	"strings"

	"github.com/adrg/xdg"
)

// Expand replaces a leading "~" with the home directory of the current user.
//
//	""     -> ""
//	"~"    -> home
//	"~/go" -> home + "/go"
//	"~xxx" -> "~xxx", the tilde is part of the name
func Expand(p string) string {
	return ExpandWithHome(p, xdg.Home)
}

// ExpandWithHome is Expand with an explicit home directory. An empty home
// leaves p unchanged.
func ExpandWithHome(p, home string) string {
	if p == "" || p[0] != '~' || home == "" {
		return p
	}
	if len(p) > 1 && !IsSep(p[1]) {
		return p
	}
	return home + p[1:]
}

// Prune removes trailing separators from p while keeping its drive prefix.
//
//	"/usr/local//" -> "/usr/local"
//	"//"           -> "/"
//	"C:\\"         -> "C:\"
func Prune(p string) string {
	n := DriveLen(p)
	return p[:n] + strings.TrimRight(p[n:], Seps)
}

// Normalize returns the lexically simplest form of p. A leading "~" is
// expanded, "." components are dropped, ".." removes the preceding component
// and runs of separators collapse into the first one. The filesystem is never
// consulted, so symbolic links are not taken into account.
//
// A ".." directly after a drive prefix is dropped, because nothing lies above
// the root. In a relative path a ".." with nothing left to cancel is kept, so
// "a/../../b" becomes "../b". Only the exact name ".." refers to the parent;
// "..." is an ordinary name.
func Normalize(p string) string {
	return NormalizeWithHome(p, xdg.Home)
}

// NormalizeWithHome is Normalize with an explicit home directory used for
// "~" expansion.
func NormalizeWithHome(p, home string) string {
	p = ExpandWithHome(p, home)

	var drive string
	segments := make([]string, 0, 8)
	first := true

	Tokenize(p, func(t Token) {
		if first {
			drive, first = t.Text, false
			return
		}

		switch t.Text {
		case ".":
			return
		case "..":
			if len(segments) == 0 {
				// a root can't be backtracked, a relative start keeps the ".."
				if drive == "" {
					segments = append(segments, t.String())
				}
				return
			}
			if strings.TrimRight(segments[len(segments)-1], Seps) == ".." {
				segments = append(segments, t.String())
				return
			}
			segments = segments[:len(segments)-1]
			return
		}

		segments = append(segments, t.String())
	})

	return Prune(drive + strings.Join(segments, ""))
}

// IsWithin reports whether p is dir or lies below it, comparing the
// normalized forms of both. Separator styles may differ between the two.
func IsWithin(p, dir string) bool {
	p = NormalizeWithHome(p, "")
	dir = NormalizeWithHome(dir, "")
	if Drive(p) != Drive(dir) {
		return false
	}

	pc, dc := Components(p), Components(dir)
	if len(pc) < len(dc) {
		return false
	}
	for i := range dc {
		if pc[i] != dc[i] {
			return false
		}
	}
	return true
}
