package path

import "strings"

// Dirname returns everything before the last separator of p that is not part
// of the drive prefix, without trailing separators. Roots are their own
// dirname and a bare name has an empty one.
//
//	"/usr/"                  -> "/"
//	"/usr/."                 -> "/usr"
//	"./usr"                  -> "."
//	"C:\Windows\System32"    -> "C:\Windows"
//	"C:\"                    -> "C:\"
//	"file.txt"               -> ""
func Dirname(p string) string {
	drive := Drive(p)
	rest := strings.TrimRight(p[len(drive):], Seps)

	i := lastSep(rest)
	if i < 0 {
		return drive
	}
	return drive + strings.TrimRight(rest[:i], Seps)
}

// Basename returns the last component of p, ignoring trailing separators.
// Roots have an empty basename. When suffixes are given, the first one that
// ends the name (and is not the whole name) is removed from it.
//
//	"/home/"                     -> "home"
//	"C:\Windows\System32\cmd.exe" -> "cmd.exe"
//	Basename("file.txt", ".txt") -> "file"
func Basename(p string, suffixes ...string) string {
	rest := strings.TrimRight(p[DriveLen(p):], Seps)
	base := rest[lastSep(rest)+1:]

	for _, suffix := range suffixes {
		if suffix != "" && suffix != base && strings.HasSuffix(base, suffix) {
			return base[:len(base)-len(suffix)]
		}
	}
	return base
}

// Stem returns the basename of p without its extension.
func Stem(p string) string {
	base := Basename(p)
	return base[:len(base)-len(Extname(base))]
}

// Extname returns the extension of p including the dot: the text from the
// last '.' after the last separator. Names that start with their only dot,
// or consist only of dots, have no extension.
//
//	"file.txt" -> ".txt"
//	"file"     -> ""
//	"/home/"   -> ""
//	".bashrc"  -> ""
func Extname(p string) string {
	name := p[lastSep(p)+1:]

	i := strings.LastIndexByte(name, '.')
	if i <= 0 || strings.Trim(name, ".") == "" {
		return ""
	}
	return name[i:]
}

// ExtnameNoDot returns Extname without the leading dot.
func ExtnameNoDot(p string) string {
	return strings.TrimPrefix(Extname(p), ".")
}
