// Package path implements lexical path algebra for both POSIX-style ("/usr/bin")
// and Windows-style ("C:\Windows") paths, on any host platform.
//
// Nothing in this package touches the filesystem. Every function accepts any
// string, however malformed, and returns a deterministic result. Both '/' and
// '\' are treated as separators, so mixed input such as "C:\Windows/System32"
// is accepted, and the separator written by the caller is preserved where a
// segment survives normalization.
//
// The drive (or root) prefix of a path is "/" for POSIX absolute paths,
// "X:\" for Windows absolute paths and empty for relative paths. The prefix is
// never removed by ".." and never collapsed with following separators.
//
//	Normalize("a/../../b")        // "../b"
//	Normalize("C:\\a\\..\\..\\b") // "C:\b"
//	Dirname("/usr/")              // "/"
//	Basename("/home/")            // "home"
//	Extname("cmd.exe")            // ".exe"
package path
