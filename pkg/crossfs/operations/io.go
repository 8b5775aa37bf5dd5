package operations

import (
	"bytes"

	"github.com/arthur-debert/crossfs/pkg/crossfs/filesystem"
)

// Read returns the whole content of file.
func Read(fsys filesystem.FileSystem, file string) ([]byte, error) {
	return fsys.ReadAt(file, 0, -1)
}

// ReadRange returns at most length bytes of file starting at start.
func ReadRange(fsys filesystem.FileSystem, file string, start, length int64) ([]byte, error) {
	return fsys.ReadAt(file, start, length)
}

// ReadSplit returns the content of file split at every delim. A trailing
// delimiter does not produce an empty last element.
func ReadSplit(fsys filesystem.FileSystem, file string, delim byte) ([]string, error) {
	data, err := Read(fsys, file)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return []string{}, nil
	}
	data = bytes.TrimSuffix(data, []byte{delim})

	parts := bytes.Split(data, []byte{delim})
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = string(p)
	}
	return out, nil
}

// Write replaces the content of file, creating it and its parent
// directories as needed.
func Write(fsys filesystem.FileSystem, file string, data []byte, opts ...Options) error {
	return write(fsys, file, data, false, resolve(opts))
}

// Append adds data to the end of file, creating it and its parent
// directories as needed.
func Append(fsys filesystem.FileSystem, file string, data []byte, opts ...Options) error {
	return write(fsys, file, data, true, resolve(opts))
}

func write(fsys filesystem.FileSystem, file string, data []byte, appending bool, o Options) error {
	if err := mkdirParent(fsys, file, o); err != nil {
		return err
	}
	return fsys.WriteFile(file, data, o.FileMode, appending)
}
