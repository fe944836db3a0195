//go:build linux

package source

import (
	"os"

	"golang.org/x/sys/unix"
)

// prepare rejects directories and tells the kernel the file is read once,
// front to back.
func prepare(f *os.File) error {
	fd := int(f.Fd())

	var stat unix.Stat_t
	if err := unix.Fstat(fd, &stat); err != nil {
		return &os.PathError{Op: "fstat", Path: f.Name(), Err: err}
	}
	if stat.Mode&unix.S_IFMT == unix.S_IFDIR {
		return &os.PathError{Op: "read", Path: f.Name(), Err: ErrDirectory}
	}

	// ESPIPE on fifos and character devices; the hint is optional.
	unix.Fadvise(fd, 0, 0, unix.FADV_SEQUENTIAL)
	return nil
}
