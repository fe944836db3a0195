//go:build !linux

package source

import "os"

func prepare(f *os.File) error {
	f_info, err := f.Stat()
	if err != nil {
		return err
	}
	if f_info.IsDir() {
		return &os.PathError{Op: "read", Path: f.Name(), Err: ErrDirectory}
	}
	return nil
}
