package datafile

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// lock takes an exclusive, non-blocking lock on the output file so two
// conversions can't write the same image at once.
func lock(f *os.File) error {
	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		return fmt.Errorf("cannot acquire lock on file %q: %w", f.Name(), err)
	}
	return nil
}

func unlock(f *os.File) error {
	if err := unix.Flock(int(f.Fd()), unix.LOCK_UN); err != nil {
		return fmt.Errorf("cannot unlock lock on file %q: %w", f.Name(), err)
	}
	return nil
}
