package sys

import (
	"os"

	"golang.org/x/sys/unix"
)

// Fdatasync flushes file data without forcing a metadata write, the fast
// durable-write path on Linux.
func Fdatasync(f *os.File) error {
	return unix.Fdatasync(int(f.Fd()))
}
