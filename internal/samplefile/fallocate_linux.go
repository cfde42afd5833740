//go:build linux

package samplefile

import (
	"os"

	"golang.org/x/sys/unix"
)

// fallocateFile reserves disk blocks so that stores into the mapping cannot
// SIGBUS when the disk fills up.
func fallocateFile(file *os.File, size int64) error {
	if err := unix.Fallocate(int(file.Fd()), 0, 0, size); err != nil {
		// tmpfs on old kernels and some network filesystems
		return unix.Ftruncate(int(file.Fd()), size)
	}
	return unix.Ftruncate(int(file.Fd()), size)
}
