//go:build darwin

package samplefile

import (
	"os"

	"golang.org/x/sys/unix"
)

// fallocateFile reserves disk blocks so that stores into the mapping cannot
// SIGBUS when the disk fills up. F_PREALLOCATE only reserves space, so the
// size is still set with ftruncate.
func fallocateFile(file *os.File, size int64) error {
	fst := unix.Fstore_t{
		Flags:   unix.F_ALLOCATEALL,
		Posmode: unix.F_PEOFPOSMODE,
		Length:  size,
	}
	_ = unix.FcntlFstore(file.Fd(), unix.F_PREALLOCATE, &fst)
	return unix.Ftruncate(int(file.Fd()), size)
}
