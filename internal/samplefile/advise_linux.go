//go:build linux

package samplefile

import "golang.org/x/sys/unix"

// MADV_POPULATE_WRITE was added in Linux 5.14. Older kernels return EINVAL.
const madvPopulateWrite = 23

// prefaultRegion asks the kernel to populate the sample region for writing.
func prefaultRegion(data []byte) {
	if len(data) == 0 {
		return
	}
	_ = unix.Madvise(data, madvPopulateWrite)
}

// fadviseSequential hints that a sample file will be replayed front to back.
func fadviseSequential(fd int, length int64) {
	_ = unix.Fadvise(fd, 0, length, unix.FADV_SEQUENTIAL)
}
