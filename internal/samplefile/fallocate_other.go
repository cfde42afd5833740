//go:build !linux && !darwin

package samplefile

import "os"

// fallocateFile sets the file size. Blocks may be allocated lazily.
func fallocateFile(file *os.File, size int64) error {
	return file.Truncate(size)
}
