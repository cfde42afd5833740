package samplefile

import (
	"errors"
	"fmt"
	"os"
	"unsafe"

	"github.com/cespare/xxhash/v2"
	"github.com/edsrzf/mmap-go"
	brerrors "github.com/tamirms/boundedrand/errors"
	"github.com/tamirms/boundedrand/internal/encoding"
)

// Writer records samples into a new sample file through a writable mapping.
// The file is sized for the capacity given to Create up front and shrunk to
// the samples actually written on Close.
//
// A Writer is not safe for concurrent use.
type Writer struct {
	file *os.File
	mmap mmap.MMap
	data []byte
	base unsafe.Pointer // first byte of the sample region

	header   Header
	size     int // bytes per sample
	capacity uint64
	n        uint64
}

// Create creates path and prepares it to receive up to capacity samples
// described by h. h.Count is ignored; the count written is the number of
// samples appended.
func Create(path string, h Header, capacity uint64) (*Writer, error) {
	if err := h.validate(); err != nil {
		return nil, err
	}
	size := h.sampleSize()
	if capacity > (uint64(maxMapSize)-HeaderSize-FooterSize)/uint64(size) {
		return nil, fmt.Errorf("%w: capacity %d", brerrors.ErrWriterFull, capacity)
	}
	mapSize := HeaderSize + capacity*uint64(size) + FooterSize

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create sample file: %w", err)
	}

	// Pre-allocate disk blocks to prevent SIGBUS on disk full
	if err := fallocateFile(file, int64(mapSize)); err != nil {
		primaryErr := fmt.Errorf("failed to allocate disk space: %w", err)
		return nil, errors.Join(primaryErr, file.Close())
	}

	mm, err := mmap.MapRegion(file, int(mapSize), mmap.RDWR, 0, 0)
	if err != nil {
		primaryErr := fmt.Errorf("failed to mmap file: %w", err)
		return nil, errors.Join(primaryErr, file.Close())
	}

	w := &Writer{
		file:     file,
		mmap:     mm,
		data:     []byte(mm),
		header:   h,
		size:     size,
		capacity: capacity,
	}
	w.base = unsafe.Pointer(&w.data[HeaderSize])
	prefaultRegion(w.data[HeaderSize : HeaderSize+capacity*uint64(size)])
	return w, nil
}

// Append records one sample. Bits above the header width are dropped.
func (w *Writer) Append(v uint64) error {
	if w.mmap == nil {
		return brerrors.ErrWriterClosed
	}
	if w.n == w.capacity {
		return brerrors.ErrWriterFull
	}
	if encoding.NativeLittleEndian {
		encoding.WriteSample(w.base, int(w.n), w.size, v)
	} else {
		encoding.WriteSampleGeneric(w.data[HeaderSize:], int(w.n), w.size, v)
	}
	w.n++
	return nil
}

// Len returns the number of samples appended so far.
func (w *Writer) Len() uint64 { return w.n }

// Close writes the header and footer, flushes the mapping and truncates the
// file to its final size. On error, the file is closed but left in place.
func (w *Writer) Close() error {
	if w.mmap == nil {
		return brerrors.ErrWriterClosed
	}

	end := HeaderSize + w.n*uint64(w.size)
	w.header.Count = w.n
	w.header.encodeTo(w.data[:HeaderSize])
	ftr := footer{
		SampleHash: xxhash.Sum64(w.data[HeaderSize:end]),
		HeaderHash: xxhash.Sum64(w.data[:HeaderSize]),
	}
	ftr.encodeTo(w.data[end : end+FooterSize])

	// Flush dirty pages to file (ensures writes visible before unmap)
	if err := w.mmap.Flush(); err != nil {
		primaryErr := fmt.Errorf("mmap flush failed: %w", err)
		return errors.Join(primaryErr, w.Abort())
	}

	// Unmap before truncate (required order).
	unmapErr := w.mmap.Unmap()
	w.mmap = nil
	if unmapErr != nil {
		primaryErr := fmt.Errorf("mmap unmap failed: %w", unmapErr)
		return errors.Join(primaryErr, w.Abort())
	}

	if err := w.file.Truncate(int64(end + FooterSize)); err != nil {
		primaryErr := fmt.Errorf("truncate failed: %w", err)
		return errors.Join(primaryErr, w.Abort())
	}

	closeErr := w.file.Close()
	w.file = nil
	return closeErr
}

// Abort releases the writer without finalizing the file.
// Idempotent: safe to call multiple times, and after Close.
func (w *Writer) Abort() error {
	var unmapErr error
	if w.mmap != nil {
		unmapErr = w.mmap.Unmap()
		w.mmap = nil
	}
	var closeErr error
	if w.file != nil {
		closeErr = w.file.Close()
		w.file = nil
	}
	return errors.Join(unmapErr, closeErr)
}
