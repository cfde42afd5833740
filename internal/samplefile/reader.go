package samplefile

import (
	"errors"
	"fmt"
	"iter"
	"os"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/edsrzf/mmap-go"
	brerrors "github.com/tamirms/boundedrand/errors"
	"github.com/tamirms/boundedrand/internal/encoding"
)

// Reader is a read-only view of a sample file.
//
// Thread Safety:
// - Header, Len, At, All and Verify are safe for concurrent use
// - Close must only be called after all reads have completed
type Reader struct {
	mmap mmap.MMap
	data []byte

	header Header
	size   int
	n      int

	closed atomic.Bool
}

// Open memory-maps the sample file at path and validates its header and
// length. Checksums are only checked by Verify.
func Open(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sample file: %w", err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat sample file: %w", err)
	}
	if stat.Size() < HeaderSize+FooterSize {
		return nil, brerrors.ErrTruncatedFile
	}
	fadviseSequential(int(file.Fd()), stat.Size())

	mm, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mmap sample file: %w", err)
	}
	r := &Reader{mmap: mm}
	if err := r.init([]byte(mm)); err != nil {
		return nil, errors.Join(err, r.Close())
	}
	return r, nil
}

// OpenBytes reads a sample file held in memory. Close is a no-op.
// The caller must not modify data while the Reader is in use.
func OpenBytes(data []byte) (*Reader, error) {
	if len(data) < HeaderSize+FooterSize {
		return nil, brerrors.ErrTruncatedFile
	}
	r := &Reader{}
	if err := r.init(data); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Reader) init(data []byte) error {
	h, err := decodeHeader(data[:HeaderSize])
	if err != nil {
		return err
	}
	size := h.sampleSize()
	body := uint64(len(data) - HeaderSize - FooterSize)
	if h.Count > body/uint64(size) {
		return brerrors.ErrTruncatedFile
	}
	if h.Count*uint64(size) != body {
		return brerrors.ErrCorruptedFile
	}
	r.data = data
	r.header = h
	r.size = size
	r.n = int(h.Count)
	return nil
}

// Header returns the decoded header.
func (r *Reader) Header() Header { return r.header }

// Len returns the number of samples in the file.
func (r *Reader) Len() int { return r.n }

// At returns sample i as raw bits. It panics if i is out of range.
func (r *Reader) At(i int) uint64 {
	if i < 0 || i >= r.n {
		panic(fmt.Sprintf("samplefile: index %d out of range [0, %d)", i, r.n))
	}
	return encoding.ReadSample(r.data[HeaderSize:], i, r.size)
}

// All yields every sample in file order. A closed Reader yields nothing.
func (r *Reader) All() iter.Seq2[int, uint64] {
	return func(yield func(int, uint64) bool) {
		if r.n == 0 {
			return
		}
		samples := r.data[HeaderSize : HeaderSize+r.n*r.size]
		for i := 0; i < r.n; i++ {
			if !yield(i, encoding.ReadSample(samples, i, r.size)) {
				return
			}
		}
	}
}

// Verify checks the header and sample region against the footer checksums.
func (r *Reader) Verify() error {
	if r.closed.Load() {
		return brerrors.ErrReaderClosed
	}
	end := HeaderSize + r.n*r.size
	ft, err := decodeFooter(r.data[end:])
	if err != nil {
		return err
	}
	if xxhash.Sum64(r.data[:HeaderSize]) != ft.HeaderHash {
		return brerrors.ErrChecksumFailed
	}
	if xxhash.Sum64(r.data[HeaderSize:end]) != ft.SampleHash {
		return brerrors.ErrChecksumFailed
	}
	return nil
}

// Close releases the mapping. Afterwards Len reports zero.
func (r *Reader) Close() error {
	if r.closed.Swap(true) {
		return nil
	}
	r.n = 0
	r.data = nil
	if r.mmap != nil {
		err := r.mmap.Unmap()
		r.mmap = nil
		return err
	}
	return nil
}
