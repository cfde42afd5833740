// Package samplefile stores recorded generator output on disk so that runs
// can be replayed and audited later.
//
// A file is a fixed 64-byte header, a packed little-endian sample region,
// and a 16-byte footer of xxHash64 checksums. Writers and readers both work
// through a memory mapping; samples are never copied through a user buffer.
package samplefile

import (
	"encoding/binary"
	"math"

	"github.com/tamirms/boundedrand"
	brerrors "github.com/tamirms/boundedrand/errors"
	"github.com/tamirms/boundedrand/engine"
	"github.com/tamirms/boundedrand/extmul"
	"github.com/tamirms/boundedrand/internal/encoding"
	"github.com/tamirms/boundedrand/internal/order"
)

const (
	// "BRSF" in little-endian
	magic = uint32(0x46535242)

	version = uint16(0x0001)

	// HeaderSize is the size of the serialized header.
	HeaderSize = 64

	// FooterSize is the size of the serialized footer.
	FooterSize = 16

	flagSigned = 1 << 0

	// maxMapSize bounds a mapping so its length fits in an int.
	maxMapSize = math.MaxInt
)

// Header describes the stream recorded in a sample file.
//
// Layout:
//
//	Offset  Size  Field     Type
//	0       4     Magic     0x46535242 ("BRSF")
//	4       2     Version   0x0001
//	6       1     Width     uint8 (8, 16, 32 or 64)
//	7       1     Flags     uint8 (bit0 = signed)
//	8       1     Variant   uint8
//	9       1     Strategy  uint8
//	10      1     Family    uint8
//	11      5     Reserved  (zero)
//	16      8     Low       uint64_le (raw bits)
//	24      8     High      uint64_le (raw bits)
//	32      8     Count     uint64_le
//	40      8     SeedHi    uint64_le
//	48      8     SeedLo    uint64_le
//	56      8     Reserved  (zero)
type Header struct {
	Width    uint8
	Signed   bool
	Variant  boundedrand.Variant
	Strategy extmul.Strategy
	Family   engine.Family

	// Low and High are the range bounds as raw two's complement bits
	// truncated to Width.
	Low, High uint64

	Count uint64
	Seed  engine.Seed
}

// Domain returns the integer domain of the recorded samples.
func (h Header) Domain() order.Domain {
	return order.NewDomain(uint(h.Width), h.Signed)
}

// sampleSize returns bytes per sample.
func (h *Header) sampleSize() int {
	size, _ := encoding.SampleSize(uint(h.Width))
	return size
}

// validate checks the fields a writer is given or a reader decodes.
func (h *Header) validate() error {
	if _, ok := encoding.SampleSize(uint(h.Width)); !ok {
		return brerrors.ErrInvalidWidth
	}
	if h.Variant.String() == "unknown" || h.Strategy.String() == "unknown" || h.Family.String() == "unknown" {
		return brerrors.ErrCorruptedFile
	}
	d := h.Domain()
	if h.Low&^d.Mask != 0 || h.High&^d.Mask != 0 {
		return brerrors.ErrCorruptedFile
	}
	if d.Transpose(h.Low) > d.Transpose(h.High) {
		return brerrors.ErrInvalidRange
	}
	return nil
}

// encodeTo serializes the header to an existing buffer.
func (h *Header) encodeTo(buf []byte) {
	binary.LittleEndian.PutUint32(buf[0:4], magic)
	binary.LittleEndian.PutUint16(buf[4:6], version)
	buf[6] = h.Width
	var flags uint8
	if h.Signed {
		flags |= flagSigned
	}
	buf[7] = flags
	buf[8] = uint8(h.Variant)
	buf[9] = uint8(h.Strategy)
	buf[10] = uint8(h.Family)
	clear(buf[11:16])
	binary.LittleEndian.PutUint64(buf[16:24], h.Low)
	binary.LittleEndian.PutUint64(buf[24:32], h.High)
	binary.LittleEndian.PutUint64(buf[32:40], h.Count)
	binary.LittleEndian.PutUint64(buf[40:48], h.Seed.Hi)
	binary.LittleEndian.PutUint64(buf[48:56], h.Seed.Lo)
	clear(buf[56:64])
}

// decodeHeader parses a 64-byte header.
func decodeHeader(buf []byte) (Header, error) {
	if len(buf) < HeaderSize {
		return Header{}, brerrors.ErrTruncatedFile
	}
	if binary.LittleEndian.Uint32(buf[0:4]) != magic {
		return Header{}, brerrors.ErrInvalidMagic
	}
	if binary.LittleEndian.Uint16(buf[4:6]) != version {
		return Header{}, brerrors.ErrInvalidVersion
	}
	flags := buf[7]
	if flags&^flagSigned != 0 {
		return Header{}, brerrors.ErrCorruptedFile
	}

	h := Header{
		Width:    buf[6],
		Signed:   flags&flagSigned != 0,
		Variant:  boundedrand.Variant(buf[8]),
		Strategy: extmul.Strategy(buf[9]),
		Family:   engine.Family(buf[10]),
		Low:      binary.LittleEndian.Uint64(buf[16:24]),
		High:     binary.LittleEndian.Uint64(buf[24:32]),
		Count:    binary.LittleEndian.Uint64(buf[32:40]),
		Seed: engine.Seed{
			Hi: binary.LittleEndian.Uint64(buf[40:48]),
			Lo: binary.LittleEndian.Uint64(buf[48:56]),
		},
	}
	if err := h.validate(); err != nil {
		if err == brerrors.ErrInvalidRange {
			return Header{}, brerrors.ErrCorruptedFile
		}
		return Header{}, err
	}
	return h, nil
}

// footer is the 16-byte file footer.
//
//	Offset  Size  Field       Type
//	0       8     SampleHash  uint64_le (xxHash64 of the sample region)
//	8       8     HeaderHash  uint64_le (xxHash64 of the header)
type footer struct {
	SampleHash uint64
	HeaderHash uint64
}

func (f *footer) encodeTo(buf []byte) {
	binary.LittleEndian.PutUint64(buf[0:8], f.SampleHash)
	binary.LittleEndian.PutUint64(buf[8:16], f.HeaderHash)
}

func decodeFooter(buf []byte) (footer, error) {
	if len(buf) < FooterSize {
		return footer{}, brerrors.ErrTruncatedFile
	}
	return footer{
		SampleHash: binary.LittleEndian.Uint64(buf[0:8]),
		HeaderHash: binary.LittleEndian.Uint64(buf[8:16]),
	}, nil
}
