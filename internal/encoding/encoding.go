// Package encoding packs fixed-width samples into little-endian slots.
//
// WriteSample uses unsafe native-endian writes and is only correct when
// NativeLittleEndian is true. WriteSampleGeneric and ReadSample are portable.
package encoding

import "unsafe"

// NativeLittleEndian reports whether the host stores integers
// least-significant byte first.
var NativeLittleEndian = func() bool {
	x := uint16(1)
	return *(*byte)(unsafe.Pointer(&x)) == 1
}()

// SampleSize returns the slot size in bytes for samples of the given bit
// width. Only 8, 16, 32 and 64 are supported.
func SampleSize(width uint) (int, bool) {
	switch width {
	case 8, 16, 32, 64:
		return int(width / 8), true
	}
	return 0, false
}

// WriteSample stores the low size bytes of v as slot pos of the buffer
// starting at basePtr.
//
// Only supports size 1, 2, 4 and 8; panics for other sizes. When inlined at
// call sites that pass a constant size, the compiler eliminates the unused
// switch branches.
func WriteSample(basePtr unsafe.Pointer, pos, size int, v uint64) {
	switch size {
	case 1:
		*(*uint8)(unsafe.Add(basePtr, pos)) = uint8(v)
	case 2:
		*(*uint16)(unsafe.Add(basePtr, pos*2)) = uint16(v)
	case 4:
		*(*uint32)(unsafe.Add(basePtr, pos*4)) = uint32(v)
	case 8:
		*(*uint64)(unsafe.Add(basePtr, pos*8)) = v
	default:
		panic("encoding: WriteSample: unsupported size")
	}
}

// WriteSampleGeneric stores the low size bytes of v little-endian at slot
// pos of buf. Any size from 1 to 8 is accepted.
func WriteSampleGeneric(buf []byte, pos, size int, v uint64) {
	off := pos * size
	for i := range size {
		buf[off+i] = byte(v >> (i * 8))
	}
}

// ReadSample reads the little-endian sample at slot pos of buf.
// This is the safe read counterpart to WriteSample/WriteSampleGeneric.
func ReadSample(buf []byte, pos, size int) uint64 {
	off := pos * size
	var v uint64
	for i := range size {
		v |= uint64(buf[off+i]) << (i * 8)
	}
	return v
}
