package flash

import (
	"github.com/pkg/errors"

	"github.com/moffa90/go-eeemul/layout"
)

// region is the address window shared by all devices.
type region struct {
	base     uint32
	size     uint32
	pageSize uint32
}

// Base returns the first address of the device.
func (r region) Base() uint32 { return r.base }

// Size returns the device size in bytes.
func (r region) Size() uint32 { return r.size }

// PageSize returns the erase granularity in bytes.
func (r region) PageSize() uint32 { return r.pageSize }

// offset translates an absolute address range into an offset from base.
func (r region) offset(addr uint32, n int) (uint32, error) {
	if addr < r.base || uint64(addr-r.base)+uint64(n) > uint64(r.size) {
		return 0, errors.Wrapf(ErrOutOfRange, "0x%08X+%d (device 0x%08X+%d)", addr, n, r.base, r.size)
	}
	return addr - r.base, nil
}

// checkWrite validates a program request.
func (r region) checkWrite(addr uint32, n int) (uint32, error) {
	off, err := r.offset(addr, n)
	if err != nil {
		return 0, err
	}
	if !layout.IsAligned(addr, layout.FlashWidth) || !layout.IsAligned(uint32(n), layout.FlashWidth) {
		return 0, errors.Wrapf(ErrUnaligned, "write 0x%08X+%d", addr, n)
	}
	return off, nil
}

// checkErase validates an erase request.
func (r region) checkErase(addr, length uint32) (uint32, error) {
	off, err := r.offset(addr, int(length))
	if err != nil {
		return 0, err
	}
	if !layout.IsAligned(off, r.pageSize) || !layout.IsAligned(length, r.pageSize) {
		return 0, errors.Wrapf(ErrUnaligned, "erase 0x%08X+%d (page %d)", addr, length, r.pageSize)
	}
	return off, nil
}

// program applies NOR programming semantics of src onto dst in place.
// Unless allowOverwrite is set, every flash word of dst must still be erased.
func program(dst, src []byte, allowOverwrite bool) error {
	if !allowOverwrite {
		for i := range src {
			if dst[i] != layout.ErasedByte {
				word := i - i%layout.FlashWidth
				return errors.Wrapf(ErrNotErased, "word at +%d holds % X", word, dst[word:word+layout.FlashWidth])
			}
		}
	}
	for i := range src {
		dst[i] &= src[i]
	}
	return nil
}

// erase fills p with the erased value.
func erase(p []byte) {
	for i := range p {
		p[i] = layout.ErasedByte
	}
}
