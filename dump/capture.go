package dump

import (
	"fmt"

	"github.com/moffa90/go-eeemul/layout"
)

// Reader reads flash content.
type Reader interface {
	Read(addr uint32, p []byte) error
}

// Device programs and erases flash.
type Device interface {
	Write(addr uint32, p []byte) error
	Erase(addr, length uint32) error
}

// Capture reads pages consecutive pages starting at base.
func Capture(r Reader, base, pageSize, pages uint32) (*Image, error) {
	if pageSize == 0 || pageSize > 0xFFFF || pageSize%layout.FlashWidth != 0 {
		return nil, fmt.Errorf("invalid page size: %d", pageSize)
	}
	if !layout.IsAligned(base, pageSize) {
		return nil, fmt.Errorf("base address 0x%08X is not aligned to the page size", base)
	}
	if pages == 0 || pages > MaxPages {
		return nil, fmt.Errorf("invalid page count: %d", pages)
	}

	img := &Image{
		BaseAddress: base,
		PageSize:    pageSize,
		Pages:       make([]*Page, 0, pages),
	}
	for i := uint32(0); i < pages; i++ {
		p := &Page{
			Index: uint16(i),
			Data:  make([]byte, pageSize),
		}
		if err := r.Read(img.Address(p), p.Data); err != nil {
			return nil, fmt.Errorf("failed to read page %d: %w", i, err)
		}
		p.Checksum = encodeRow(p)[RowHeaderSize+pageSize]
		img.Pages = append(img.Pages, p)
	}
	return img, nil
}

// Restore erases every page of img on dev and programs its content back.
// Pages that were erased when captured are only erased.
func (img *Image) Restore(dev Device) error {
	if err := img.Validate(); err != nil {
		return fmt.Errorf("invalid image: %w", err)
	}

	for _, p := range img.Pages {
		addr := img.Address(p)
		if err := dev.Erase(addr, img.PageSize); err != nil {
			return fmt.Errorf("failed to erase page %d at 0x%08X: %w", p.Index, addr, err)
		}
		if isErased(p.Data) {
			continue
		}
		if err := dev.Write(addr, p.Data); err != nil {
			return fmt.Errorf("failed to program page %d at 0x%08X: %w", p.Index, addr, err)
		}
	}
	return nil
}
