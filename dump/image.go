package dump

import "fmt"

// Image is a captured flash region.
type Image struct {
	// BaseAddress is the flash address of page 0
	BaseAddress uint32

	// PageSize is the size of every page in bytes
	PageSize uint32

	// Pages contains the captured pages
	Pages []*Page
}

// Page is the content of one flash page.
type Page struct {
	// Index is the page number relative to BaseAddress
	Index uint16

	// Data is the raw page content
	Data []byte

	// Checksum is the row checksum (for validation)
	Checksum byte
}

// Address returns the flash address of page p in img.
func (img *Image) Address(p *Page) uint32 {
	return img.BaseAddress + uint32(p.Index)*img.PageSize
}

// Size returns the number of bytes covered by the image.
func (img *Image) Size() uint32 {
	return uint32(len(img.Pages)) * img.PageSize
}

// Page returns the page with the given index, or nil.
func (img *Image) Page(index uint16) *Page {
	for _, p := range img.Pages {
		if p.Index == index {
			return p
		}
	}
	return nil
}

// Validate checks that every page has the image page size and that no index
// is repeated.
func (img *Image) Validate() error {
	if img.PageSize == 0 {
		return fmt.Errorf("page size cannot be zero")
	}
	if len(img.Pages) > MaxPages {
		return fmt.Errorf("too many pages: %d, maximum is %d", len(img.Pages), MaxPages)
	}

	seen := make(map[uint16]bool, len(img.Pages))
	for _, p := range img.Pages {
		if uint32(len(p.Data)) != img.PageSize {
			return fmt.Errorf("page %d: length %d does not match page size %d", p.Index, len(p.Data), img.PageSize)
		}
		if seen[p.Index] {
			return fmt.Errorf("page %d: duplicate page", p.Index)
		}
		seen[p.Index] = true
	}
	return nil
}

// isErased reports whether data only holds erased bytes.
func isErased(data []byte) bool {
	for _, b := range data {
		if b != 0xFF {
			return false
		}
	}
	return true
}
