package layout

import "golang.org/x/exp/constraints"

// Geometry describes the page organisation of one bank.
type Geometry struct {
	// PageSize is the flash page size in bytes
	PageSize uint32

	// PagesPerPool is the number of pages in each of the two pools
	PagesPerPool uint32
}

// GeometryForBank derives the geometry of a bank of bankSize bytes.
// The bank must hold an even, non-zero number of pages.
func GeometryForBank(bankSize, pageSize uint32) (Geometry, error) {
	g := Geometry{PageSize: pageSize}
	if pageSize == 0 || !IsAligned(bankSize, 2*pageSize) {
		return g, &GeometryError{
			Field:  "bank size",
			Value:  bankSize,
			Reason: "must be a multiple of two pages",
		}
	}
	g.PagesPerPool = bankSize / (2 * pageSize)
	return g, g.Validate()
}

// Validate checks that the geometry can hold at least one record per page.
func (g Geometry) Validate() error {
	if g.PageSize <= HeaderSize || !IsAligned(g.PageSize, uint32(FlashWidth)) {
		return &GeometryError{
			Field:  "page size",
			Value:  g.PageSize,
			Reason: "must be a multiple of the flash width larger than the page header",
		}
	}
	if g.PagesPerPool == 0 {
		return &GeometryError{
			Field:  "pages per pool",
			Value:  g.PagesPerPool,
			Reason: "must be at least 1",
		}
	}
	return nil
}

// SlotsPerPage returns the number of element slots following the header.
func (g Geometry) SlotsPerPage() uint32 {
	return (g.PageSize - HeaderSize) / FlashWidth
}

// SlotsPerPool returns the number of element slots in one pool.
func (g Geometry) SlotsPerPool() uint32 {
	return g.SlotsPerPage() * g.PagesPerPool
}

// PageCount returns the number of pages in the bank (both pools).
func (g Geometry) PageCount() uint32 {
	return 2 * g.PagesPerPool
}

// BankSize returns the bank size in bytes.
func (g Geometry) BankSize() uint32 {
	return g.PageCount() * g.PageSize
}

// PoolStart returns the first page of the pool containing page.
func (g Geometry) PoolStart(page uint32) uint32 {
	if page < g.PagesPerPool {
		return 0
	}
	return g.PagesPerPool
}

// PoolEnd returns the last page of the pool containing page.
func (g Geometry) PoolEnd(page uint32) uint32 {
	return g.PoolStart(page) + g.PagesPerPool - 1
}

// OtherPoolStart returns the first page of the pool not containing page.
func (g Geometry) OtherPoolStart(page uint32) uint32 {
	if page < g.PagesPerPool {
		return g.PagesPerPool
	}
	return 0
}

// SlotOffset returns the byte offset of element slot i within a page.
func (g Geometry) SlotOffset(i uint32) uint32 {
	return HeaderSize + i*FlashWidth
}

// PageOffset returns the byte offset of page within the bank.
func (g Geometry) PageOffset(page uint32) uint32 {
	return page * g.PageSize
}

// AlignUp rounds val up to the nearest multiple of align.
func AlignUp[T constraints.Unsigned](val, align T) T {
	return (val + align - 1) / align * align
}

// AlignDown rounds val down to the nearest multiple of align.
func AlignDown[T constraints.Unsigned](val, align T) T {
	return val / align * align
}

// IsAligned checks if val is wholly divisible by align.
func IsAligned[T constraints.Unsigned](val, align T) bool {
	return align != 0 && val%align == 0
}
