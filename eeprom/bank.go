package eeprom

import (
	"sync"

	"github.com/moffa90/go-eeemul/layout"
)

// bank is the runtime descriptor of one bank.
type bank struct {
	mutex sync.Mutex

	index    int
	disabled bool // configured with size 0 by the last Init
	ready    bool // last Init succeeded

	address     uint32
	geo         layout.Geometry
	maxElements uint32

	// write cursor
	currentPage uint32
	written     uint32
	nextOffset  uint32
}

// BankStats is a snapshot of a bank descriptor.
type BankStats struct {
	Bank         int
	Address      uint32
	PageSize     uint32
	PagesPerPool uint32
	MaxElements  uint32

	// Capacity is the number of element slots in one pool
	Capacity uint32

	CurrentPage     uint32
	WrittenElements uint32
	NextOffset      uint32
}

func (b *bank) configure(address uint32, geo layout.Geometry, maxElements uint32) {
	b.address = address
	b.geo = geo
	b.maxElements = maxElements
	b.resetCursor(0)
}

func (b *bank) reset() {
	b.disabled = false
	b.ready = false
	b.address = 0
	b.geo = layout.Geometry{}
	b.maxElements = 0
	b.resetCursor(0)
}

// resetCursor points the write cursor at the first slot of page.
func (b *bank) resetCursor(page uint32) {
	b.currentPage = page
	b.written = 0
	b.nextOffset = layout.HeaderSize
}

func (b *bank) pageAddress(page uint32) uint32 {
	return b.address + b.geo.PageOffset(page)
}

// freeSlots returns the number of unused slots left in the current pool.
func (b *bank) freeSlots() uint32 {
	free := uint32(0)
	if b.nextOffset < b.geo.PageSize {
		free = (b.geo.PageSize - b.nextOffset) / layout.FlashWidth
	}
	return free + (b.geo.PoolEnd(b.currentPage)-b.currentPage)*b.geo.SlotsPerPage()
}

// poolFull reports whether the next write needs a transfer.
func (b *bank) poolFull() bool {
	return b.written >= b.geo.SlotsPerPool() || b.freeSlots() == 0
}

func (b *bank) stats() BankStats {
	return BankStats{
		Bank:            b.index,
		Address:         b.address,
		PageSize:        b.geo.PageSize,
		PagesPerPool:    b.geo.PagesPerPool,
		MaxElements:     b.maxElements,
		Capacity:        b.geo.SlotsPerPool(),
		CurrentPage:     b.currentPage,
		WrittenElements: b.written,
		NextOffset:      b.nextOffset,
	}
}
