package eeprom

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/moffa90/go-eeemul/layout"
)

// readFlash reads len(p) bytes at addr.
func (e *Engine) readFlash(addr uint32, p []byte) error {
	if err := e.device.Read(addr, p); err != nil {
		return &FlashError{Op: OpRead, Address: addr, Length: uint32(len(p)), Err: err}
	}
	return nil
}

// programWord writes one flash word, reading it back when verification is
// enabled.
func (e *Engine) programWord(addr uint32, word uint64) error {
	buf := layout.WordBytes(word)
	if err := e.device.Write(addr, buf); err != nil {
		return &FlashError{Op: OpWrite, Address: addr, Length: layout.FlashWidth, Err: err}
	}

	if !e.config.VerifyAfterWrite {
		return nil
	}

	got := make([]byte, layout.FlashWidth)
	if err := e.readFlash(addr, got); err != nil {
		return err
	}
	if !bytes.Equal(got, buf) {
		return &FlashError{
			Op:      OpVerify,
			Address: addr,
			Length:  layout.FlashWidth,
			Err:     fmt.Errorf("read back 0x%016X, wrote 0x%016X", layout.Word(got), word),
		}
	}
	return nil
}

// erasePages erases count pages starting at page.
func (e *Engine) erasePages(b *bank, page, count uint32) error {
	addr := b.pageAddress(page)
	length := count * b.geo.PageSize

	e.logDebug("erasing pages",
		"bank", b.index,
		"page", page,
		"count", count,
		"address", fmt.Sprintf("0x%08X", addr),
	)

	if err := e.device.Erase(addr, length); err != nil {
		return &FlashError{Op: OpErase, Address: addr, Length: length, Err: err}
	}
	return nil
}

// readPage returns the content of a whole page.
func (e *Engine) readPage(b *bank, page uint32) ([]byte, error) {
	buf := make([]byte, b.geo.PageSize)
	if err := e.readFlash(b.pageAddress(page), buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// pageBlank reports whether every byte of page is erased.
func (e *Engine) pageBlank(b *bank, page uint32) (bool, error) {
	buf, err := e.readPage(b, page)
	if err != nil {
		return false, err
	}
	for _, c := range buf {
		if c != layout.ErasedByte {
			return false, nil
		}
	}
	return true, nil
}

// pageState decodes the header of page.
func (e *Engine) pageState(b *bank, page uint32) (layout.PageState, error) {
	buf := make([]byte, layout.HeaderSize)
	if err := e.readFlash(b.pageAddress(page), buf); err != nil {
		return layout.StateErased, err
	}

	var header [layout.HeaderWords]uint64
	for i := range header {
		header[i] = layout.Word(buf[i*layout.FlashWidth:])
	}
	return layout.DecodeState(header), nil
}

// setState programs the header word of state s into page.
// A header word that is no longer erased, even torn, is never programmed
// again and a page never moves back to a lower state.
func (e *Engine) setState(b *bank, page uint32, s layout.PageState) error {
	off := layout.HeaderWordOffset(s)
	if off < 0 {
		return &StateError{Bank: b.index, Page: page, Want: s, Reason: fmt.Sprintf("page %d: state %s cannot be programmed", page, s)}
	}

	cur, err := e.pageState(b, page)
	if err != nil {
		return err
	}
	if cur > s {
		return &StateError{Bank: b.index, Page: page, Want: s, Got: cur}
	}

	addr := b.pageAddress(page) + uint32(off)
	word := make([]byte, layout.FlashWidth)
	if err := e.readFlash(addr, word); err != nil {
		return err
	}
	if layout.Word(word) != layout.ErasedWord {
		return nil
	}

	e.logDebug("page state",
		"bank", b.index,
		"page", page,
		"from", cur.String(),
		"to", s.String(),
	)
	return e.programWord(addr, layout.Programmed)
}

// appendRecord writes one element record at the write cursor. When the
// current page is full, the next page inherits its state and the full page
// becomes VALID.
func (e *Engine) appendRecord(b *bank, addr uint16, data uint32) error {
	if b.nextOffset >= b.geo.PageSize {
		if b.currentPage == b.geo.PoolEnd(b.currentPage) {
			return &StateError{
				Bank:   b.index,
				Page:   b.currentPage,
				Reason: fmt.Sprintf("pool of page %d has no free slot", b.currentPage),
			}
		}

		state, err := e.pageState(b, b.currentPage)
		if err != nil {
			return err
		}
		next := b.currentPage + 1
		if err := e.setState(b, next, state); err != nil {
			return err
		}
		if err := e.setState(b, b.currentPage, layout.StateValid); err != nil {
			return err
		}
		b.currentPage = next
		b.nextOffset = layout.HeaderSize
	}

	if err := e.programWord(b.pageAddress(b.currentPage)+b.nextOffset, layout.EncodeRecord(addr, data)); err != nil {
		var fe *FlashError
		if errors.As(err, &fe) && fe.Op == OpVerify {
			// the slot is no longer erased
			b.nextOffset += layout.FlashWidth
		}
		return err
	}
	b.nextOffset += layout.FlashWidth
	b.written++
	return nil
}

// find returns the last valid value of addr, scanning backward from the end
// of page down to the first page of its pool.
func (e *Engine) find(b *bank, addr uint16, page uint32) (uint32, bool, error) {
	start := b.geo.PoolStart(page)
	slots := b.geo.SlotsPerPage()

	for p := int64(page); p >= int64(start); p-- {
		buf, err := e.readPage(b, uint32(p))
		if err != nil {
			return 0, false, err
		}
		for i := int64(slots) - 1; i >= 0; i-- {
			off := b.geo.SlotOffset(uint32(i))
			rec := layout.DecodeRecord(layout.Word(buf[off:]))
			if rec.Kind == layout.KindValid && rec.Address == addr {
				return rec.Data, true, nil
			}
		}
	}
	return 0, false, nil
}
