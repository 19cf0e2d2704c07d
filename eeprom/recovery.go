package eeprom

import (
	"github.com/moffa90/go-eeemul/layout"
)

// recoverBank rebuilds the write cursor of b from flash.
//
// RECEIVE pages are looked for first so that an interrupted transfer is
// completed before anything else. The first reliable page found becomes the
// current write page; the inactive pool is then erased.
func (e *Engine) recoverBank(b *bank) error {
	for _, want := range []layout.PageState{layout.StateReceive, layout.StateActive} {
		for page := uint32(0); page < b.geo.PageCount(); page++ {
			state, err := e.pageState(b, page)
			if err != nil {
				return err
			}
			if state != want {
				continue
			}

			ok, err := e.reliable(b, page, want)
			if err != nil {
				return err
			}
			if !ok {
				e.logDebug("unreliable page", "bank", b.index, "page", page, "state", want.String())
				continue
			}
			return e.resume(b, page, want)
		}
	}

	// A reset while a restarted transfer erased its destination leaves the
	// old pool ERASING and nothing writable.
	for page := uint32(0); page < b.geo.PageCount(); page++ {
		state, err := e.pageState(b, page)
		if err != nil {
			return err
		}
		if state == layout.StateErasing {
			return e.rebuild(b, b.geo.PoolStart(page))
		}
	}

	return &StateError{Bank: b.index, Reason: "no reliable RECEIVE or ACTIVE page"}
}

// rebuild copies the live elements of the ERASING pool at oldStart into a
// fresh pool and erases the old one.
func (e *Engine) rebuild(b *bank, oldStart uint32) error {
	e.logInfo("rebuilding from erasing pool", "bank", b.index, "page", oldStart)

	if err := e.restartTransfer(b, oldStart); err != nil {
		return err
	}
	return e.eraseInactivePool(b)
}

// reliable checks a RECEIVE or ACTIVE page against its neighbours.
//
// The first page of a pool needs an erased successor. Any other page needs a
// VALID predecessor; a predecessor in the same state is what a reset between
// the two header writes of a page switch leaves behind, and is completed by
// marking it VALID.
func (e *Engine) reliable(b *bank, page uint32, state layout.PageState) (bool, error) {
	if page == b.geo.PoolStart(page) {
		if page == b.geo.PoolEnd(page) {
			return true, nil
		}
		next, err := e.pageState(b, page+1)
		if err != nil {
			return false, err
		}
		return next == layout.StateErased, nil
	}

	prev, err := e.pageState(b, page-1)
	if err != nil {
		return false, err
	}
	switch prev {
	case state:
		e.logInfo("repairing page state",
			"bank", b.index,
			"page", page-1,
			"from", prev.String(),
			"to", layout.StateValid.String(),
		)
		if err := e.setState(b, page-1, layout.StateValid); err != nil {
			return false, err
		}
		return true, nil
	case layout.StateValid:
		return true, nil
	default:
		return false, nil
	}
}

// resume makes page the current write page and restores the counters.
func (e *Engine) resume(b *bank, page uint32, state layout.PageState) error {
	if err := e.countElements(b, page); err != nil {
		return err
	}

	e.logDebug("write page found",
		"bank", b.index,
		"page", page,
		"state", state.String(),
		"elements", b.written,
		"offset", b.nextOffset,
	)

	if state == layout.StateReceive {
		if err := e.resumeTransfer(b); err != nil {
			return err
		}
	}

	return e.eraseInactivePool(b)
}

// countElements sets the cursor to the first free slot of page and counts
// the records written in its pool. Corrupt records are not counted but still
// occupy their slot.
func (e *Engine) countElements(b *bank, page uint32) error {
	b.resetCursor(page)
	slots := b.geo.SlotsPerPage()

	for p := b.geo.PoolStart(page); p <= page; p++ {
		buf, err := e.readPage(b, p)
		if err != nil {
			return err
		}
		for i := uint32(0); i < slots; i++ {
			off := b.geo.SlotOffset(i)
			word := layout.Word(buf[off:])
			switch layout.DecodeRecord(word).Kind {
			case layout.KindValid, layout.KindBarrier:
				b.written++
			}
			if p == page && word != layout.ErasedWord {
				b.nextOffset = off + layout.FlashWidth
			}
		}
	}
	return nil
}

// eraseInactivePool erases every page of the other pool that is not blank.
func (e *Engine) eraseInactivePool(b *bank) error {
	return e.erasePool(b, b.geo.OtherPoolStart(b.currentPage))
}

// erasePool erases every page of the pool starting at start that holds a
// non-erased byte. A page whose header still decodes as ERASED is checked
// too.
func (e *Engine) erasePool(b *bank, start uint32) error {
	for page := start; page < start+b.geo.PagesPerPool; page++ {
		blank, err := e.pageBlank(b, page)
		if err != nil {
			return err
		}
		if blank {
			continue
		}
		if err := e.erasePages(b, page, 1); err != nil {
			return err
		}
	}
	return nil
}
