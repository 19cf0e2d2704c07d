package eeprom

import (
	"time"

	"github.com/moffa90/go-eeemul/layout"
)

// element is a live value waiting to be copied into the new pool.
type element struct {
	addr uint16
	data uint32
}

// transfer moves the bank to the other pool. The triggering element is
// written first, then every other live element is copied from the old pool.
func (e *Engine) transfer(b *bank, addr uint16, data uint32) error {
	start := time.Now()
	oldPage := b.currentPage
	newPage := b.geo.OtherPoolStart(oldPage)

	state, err := e.pageState(b, newPage)
	if err != nil {
		return err
	}
	if state != layout.StateErased {
		return &StateError{Bank: b.index, Page: newPage, Want: layout.StateErased, Got: state}
	}

	e.logInfo("transfer started",
		"bank", b.index,
		"from", b.geo.PoolStart(oldPage),
		"to", newPage,
	)
	e.reportProgress(Progress{
		Phase: PhaseReceive,
		Bank:  b.index,
		Total: int(b.maxElements),
	})

	if err := e.setState(b, newPage, layout.StateReceive); err != nil {
		return err
	}
	b.resetCursor(newPage)

	if err := e.appendRecord(b, addr, data); err != nil {
		return err
	}

	oldStart := b.geo.PoolStart(oldPage)
	pending, err := e.pendingElements(b, oldStart, addr, false)
	if err != nil {
		return err
	}
	return e.finishTransfer(b, oldStart, pending, false, start)
}

// resumeTransfer completes a transfer interrupted by a reset. The cursor
// already points into the RECEIVE page of the new pool.
func (e *Engine) resumeTransfer(b *bank) error {
	start := time.Now()
	oldStart := b.geo.OtherPoolStart(b.currentPage)

	e.logInfo("resuming transfer",
		"bank", b.index,
		"page", b.currentPage,
		"elements", b.written,
	)
	e.reportProgress(Progress{
		Phase:   PhaseReceive,
		Bank:    b.index,
		Total:   int(b.maxElements),
		Resumed: true,
	})

	pending, err := e.pendingElements(b, oldStart, layout.Tag, true)
	if err != nil {
		return err
	}

	// Torn records left too few slots: start over from the intact old pool.
	if b.freeSlots() < uint32(len(pending)) {
		return e.restartTransfer(b, oldStart)
	}

	// The barrier only goes in when it leaves room for every pending copy.
	if b.freeSlots() > uint32(len(pending)) {
		if err := e.appendRecord(b, layout.Tag, 0); err != nil {
			return err
		}
	} else {
		e.logDebug("no room for barrier", "bank", b.index, "pending", len(pending))
	}

	return e.finishTransfer(b, oldStart, pending, true, start)
}

// restartTransfer erases the pool opposite oldStart and copies every live
// element of the old pool into it again. The write that triggered the
// original transfer is lost unless it was already in the old pool.
func (e *Engine) restartTransfer(b *bank, oldStart uint32) error {
	start := time.Now()
	newStart := b.geo.OtherPoolStart(oldStart)

	e.logInfo("restarting transfer",
		"bank", b.index,
		"from", oldStart,
		"to", newStart,
	)

	if err := e.erasePool(b, newStart); err != nil {
		return err
	}
	if err := e.setState(b, newStart, layout.StateReceive); err != nil {
		return err
	}
	b.resetCursor(newStart)

	pending, err := e.pendingElements(b, oldStart, layout.Tag, false)
	if err != nil {
		return err
	}
	return e.finishTransfer(b, oldStart, pending, true, start)
}

// pendingElements lists the live elements of the old pool that still have
// to be copied, skipping addr. When resuming, elements already present in
// the new pool are skipped as well.
func (e *Engine) pendingElements(b *bank, oldStart uint32, skip uint16, resume bool) ([]element, error) {
	oldEnd := oldStart + b.geo.PagesPerPool - 1

	var pending []element
	for a := uint32(0); a < b.maxElements; a++ {
		addr := uint16(a)
		if addr == skip {
			continue
		}

		if resume {
			_, found, err := e.find(b, addr, b.currentPage)
			if err != nil {
				return nil, err
			}
			if found {
				continue
			}
		}

		data, found, err := e.find(b, addr, oldEnd)
		if err != nil {
			return nil, err
		}
		if found {
			pending = append(pending, element{addr: addr, data: data})
		}
	}
	return pending, nil
}

// finishTransfer marks the old pool ERASING from its last page down, copies
// the pending elements and activates the current page.
func (e *Engine) finishTransfer(b *bank, oldStart uint32, pending []element, resumed bool, start time.Time) error {
	total := int(b.maxElements)

	e.reportProgress(Progress{
		Phase:       PhaseErasing,
		Bank:        b.index,
		Total:       total,
		Resumed:     resumed,
		ElapsedTime: time.Since(start),
	})

	for page := oldStart + b.geo.PagesPerPool; page > oldStart; page-- {
		state, err := e.pageState(b, page-1)
		if err != nil {
			return err
		}
		if state == layout.StateErasing {
			continue
		}
		if err := e.setState(b, page-1, layout.StateErasing); err != nil {
			return err
		}
	}

	for i, el := range pending {
		if err := e.appendRecord(b, el.addr, el.data); err != nil {
			return err
		}

		e.reportProgress(Progress{
			Phase:       PhaseCopy,
			Bank:        b.index,
			Copied:      i + 1,
			Total:       total,
			Resumed:     resumed,
			Percentage:  float64(i+1) / float64(len(pending)) * 100,
			ElapsedTime: time.Since(start),
		})
	}

	e.reportProgress(Progress{
		Phase:       PhaseActivate,
		Bank:        b.index,
		Copied:      len(pending),
		Total:       total,
		Resumed:     resumed,
		Percentage:  100,
		ElapsedTime: time.Since(start),
	})

	if err := e.setState(b, b.currentPage, layout.StateActive); err != nil {
		return err
	}

	e.reportProgress(Progress{
		Phase:       PhaseComplete,
		Bank:        b.index,
		Copied:      len(pending),
		Total:       total,
		Resumed:     resumed,
		Percentage:  100,
		ElapsedTime: time.Since(start),
	})

	e.logInfo("transfer complete",
		"bank", b.index,
		"page", b.currentPage,
		"copied", len(pending),
		"elements", b.written,
		"elapsed", time.Since(start).String(),
	)
	return nil
}
