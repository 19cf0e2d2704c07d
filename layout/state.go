package layout

import "fmt"

// PageState is the lifecycle state of a flash page.
// States only move forward between two erases of the page.
type PageState uint8

const (
	StateErased PageState = iota
	StateReceive
	StateActive
	StateValid
	StateErasing
)

// NumStates is the number of distinct page states.
const NumStates = int(StateErasing) + 1

func (s PageState) String() string {
	switch s {
	case StateErased:
		return "ERASED"
	case StateReceive:
		return "RECEIVE"
	case StateActive:
		return "ACTIVE"
	case StateValid:
		return "VALID"
	case StateErasing:
		return "ERASING"
	default:
		return fmt.Sprintf("STATE(%d)", uint8(s))
	}
}

// IsWritable reports whether a page in this state accepts new records.
func (s PageState) IsWritable() bool {
	return s == StateReceive || s == StateActive
}

// HeaderWordOffset returns the byte offset, from the start of the page, of
// the header word that must be programmed to enter state s.
// StateErased has no header word and returns -1.
func HeaderWordOffset(s PageState) int {
	if s == StateErased || int(s) >= NumStates {
		return -1
	}
	return (int(s) - 1) * FlashWidth
}

// DecodeState returns the state encoded by a page header. The highest header
// word that is no longer erased wins. A word torn while Programmed was being
// written counts as set: it cannot be programmed again without an erase, and
// everything the state commits was already on flash before it was written.
func DecodeState(header [HeaderWords]uint64) PageState {
	for s := StateErasing; s > StateErased; s-- {
		if header[s-1] != ErasedWord {
			return s
		}
	}
	return StateErased
}
