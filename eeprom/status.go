package eeprom

import (
	"errors"
	"fmt"
)

// Status is the result code of the EE_* C API.
type Status int

const (
	StatusOK Status = iota
	StatusNotFound
	StatusCleanNeeded
	StatusEraseError
	StatusWriteError
	StatusStateError
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "EE_OK"
	case StatusNotFound:
		return "EE_NOT_FOUND"
	case StatusCleanNeeded:
		return "EE_CLEAN_NEEDED"
	case StatusEraseError:
		return "EE_ERASE_ERROR"
	case StatusWriteError:
		return "EE_WRITE_ERROR"
	case StatusStateError:
		return "EE_STATE_ERROR"
	default:
		return fmt.Sprintf("EE_STATUS(%d)", int(s))
	}
}

// StatusOf maps an error returned by the engine to its status code.
// Driver read failures are reported as EE_WRITE_ERROR and caller errors
// (bad bank, bad address, missing Init) as EE_STATE_ERROR.
func StatusOf(err error) Status {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, ErrNotFound):
		return StatusNotFound
	case errors.Is(err, ErrErase):
		return StatusEraseError
	case errors.Is(err, ErrWrite), errors.Is(err, ErrRead):
		return StatusWriteError
	default:
		return StatusStateError
	}
}

// WriteStatus maps the result of Engine.Write to its status code.
func WriteStatus(cleanNeeded bool, err error) Status {
	if err == nil && cleanNeeded {
		return StatusCleanNeeded
	}
	return StatusOf(err)
}
