package eeprom

import (
	"errors"
	"fmt"

	"github.com/moffa90/go-eeemul/layout"
)

// Engine errors.
var (
	// ErrNotFound indicates that no valid record exists for the address.
	ErrNotFound = errors.New("element not found")

	// ErrWrite indicates a failed flash program operation.
	ErrWrite = errors.New("flash write failed")

	// ErrErase indicates a failed flash erase operation.
	ErrErase = errors.New("flash erase failed")

	// ErrRead indicates a failed flash read operation.
	ErrRead = errors.New("flash read failed")

	// ErrState indicates page headers that break the pool invariants.
	ErrState = errors.New("invalid page state")

	// ErrInvalidBank indicates a bank index that is out of range or disabled.
	ErrInvalidBank = errors.New("invalid bank")

	// ErrInvalidAddress indicates a virtual address outside the bank range.
	ErrInvalidAddress = errors.New("invalid virtual address")

	// ErrNotInitialized indicates an operation before a successful Init.
	ErrNotInitialized = errors.New("bank not initialized")
)

// Flash operations reported by FlashError.
const (
	OpRead   = "read"
	OpWrite  = "write"
	OpVerify = "verify"
	OpErase  = "erase"
)

// FlashError wraps a flash driver failure.
type FlashError struct {
	Op      string
	Address uint32
	Length  uint32
	Err     error
}

func (e *FlashError) Error() string {
	return fmt.Sprintf("flash %s at 0x%08X (%d bytes): %v", e.Op, e.Address, e.Length, e.Err)
}

func (e *FlashError) Unwrap() error {
	return e.Err
}

// Is reports ErrErase for erase failures, ErrRead for read failures and
// ErrWrite for program and read-back failures.
func (e *FlashError) Is(target error) bool {
	switch target {
	case ErrErase:
		return e.Op == OpErase
	case ErrRead:
		return e.Op == OpRead
	case ErrWrite:
		return e.Op == OpWrite || e.Op == OpVerify
	}
	return false
}

// StateError indicates a page found in an unexpected state.
type StateError struct {
	Bank int
	Page uint32
	Want layout.PageState
	Got  layout.PageState

	// Reason replaces the state comparison in the message when set
	Reason string
}

func (e *StateError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("bank %d: %s", e.Bank, e.Reason)
	}
	return fmt.Sprintf("bank %d page %d: state is %s, expected %s", e.Bank, e.Page, e.Got, e.Want)
}

// Is reports ErrState.
func (e *StateError) Is(target error) bool {
	return target == ErrState
}
