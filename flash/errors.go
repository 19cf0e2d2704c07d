package flash

import "github.com/pkg/errors"

// Flash device errors.
var (
	// ErrOutOfRange indicates an access outside the device address range.
	ErrOutOfRange = errors.New("address out of range")

	// ErrUnaligned indicates an address or length not aligned to the
	// programming or erase granularity.
	ErrUnaligned = errors.New("unaligned access")

	// ErrNotErased indicates a program operation on a flash word that is
	// not erased.
	ErrNotErased = errors.New("destination not erased")

	// ErrPowerLost indicates the simulated supply was cut.
	ErrPowerLost = errors.New("power lost")

	// ErrInjected indicates a fault injected by a test.
	ErrInjected = errors.New("injected flash fault")

	// ErrClosed indicates an operation on a closed device.
	ErrClosed = errors.New("device closed")
)
