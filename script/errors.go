package script

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
)

// ExpectError is returned by Run when an expect statement fails.
type ExpectError struct {
	Pos     lexer.Position
	Bank    int
	Address uint16
	Want    uint32
	Got     uint32
	Found   bool
}

// Error implements the error interface.
func (e *ExpectError) Error() string {
	if !e.Found {
		return fmt.Sprintf("%s: bank %d address 0x%04X: expected %d, not found",
			e.Pos, e.Bank, e.Address, e.Want)
	}
	return fmt.Sprintf("%s: bank %d address 0x%04X: expected %d (0x%08X), got %d (0x%08X)",
		e.Pos, e.Bank, e.Address, e.Want, e.Want, e.Got, e.Got)
}

// StatementError wraps an engine error with the failing statement.
type StatementError struct {
	Pos       lexer.Position
	Statement string
	Err       error
}

// Error implements the error interface.
func (e *StatementError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Pos, e.Statement, e.Err)
}

// Unwrap returns the engine error.
func (e *StatementError) Unwrap() error {
	return e.Err
}
