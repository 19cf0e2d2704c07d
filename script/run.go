package script

import (
	"errors"
	"fmt"
	"io"

	"github.com/moffa90/go-eeemul/eeprom"
	"github.com/moffa90/go-eeemul/layout"
)

// Run executes the program against e. format and init statements use base as
// the bank base address. Results are printed to out, one line per statement.
//
// Run stops at the first failing statement. Reading an address that holds no
// value is not a failure; an expect statement on such an address is.
func (p *Program) Run(e *eeprom.Engine, base uint32, out io.Writer) error {
	for _, stmt := range p.Statements {
		if err := runStatement(e, base, stmt, out); err != nil {
			var expectErr *ExpectError
			if errors.As(err, &expectErr) {
				return err
			}
			return &StatementError{Pos: stmt.Pos, Statement: stmt.String(), Err: err}
		}
	}
	return nil
}

func runStatement(e *eeprom.Engine, base uint32, stmt *Statement, out io.Writer) error {
	switch {
	case stmt.Format != nil:
		if err := e.Init(true, base); err != nil {
			return err
		}
		_, err := fmt.Fprintf(out, "formatted at 0x%08X\n", base)
		return err

	case stmt.Init != nil:
		if err := e.Init(false, base); err != nil {
			return err
		}
		_, err := fmt.Fprintf(out, "initialized at 0x%08X\n", base)
		return err

	case stmt.Write != nil:
		return runWrite(e, stmt.Write, out)

	case stmt.Read != nil:
		addr, err := address(stmt.Read.Address)
		if err != nil {
			return err
		}
		bank := int(stmt.Read.Bank)
		data, err := e.Read(bank, addr)
		if errors.Is(err, eeprom.ErrNotFound) {
			_, err = fmt.Fprintf(out, "bank %d 0x%04X: %s\n", bank, addr, eeprom.StatusNotFound)
			return err
		}
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "bank %d 0x%04X = %d (0x%08X)\n", bank, addr, data, data)
		return err

	case stmt.Expect != nil:
		addr, err := address(stmt.Expect.Address)
		if err != nil {
			return err
		}
		bank := int(stmt.Expect.Bank)
		want := uint32(stmt.Expect.Value)
		data, err := e.Read(bank, addr)
		switch {
		case errors.Is(err, eeprom.ErrNotFound):
			return &ExpectError{Pos: stmt.Pos, Bank: bank, Address: addr, Want: want}
		case err != nil:
			return err
		case data != want:
			return &ExpectError{Pos: stmt.Pos, Bank: bank, Address: addr, Want: want, Got: data, Found: true}
		}
		_, err = fmt.Fprintf(out, "bank %d 0x%04X = %d ok\n", bank, addr, data)
		return err

	case stmt.Clean != nil:
		bank := int(stmt.Clean.Bank)
		if err := e.Clean(bank); err != nil {
			return err
		}
		_, err := fmt.Fprintf(out, "bank %d cleaned\n", bank)
		return err

	case stmt.Stats != nil:
		stats, err := e.Stats(int(stmt.Stats.Bank))
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "bank %d page %d offset %d elements %d/%d\n",
			stats.Bank, stats.CurrentPage, stats.NextOffset, stats.WrittenElements, stats.Capacity)
		return err
	}
	return nil
}

func runWrite(e *eeprom.Engine, w *Write, out io.Writer) error {
	addr, err := address(w.Address)
	if err != nil {
		return err
	}
	bank := int(w.Bank)
	data := uint32(w.Value)

	cleanNeeded, err := e.Write(bank, addr, data)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(out, "bank %d 0x%04X <- %d (0x%08X)\n", bank, addr, data, data); err != nil {
		return err
	}
	if !cleanNeeded {
		return nil
	}

	if !w.AutoClean {
		_, err := fmt.Fprintf(out, "bank %d: %s\n", bank, eeprom.StatusCleanNeeded)
		return err
	}
	if err := e.Clean(bank); err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "bank %d cleaned\n", bank)
	return err
}

// address narrows a script number to a virtual address.
func address(n Number) (uint16, error) {
	if uint32(n) >= uint32(layout.MaxAddresses) {
		return 0, fmt.Errorf("%w: 0x%X", eeprom.ErrInvalidAddress, uint32(n))
	}
	return uint16(n), nil
}
