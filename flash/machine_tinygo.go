//go:build tinygo

package flash

import (
	"machine"

	"github.com/pkg/errors"
)

// Machine is the target's embedded flash as exposed by TinyGo.
// Addresses are offsets into the machine.Flash data area, shifted by base.
type Machine struct {
	region
}

// NewMachine maps size bytes of the flash data area starting at offset base.
func NewMachine(base, size uint32) (*Machine, error) {
	bs := machine.Flash.EraseBlockSize()
	if bs <= 0 || bs > int64(^uint32(0)) {
		return nil, errors.Errorf("flash erase block size %d not supported", bs)
	}
	pageSize := uint32(bs)
	if size%pageSize != 0 || base%pageSize != 0 {
		return nil, errors.Wrapf(ErrUnaligned, "machine flash 0x%08X+%d (block %d)", base, size, pageSize)
	}
	if int64(base)+int64(size) > machine.Flash.Size() {
		return nil, errors.Wrapf(ErrOutOfRange, "machine flash 0x%08X+%d (size %d)", base, size, machine.Flash.Size())
	}
	return &Machine{region: region{base: base, size: size, pageSize: pageSize}}, nil
}

// Read copies flash content at addr into p.
func (d *Machine) Read(addr uint32, p []byte) error {
	if _, err := d.offset(addr, len(p)); err != nil {
		return err
	}
	if _, err := machine.Flash.ReadAt(p, int64(addr)); err != nil {
		return errors.Wrapf(err, "flash read at 0x%08X", addr)
	}
	return nil
}

// Write programs p at addr.
func (d *Machine) Write(addr uint32, p []byte) error {
	if _, err := d.checkWrite(addr, len(p)); err != nil {
		return err
	}
	if _, err := machine.Flash.WriteAt(p, int64(addr)); err != nil {
		return errors.Wrapf(err, "flash write at 0x%08X", addr)
	}
	return nil
}

// Erase erases the blocks covering [addr, addr+length).
func (d *Machine) Erase(addr, length uint32) error {
	if _, err := d.checkErase(addr, length); err != nil {
		return err
	}
	if length == 0 {
		return nil
	}
	start := int64(addr / d.pageSize)
	if err := machine.Flash.EraseBlocks(start, int64(length/d.pageSize)); err != nil {
		return errors.Wrapf(err, "flash erase 0x%08X+%d", addr, length)
	}
	return nil
}
