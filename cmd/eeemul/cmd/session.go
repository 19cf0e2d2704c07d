package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/moffa90/go-eeemul/eeprom"
	"github.com/moffa90/go-eeemul/flash"
)

// imageSize returns the number of flash bytes covered by the banks.
func imageSize() uint32 {
	return bank0Size + bank1Size
}

// openImage opens the flash image described by the global flags.
func openImage() (*flash.File, error) {
	dev, err := flash.OpenFile(imagePath, baseAddr, imageSize(), pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	return dev, nil
}

// recoveryNote is shown by every command that goes through openEngine.
const recoveryNote = `The banks are recovered from the image first. Recovery completes an
interrupted transfer and erases the inactive pool, so the image may be
written even by read-only commands. Use dump for an untouched copy.`

// openEngine opens the image and recovers every bank from it.
// The caller closes the returned device.
func openEngine() (*eeprom.Engine, *flash.File, error) {
	dev, err := openImage()
	if err != nil {
		return nil, nil, err
	}

	e := eeprom.New(dev, engineOpts...)
	if err := e.Init(false, baseAddr); err != nil {
		_ = dev.Close()
		return nil, nil, fmt.Errorf("%s: %w (run format first?)", eeprom.StatusOf(err), err)
	}
	return e, dev, nil
}

// closeImage closes dev, keeping the first error.
func closeImage(dev *flash.File, err *error) {
	if cerr := dev.Close(); *err == nil && cerr != nil {
		*err = fmt.Errorf("failed to close image: %w", cerr)
	}
}

// parseUint parses a decimal or 0x hex argument of at most bits bits.
func parseUint(name, s string, bits int) (uint64, error) {
	digits, base := s, 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		digits, base = s[2:], 16
	}
	v, err := strconv.ParseUint(digits, base, bits)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: must be a %d-bit decimal or 0x hex number", name, s, bits)
	}
	return v, nil
}

// parseBankAddr parses the <bank> <addr> arguments.
func parseBankAddr(args []string) (int, uint16, error) {
	bank, err := parseUint("bank", args[0], 8)
	if err != nil {
		return 0, 0, err
	}
	addr, err := parseUint("address", args[1], 16)
	if err != nil {
		return 0, 0, err
	}
	return int(bank), uint16(addr), nil
}
