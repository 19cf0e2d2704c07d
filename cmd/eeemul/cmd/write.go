package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moffa90/go-eeemul/eeprom"
)

var autoClean bool

var writeCmd = &cobra.Command{
	Use:   "write <bank> <addr> <value>",
	Short: "Write a virtual address",
	Long: `Store a 32-bit value at a virtual address.

When the write fills the active pool, the live values are moved to the
other pool and the command reports EE_CLEAN_NEEDED. Pass --clean to erase
the old pool right away; otherwise the next command erases it when it
recovers the banks.

Examples:
  eeemul write 0 5 1234
  eeemul write 0 0x0005 0xDEADBEEF --clean`,
	Args: cobra.ExactArgs(3),
	RunE: runWrite,
}

func init() {
	rootCmd.AddCommand(writeCmd)

	writeCmd.Flags().BoolVar(&autoClean, "clean", false,
		"erase the old pool when the write needs it")
}

func runWrite(cmd *cobra.Command, args []string) (err error) {
	bank, addr, err := parseBankAddr(args)
	if err != nil {
		return err
	}
	value, err := parseUint("value", args[2], 32)
	if err != nil {
		return err
	}

	e, dev, err := openEngine()
	if err != nil {
		return err
	}
	defer closeImage(dev, &err)

	cleanNeeded, err := e.Write(bank, addr, uint32(value))
	if status := eeprom.WriteStatus(cleanNeeded, err); err != nil {
		return fmt.Errorf("%s: %w", status, err)
	}

	out := cmd.OutOrStdout()
	if !cleanNeeded {
		fmt.Fprintln(out, eeprom.StatusOK)
		return nil
	}
	if !autoClean {
		fmt.Fprintln(out, eeprom.StatusCleanNeeded)
		return nil
	}

	if err := e.Clean(bank); err != nil {
		return fmt.Errorf("clean: %s: %w", eeprom.StatusOf(err), err)
	}
	fmt.Fprintf(out, "%s, bank %d cleaned\n", eeprom.StatusOK, bank)
	return nil
}
