package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moffa90/go-eeemul/eeprom"
)

var readCmd = &cobra.Command{
	Use:   "read <bank> <addr>",
	Short: "Read a virtual address",
	Long: `Print the last value written at a virtual address.

` + recoveryNote + `

Examples:
  eeemul read 0 5
  eeemul read 1 0x0010`,
	Args: cobra.ExactArgs(2),
	RunE: runRead,
}

func init() {
	rootCmd.AddCommand(readCmd)
}

func runRead(cmd *cobra.Command, args []string) (err error) {
	bank, addr, err := parseBankAddr(args)
	if err != nil {
		return err
	}

	e, dev, err := openEngine()
	if err != nil {
		return err
	}
	defer closeImage(dev, &err)

	data, err := e.Read(bank, addr)
	if err != nil {
		return fmt.Errorf("%s: %w", eeprom.StatusOf(err), err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d (0x%08X)\n", data, data)
	return nil
}
