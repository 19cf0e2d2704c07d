package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moffa90/go-eeemul/eeprom"
)

var cleanCmd = &cobra.Command{
	Use:   "clean <bank>",
	Short: "Erase the pool left by the last transfer",
	Args:  cobra.ExactArgs(1),
	RunE:  runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) (err error) {
	bank, err := parseUint("bank", args[0], 8)
	if err != nil {
		return err
	}

	e, dev, err := openEngine()
	if err != nil {
		return err
	}
	defer closeImage(dev, &err)

	if err := e.Clean(int(bank)); err != nil {
		return fmt.Errorf("%s: %w", eeprom.StatusOf(err), err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), eeprom.StatusOK)
	return nil
}
