package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/moffa90/go-eeemul/eeprom"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [bank]",
	Short: "Show page states and write cursors",
	Long: `Print the state of every page and the write cursor of each bank, or
of the given bank only.

` + recoveryNote + `

Examples:
  eeemul inspect
  eeemul inspect 1`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) (err error) {
	banks := []int{0}
	if bank1Size > 0 {
		banks = append(banks, 1)
	}
	if len(args) == 1 {
		bank, err := parseUint("bank", args[0], 8)
		if err != nil {
			return err
		}
		banks = []int{int(bank)}
	}

	e, dev, err := openEngine()
	if err != nil {
		return err
	}
	defer closeImage(dev, &err)

	for _, bank := range banks {
		if err := printBank(cmd.OutOrStdout(), e, bank); err != nil {
			return err
		}
	}
	return nil
}

func printBank(out io.Writer, e *eeprom.Engine, bank int) error {
	stats, err := e.Stats(bank)
	if err != nil {
		return err
	}
	states, err := e.PageStates(bank)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Bank %d at 0x%08X: %d pages of %d bytes, %d per pool\n",
		stats.Bank, stats.Address, len(states), stats.PageSize, stats.PagesPerPool)
	fmt.Fprintf(out, "  Cursor:   page %d, offset %d\n", stats.CurrentPage, stats.NextOffset)
	fmt.Fprintf(out, "  Elements: %d written, %d slots per pool, %d addresses\n",
		stats.WrittenElements, stats.Capacity, stats.MaxElements)

	for page, state := range states {
		marker := ""
		if uint32(page) == stats.CurrentPage {
			marker = " <- current"
		}
		fmt.Fprintf(out, "  Page %3d  0x%08X  %-8s%s\n",
			page, stats.Address+uint32(page)*stats.PageSize, state, marker)
	}
	return nil
}
