package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moffa90/go-eeemul/eeprom"
)

var formatCmd = &cobra.Command{
	Use:   "format",
	Short: "Erase all banks and start fresh pools",
	Long: `Erase every page of the configured banks and mark the first page of
each bank ACTIVE. The image file is created when missing.

Examples:
  eeemul format
  eeemul format --image board.img --bank1-size 8192`,
	Args: cobra.NoArgs,
	RunE: runFormat,
}

func init() {
	rootCmd.AddCommand(formatCmd)
}

func runFormat(cmd *cobra.Command, args []string) (err error) {
	dev, err := openImage()
	if err != nil {
		return err
	}
	defer closeImage(dev, &err)

	e := eeprom.New(dev, engineOpts...)
	if err := e.Init(true, baseAddr); err != nil {
		return fmt.Errorf("%s: %w", eeprom.StatusOf(err), err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "formatted %s: %d bytes at 0x%08X\n", imagePath, imageSize(), baseAddr)
	return nil
}
