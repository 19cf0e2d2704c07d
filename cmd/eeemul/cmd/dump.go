package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/moffa90/go-eeemul/dump"
)

var dumpCmd = &cobra.Command{
	Use:   "dump <out>",
	Short: "Save the banks as a text image",
	Long: `Capture every page of the configured banks into a text image. The
flash is read as is, without recovering the banks first.

Examples:
  eeemul dump board.dump
  eeemul dump -    # write to stdout`,
	Args: cobra.ExactArgs(1),
	RunE: runDump,
}

var restoreCmd = &cobra.Command{
	Use:   "restore <in>",
	Short: "Program a text image back",
	Long: `Erase the pages listed in a text image and program their content.
The image must have been captured with the same page size.

Examples:
  eeemul restore board.dump`,
	Args: cobra.ExactArgs(1),
	RunE: runRestore,
}

func init() {
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(restoreCmd)
}

func runDump(cmd *cobra.Command, args []string) (err error) {
	dev, err := openImage()
	if err != nil {
		return err
	}
	defer closeImage(dev, &err)

	img, err := dump.Capture(dev, baseAddr, pageSize, imageSize()/pageSize)
	if err != nil {
		return err
	}

	if args[0] == "-" {
		return dump.Write(cmd.OutOrStdout(), img)
	}

	f, err := os.Create(args[0])
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := dump.Write(f, img); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	if verbose {
		fmt.Fprintf(cmd.OutOrStdout(), "dumped %d pages to %s\n", len(img.Pages), args[0])
	}
	return nil
}

func runRestore(cmd *cobra.Command, args []string) (err error) {
	img, err := dump.Parse(args[0])
	if err != nil {
		return fmt.Errorf("failed to parse image: %w", err)
	}
	if img.PageSize != pageSize {
		return fmt.Errorf("image page size %d does not match --page-size %d", img.PageSize, pageSize)
	}

	dev, err := openImage()
	if err != nil {
		return err
	}
	defer closeImage(dev, &err)

	if err := img.Restore(dev); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "restored %d pages at 0x%08X\n", len(img.Pages), img.BaseAddress)
	return nil
}
