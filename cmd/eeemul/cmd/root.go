package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/moffa90/go-eeemul/eeprom"
	"github.com/moffa90/go-eeemul/internal/logging"
	"github.com/moffa90/go-eeemul/layout"
)

var (
	// Global flags
	imagePath  string
	baseAddr   uint32
	pageSize   uint32
	bank0Size  uint32
	bank0Max   uint32
	bank1Size  uint32
	bank1Max   uint32
	logLevel   string
	logFormat  string
	verbose    bool
	noVerify   bool
	engineOpts []eeprom.Option
)

var rootCmd = &cobra.Command{
	Use:   "eeemul",
	Short: "EEPROM emulation on a flash image",
	Long: `Manage an emulated EEPROM kept in a flash image file, using the same
page layout and record format as the firmware.

Examples:
  eeemul format                                  # Erase the banks and start fresh pools
  eeemul write 0 0x0005 1234                     # Store 1234 at virtual address 5
  eeemul read 0 5                                # Read it back
  eeemul inspect                                 # Show page states and write cursors
  eeemul run provision.ee                        # Run a provisioning script`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&imagePath, "image", "eeprom.img", "flash image file")
	flags.Uint32Var(&baseAddr, "base", 0x0803C000, "flash address of bank 0")
	flags.Uint32Var(&pageSize, "page-size", layout.DefaultPageSize, "flash page size in bytes")
	flags.Uint32Var(&bank0Size, "bank0-size", 4*layout.DefaultPageSize, "bank 0 size in bytes")
	flags.Uint32Var(&bank0Max, "bank0-max", 100, "number of virtual addresses in bank 0")
	flags.Uint32Var(&bank1Size, "bank1-size", 0, "bank 1 size in bytes (0 disables the bank)")
	flags.Uint32Var(&bank1Max, "bank1-max", 100, "number of virtual addresses in bank 1")
	flags.StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	flags.StringVar(&logFormat, "log-format", "text", "log format: text, json, logrus")
	flags.BoolVar(&noVerify, "no-verify", false, "skip read-back of programmed words")
	flags.BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logs, transfer progress)")
}

// setupLogging builds the engine options shared by all commands.
func setupLogging(cmd *cobra.Command, args []string) error {
	format, err := logging.ParseFormat(logFormat)
	if err != nil {
		return err
	}
	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	if verbose && !cmd.Flags().Changed("log-level") {
		level = slog.LevelDebug
	}

	engineOpts = []eeprom.Option{
		eeprom.WithPageSize(pageSize),
		eeprom.WithBank(0, bank0Size, bank0Max),
		eeprom.WithBank(1, bank1Size, bank1Max),
		eeprom.WithVerifyAfterWrite(!noVerify),
		eeprom.WithLogger(logging.NewLogger(cmd.ErrOrStderr(), format, level)),
	}
	if verbose {
		out := cmd.ErrOrStderr()
		engineOpts = append(engineOpts, eeprom.WithProgressCallback(func(p eeprom.Progress) {
			resumed := ""
			if p.Resumed {
				resumed = " (resumed)"
			}
			fmt.Fprintf(out, "[%-8s] bank %d %d/%d %5.1f%% %v%s\n",
				p.Phase, p.Bank, p.Copied, p.Total, p.Percentage, p.ElapsedTime, resumed)
		}))
	}
	return nil
}
