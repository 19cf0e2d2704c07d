package cmd

import (
	"github.com/spf13/cobra"

	"github.com/moffa90/go-eeemul/eeprom"
	"github.com/moffa90/go-eeemul/flash"
	"github.com/moffa90/go-eeemul/script"
)

var runCmd = &cobra.Command{
	Use:   "run <script>",
	Short: "Run a provisioning script",
	Long: `Run a provisioning script against the image. The banks are recovered
before the first statement unless the script starts with format.

Examples:
  eeemul run provision.ee
  eeemul run --image board.img checks.ee`,
	Args: cobra.ExactArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runScript(cmd *cobra.Command, args []string) (err error) {
	prog, err := script.ParseFile(args[0])
	if err != nil {
		return err
	}

	var (
		e   *eeprom.Engine
		dev *flash.File
	)
	if len(prog.Statements) > 0 && prog.Statements[0].Format != nil {
		if dev, err = openImage(); err != nil {
			return err
		}
		e = eeprom.New(dev, engineOpts...)
	} else {
		if e, dev, err = openEngine(); err != nil {
			return err
		}
	}
	defer closeImage(dev, &err)

	return prog.Run(e, baseAddr, cmd.OutOrStdout())
}
