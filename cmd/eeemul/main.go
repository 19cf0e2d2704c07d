// Command eeemul manages an emulated EEPROM stored in a flash image file.
package main

import "github.com/moffa90/go-eeemul/cmd/eeemul/cmd"

func main() {
	cmd.Execute()
}
