// Package script runs provisioning scripts against an EEPROM emulation
// engine.
//
// A script is a sequence of statements, one command each. Comments start
// with '#' and run to the end of the line. Integers are decimal or 0x hex.
//
//	# factory defaults
//	format
//	write 0 0x0001 0x00010203
//	write 0 0x0002 300 autoclean
//	read 0 1
//	expect 0 2 300
//	clean 0
//	stats 0
//
// Statements:
//   - format: erases every bank and starts fresh pools
//   - init: recovers every bank from flash
//   - write <bank> <addr> <value> [autoclean]: stores a value; with
//     autoclean the old pool is erased as soon as a transfer asks for it
//   - read <bank> <addr>: prints the value
//   - expect <bank> <addr> <value>: fails the run on a different value
//   - clean <bank>: erases the pool left by the last transfer
//   - stats <bank>: prints the write cursor of the bank
//
// Example:
//
//	prog, err := script.ParseFile("provision.ee")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := prog.Run(engine, 0x0803C000, os.Stdout); err != nil {
//	    log.Fatal(err)
//	}
package script
