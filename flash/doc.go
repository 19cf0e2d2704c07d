// Package flash provides flash devices for the EEPROM emulation engine.
//
// Every device exposes the same three operations over an absolute address
// range [Base, Base+Size):
//
//	Read(addr, p)          copy flash content into p
//	Write(addr, p)         program p at addr (bits may only go from 1 to 0)
//	Erase(addr, length)    erase whole pages back to 0xFF
//
// Writes must be aligned to layout.FlashWidth and erases to the page size,
// matching the double-word programming and page erase of STM32 embedded
// flash.
//
// # Devices
//
//   - Memory: in-memory NOR flash with fault and power-loss injection, used
//     by tests and examples
//   - File: flash image kept in a regular file, used by the command line tool
//   - Machine: the target's embedded flash (TinyGo builds only)
//
// # Power Loss Simulation
//
//	mem := flash.NewMemory(0x08000000, 8*2048, 2048)
//	mem.PowerCutAfter(17)   // the 18th program/erase never completes
//	...                     // run engine operations until ErrPowerLost
//	mem.Restore()           // power comes back, content is kept
package flash
