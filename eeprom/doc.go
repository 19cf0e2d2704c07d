// Package eeprom emulates a word-addressed EEPROM on top of page-erasable flash.
//
// # Overview
//
// Values are 32-bit words stored under 14-bit virtual addresses. Every write
// appends a CRC-protected record to the current flash page; a read returns the
// last valid record for an address. Each bank is split into two pools of
// pages. When the active pool fills up, the live values are compacted into
// the other pool (a transfer) and the old pool is left for the caller to
// erase with Clean.
//
// The engine survives power loss at any point: Init with format set to false
// rebuilds the write cursor from the page headers and resumes an interrupted
// transfer.
//
// # Basic Usage
//
//	dev, err := flash.OpenFile("eeprom.img", 0x0803C000, 4*2048, 2048)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer dev.Close()
//
//	ee := eeprom.New(dev)
//	if err := ee.Init(false, 0x0803C000); err != nil {
//	    // first boot: nothing to recover
//	    if err := ee.Init(true, 0x0803C000); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
//	cleanNeeded, err := ee.Write(0, 0x0005, 100)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if cleanNeeded {
//	    // schedule when the erase latency is acceptable
//	    _ = ee.Clean(0)
//	}
//
//	v, err := ee.Read(0, 0x0005)
//
// # Configuration Options
//
//	ee := eeprom.New(dev,
//	    eeprom.WithPageSize(2048),
//	    eeprom.WithBank(0, 8*2048, 200),
//	    eeprom.WithBank(1, 4*2048, 50),
//	    eeprom.WithLogger(myLogger),
//	    eeprom.WithProgressCallback(progressFunc),
//	    eeprom.WithVerifyAfterWrite(true),
//	)
//
// Bank 1 starts right after bank 0. A bank with size 0 is disabled.
//
// # Error Handling
//
// Errors match the sentinels with errors.Is:
//   - ErrNotFound: the address was never written
//   - ErrWrite, ErrErase: the flash driver failed (see FlashError)
//   - ErrState: page headers are inconsistent (see StateError)
//   - ErrInvalidBank, ErrInvalidAddress, ErrNotInitialized: caller errors
//
// StatusOf maps any error to an EE_* status code.
//
// # Concurrency
//
// Each bank is guarded by its own mutex; Init locks every bank. Callbacks and
// loggers run with the bank lock held and must not call back into the engine.
package eeprom
