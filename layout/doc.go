// Package layout defines the persisted flash format of the EEPROM emulation.
//
// The format is bit-exact: images written by one firmware build must be read
// back by the next one, so nothing in this package may change without
// versioning the format.
//
// # Bank Layout
//
// A bank is 2 x PagesPerPool contiguous flash pages split into two pools.
// Only one pool holds live data at a time; the other one is erased, or marked
// ERASING while waiting to be cleaned.
//
//	page 0 .. N-1      pool 0
//	page N .. 2N-1     pool 1
//
// # Page Layout
//
// Every page starts with a header of HeaderWords flash words followed by
// element slots of FlashWidth bytes each:
//
//	[HDR0][HDR1][HDR2][HDR3][REC0][REC1]...[RECn]
//
// The header encodes the page state with a thermometer code. Writing
// Programmed into header word N-1 advances the page to state N:
//
//	ERASED(0) -> RECEIVE(1) -> ACTIVE(2) -> VALID(3) -> ERASING(4)
//
// Header words are only ever programmed once between two erases. A header
// word reads as set as soon as it is no longer erased, so a word torn by a
// reset still advances the page.
//
// # Record Layout
//
// An element record is one 64-bit word stored little-endian:
//
//	bits 63..32  data
//	bits 31..16  Tag | virtual address
//	bits 15..0   CRC-16 over bits 63..16
//
// An all-ones word is an erased slot, an all-zero word is the transfer
// barrier written during recovery.
//
// # Usage
//
//	word := layout.EncodeRecord(0x0005, 100)
//	rec := layout.DecodeRecord(word)
//	if rec.Kind == layout.KindValid {
//	    fmt.Println(rec.Address, rec.Data)
//	}
package layout
