package layout

import (
	"encoding/binary"
	"fmt"
)

// RecordKind classifies a flash word read from an element slot.
type RecordKind uint8

const (
	// KindErased is an unwritten slot
	KindErased RecordKind = iota

	// KindBarrier is the all-zero transfer barrier
	KindBarrier

	// KindValid is a tagged record with a matching CRC
	KindValid

	// KindCorrupt is anything else: torn writes, bad tag, CRC mismatch
	KindCorrupt
)

func (k RecordKind) String() string {
	switch k {
	case KindErased:
		return "erased"
	case KindBarrier:
		return "barrier"
	case KindValid:
		return "valid"
	case KindCorrupt:
		return "corrupt"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Record is a decoded element slot.
type Record struct {
	Kind    RecordKind
	Address uint16
	Data    uint32
	CRC     uint16
}

// Occupied reports whether the slot consumed space in the page.
// Erased slots are free, everything else counts toward the write cursor.
func (r Record) Occupied() bool {
	return r.Kind != KindErased
}

// EncodeRecord builds the flash word for a virtual address and its data.
// The Tag address yields the barrier word.
//
// Word structure:
//
//	[DATA(32)][TAG|ADDR(16)][CRC(16)]
func EncodeRecord(addr uint16, data uint32) uint64 {
	if addr == Tag {
		return BarrierWord
	}

	word := uint64(data)<<32 | uint64(Tag|addr&AddressMask)<<16
	return word | uint64(RecordCRC(word))
}

// DecodeRecord classifies and decodes a flash word read from an element slot.
func DecodeRecord(word uint64) Record {
	switch word {
	case ErasedWord:
		return Record{Kind: KindErased}
	case BarrierWord:
		return Record{Kind: KindBarrier}
	}

	tagged := uint16(word >> 16)
	rec := Record{
		Kind:    KindCorrupt,
		Address: tagged & AddressMask,
		Data:    uint32(word >> 32),
		CRC:     uint16(word),
	}

	if tagged&TagMask != Tag {
		return rec
	}
	if RecordCRC(word) != rec.CRC {
		return rec
	}

	rec.Kind = KindValid
	return rec
}

// PutWord stores a flash word into b using the target byte order.
func PutWord(b []byte, word uint64) {
	binary.LittleEndian.PutUint64(b, word)
}

// Word loads a flash word from b using the target byte order.
func Word(b []byte) uint64 {
	return binary.LittleEndian.Uint64(b)
}

// WordBytes returns the flash representation of a word.
func WordBytes(word uint64) []byte {
	b := make([]byte, FlashWidth)
	PutWord(b, word)
	return b
}
