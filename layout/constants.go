package layout

// Flash word geometry.
const (
	// FlashWidth is the flash programming granularity in bytes (double word)
	FlashWidth = 8

	// HeaderWords is the number of flash words reserved for the page header
	HeaderWords = 4

	// HeaderSize is the page header size in bytes
	HeaderSize = HeaderWords * FlashWidth

	// DefaultPageSize is the STM32WL embedded flash page size (2 KB)
	DefaultPageSize = 2048
)

// Special flash word values.
const (
	// Programmed is the value written into a header word to set its state
	Programmed uint64 = 0xAAAAAAAAAAAAAAAA

	// ErasedWord is the content of an erased flash word
	ErasedWord uint64 = 0xFFFFFFFFFFFFFFFF

	// BarrierWord is the transfer barrier record written during recovery
	BarrierWord uint64 = 0x0000000000000000

	// ErasedByte is the content of an erased flash byte
	ErasedByte = 0xFF
)

// Virtual address tagging.
const (
	// Tag is the marker bit set on the address field of every valid record.
	// Used as an address value it selects the barrier record.
	Tag uint16 = 0x8000

	// TagMask selects the reserved bits of the address field
	TagMask uint16 = 0xC000

	// AddressMask selects the usable virtual address bits (14 bits)
	AddressMask uint16 = 0x3FFF

	// MaxAddresses is the size of the virtual address space
	MaxAddresses = int(AddressMask) + 1
)
