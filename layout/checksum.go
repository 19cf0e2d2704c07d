package layout

// Checksum algorithm constants.
const (
	// CRC16Polynomial is the CRC-16-CCITT polynomial (0x1021)
	CRC16Polynomial = 0x1021

	// CRC16InitialValue is the CRC-16 initial value
	CRC16InitialValue = 0xFFFF

	// CRC16HighBitMask is the high bit mask for CRC-16 calculations
	CRC16HighBitMask = 0x8000

	// BitsPerByte is the number of bits per byte
	BitsPerByte = 8

	// crcInputBytes is the number of record bytes covered by the CRC
	crcInputBytes = 6
)

// CRC16 computes the CRC-16-CCITT checksum of data.
//
// CRC-16-CCITT parameters:
//   - Polynomial: CRC16Polynomial
//   - Initial value: CRC16InitialValue
//   - No final XOR
func CRC16(data []byte) uint16 {
	crc := uint16(CRC16InitialValue)

	for _, b := range data {
		crc ^= uint16(b) << BitsPerByte
		for i := 0; i < BitsPerByte; i++ {
			if crc&CRC16HighBitMask != 0 {
				crc = (crc << 1) ^ CRC16Polynomial
			} else {
				crc = crc << 1
			}
		}
	}

	return crc
}

// RecordCRC computes the CRC of a record word over its upper 48 bits.
// The covered bits are fed most significant byte first: the four data
// bytes, then the tagged address.
func RecordCRC(word uint64) uint16 {
	var buf [crcInputBytes]byte
	for i := 0; i < crcInputBytes; i++ {
		buf[i] = byte(word >> (56 - 8*i))
	}
	return CRC16(buf[:])
}

// RowChecksum computes the 8-bit checksum used by dump rows.
// The checksum is calculated by summing all bytes and taking 2's complement.
func RowChecksum(data []byte) byte {
	var sum byte
	for _, b := range data {
		sum += b
	}
	// Return 2's complement: invert and add 1
	return ^sum + 1
}
