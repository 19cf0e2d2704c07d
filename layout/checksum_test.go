package layout

import "testing"

func TestCRC16(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected uint16
	}{
		{
			name:     "empty data",
			data:     []byte{},
			expected: 0xFFFF,
		},
		{
			name:     "single byte zero",
			data:     []byte{0x00},
			expected: 0xE1F0,
		},
		{
			name:     "test data",
			data:     []byte{0x01, 0x02, 0x03, 0x04},
			expected: 0x89C3,
		},
		{
			name:     "check string",
			data:     []byte("123456789"),
			expected: 0x29B1, // CRC-16/CCITT-FALSE check value
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CRC16(tt.data)
			if result != tt.expected {
				t.Errorf("CRC16() = 0x%04X, want 0x%04X", result, tt.expected)
			}
		})
	}
}

func TestRecordCRCIgnoresLowBits(t *testing.T) {
	word := uint64(0x0000006480050000)
	if RecordCRC(word) != RecordCRC(word|0xFFFF) {
		t.Error("RecordCRC() must only cover the upper 48 bits")
	}
	if got := RecordCRC(word); got != 0x0286 {
		t.Errorf("RecordCRC() = 0x%04X, want 0x0286", got)
	}
}

func TestRowChecksum(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected byte
	}{
		{
			name:     "empty data",
			data:     []byte{},
			expected: 0x00,
		},
		{
			name:     "single byte",
			data:     []byte{0x01},
			expected: 0xFF,
		},
		{
			name:     "multiple bytes",
			data:     []byte{0x01, 0x02, 0x03, 0x04},
			expected: 0xF6, // 2's complement of 0x0A
		},
		{
			name:     "all ones",
			data:     []byte{0xFF, 0xFF, 0xFF, 0xFF},
			expected: 0x04, // overflow and 2's complement
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RowChecksum(tt.data)
			if result != tt.expected {
				t.Errorf("RowChecksum() = 0x%02X, want 0x%02X", result, tt.expected)
			}
		})
	}
}

func BenchmarkRecordCRC(b *testing.B) {
	word := EncodeRecord(0x0123, 0xCAFEF00D)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = RecordCRC(word)
	}
}
