package dump

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/moffa90/go-eeemul/layout"
)

// Constants for the image text format.
const (
	// HeaderLength is the expected length of the header line in hex characters
	HeaderLength = 20

	// RowPrefix starts every page row
	RowPrefix = ':'

	// RowHeaderSize is the size of row metadata (index + length)
	RowHeaderSize = 4

	// RowChecksumSize is the size of the row checksum field
	RowChecksumSize = 1

	// MinimumRowDataBytes is the minimum number of decoded bytes in a row
	MinimumRowDataBytes = RowHeaderSize + RowChecksumSize

	// MaxPages is the largest page count a header can describe
	MaxPages = 0xFFFF

	// maxLineLength bounds a row line: prefix + hex of a 64 KiB page
	maxLineLength = 1 + 2*(MinimumRowDataBytes+0xFFFF)
)

// Parse parses an image file from the given path.
//
// Example:
//
//	img, err := dump.Parse("bank0.dump")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Base: 0x%08X, %d pages\n", img.BaseAddress, len(img.Pages))
func Parse(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ParseReader(f)
}

// ParseReader parses an image from any io.Reader.
func ParseReader(r io.Reader) (*Image, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineLength+1)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("failed to read header: %w", err)
		}
		return nil, fmt.Errorf("empty file")
	}

	img, count, err := parseHeader(scanner.Text())
	if err != nil {
		return nil, fmt.Errorf("failed to parse header: %w", err)
	}

	seen := make(map[uint16]bool, count)
	lineNum := 1
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		// Skip empty lines
		if line == "" {
			continue
		}

		page, err := parseRow(line, img.PageSize)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		if seen[page.Index] {
			return nil, fmt.Errorf("line %d: duplicate page %d", lineNum, page.Index)
		}
		seen[page.Index] = true

		img.Pages = append(img.Pages, page)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	if len(img.Pages) == 0 {
		return nil, fmt.Errorf("no pages found in file")
	}
	if len(img.Pages) != count {
		return nil, fmt.Errorf("page count mismatch: header declares %d, found %d", count, len(img.Pages))
	}

	return img, nil
}

// parseHeader parses the image header.
//
// Header format (20 hex characters):
//
//	[BaseAddress(4 bytes)][PageSize(4 bytes)][PageCount(2 bytes)]
func parseHeader(line string) (*Image, int, error) {
	if len(line) != HeaderLength {
		return nil, 0, fmt.Errorf("invalid header length: got %d characters, expected %d", len(line), HeaderLength)
	}

	data, err := hex.DecodeString(line)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid hex data: %w", err)
	}

	img := &Image{
		BaseAddress: be32(data[0:]),
		PageSize:    be32(data[4:]),
	}
	count := int(be16(data[8:]))

	if img.PageSize == 0 || img.PageSize > 0xFFFF || img.PageSize%layout.FlashWidth != 0 {
		return nil, 0, fmt.Errorf("invalid page size: %d (must be a non-zero multiple of %d below 64 KiB)", img.PageSize, layout.FlashWidth)
	}
	if !layout.IsAligned(img.BaseAddress, img.PageSize) {
		return nil, 0, fmt.Errorf("base address 0x%08X is not aligned to the page size", img.BaseAddress)
	}

	img.Pages = make([]*Page, 0, count)
	return img, count, nil
}

// parseRow parses a single page row.
//
// Row format:
//
//	:[Index(2 bytes)][Length(2 bytes)][Data(N bytes)][Checksum(1 byte)]
func parseRow(line string, pageSize uint32) (*Page, error) {
	if line[0] != RowPrefix {
		return nil, fmt.Errorf("row must start with '%c'", RowPrefix)
	}
	line = line[1:]

	if len(line) < 2*MinimumRowDataBytes {
		return nil, fmt.Errorf("row too short: got %d characters, minimum is %d", len(line), 2*MinimumRowDataBytes)
	}

	data, err := hex.DecodeString(line)
	if err != nil {
		return nil, fmt.Errorf("invalid hex data: %w", err)
	}

	index := be16(data[0:])
	dataLen := be16(data[2:])

	expectedLen := RowHeaderSize + int(dataLen) + RowChecksumSize
	if len(data) != expectedLen {
		return nil, fmt.Errorf("data length mismatch: got %d bytes, expected %d (header=%d + data=%d + checksum=%d)",
			len(data), expectedLen, RowHeaderSize, dataLen, RowChecksumSize)
	}
	if uint32(dataLen) != pageSize {
		return nil, fmt.Errorf("page %d: length %d does not match page size %d", index, dataLen, pageSize)
	}

	checksum := data[len(data)-1]
	calculated := layout.RowChecksum(data[:len(data)-1])
	if checksum != calculated {
		return nil, fmt.Errorf("checksum mismatch: got 0x%02X, expected 0x%02X", checksum, calculated)
	}

	page := &Page{
		Index:    index,
		Data:     make([]byte, dataLen),
		Checksum: checksum,
	}
	copy(page.Data, data[RowHeaderSize:RowHeaderSize+int(dataLen)])

	return page, nil
}

func be16(b []byte) uint16 {
	return uint16(b[0])<<8 | uint16(b[1])
}

func be32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}
