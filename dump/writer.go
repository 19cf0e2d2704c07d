package dump

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/moffa90/go-eeemul/layout"
)

// Write writes img to w in the image text format. Row checksums are
// computed from the page content; Page.Checksum is not consulted.
func Write(w io.Writer, img *Image) error {
	if err := img.Validate(); err != nil {
		return fmt.Errorf("invalid image: %w", err)
	}

	bw := bufio.NewWriter(w)

	var header [HeaderLength / 2]byte
	putBE32(header[0:], img.BaseAddress)
	putBE32(header[4:], img.PageSize)
	putBE16(header[8:], uint16(len(img.Pages)))
	if _, err := fmt.Fprintln(bw, strings.ToUpper(hex.EncodeToString(header[:]))); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, p := range img.Pages {
		row := encodeRow(p)
		if _, err := fmt.Fprintf(bw, "%c%s\n", RowPrefix, strings.ToUpper(hex.EncodeToString(row))); err != nil {
			return fmt.Errorf("failed to write page %d: %w", p.Index, err)
		}
	}

	return bw.Flush()
}

// encodeRow returns the binary row of p including its checksum.
func encodeRow(p *Page) []byte {
	row := make([]byte, RowHeaderSize+len(p.Data)+RowChecksumSize)
	putBE16(row[0:], p.Index)
	putBE16(row[2:], uint16(len(p.Data)))
	copy(row[RowHeaderSize:], p.Data)
	row[len(row)-1] = layout.RowChecksum(row[:len(row)-1])
	return row
}

func putBE16(b []byte, v uint16) {
	b[0] = byte(v >> 8)
	b[1] = byte(v)
}

func putBE32(b []byte, v uint32) {
	b[0] = byte(v >> 24)
	b[1] = byte(v >> 16)
	b[2] = byte(v >> 8)
	b[3] = byte(v)
}
