package dump

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/moffa90/go-eeemul/flash"
	"github.com/moffa90/go-eeemul/layout"
)

const (
	testBase     = 0x08000000
	testPageSize = 64
)

func newTestMemory(t *testing.T) *flash.Memory {
	t.Helper()

	mem := flash.NewMemory(testBase, 4*testPageSize, testPageSize)
	if err := mem.Write(testBase, layout.WordBytes(layout.Programmed)); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if err := mem.Write(testBase+2*testPageSize+layout.HeaderSize, layout.WordBytes(layout.EncodeRecord(5, 100))); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	return mem
}

func TestCaptureWriteParse(t *testing.T) {
	mem := newTestMemory(t)

	img, err := Capture(mem, testBase, testPageSize, 4)
	if err != nil {
		t.Fatalf("Capture() error: %v", err)
	}
	if len(img.Pages) != 4 || img.Size() != 4*testPageSize {
		t.Fatalf("captured %d pages, %d bytes", len(img.Pages), img.Size())
	}
	if got := img.Address(img.Pages[2]); got != testBase+2*testPageSize {
		t.Errorf("Address(page 2) = 0x%08X", got)
	}

	var buf bytes.Buffer
	if err := Write(&buf, img); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("image has %d lines, want 5", len(lines))
	}
	if lines[0] != "08000000000000400004" {
		t.Errorf("header = %q", lines[0])
	}

	parsed, err := ParseReader(&buf)
	if err != nil {
		t.Fatalf("ParseReader() error: %v", err)
	}
	for i, p := range parsed.Pages {
		if !bytes.Equal(p.Data, img.Pages[i].Data) {
			t.Errorf("page %d content differs after parsing", i)
		}
		if p.Checksum != img.Pages[i].Checksum {
			t.Errorf("page %d checksum = 0x%02X, captured 0x%02X", i, p.Checksum, img.Pages[i].Checksum)
		}
	}
}

func TestCaptureErrors(t *testing.T) {
	mem := flash.NewMemory(testBase, 4*testPageSize, testPageSize)

	tests := []struct {
		name     string
		base     uint32
		pageSize uint32
		pages    uint32
		errMsg   string
	}{
		{"zero page size", testBase, 0, 4, "invalid page size"},
		{"unaligned base", testBase + 8, testPageSize, 2, "not aligned"},
		{"no pages", testBase, testPageSize, 0, "invalid page count"},
		{"past device end", testBase, testPageSize, 5, "failed to read page 4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Capture(mem, tt.base, tt.pageSize, tt.pages)
			if err == nil || !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("Capture() error = %v, want substring %q", err, tt.errMsg)
			}
		})
	}
}

func TestRestore(t *testing.T) {
	src := newTestMemory(t)
	img, err := Capture(src, testBase, testPageSize, 4)
	if err != nil {
		t.Fatalf("Capture() error: %v", err)
	}

	dst := flash.NewMemory(testBase, 4*testPageSize, testPageSize)
	// stale content is replaced
	if err := dst.Write(testBase+3*testPageSize, layout.WordBytes(0)); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	writes := dst.Writes()

	if err := img.Restore(dst); err != nil {
		t.Fatalf("Restore() error: %v", err)
	}
	if !bytes.Equal(dst.Snapshot(), src.Snapshot()) {
		t.Error("restored flash differs from the captured one")
	}
	if got := dst.Writes() - writes; got != 2 {
		t.Errorf("Restore() programmed %d pages, want 2", got)
	}
	if got := dst.Erases(); got != 4 {
		t.Errorf("Restore() erased %d pages, want 4", got)
	}
}

func TestRestoreErrors(t *testing.T) {
	src := newTestMemory(t)
	img, err := Capture(src, testBase, testPageSize, 4)
	if err != nil {
		t.Fatalf("Capture() error: %v", err)
	}

	t.Run("erase failure", func(t *testing.T) {
		dst := flash.NewMemory(testBase, 4*testPageSize, testPageSize)
		dst.FailEraseAfter(1)
		err := img.Restore(dst)
		if !errors.Is(err, flash.ErrInjected) || !strings.Contains(err.Error(), "erase page 1") {
			t.Errorf("Restore() error = %v", err)
		}
	})

	t.Run("invalid image", func(t *testing.T) {
		bad := &Image{BaseAddress: testBase, PageSize: testPageSize, Pages: []*Page{{Index: 0, Data: []byte{1}}}}
		dst := flash.NewMemory(testBase, 4*testPageSize, testPageSize)
		if err := bad.Restore(dst); err == nil || !strings.Contains(err.Error(), "invalid image") {
			t.Errorf("Restore() error = %v", err)
		}
		if dst.Erases() != 0 {
			t.Error("invalid image touched the device")
		}
	})
}

func TestImageValidate(t *testing.T) {
	tests := []struct {
		name   string
		img    *Image
		errMsg string
	}{
		{"zero page size", &Image{}, "page size cannot be zero"},
		{
			"short page",
			&Image{PageSize: 8, Pages: []*Page{{Index: 0, Data: []byte{1, 2}}}},
			"does not match page size",
		},
		{
			"duplicate page",
			&Image{PageSize: 1, Pages: []*Page{{Index: 3, Data: []byte{1}}, {Index: 3, Data: []byte{2}}}},
			"duplicate page",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.img.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("Validate() error = %v, want substring %q", err, tt.errMsg)
			}
		})
	}

	img := &Image{PageSize: 1, Pages: []*Page{{Index: 2, Data: []byte{1}}}}
	if img.Page(2) == nil || img.Page(1) != nil {
		t.Error("Page() lookup by index failed")
	}
}
