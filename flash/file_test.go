package flash

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestOpenFileCreatesErasedImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flash.img")

	d, err := OpenFile(path, testBase, testSize, testPageSize)
	if err != nil {
		t.Fatalf("OpenFile() error: %v", err)
	}
	defer d.Close()

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if !bytes.Equal(raw, bytes.Repeat([]byte{0xFF}, testSize)) {
		t.Error("new image is not erased")
	}
	if d.Path() != path {
		t.Errorf("Path() = %q, want %q", d.Path(), path)
	}
}

func TestFilePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flash.img")
	word := []byte{0x86, 0x02, 0x05, 0x80, 0x64, 0x00, 0x00, 0x00}

	d, err := OpenFile(path, testBase, testSize, testPageSize)
	if err != nil {
		t.Fatalf("OpenFile() error: %v", err)
	}
	if err := d.Write(testBase+testPageSize, word); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if err := d.Write(testBase, word); !errors.Is(err, ErrClosed) {
		t.Errorf("Write() after Close error = %v, want ErrClosed", err)
	}

	d, err = OpenFile(path, testBase, testSize, testPageSize)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	defer d.Close()

	got := make([]byte, 8)
	if err := d.Read(testBase+testPageSize, got); err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if !bytes.Equal(got, word) {
		t.Errorf("Read() = % X, want % X", got, word)
	}

	if err := d.Write(testBase+testPageSize, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x01}); !errors.Is(err, ErrNotErased) {
		t.Errorf("overwrite error = %v, want ErrNotErased", err)
	}

	if err := d.Erase(testBase+testPageSize, testPageSize); err != nil {
		t.Fatalf("Erase() error: %v", err)
	}
	_ = d.Read(testBase+testPageSize, got)
	if !bytes.Equal(got, bytes.Repeat([]byte{0xFF}, 8)) {
		t.Errorf("after Erase() = % X", got)
	}
	if err := d.Sync(); err != nil {
		t.Errorf("Sync() error: %v", err)
	}
}

func TestOpenFileRejectsBadGeometry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flash.img")
	if _, err := OpenFile(path, testBase, testSize+1, testPageSize); err == nil {
		t.Error("OpenFile() with partial page succeeded")
	}
}
