package flash

import (
	"io"
	"os"
	"sync"

	"github.com/pkg/errors"
)

// File is a flash device backed by an image file on disk.
// The image holds the device content from Base to Base+Size, one byte per
// flash byte, so it can be inspected with any hex viewer.
type File struct {
	region

	mutex sync.Mutex
	path  string
	f     *os.File
}

// OpenFile opens or creates a flash image. A new or short image is extended
// with erased bytes up to size.
func OpenFile(path string, base, size, pageSize uint32) (*File, error) {
	if pageSize == 0 || size%pageSize != 0 {
		return nil, errors.Errorf("flash image %s: size %d is not a multiple of page size %d", path, size, pageSize)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, errors.Wrapf(err, "open flash image %s", path)
	}

	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, errors.Wrapf(err, "stat flash image %s", path)
	}

	if fi.Size() < int64(size) {
		pad := make([]byte, int64(size)-fi.Size())
		erase(pad)
		if _, err := f.WriteAt(pad, fi.Size()); err != nil {
			_ = f.Close()
			return nil, errors.Wrapf(err, "extend flash image %s", path)
		}
	}

	return &File{
		region: region{base: base, size: size, pageSize: pageSize},
		path:   path,
		f:      f,
	}, nil
}

// Path returns the image file path.
func (d *File) Path() string { return d.path }

// Read copies image content at addr into p.
func (d *File) Read(addr uint32, p []byte) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.f == nil {
		return ErrClosed
	}
	off, err := d.offset(addr, len(p))
	if err != nil {
		return err
	}
	if _, err := d.f.ReadAt(p, int64(off)); err != nil && err != io.EOF {
		return errors.Wrapf(err, "read flash image %s at 0x%08X", d.path, addr)
	}
	return nil
}

// Write programs p at addr with NOR semantics.
func (d *File) Write(addr uint32, p []byte) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.f == nil {
		return ErrClosed
	}
	off, err := d.checkWrite(addr, len(p))
	if err != nil {
		return err
	}

	cur := make([]byte, len(p))
	if _, err := d.f.ReadAt(cur, int64(off)); err != nil && err != io.EOF {
		return errors.Wrapf(err, "read flash image %s at 0x%08X", d.path, addr)
	}
	if err := program(cur, p, false); err != nil {
		return errors.WithMessagef(err, "write 0x%08X", addr)
	}
	if _, err := d.f.WriteAt(cur, int64(off)); err != nil {
		return errors.Wrapf(err, "write flash image %s at 0x%08X", d.path, addr)
	}
	return nil
}

// Erase erases the pages covering [addr, addr+length).
func (d *File) Erase(addr, length uint32) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.f == nil {
		return ErrClosed
	}
	off, err := d.checkErase(addr, length)
	if err != nil {
		return err
	}

	blank := make([]byte, length)
	erase(blank)
	if _, err := d.f.WriteAt(blank, int64(off)); err != nil {
		return errors.Wrapf(err, "erase flash image %s at 0x%08X", d.path, addr)
	}
	return nil
}

// Sync flushes the image to stable storage.
func (d *File) Sync() error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.f == nil {
		return ErrClosed
	}
	return errors.Wrapf(d.f.Sync(), "sync flash image %s", d.path)
}

// Close syncs and closes the image.
func (d *File) Close() error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.f == nil {
		return nil
	}
	err := d.f.Sync()
	if cerr := d.f.Close(); err == nil {
		err = cerr
	}
	d.f = nil
	return errors.Wrapf(err, "close flash image %s", d.path)
}
