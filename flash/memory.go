package flash

import (
	"sync"

	"github.com/pkg/errors"
)

// Memory is an in-memory NOR flash.
//
// Programming only clears bits and needs an erased flash word, erasing sets
// whole pages back to 0xFF, and both can be made to fail on demand. Memory is safe for concurrent use.
type Memory struct {
	region

	mutex sync.RWMutex
	data  []byte

	// allowOverwrite disables the erased-destination check
	allowOverwrite bool

	writes int
	erases int

	// remaining successful operations before a fault, -1 = disabled
	failWriteIn int
	failEraseIn int
	powerCutIn  int

	powerLost bool
	tear      bool
}

// NewMemory creates an erased flash of size bytes starting at base.
// size must be a multiple of pageSize.
func NewMemory(base, size, pageSize uint32) *Memory {
	if pageSize == 0 || size%pageSize != 0 {
		panic("flash: size must be a non-zero multiple of the page size")
	}

	m := &Memory{
		region: region{base: base, size: size, pageSize: pageSize},
		data:   make([]byte, size),
	}
	erase(m.data)
	m.clearFaults()
	return m
}

// SetAllowOverwrite lets writes AND into non-erased flash words instead of
// failing.
func (m *Memory) SetAllowOverwrite(allow bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.allowOverwrite = allow
}

// Read copies flash content at addr into p.
func (m *Memory) Read(addr uint32, p []byte) error {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.powerLost {
		return ErrPowerLost
	}

	off, err := m.offset(addr, len(p))
	if err != nil {
		return err
	}
	copy(p, m.data[off:])
	return nil
}

// Write programs p at addr.
func (m *Memory) Write(addr uint32, p []byte) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	off, err := m.checkWrite(addr, len(p))
	if err != nil {
		return err
	}

	if err := m.beginOp(); err != nil {
		if err == ErrPowerLost && m.tear {
			// Half of the word makes it to the array.
			half := len(p) / 2
			_ = program(m.data[off:off+uint32(half)], p[:half], true)
		}
		return errors.WithMessagef(err, "write 0x%08X", addr)
	}

	if m.failWriteIn == 0 {
		return errors.WithMessagef(ErrInjected, "write 0x%08X", addr)
	}
	if m.failWriteIn > 0 {
		m.failWriteIn--
	}

	if err := program(m.data[off:off+uint32(len(p))], p, m.allowOverwrite); err != nil {
		return errors.WithMessagef(err, "write 0x%08X", addr)
	}
	m.writes++
	return nil
}

// Erase erases the pages covering [addr, addr+length).
func (m *Memory) Erase(addr, length uint32) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	off, err := m.checkErase(addr, length)
	if err != nil {
		return err
	}

	if err := m.beginOp(); err != nil {
		if err == ErrPowerLost && m.tear && length > 0 {
			// Only the first page completes.
			erase(m.data[off : off+m.pageSize])
		}
		return errors.WithMessagef(err, "erase 0x%08X+%d", addr, length)
	}

	if m.failEraseIn == 0 {
		return errors.WithMessagef(ErrInjected, "erase 0x%08X+%d", addr, length)
	}
	if m.failEraseIn > 0 {
		m.failEraseIn--
	}

	erase(m.data[off : off+length])
	m.erases++
	return nil
}

// beginOp accounts for a program or erase operation against the power budget.
// Callers hold the write lock.
func (m *Memory) beginOp() error {
	if m.powerLost {
		return ErrPowerLost
	}
	if m.powerCutIn == 0 {
		m.powerLost = true
		return ErrPowerLost
	}
	if m.powerCutIn > 0 {
		m.powerCutIn--
	}
	return nil
}

// FailWriteAfter makes every write fail once n more writes have succeeded.
func (m *Memory) FailWriteAfter(n int) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.failWriteIn = n
}

// FailEraseAfter makes every erase fail once n more erases have succeeded.
func (m *Memory) FailEraseAfter(n int) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.failEraseIn = n
}

// PowerCutAfter cuts the supply once n more program or erase operations have
// completed. The interrupted operation and everything after it, reads
// included, fail with ErrPowerLost until Restore is called. With tear set,
// the interrupted operation is partially applied.
func (m *Memory) PowerCutAfter(n int, tear bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.powerCutIn = n
	m.tear = tear
}

// PowerLost reports whether the simulated supply has been cut.
func (m *Memory) PowerLost() bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.powerLost
}

// Restore powers the device back up and clears every injected fault.
// Flash content is preserved.
func (m *Memory) Restore() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.clearFaults()
}

func (m *Memory) clearFaults() {
	m.failWriteIn = -1
	m.failEraseIn = -1
	m.powerCutIn = -1
	m.powerLost = false
	m.tear = false
}

// Writes returns the number of successful program operations.
func (m *Memory) Writes() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.writes
}

// Erases returns the number of successful erase operations.
func (m *Memory) Erases() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.erases
}

// Snapshot returns a copy of the whole flash content.
func (m *Memory) Snapshot() []byte {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return append([]byte(nil), m.data...)
}

// Load replaces the flash content with a previous snapshot.
func (m *Memory) Load(snapshot []byte) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if len(snapshot) != len(m.data) {
		return errors.Errorf("snapshot is %d bytes, device is %d", len(snapshot), len(m.data))
	}
	copy(m.data, snapshot)
	return nil
}
