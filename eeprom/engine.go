package eeprom

import (
	"fmt"

	"github.com/moffa90/go-eeemul/layout"
)

// Flash is the flash driver consumed by the engine.
//
// Write programs whole flash words (8 bytes) into erased locations and
// Erase erases whole pages. Read copies flash content; on memory-mapped
// targets it is a plain copy.
type Flash interface {
	Read(addr uint32, p []byte) error
	Write(addr uint32, p []byte) error
	Erase(addr, length uint32) error
}

// Engine is an EEPROM emulation instance over one flash device.
//
// Engine is safe for concurrent use; operations on one bank are serialized.
type Engine struct {
	device Flash
	config Config
	banks  [MaxBanks]bank
}

// New creates an engine for device. Init must be called before any other
// operation.
//
// Example:
//
//	dev := flash.NewMemory(0x0803C000, 4*2048, 2048)
//	ee := eeprom.New(dev, eeprom.WithLogger(myLogger))
func New(device Flash, opts ...Option) *Engine {
	if device == nil {
		panic("device cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	e := &Engine{
		device: device,
		config: cfg,
	}
	for i := range e.banks {
		e.banks[i].index = i
	}
	return e
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.config
}

// Init sets up every configured bank at baseAddress, bank 1 following
// bank 0. With format set, all bank pages are erased and the first page of
// each bank is marked ACTIVE. Otherwise the write cursor of each bank is
// recovered from flash, an interrupted transfer is completed and the
// inactive pool is erased.
//
// Banks are processed in order and Init stops at the first failure.
func (e *Engine) Init(format bool, baseAddress uint32) error {
	for i := range e.banks {
		e.banks[i].mutex.Lock()
		defer e.banks[i].mutex.Unlock()
	}

	if err := e.configure(baseAddress); err != nil {
		e.logError("invalid configuration", "error", err)
		return err
	}

	for i := range e.banks {
		b := &e.banks[i]
		if b.disabled {
			continue
		}

		var err error
		if format {
			err = e.format(b)
		} else {
			err = e.recoverBank(b)
		}
		if err != nil {
			e.logError("bank init failed",
				"bank", b.index,
				"format", format,
				"error", err,
			)
			return fmt.Errorf("init bank %d: %w", b.index, err)
		}
		b.ready = true

		e.logInfo("bank ready",
			"bank", b.index,
			"address", fmt.Sprintf("0x%08X", b.address),
			"page", b.currentPage,
			"elements", b.written,
			"offset", b.nextOffset,
		)
	}
	return nil
}

// configure resets every bank descriptor from the static configuration.
// Callers hold all bank locks.
func (e *Engine) configure(baseAddress uint32) error {
	for i := range e.banks {
		e.banks[i].reset()
	}

	if !layout.IsAligned(baseAddress, e.config.PageSize) {
		return &layout.GeometryError{
			Field:  "base address",
			Value:  baseAddress,
			Reason: fmt.Sprintf("must be aligned to the %d byte page size", e.config.PageSize),
		}
	}
	if e.config.Banks[0].Size == 0 {
		return fmt.Errorf("bank 0: %w", &layout.GeometryError{
			Field:  "bank size",
			Reason: "bank 0 cannot be disabled",
		})
	}

	addr := baseAddress
	for i := range e.banks {
		b := &e.banks[i]
		cfg := e.config.Banks[i]
		if cfg.Size == 0 {
			b.disabled = true
			continue
		}

		geo, err := layout.GeometryForBank(cfg.Size, e.config.PageSize)
		if err != nil {
			return fmt.Errorf("bank %d: %w", i, err)
		}
		if cfg.MaxElements == 0 || cfg.MaxElements > geo.SlotsPerPool() || cfg.MaxElements > uint32(layout.MaxAddresses) {
			return fmt.Errorf("bank %d: %w", i, &layout.GeometryError{
				Field:  "max elements",
				Value:  cfg.MaxElements,
				Reason: fmt.Sprintf("must be between 1 and the pool capacity of %d slots", geo.SlotsPerPool()),
			})
		}

		b.configure(addr, geo, cfg.MaxElements)
		addr += cfg.Size
	}
	return nil
}

// format erases the bank and starts a fresh pool on page 0.
func (e *Engine) format(b *bank) error {
	e.logInfo("formatting bank",
		"bank", b.index,
		"address", fmt.Sprintf("0x%08X", b.address),
		"pages", b.geo.PageCount(),
	)

	if err := e.erasePages(b, 0, b.geo.PageCount()); err != nil {
		return err
	}
	if err := e.setState(b, 0, layout.StateActive); err != nil {
		return err
	}
	b.resetCursor(0)
	return nil
}

// lockBank returns the locked descriptor of an initialized bank.
func (e *Engine) lockBank(index int) (*bank, error) {
	if index < 0 || index >= MaxBanks {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBank, index)
	}

	b := &e.banks[index]
	b.mutex.Lock()
	switch {
	case b.disabled:
		b.mutex.Unlock()
		return nil, fmt.Errorf("%w: bank %d is disabled", ErrInvalidBank, index)
	case !b.ready:
		b.mutex.Unlock()
		return nil, fmt.Errorf("%w: bank %d", ErrNotInitialized, index)
	}
	return b, nil
}

func (b *bank) checkAddress(addr uint16) error {
	if uint32(addr) >= b.maxElements {
		return fmt.Errorf("%w: 0x%04X, bank %d holds %d elements", ErrInvalidAddress, addr, b.index, b.maxElements)
	}
	return nil
}

// Read returns the last value written at addr in bank.
// It returns ErrNotFound when the address holds no valid record.
func (e *Engine) Read(bank int, addr uint16) (uint32, error) {
	b, err := e.lockBank(bank)
	if err != nil {
		return 0, err
	}
	defer b.mutex.Unlock()

	if err := b.checkAddress(addr); err != nil {
		return 0, err
	}

	data, found, err := e.find(b, addr, b.currentPage)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, fmt.Errorf("%w: bank %d address 0x%04X", ErrNotFound, bank, addr)
	}
	return data, nil
}

// Write stores data at addr in bank.
//
// When the active pool is full, the live elements are moved to the other
// pool before Write returns and cleanNeeded is set: the old pool must then be
// erased with Clean before the new pool fills up in turn. A transfer that
// fails after switching pools leaves the bank uninitialized until the next
// Init.
func (e *Engine) Write(bank int, addr uint16, data uint32) (cleanNeeded bool, err error) {
	b, err := e.lockBank(bank)
	if err != nil {
		return false, err
	}
	defer b.mutex.Unlock()

	if err := b.checkAddress(addr); err != nil {
		return false, err
	}

	if !b.poolFull() {
		if err := e.appendRecord(b, addr, data); err != nil {
			e.logError("write failed",
				"bank", bank,
				"addr", fmt.Sprintf("0x%04X", addr),
				"error", err,
			)
			return false, err
		}
		return false, nil
	}

	oldPool := b.geo.PoolStart(b.currentPage)
	if err := e.transfer(b, addr, data); err != nil {
		if b.geo.PoolStart(b.currentPage) != oldPool {
			// the cursor already moved to the new pool, Init resumes from flash
			b.ready = false
		}
		e.logError("transfer failed",
			"bank", bank,
			"addr", fmt.Sprintf("0x%04X", addr),
			"error", err,
		)
		return false, err
	}
	return true, nil
}

// Clean erases the pool left in ERASING state by the last transfer.
// It returns a StateError when there is nothing to clean.
func (e *Engine) Clean(bank int) error {
	b, err := e.lockBank(bank)
	if err != nil {
		return err
	}
	defer b.mutex.Unlock()

	page := b.geo.OtherPoolStart(b.currentPage)
	state, err := e.pageState(b, page)
	if err != nil {
		return err
	}
	if state != layout.StateErasing {
		return &StateError{Bank: bank, Page: page, Want: layout.StateErasing, Got: state}
	}

	if err := e.erasePages(b, page, b.geo.PagesPerPool); err != nil {
		e.logError("clean failed", "bank", bank, "error", err)
		return err
	}

	e.logInfo("pool cleaned", "bank", bank, "page", page)
	return nil
}

// Stats returns a snapshot of the bank descriptor.
func (e *Engine) Stats(bank int) (BankStats, error) {
	b, err := e.lockBank(bank)
	if err != nil {
		return BankStats{}, err
	}
	defer b.mutex.Unlock()

	return b.stats(), nil
}

// PageStates returns the decoded state of every page of the bank.
func (e *Engine) PageStates(bank int) ([]layout.PageState, error) {
	b, err := e.lockBank(bank)
	if err != nil {
		return nil, err
	}
	defer b.mutex.Unlock()

	states := make([]layout.PageState, b.geo.PageCount())
	for page := range states {
		s, err := e.pageState(b, uint32(page))
		if err != nil {
			return nil, err
		}
		states[page] = s
	}
	return states, nil
}

// reportProgress calls the progress callback if configured.
func (e *Engine) reportProgress(progress Progress) {
	if e.config.ProgressCallback != nil {
		e.config.ProgressCallback(progress)
	}
}

// logDebug logs a debug message if a logger is configured.
func (e *Engine) logDebug(msg string, keysAndValues ...interface{}) {
	if e.config.Logger != nil {
		e.config.Logger.Debug(msg, keysAndValues...)
	}
}

// logInfo logs an info message if a logger is configured.
func (e *Engine) logInfo(msg string, keysAndValues ...interface{}) {
	if e.config.Logger != nil {
		e.config.Logger.Info(msg, keysAndValues...)
	}
}

// logError logs an error message if a logger is configured.
func (e *Engine) logError(msg string, keysAndValues ...interface{}) {
	if e.config.Logger != nil {
		e.config.Logger.Error(msg, keysAndValues...)
	}
}
