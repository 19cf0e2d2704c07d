package eeprom

import "github.com/moffa90/go-eeemul/layout"

// MaxBanks is the number of banks an engine manages.
const MaxBanks = 2

// BankConfig is the static configuration of one bank.
// It is not stored in flash: recovering a bank with a different
// configuration than the one it was written with gives undefined results.
type BankConfig struct {
	// Size is the bank size in bytes, split into two equal pools.
	// Zero disables the bank.
	Size uint32

	// MaxElements is the number of virtual addresses of the bank.
	// Addresses run from 0 to MaxElements-1.
	MaxElements uint32
}

// Config holds the engine configuration.
type Config struct {
	// ProgressCallback is called during pool transfers (optional)
	ProgressCallback ProgressCallback

	// Logger is used for logging operations (optional)
	Logger Logger

	// PageSize is the flash erase page size in bytes
	PageSize uint32

	// Banks holds the per-bank configuration, bank 0 is mandatory
	Banks [MaxBanks]BankConfig

	// VerifyAfterWrite reads back every programmed word
	VerifyAfterWrite bool
}

// defaultConfig returns the default configuration: one bank of four
// 2 KB pages holding 100 elements.
func defaultConfig() Config {
	return Config{
		PageSize: layout.DefaultPageSize,
		Banks: [MaxBanks]BankConfig{
			{Size: 4 * layout.DefaultPageSize, MaxElements: 100},
		},
		VerifyAfterWrite: true,
	}
}

// Option is a functional option for configuring the Engine.
type Option func(*Config)

// WithProgressCallback sets a callback function to track pool transfers.
//
// Example:
//
//	ee := eeprom.New(dev,
//	    eeprom.WithProgressCallback(func(p eeprom.Progress) {
//	        fmt.Printf("[%s] %d/%d\n", p.Phase, p.Copied, p.Total)
//	    }),
//	)
func WithProgressCallback(callback ProgressCallback) Option {
	return func(c *Config) {
		c.ProgressCallback = callback
	}
}

// WithLogger sets a logger for the engine operations.
//
// Example:
//
//	ee := eeprom.New(dev, eeprom.WithLogger(myLogger))
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithPageSize sets the flash page size. Default is 2048 bytes.
func WithPageSize(size uint32) Option {
	return func(c *Config) {
		if size > 0 {
			c.PageSize = size
		}
	}
}

// WithBank configures bank index with size bytes of flash and maxElements
// virtual addresses. A size of 0 disables the bank.
//
// Example:
//
//	ee := eeprom.New(dev, eeprom.WithBank(1, 4*2048, 50))
func WithBank(index int, size, maxElements uint32) Option {
	return func(c *Config) {
		if index >= 0 && index < MaxBanks {
			c.Banks[index] = BankConfig{Size: size, MaxElements: maxElements}
		}
	}
}

// WithVerifyAfterWrite enables or disables read-back of programmed words.
// Default is true.
func WithVerifyAfterWrite(verify bool) Option {
	return func(c *Config) {
		c.VerifyAfterWrite = verify
	}
}
