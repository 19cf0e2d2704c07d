package eeprom

import "time"

// Transfer phases reported through Progress.Phase.
const (
	PhaseReceive  = "receive"
	PhaseCopy     = "copy"
	PhaseErasing  = "erasing"
	PhaseActivate = "activate"
	PhaseComplete = "complete"
)

// Progress describes the state of a pool transfer.
// Passed to ProgressCallback while a transfer runs.
type Progress struct {
	// Phase describes the current transfer step:
	//   "receive"  - first page of the new pool marked RECEIVE
	//   "erasing"  - old pool pages marked ERASING
	//   "copy"     - live elements copied into the new pool
	//   "activate" - new page marked ACTIVE
	//   "complete" - transfer finished, clean needed
	Phase string

	// Bank is the bank being compacted
	Bank int

	// Copied is the number of elements copied so far
	Copied int

	// Total is the number of virtual addresses scanned by the copy
	Total int

	// Resumed is set when the transfer was interrupted and resumed by Init
	Resumed bool

	// Percentage is the completion percentage (0.0 to 100.0)
	Percentage float64

	// ElapsedTime is the time elapsed since the transfer started
	ElapsedTime time.Duration
}

// ProgressCallback is called during pool transfers to report progress.
// It runs with the bank locked and must not call back into the engine.
type ProgressCallback func(Progress)

// Logger is an optional logging interface that can be provided to the engine.
// This allows integration with any logging framework.
//
// Example with standard log package:
//
//	type StdLogger struct{}
//	func (l *StdLogger) Debug(msg string, kv ...interface{}) { log.Println(msg, kv) }
//	func (l *StdLogger) Info(msg string, kv ...interface{})  { log.Println(msg, kv) }
//	func (l *StdLogger) Error(msg string, kv ...interface{}) { log.Println(msg, kv) }
//
//	ee := eeprom.New(dev, eeprom.WithLogger(&StdLogger{}))
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
}
