package script

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/moffa90/go-eeemul/eeprom"
	"github.com/moffa90/go-eeemul/flash"
)

const (
	testBase     = 0x08000000
	testPageSize = 64 // four record slots per page
	testBankSize = 4 * testPageSize
)

func newTestEngine() *eeprom.Engine {
	mem := flash.NewMemory(testBase, testBankSize, testPageSize)
	return eeprom.New(mem,
		eeprom.WithPageSize(testPageSize),
		eeprom.WithBank(0, testBankSize, 4),
	)
}

func TestParseString(t *testing.T) {
	input := `
	# provisioning
	format
	write 0 0x0001 0x00010203   # hex value
	write 0 2 300 autoclean
	read 0 1
	expect 0 2 300
	clean 0
	stats 0
	init
	`

	prog, err := ParseString("test.ee", input)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	if len(prog.Statements) != 8 {
		t.Fatalf("Expected 8 statements, got %d", len(prog.Statements))
	}

	w := prog.Statements[1].Write
	if w == nil {
		t.Fatal("Statement 1 is not a write")
	}
	if w.Bank != 0 || w.Address != 1 || w.Value != 0x00010203 || w.AutoClean {
		t.Errorf("write = %+v", *w)
	}
	if !prog.Statements[2].Write.AutoClean {
		t.Error("autoclean not parsed")
	}
	if prog.Statements[7].Init == nil {
		t.Error("last statement is not init")
	}
	if got := prog.Statements[4].Pos.Line; got != 7 {
		t.Errorf("expect statement on line %d, want 7", got)
	}

	want := []string{
		"format",
		"write 0 0x0001 66051",
		"write 0 0x0002 300 autoclean",
		"read 0 0x0001",
		"expect 0 0x0002 300",
		"clean 0",
		"stats 0",
		"init",
	}
	for i, stmt := range prog.Statements {
		if got := stmt.String(); got != want[i] {
			t.Errorf("Statements[%d].String() = %q, want %q", i, got, want[i])
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		errMsg string
	}{
		{"missing value", "write 0 1", "parse error"},
		{"unknown command", "erase 0", "parse error"},
		{"number too large", "write 0 1 0x100000000", "out of 32-bit range"},
		{"negative number", "read 0 -1", "parse error"},
		{"trailing garbage", "clean 0 0", "parse error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString("test.ee", tt.input)
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.errMsg)
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("error = %v, want substring %q", err, tt.errMsg)
			}
		})
	}
}

func TestParseFile(t *testing.T) {
	if _, err := ParseFile(t.TempDir() + "/missing.ee"); err == nil || !strings.Contains(err.Error(), "failed to open file") {
		t.Errorf("ParseFile() error = %v", err)
	}
}

func TestRun(t *testing.T) {
	prog, err := ParseString("test.ee", `
		format
		write 0 1 100
		read 0 1
		read 0 2
		expect 0 1 100
		stats 0
	`)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	var out bytes.Buffer
	if err := prog.Run(newTestEngine(), testBase, &out); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	want := "formatted at 0x08000000\n" +
		"bank 0 0x0001 <- 100 (0x00000064)\n" +
		"bank 0 0x0001 = 100 (0x00000064)\n" +
		"bank 0 0x0002: EE_NOT_FOUND\n" +
		"bank 0 0x0001 = 100 ok\n" +
		"bank 0 page 0 offset 40 elements 1/8\n"
	if out.String() != want {
		t.Errorf("output =\n%s\nwant\n%s", out.String(), want)
	}
}

func TestRunTransfer(t *testing.T) {
	fill := "format\n" + strings.Repeat("write 0 0 1\nwrite 0 1 2\n", 4)

	t.Run("clean needed", func(t *testing.T) {
		prog, err := ParseString("test.ee", fill+"write 0 2 3\nclean 0\nexpect 0 0 1\nexpect 0 2 3\n")
		if err != nil {
			t.Fatalf("Failed to parse: %v", err)
		}

		var out bytes.Buffer
		if err := prog.Run(newTestEngine(), testBase, &out); err != nil {
			t.Fatalf("Run() error: %v", err)
		}
		if !strings.Contains(out.String(), "bank 0: EE_CLEAN_NEEDED\nbank 0 cleaned\n") {
			t.Errorf("output = %s", out.String())
		}
	})

	t.Run("autoclean", func(t *testing.T) {
		prog, err := ParseString("test.ee", fill+"write 0 2 3 autoclean\nexpect 0 1 2\n")
		if err != nil {
			t.Fatalf("Failed to parse: %v", err)
		}

		e := newTestEngine()
		var out bytes.Buffer
		if err := prog.Run(e, testBase, &out); err != nil {
			t.Fatalf("Run() error: %v", err)
		}
		if strings.Contains(out.String(), "EE_CLEAN_NEEDED") || !strings.Contains(out.String(), "bank 0 cleaned") {
			t.Errorf("output = %s", out.String())
		}

		// the old pool is already erased
		if err := e.Clean(0); !errors.Is(err, eeprom.ErrState) {
			t.Errorf("Clean() error = %v, want ErrState", err)
		}
	})
}

func TestRunExpectFailure(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantFound bool
		wantGot   uint32
		errMsg    string
	}{
		{
			name:      "different value",
			input:     "format\nwrite 0 3 7\nexpect 0 3 8\n",
			wantFound: true,
			wantGot:   7,
			errMsg:    "test.ee:3:1: bank 0 address 0x0003: expected 8 (0x00000008), got 7 (0x00000007)",
		},
		{
			name:   "missing value",
			input:  "format\nexpect 0 3 8\n",
			errMsg: "test.ee:2:1: bank 0 address 0x0003: expected 8, not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := ParseString("test.ee", tt.input)
			if err != nil {
				t.Fatalf("Failed to parse: %v", err)
			}

			err = prog.Run(newTestEngine(), testBase, &bytes.Buffer{})
			var expectErr *ExpectError
			if !errors.As(err, &expectErr) {
				t.Fatalf("Run() error = %v, want *ExpectError", err)
			}
			if expectErr.Found != tt.wantFound || expectErr.Got != tt.wantGot {
				t.Errorf("ExpectError = %+v", *expectErr)
			}
			if err.Error() != tt.errMsg {
				t.Errorf("Error() = %q, want %q", err.Error(), tt.errMsg)
			}
		})
	}
}

func TestRunEngineErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
		errMsg  string
	}{
		{"not initialized", "read 0 1", eeprom.ErrNotInitialized, "test.ee:1:1: read 0 0x0001"},
		{"invalid bank", "format\nwrite 1 0 5", eeprom.ErrInvalidBank, "test.ee:2:1: write 1 0x0000 5"},
		{"address beyond element count", "format\nwrite 0 4 5", eeprom.ErrInvalidAddress, "test.ee:2:1"},
		{"address beyond virtual space", "format\nread 0 0x4000", eeprom.ErrInvalidAddress, "0x4000"},
		{"nothing to clean", "format\nclean 0", eeprom.ErrState, "clean 0"},
		{"blank flash", "init", eeprom.ErrState, "test.ee:1:1: init"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := ParseString("test.ee", tt.input)
			if err != nil {
				t.Fatalf("Failed to parse: %v", err)
			}

			err = prog.Run(newTestEngine(), testBase, &bytes.Buffer{})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Run() error = %v, want %v", err, tt.wantErr)
			}
			var stmtErr *StatementError
			if !errors.As(err, &stmtErr) {
				t.Fatalf("Run() error = %T, want *StatementError", err)
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("error = %v, want substring %q", err, tt.errMsg)
			}
		})
	}
}
