package script

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// Program is a parsed script.
type Program struct {
	Statements []*Statement `@@*`
}

// Statement is a single script command. Exactly one field is set.
type Statement struct {
	Pos lexer.Position

	Format *Format `  @@`
	Init   *Init   `| @@`
	Write  *Write  `| @@`
	Read   *Read   `| @@`
	Expect *Expect `| @@`
	Clean  *Clean  `| @@`
	Stats  *Stats  `| @@`
}

// Format erases all banks.
type Format struct {
	Keyword bool `@"format"`
}

// Init recovers all banks from flash.
type Init struct {
	Keyword bool `@"init"`
}

// Write stores a value.
// Example: write 0 0x0005 100 autoclean
type Write struct {
	Bank      Number `"write" @Number`
	Address   Number `@Number`
	Value     Number `@Number`
	AutoClean bool   `@"autoclean"?`
}

// Read prints a value.
type Read struct {
	Bank    Number `"read" @Number`
	Address Number `@Number`
}

// Expect checks a value.
type Expect struct {
	Bank    Number `"expect" @Number`
	Address Number `@Number`
	Value   Number `@Number`
}

// Clean erases the pool left by the last transfer.
type Clean struct {
	Bank Number `"clean" @Number`
}

// Stats prints the bank cursor.
type Stats struct {
	Bank Number `"stats" @Number`
}

// Number is a 32-bit unsigned integer literal, decimal or 0x hex.
type Number uint32

// Capture implements participle.Capture.
func (n *Number) Capture(values []string) error {
	s := values[0]
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s, base = s[2:], 16
	}

	v, err := strconv.ParseUint(s, base, 32)
	if err != nil {
		return fmt.Errorf("invalid number %q: out of 32-bit range", values[0])
	}
	*n = Number(v)
	return nil
}

// String returns the statement as it would be written in a script.
func (s *Statement) String() string {
	switch {
	case s.Format != nil:
		return "format"
	case s.Init != nil:
		return "init"
	case s.Write != nil:
		str := fmt.Sprintf("write %d 0x%04X %d", s.Write.Bank, uint32(s.Write.Address), s.Write.Value)
		if s.Write.AutoClean {
			str += " autoclean"
		}
		return str
	case s.Read != nil:
		return fmt.Sprintf("read %d 0x%04X", s.Read.Bank, uint32(s.Read.Address))
	case s.Expect != nil:
		return fmt.Sprintf("expect %d 0x%04X %d", s.Expect.Bank, uint32(s.Expect.Address), s.Expect.Value)
	case s.Clean != nil:
		return fmt.Sprintf("clean %d", s.Clean.Bank)
	case s.Stats != nil:
		return fmt.Sprintf("stats %d", s.Stats.Bank)
	default:
		return "<empty>"
	}
}
