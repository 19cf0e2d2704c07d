package script

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/participle/v2"
)

var parser = participle.MustBuild[Program](
	participle.Lexer(Lexer),
	participle.Elide("Comment", "Whitespace"),
)

// Parse parses a script from r. name is used in error positions.
func Parse(name string, r io.Reader) (*Program, error) {
	prog, err := parser.Parse(name, r)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return prog, nil
}

// ParseString parses a script from a string.
func ParseString(name, input string) (*Program, error) {
	prog, err := parser.ParseString(name, input)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return prog, nil
}

// ParseFile parses a script file.
func ParseFile(filename string) (*Program, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return Parse(filename, file)
}
