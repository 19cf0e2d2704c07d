package script

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Lexer defines the lexical structure of provisioning scripts.
var Lexer = lexer.MustSimple([]lexer.SimpleRule{
	// Comments (# to end of line)
	{Name: "Comment", Pattern: `#[^\n]*`},

	// Whitespace, newlines included
	{Name: "Whitespace", Pattern: `[\s]+`},

	// Numbers, hex before decimal
	{Name: "Number", Pattern: `0[xX][0-9a-fA-F]+|[0-9]+`},

	// Keywords and anything else word-like
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
})
