package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous or unrecognized token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// KwStruct represents the 'struct' keyword.
	KwStruct // struct
	// KwUnion represents the 'union' keyword.
	KwUnion // union
	// KwEnum represents the 'enum' keyword.
	KwEnum // enum
	// KwTypedef represents the 'typedef' keyword.
	KwTypedef // typedef
	// KwConst represents the 'const' qualifier.
	KwConst // const
	// KwVolatile represents the 'volatile' qualifier.
	KwVolatile // volatile
	// KwSigned represents the 'signed' specifier.
	KwSigned // signed
	// KwUnsigned represents the 'unsigned' specifier.
	KwUnsigned // unsigned
	// KwAttribute represents the GNU '__attribute__' marker.
	KwAttribute // __attribute__

	// IntLit represents the integer literal token.
	IntLit
	// CharLit represents the character literal token.
	CharLit
	// StringLit represents the string literal token.
	StringLit

	// Pragma represents a '#pragma pack(...)' directive line.
	// Text carries the argument text between the parentheses.
	Pragma

	// Star represents the star token.
	Star // *
	// Semicolon represents the semicolon token.
	Semicolon // ;
	// Colon represents the colon token.
	Colon // :
	// Comma represents the comma token.
	Comma // ,
	// LParen represents the left parenthesis token.
	LParen // (
	// RParen represents the right parenthesis token.
	RParen // )
	// LBrace represents the left brace token.
	LBrace // {
	// RBrace represents the right brace token.
	RBrace // }
	// LBracket represents the left bracket token.
	LBracket // [
	// RBracket represents the right bracket token.
	RBracket // ]
	// Assign represents the assign token.
	Assign // =
	// DotDotDot represents the ellipsis token.
	DotDotDot // ...
)

var kindNames = map[Kind]string{
	Invalid:     "Invalid",
	EOF:         "EOF",
	Ident:       "Ident",
	KwStruct:    "struct",
	KwUnion:     "union",
	KwEnum:      "enum",
	KwTypedef:   "typedef",
	KwConst:     "const",
	KwVolatile:  "volatile",
	KwSigned:    "signed",
	KwUnsigned:  "unsigned",
	KwAttribute: "__attribute__",
	IntLit:      "IntLit",
	CharLit:     "CharLit",
	StringLit:   "StringLit",
	Pragma:      "Pragma",
	Star:        "*",
	Semicolon:   ";",
	Colon:       ":",
	Comma:       ",",
	LParen:      "(",
	RParen:      ")",
	LBrace:      "{",
	RBrace:      "}",
	LBracket:    "[",
	RBracket:    "]",
	Assign:      "=",
	DotDotDot:   "...",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown"
}
