package token

import (
	"structlens/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsKeyword reports whether the token is a C keyword the parser cares about.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwStruct, KwUnion, KwEnum, KwTypedef, KwConst, KwVolatile, KwSigned, KwUnsigned, KwAttribute:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsTypeWord reports whether the token can start or continue a type name
// (identifier or one of the specifier/qualifier keywords).
func (t Token) IsTypeWord() bool {
	switch t.Kind {
	case Ident, KwStruct, KwUnion, KwEnum, KwConst, KwVolatile, KwSigned, KwUnsigned:
		return true
	default:
		return false
	}
}
