package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexUnterminatedChar         Code = 1005

	// Парсерные
	SynInfo                  Code = 2000
	SynUnexpectedToken       Code = 2001
	SynUnterminatedAggregate Code = 2002
	SynMalformedField        Code = 2003
	SynBadBitWidth           Code = 2004
	SynBadArrayDim           Code = 2005
	SynBadAlignAttr          Code = 2006
	SynBadPragmaPack         Code = 2007
	SynExpectIdentifier      Code = 2008
	SynExpectSemicolon       Code = 2009

	// Разрешение типов и раскладка
	LayInfo              Code = 3000
	LayUnknownType       Code = 3001
	LayCircularType      Code = 3002
	LayUnresolvedField   Code = 3003
	LayFlexibleNotLast   Code = 3004
	LayInvalidAlignValue Code = 3005
)

var codeDescription = map[Code]string{
	UnknownCode: "unknown diagnostic",

	LexInfo:                     "lexer info",
	LexUnknownChar:              "unknown character",
	LexUnterminatedString:       "unterminated string literal",
	LexUnterminatedBlockComment: "unterminated block comment",
	LexBadNumber:                "malformed numeric literal",
	LexUnterminatedChar:         "unterminated character literal",

	SynInfo:                  "parser info",
	SynUnexpectedToken:       "unexpected token",
	SynUnterminatedAggregate: "unterminated struct or union body",
	SynMalformedField:        "malformed field declaration",
	SynBadBitWidth:           "invalid bitfield width",
	SynBadArrayDim:           "invalid array dimension",
	SynBadAlignAttr:          "invalid aligned() attribute",
	SynBadPragmaPack:         "unrecognized #pragma pack form",
	SynExpectIdentifier:      "expected identifier",
	SynExpectSemicolon:       "expected ';'",

	LayInfo:              "layout info",
	LayUnknownType:       "unknown type name",
	LayCircularType:      "circular type reference",
	LayUnresolvedField:   "field type unresolved after final pass",
	LayFlexibleNotLast:   "flexible array member is not the last field",
	LayInvalidAlignValue: "invalid alignment value",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("LAY%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
