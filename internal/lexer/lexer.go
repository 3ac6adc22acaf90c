package lexer

import (
	"structlens/internal/source"
	"structlens/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token   // 1 элементный буфер для токена
	hold   []token.Trivia // накопленные leading trivia
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
		look:   nil,
		hold:   nil,
	}
}

// Next возвращает следующий **значимый** токен с уже собранным Leading.
// После EOF всегда возвращает EOF.
//
// Комментарии и обычные препроцессорные строки (#include, #define, #if...)
// становятся trivia; #pragma pack(...) — значимый токен token.Pragma.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	for {
		lx.collectLeadingTrivia()

		if lx.cursor.EOF() {
			return token.Token{
				Kind: token.EOF,
				Span: lx.EmptySpan(),
				Text: "",
			}
		}

		ch := lx.cursor.Peek()
		var tok token.Token

		switch {
		case ch == '#':
			// Препроцессорная строка. #pragma pack — токен, остальное — trivia.
			pragma, isPragma := lx.scanDirective()
			if !isPragma {
				continue
			}
			tok = pragma

		case isIdentStartByte(ch):
			tok = lx.scanIdentOrKeyword()

		case isDec(ch):
			tok = lx.scanNumber()

		case ch == '"':
			tok = lx.scanString()

		case ch == '\'':
			tok = lx.scanChar()

		default:
			tok = lx.scanOperatorOrPunct()
		}

		tok.Leading = lx.hold
		lx.hold = nil
		return tok
	}
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// EmptySpan возвращает пустой span на текущей позиции курсора.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

// File возвращает лексируемый файл.
func (lx *Lexer) File() *source.File {
	return lx.file
}

// Tokens сканирует весь файл и возвращает все значимые токены, включая EOF.
func (lx *Lexer) Tokens() []token.Token {
	var out []token.Token
	for {
		t := lx.Next()
		out = append(out, t)
		if t.Kind == token.EOF {
			return out
		}
	}
}
