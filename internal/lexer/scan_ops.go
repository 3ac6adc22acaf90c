package lexer

import (
	"structlens/internal/token"
)

// scanOperatorOrPunct сканирует пунктуацию объявления. Всё, что парсер
// деклараций не понимает (операторы выражений и прочее), возвращается как
// Invalid-токен из одного байта — парсер его пропустит при ресинхронизации.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	make1 := func(kind token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}

	if lx.try3('.', '.', '.') {
		return make1(token.DotDotDot)
	}

	b := lx.cursor.Bump()
	switch b {
	case '*':
		return make1(token.Star)
	case ';':
		return make1(token.Semicolon)
	case ':':
		return make1(token.Colon)
	case ',':
		return make1(token.Comma)
	case '(':
		return make1(token.LParen)
	case ')':
		return make1(token.RParen)
	case '{':
		return make1(token.LBrace)
	case '}':
		return make1(token.RBrace)
	case '[':
		return make1(token.LBracket)
	case ']':
		return make1(token.RBracket)
	case '=':
		return make1(token.Assign)
	default:
		return make1(token.Invalid)
	}
}
