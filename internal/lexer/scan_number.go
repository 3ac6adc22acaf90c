package lexer

import (
	"structlens/internal/token"
)

// Поддержка целых в стиле C: 123, 0x1F, 017, плюс суффиксы u/U/l/L в любом
// порядке. Суффиксы остаются в Token.Text; числовое значение извлекает парсер.
// Дробные формы здесь не нужны (в массивах и битовых полях только целые);
// встреченная '.' просто завершает токен.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	if lx.cursor.Peek() == '0' {
		lx.cursor.Bump()
		switch lx.cursor.Peek() {
		case 'x', 'X':
			lx.cursor.Bump()
			if !isHex(lx.cursor.Peek()) {
				sp := lx.cursor.SpanFrom(start)
				lx.report("BadNumber", sp, "expected hex digit after 0x")
				return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
			}
			for isHex(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
		default:
			for isOct(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
		}
	} else {
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}

	// целочисленные суффиксы
	for {
		b := lx.cursor.Peek()
		if b == 'u' || b == 'U' || b == 'l' || b == 'L' {
			lx.cursor.Bump()
			continue
		}
		break
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.IntLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
