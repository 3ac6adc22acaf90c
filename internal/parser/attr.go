package parser

import (
	"structlens/internal/diag"
	"structlens/internal/token"
)

// parseAttribute разбирает __attribute__((...)) и возвращает найденные
// packed / aligned(N). Неизвестные атрибуты молча пропускаются.
// Вызывающий уже убедился, что текущий токен — KwAttribute.
func (p *Parser) parseAttribute() (packed bool, align int) {
	attrTok := p.bump() // __attribute__
	if !p.at(token.LParen) {
		return false, 0
	}
	p.bump()
	if !p.at(token.LParen) {
		// одинарные скобки — съедаем до закрытия и выходим
		p.skipParenTail(1)
		return false, 0
	}
	p.bump()

	depth := 2
	for depth > 0 {
		t := p.peek()
		switch t.Kind {
		case token.EOF:
			return packed, align

		case token.LParen:
			depth++
			p.bump()

		case token.RParen:
			depth--
			p.bump()

		case token.Ident:
			p.bump()
			switch t.Text {
			case "packed", "__packed__":
				packed = true
			case "aligned", "__aligned__":
				if v, ok := p.parseAlignedValue(); ok {
					align = v
				} else {
					p.emit(diag.SynBadAlignAttr, diag.SevWarning, attrTok.Span,
						"aligned() requires a positive integer argument")
				}
			}

		default:
			p.bump()
		}
	}
	return packed, align
}

// parseAlignedValue разбирает "(N)" сразу после aligned.
func (p *Parser) parseAlignedValue() (int, bool) {
	if !p.at(token.LParen) {
		// aligned без аргумента: максимальное "полезное" выравнивание;
		// в плоской модели не поддерживаем — игнорируем
		return 0, false
	}
	p.bump()
	if !p.at(token.IntLit) {
		p.skipParenTail(1)
		return 0, false
	}
	v, ok := parseIntText(p.bump().Text)
	if !p.at(token.RParen) {
		p.skipParenTail(1)
	} else {
		p.bump()
	}
	if !ok || v <= 0 {
		return 0, false
	}
	return int(v), true
}

// skipParenTail потребляет токены до закрытия depth открытых скобок.
func (p *Parser) skipParenTail(depth int) {
	for depth > 0 {
		switch p.peek().Kind {
		case token.EOF:
			return
		case token.LParen:
			depth++
		case token.RParen:
			depth--
		}
		p.bump()
	}
}
