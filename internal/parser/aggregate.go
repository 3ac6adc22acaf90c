package parser

import (
	"fmt"

	"structlens/internal/ast"
	"structlens/internal/diag"
	"structlens/internal/source"
	"structlens/internal/token"
)

// parseAggregateOrUsage разбирает вхождение struct/union на верхнем уровне.
// Определение (есть '{' до ';') попадает в file.Aggregates; прямое объявление
// или использование в качестве типа пропускается до ';'.
// Возвращает false, когда тело не было закрыто до конца файла — в этом
// случае сканирование останавливается, собранные агрегаты сохраняются.
func (p *Parser) parseAggregateOrUsage(inTypedef bool) bool {
	kw := p.bump()
	kind := ast.KindStruct
	if kw.Kind == token.KwUnion {
		kind = ast.KindUnion
	}

	packed, alignAttr := false, 0
	for p.at(token.KwAttribute) {
		pk, al := p.parseAttribute()
		packed = packed || pk
		if al > 0 {
			alignAttr = al
		}
	}

	tag := ""
	if p.at(token.Ident) && p.peekAt(1).Kind == token.LBrace {
		tag = p.bump().Text
	}

	if !p.at(token.LBrace) {
		if inTypedef {
			// typedef struct Tag Alias; — простой алиас без определения
			p.parseTypedefAggregateAlias(kind)
			return true
		}
		// forward-декларация или использование — до ';'
		p.skipToSemicolon()
		return true
	}

	decl, ok := p.parseAggregateBody(kind, tag, kw.Span)
	if decl == nil {
		return ok
	}
	decl.IsPacked = decl.IsPacked || packed
	if alignAttr > 0 {
		decl.AlignAttr = alignAttr
	}

	endSpan, alias := p.parseAggregateSuffix(decl, inTypedef)
	decl.Alias = alias
	p.finalizeAggregate(decl, kw.Span.Cover(endSpan))
	p.file.Aggregates = append(p.file.Aggregates, decl)
	return ok
}

// parseAggregateBody разбирает '{ fields }' и возвращает декларацию.
// ok == false означает незакрытое тело (конец файла): декларация с уже
// собранными полями возвращается, но сканирование надо прекратить.
func (p *Parser) parseAggregateBody(kind ast.AggregateKind, tag string, startSpan source.Span) (*ast.AggregateDecl, bool) {
	lbrace := p.bump() // '{'
	decl := &ast.AggregateDecl{
		Kind:      kind,
		Tag:       tag,
		PackValue: p.activePack(),
		Span:      startSpan,
	}
	if decl.PackValue == 1 {
		decl.IsPacked = true
	}

	for {
		switch p.peek().Kind {
		case token.RBrace:
			rbrace := p.bump()
			decl.BodySpan = source.Span{File: lbrace.Span.File, Start: lbrace.Span.End, End: rbrace.Span.Start}
			decl.Span = startSpan.Cover(rbrace.Span)
			return decl, true

		case token.EOF:
			p.emit(diag.SynUnterminatedAggregate, diag.SevWarning, startSpan,
				fmt.Sprintf("%s body is never closed", kind))
			decl.BodySpan = source.Span{File: lbrace.Span.File, Start: lbrace.Span.End, End: p.lastSpan.End}
			decl.Span = startSpan.Cover(p.lastSpan)
			return decl, false

		case token.Pragma:
			p.applyPragma(p.bump())

		case token.Semicolon:
			p.bump()

		default:
			fields, ok := p.parseFieldDecl()
			decl.Fields = append(decl.Fields, fields...)
			if !ok {
				p.emit(diag.SynUnterminatedAggregate, diag.SevWarning, startSpan,
					fmt.Sprintf("%s body is never closed", kind))
				decl.Span = startSpan.Cover(p.lastSpan)
				return decl, false
			}
		}
	}
}

// parseAggregateSuffix потребляет хвост между '}' и ';': атрибуты,
// имена переменных (вне typedef — игнорируются) либо имя алиаса (в typedef).
func (p *Parser) parseAggregateSuffix(decl *ast.AggregateDecl, inTypedef bool) (source.Span, string) {
	alias := ""
	end := p.lastSpan
	for {
		switch p.peek().Kind {
		case token.Semicolon:
			end = p.bump().Span
			return end, alias

		case token.EOF, token.RBrace:
			return end, alias

		case token.KwAttribute:
			pk, al := p.parseAttribute()
			decl.IsPacked = decl.IsPacked || pk
			if al > 0 {
				decl.AlignAttr = al
			}

		case token.Ident:
			t := p.bump()
			if inTypedef {
				alias = t.Text
			}
			end = t.Span

		case token.Star, token.Comma:
			p.bump()

		case token.LBracket:
			p.skipBalanced(token.LBracket, token.RBracket)

		default:
			p.bump()
		}
	}
}

// finalizeAggregate выбирает первичное имя: тег, иначе алиас, иначе синтетика.
func (p *Parser) finalizeAggregate(decl *ast.AggregateDecl, span source.Span) {
	decl.Span = span
	switch {
	case decl.Tag != "":
		decl.Name = decl.Tag
	case decl.Alias != "":
		decl.Name = decl.Alias
	default:
		decl.Name = p.anonName(decl.Kind)
	}
}

func (p *Parser) skipToSemicolon() {
	for {
		switch p.peek().Kind {
		case token.Semicolon:
			p.bump()
			return
		case token.EOF:
			return
		case token.LBrace:
			p.skipBalanced(token.LBrace, token.RBrace)
		default:
			p.bump()
		}
	}
}
