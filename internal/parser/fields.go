package parser

import (
	"strconv"
	"strings"

	"structlens/internal/ast"
	"structlens/internal/diag"
	"structlens/internal/source"
	"structlens/internal/token"
)

// parseFieldDecl разбирает одно объявление члена агрегата вплоть до ';'.
// Возвращает список дескрипторов (запятая даёт несколько) и ok == false,
// если по ходу встретился конец файла внутри вложенного тела.
//
// Классификация в порядке приоритета: вложенный агрегат с телом, битовое
// поле, указатель на функцию, обычное поле/массив. Ошибочное объявление
// даёт предупреждение и пропуск до ';' — агрегат продолжает разбираться.
func (p *Parser) parseFieldDecl() ([]ast.FieldDecl, bool) {
	start := p.peek().Span

	var (
		words     []string
		inner     *ast.AggregateDecl
		pointer   bool
		fnPtr     bool
		fnPtrName string
		alignAttr int
	)

collect:
	for {
		t := p.peek()
		switch t.Kind {
		case token.KwConst, token.KwVolatile:
			// cv-квалификаторы не влияют на раскладку
			p.bump()

		case token.KwSigned, token.KwUnsigned, token.Ident:
			words = append(words, t.Text)
			p.bump()

		case token.KwStruct, token.KwUnion:
			kw := p.bump()
			kind := ast.KindStruct
			if kw.Kind == token.KwUnion {
				kind = ast.KindUnion
			}
			tag := ""
			if p.at(token.Ident) && p.peekAt(1).Kind == token.LBrace {
				tag = p.bump().Text
			}
			switch {
			case p.at(token.LBrace):
				decl, ok := p.parseAggregateBody(kind, tag, kw.Span)
				if decl != nil {
					inner = decl
				}
				if !ok {
					return nil, false
				}
			case p.at(token.Ident):
				// ссылка на именованный тип: struct Foo
				words = append(words, kind.String()+" "+p.bump().Text)
			default:
				p.emit(diag.SynMalformedField, diag.SevWarning, kw.Span,
					"expected tag or body after '"+kind.String()+"'")
				p.resyncField()
				return nil, true
			}

		case token.KwEnum:
			p.bump()
			word := "enum"
			if p.at(token.Ident) {
				word += " " + p.bump().Text
			}
			if p.at(token.LBrace) {
				if !p.skipBalanced(token.LBrace, token.RBrace) {
					return nil, false
				}
			}
			words = append(words, word)

		case token.Star:
			pointer = true
			p.bump()

		case token.KwAttribute:
			_, al := p.parseAttribute()
			if al > 0 {
				alignAttr = al
			}

		case token.LParen:
			if p.peekAt(1).Kind != token.Star {
				p.emit(diag.SynMalformedField, diag.SevWarning, t.Span,
					"unsupported declarator")
				p.resyncField()
				return nil, true
			}
			name, ok := p.parseFuncPtrDeclarator()
			if !ok {
				p.resyncField()
				return nil, true
			}
			fnPtr = true
			fnPtrName = name

		case token.Colon, token.LBracket, token.Semicolon, token.Comma:
			break collect

		case token.RBrace, token.EOF:
			p.emit(diag.SynMalformedField, diag.SevWarning, start,
				"field declaration is missing ';'")
			return nil, true

		default:
			p.emit(diag.SynMalformedField, diag.SevWarning, t.Span,
				"unexpected token in field declaration: "+t.Kind.String())
			p.resyncField()
			return nil, true
		}
	}

	// первый декларатор
	first, ok := p.buildDeclarator(start, words, inner, pointer, fnPtr, fnPtrName, alignAttr)
	if !ok {
		p.resyncField()
		return nil, true
	}
	out := []ast.FieldDecl{first}

	// запятая: дополнительные имена с тем же базовым типом
	for p.at(token.Comma) {
		p.bump()
		extraPointer := false
		for p.at(token.Star) {
			extraPointer = true
			p.bump()
		}
		if !p.at(token.Ident) {
			p.emit(diag.SynExpectIdentifier, diag.SevWarning, p.peek().Span,
				"expected identifier after ','")
			p.resyncField()
			return out, true
		}
		nameTok := p.bump()
		extra := ast.FieldDecl{
			Name:      nameTok.Text,
			Type:      first.Type,
			IsPointer: first.IsPointer || extraPointer,
			AlignAttr: alignAttr,
			Span:      nameTok.Span,
		}
		if extraPointer {
			extra.Type = strings.TrimSuffix(first.Type, "*") + "*"
		}
		if !p.finishDeclaratorTail(&extra) {
			p.resyncField()
			return out, true
		}
		out = append(out, extra)
	}

	// хвостовой атрибут: int b __attribute__((aligned(16)));
	for p.at(token.KwAttribute) {
		_, al := p.parseAttribute()
		if al > 0 {
			for i := range out {
				out[i].AlignAttr = al
			}
		}
	}

	if p.at(token.Semicolon) {
		p.bump()
	} else {
		p.emit(diag.SynExpectSemicolon, diag.SevWarning, p.peek().Span,
			"expected ';' after field declaration")
		p.resyncField()
	}
	return out, true
}

// buildDeclarator собирает первый дескриптор из накопленных слов и inline-тела.
func (p *Parser) buildDeclarator(start source.Span, words []string, inner *ast.AggregateDecl, pointer, fnPtr bool, fnPtrName string, alignAttr int) (ast.FieldDecl, bool) {
	fd := ast.FieldDecl{AlignAttr: alignAttr, Span: start}

	switch {
	case fnPtr:
		fd.Name = fnPtrName
		fd.IsFunctionPointer = true
		retType := strings.Join(words, " ")
		if retType == "" {
			retType = "void"
		}
		fd.Type = retType + " (*)()"
		return fd, true

	case inner != nil:
		if inner.Tag != "" {
			inner.Name = inner.Tag
		} else {
			inner.Name = p.anonName(inner.Kind)
		}
		if len(words) > 0 {
			fd.Name = words[len(words)-1]
		} else {
			// безымянный член: поля вливаются в охватывающий агрегат
			fd.Name = inner.Name
		}
		fd.Inner = inner
		fd.Type = inner.Kind.String() + " " + inner.Name
		return fd, p.finishDeclaratorTail(&fd)

	default:
		if len(words) == 0 {
			p.emit(diag.SynMalformedField, diag.SevWarning, start,
				"missing type in field declaration")
			return fd, false
		}
		isBit := p.at(token.Colon)
		if len(words) == 1 && !isBit {
			p.emit(diag.SynMalformedField, diag.SevWarning, start,
				"field declaration has no name")
			return fd, false
		}
		if len(words) == 1 {
			// безымянное битовое поле: int : 3;
			fd.Type = words[0]
		} else {
			fd.Name = words[len(words)-1]
			fd.Type = strings.Join(words[:len(words)-1], " ")
		}
		if pointer {
			fd.IsPointer = true
			fd.Type += "*"
		}
		return fd, p.finishDeclaratorTail(&fd)
	}
}

// finishDeclaratorTail разбирает ':' биты либо размерности массива.
func (p *Parser) finishDeclaratorTail(fd *ast.FieldDecl) bool {
	if p.at(token.Colon) {
		p.bump()
		if !p.at(token.IntLit) {
			p.emit(diag.SynBadBitWidth, diag.SevWarning, p.peek().Span,
				"bitfield width must be an integer constant")
			return false
		}
		tok := p.bump()
		v, ok := parseIntText(tok.Text)
		if !ok || v < 0 {
			p.emit(diag.SynBadBitWidth, diag.SevWarning, tok.Span,
				"invalid bitfield width: "+tok.Text)
			return false
		}
		fd.IsBitField = true
		fd.Bits = int(v)
		return true
	}

	for p.at(token.LBracket) {
		p.bump()
		if p.at(token.RBracket) {
			p.bump()
			fd.IsFlexibleArray = true
			continue
		}
		if !p.at(token.IntLit) {
			p.emit(diag.SynBadArrayDim, diag.SevWarning, p.peek().Span,
				"array dimension must be an integer constant")
			return false
		}
		tok := p.bump()
		v, ok := parseIntText(tok.Text)
		if !ok || v < 0 {
			p.emit(diag.SynBadArrayDim, diag.SevWarning, tok.Span,
				"invalid array dimension: "+tok.Text)
			return false
		}
		if !p.at(token.RBracket) {
			p.emit(diag.SynBadArrayDim, diag.SevWarning, p.peek().Span,
				"expected ']' after array dimension")
			return false
		}
		p.bump()
		fd.ArrayDims = append(fd.ArrayDims, int(v))
	}
	return true
}

// parseFuncPtrDeclarator разбирает '(* name )( params )'.
// Вызывающий уже убедился, что впереди '(' '*'.
func (p *Parser) parseFuncPtrDeclarator() (string, bool) {
	open := p.bump() // '('
	for p.at(token.Star) {
		p.bump()
	}
	name := ""
	if p.at(token.Ident) {
		name = p.bump().Text
	}
	if name == "" {
		p.emit(diag.SynMalformedField, diag.SevWarning, open.Span,
			"function pointer has no name")
		return "", false
	}
	// хвост декларатора до ')'
	p.skipParenTail(1)
	// список параметров
	if p.at(token.LParen) {
		if !p.skipBalanced(token.LParen, token.RParen) {
			return name, false
		}
	}
	return name, true
}

// parseIntText разбирает целочисленный литерал C: десятичный, 0x..., 0...,
// с опциональными суффиксами u/U/l/L.
func parseIntText(text string) (int64, bool) {
	s := strings.TrimRight(text, "uUlL")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
