package parser

import (
	"strings"

	"structlens/internal/ast"
	"structlens/internal/diag"
	"structlens/internal/token"
)

// parseTypedef разбирает typedef-декларацию верхнего уровня.
// Поддерживаются: typedef struct/union {...} Alias; (определение с алиасом),
// typedef struct Tag Alias; (алиас на агрегат) и простые алиасы вида
// typedef unsigned long u64; включая указатели и указатели на функции.
func (p *Parser) parseTypedef() {
	kw := p.bump() // typedef

	if p.at(token.KwStruct) || p.at(token.KwUnion) {
		p.parseAggregateOrUsage(true)
		return
	}

	var (
		words   []string
		pointer bool
	)
	for {
		t := p.peek()
		switch t.Kind {
		case token.KwConst, token.KwVolatile:
			p.bump()

		case token.KwSigned, token.KwUnsigned, token.Ident:
			words = append(words, t.Text)
			p.bump()

		case token.KwEnum:
			p.bump()
			if p.at(token.Ident) {
				p.bump()
			}
			if p.at(token.LBrace) {
				p.skipBalanced(token.LBrace, token.RBrace)
			}
			words = append(words, "enum")

		case token.Star:
			pointer = true
			p.bump()

		case token.KwAttribute:
			p.parseAttribute()

		case token.LParen:
			// typedef ret (*name)(args); — алиас на указатель функции
			if p.peekAt(1).Kind == token.Star {
				if name, ok := p.parseFuncPtrDeclarator(); ok && name != "" {
					p.file.Typedefs = append(p.file.Typedefs, &ast.TypedefDecl{
						Name:     name,
						BaseType: "void*",
						Span:     kw.Span.Cover(p.lastSpan),
					})
				}
			}
			p.skipToSemicolon()
			return

		case token.Semicolon:
			p.bump()
			if len(words) < 2 {
				p.emit(diag.SynMalformedField, diag.SevWarning, kw.Span,
					"typedef requires a base type and an alias name")
				return
			}
			alias := words[len(words)-1]
			base := strings.Join(words[:len(words)-1], " ")
			if pointer {
				base += "*"
			}
			p.file.Typedefs = append(p.file.Typedefs, &ast.TypedefDecl{
				Name:     alias,
				BaseType: base,
				Span:     kw.Span.Cover(p.lastSpan),
			})
			return

		case token.LBracket:
			// typedef int vec[4]; — алиасы массивов не моделируем
			p.skipToSemicolon()
			return

		case token.EOF:
			return

		default:
			p.skipToSemicolon()
			return
		}
	}
}

// parseTypedefAggregateAlias разбирает хвост "typedef struct Tag Alias;"
// (ключевое слово и kind уже потреблены, текущий токен — тег).
func (p *Parser) parseTypedefAggregateAlias(kind ast.AggregateKind) {
	if !p.at(token.Ident) {
		p.skipToSemicolon()
		return
	}
	tagTok := p.bump()
	base := kind.String() + " " + tagTok.Text

	pointer := false
	alias := ""
	for {
		switch p.peek().Kind {
		case token.Star:
			pointer = true
			p.bump()
		case token.Ident:
			alias = p.bump().Text
		case token.Semicolon:
			p.bump()
			if alias == "" {
				return
			}
			if pointer {
				base += "*"
			}
			p.file.Typedefs = append(p.file.Typedefs, &ast.TypedefDecl{
				Name:     alias,
				BaseType: base,
				Span:     tagTok.Span.Cover(p.lastSpan),
			})
			return
		case token.EOF:
			return
		default:
			p.bump()
		}
	}
}
