// Package parser turns the C token stream into declaration nodes.
//
// Это не полный парсер C: разбираются только объявления struct/union/typedef
// и их поля. Всё остальное (функции, выражения, инициализаторы) пропускается
// с ресинхронизацией по ';' и '}'. Ошибки отдельного объявления не фатальны —
// разбор продолжается со следующего.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"structlens/internal/ast"
	"structlens/internal/diag"
	"structlens/internal/lexer"
	"structlens/internal/source"
	"structlens/internal/token"
)

type Options struct {
	Reporter diag.Reporter
}

type Result struct {
	File *ast.File
	Bag  *diag.Bag
}

// Parser — состояние парсера на один файл.
type Parser struct {
	lx   *lexer.Lexer
	opts Options

	file *ast.File

	// look — буфер предпросмотра (нужно 2 токена: "struct Ident {").
	look []token.Token

	// packStack — активные значения #pragma pack; вершина действует
	// на каждое следующее определение.
	packStack []int

	// anonCounter нумерует синтезированные имена детерминированно.
	anonCounter int

	lastSpan source.Span
}

// ParseFile — входная точка для разбора одного файла.
// Требует уже созданный lexer (на основе source.File).
func ParseFile(lx *lexer.Lexer, opts Options) Result {
	p := Parser{
		lx:   lx,
		opts: opts,
		file: &ast.File{},
	}
	p.lastSpan = lx.EmptySpan()

	p.parseTopLevel()

	var bag *diag.Bag
	if br, ok := opts.Reporter.(*diag.BagReporter); ok {
		bag = br.Bag
	}
	return Result{File: p.file, Bag: bag}
}

func (p *Parser) fill(n int) {
	for len(p.look) <= n {
		p.look = append(p.look, p.lx.Next())
	}
}

func (p *Parser) peek() token.Token {
	return p.peekAt(0)
}

func (p *Parser) peekAt(n int) token.Token {
	p.fill(n)
	return p.look[n]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) bump() token.Token {
	p.fill(0)
	t := p.look[0]
	p.look = p.look[1:]
	if t.Kind != token.EOF {
		p.lastSpan = t.Span
	}
	return t
}

func (p *Parser) emit(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(code, sev, sp, msg, nil)
	}
}

// parseTopLevel — основной цикл: пока не EOF, распознаём очередную конструкцию.
func (p *Parser) parseTopLevel() {
	start := p.peek().Span
	for !p.at(token.EOF) {
		switch p.peek().Kind {
		case token.Pragma:
			p.applyPragma(p.bump())

		case token.KwTypedef:
			p.parseTypedef()

		case token.KwStruct, token.KwUnion:
			if !p.parseAggregateOrUsage(false) {
				// незакрытое тело — прекращаем сканирование, оставив собранное
				return
			}

		default:
			// не декларация — пропускаем токен
			p.bump()
		}
	}
	p.file.Span = start.Cover(p.lastSpan)
}

// applyPragma интерпретирует аргументы "#pragma pack(...)".
// push[, N] кладёт значение на стек, pop снимает, голое N трактуем как push N.
func (p *Parser) applyPragma(tok token.Token) {
	rec, ok := parsePackArgs(tok.Text)
	if !ok {
		p.emit(diag.SynBadPragmaPack, diag.SevWarning, tok.Span,
			fmt.Sprintf("unrecognized #pragma pack arguments: %q", tok.Text))
		return
	}
	rec.Span = tok.Span
	p.file.Pragmas = append(p.file.Pragmas, rec)

	if rec.IsPop {
		if n := len(p.packStack); n > 0 {
			p.packStack = p.packStack[:n-1]
		}
		return
	}
	if rec.Value == 0 {
		// push без значения дублирует текущее выравнивание
		p.packStack = append(p.packStack, p.activePack())
		return
	}
	p.packStack = append(p.packStack, rec.Value)
}

// activePack возвращает действующее значение pack (0 — нет).
func (p *Parser) activePack() int {
	if n := len(p.packStack); n > 0 {
		return p.packStack[n-1]
	}
	return 0
}

// parsePackArgs разбирает содержимое скобок pack-директивы:
// "push, N" / "push" / "pop" / "N" / "" (сброс, трактуем как pop).
func parsePackArgs(args string) (ast.PragmaPack, bool) {
	fields := strings.Split(args, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	switch {
	case args == "":
		return ast.PragmaPack{IsPop: true}, true
	case fields[0] == "pop":
		return ast.PragmaPack{IsPop: true}, true
	case fields[0] == "push":
		if len(fields) == 1 {
			// push без значения: выравнивание не меняется, но push учитываем
			return ast.PragmaPack{Value: 0}, true
		}
		v, err := strconv.Atoi(fields[1])
		if err != nil || v <= 0 {
			return ast.PragmaPack{}, false
		}
		return ast.PragmaPack{Value: v}, true
	default:
		v, err := strconv.Atoi(fields[0])
		if err != nil || v <= 0 {
			return ast.PragmaPack{}, false
		}
		return ast.PragmaPack{Value: v}, true
	}
}

// anonName синтезирует детерминированное имя для безымянного агрегата.
func (p *Parser) anonName(kind ast.AggregateKind) string {
	name := fmt.Sprintf("__anon_%s_%d", kind, p.anonCounter)
	p.anonCounter++
	return name
}

// skipBalanced предполагает, что текущий токен — open; потребляет всё до
// парного close включительно. Возвращает false, если энд файла наступил раньше.
func (p *Parser) skipBalanced(open, close token.Kind) bool {
	if !p.at(open) {
		return true
	}
	p.bump()
	depth := 1
	for depth > 0 {
		switch p.peek().Kind {
		case token.EOF:
			return false
		case open:
			depth++
		case close:
			depth--
		}
		p.bump()
	}
	return true
}

// resyncField пропускает токены до ';' (включительно) или до '}' / EOF.
func (p *Parser) resyncField() {
	for {
		switch p.peek().Kind {
		case token.Semicolon:
			p.bump()
			return
		case token.RBrace, token.EOF:
			return
		case token.LBrace:
			p.skipBalanced(token.LBrace, token.RBrace)
		default:
			p.bump()
		}
	}
}
