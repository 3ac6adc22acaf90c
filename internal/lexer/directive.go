package lexer

import (
	"strings"

	"structlens/internal/token"
)

// scanDirective потребляет препроцессорную строку целиком (с учётом
// продолжений через '\' в конце строки). Если это #pragma pack(...),
// возвращает значимый токен Pragma, Text которого — аргументы между
// скобками ("push, 1", "pop", "4"). Любая другая директива уходит в
// hold как TriviaDirective, и тогда isPragma == false.
func (lx *Lexer) scanDirective() (tok token.Token, isPragma bool) {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\n' {
			break
		}
		if b == '\\' {
			// продолжение строки: съедаем '\' и следующий '\n'
			lx.cursor.Bump()
			if lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			continue
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])

	if args, ok := pragmaPackArgs(text); ok {
		return token.Token{Kind: token.Pragma, Span: sp, Text: args}, true
	}

	lx.hold = append(lx.hold, token.Trivia{
		Kind: token.TriviaDirective,
		Span: sp,
		Text: text,
	})
	return token.Token{}, false
}

// pragmaPackArgs распознаёт "#pragma pack( ... )" и возвращает содержимое скобок.
func pragmaPackArgs(line string) (string, bool) {
	rest, ok := strings.CutPrefix(line, "#")
	if !ok {
		return "", false
	}
	rest = strings.TrimSpace(rest)
	rest, ok = strings.CutPrefix(rest, "pragma")
	if !ok {
		return "", false
	}
	rest = strings.TrimSpace(rest)
	rest, ok = strings.CutPrefix(rest, "pack")
	if !ok {
		return "", false
	}
	rest = strings.TrimSpace(rest)
	if !strings.HasPrefix(rest, "(") {
		return "", false
	}
	close := strings.IndexByte(rest, ')')
	if close < 0 {
		return "", false
	}
	return strings.TrimSpace(rest[1:close]), true
}
