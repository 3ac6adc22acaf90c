package lexer

import (
	"structlens/internal/source"
)

// Reporter — узкий интерфейс для ошибок лексера; kind — строковая метка
// ("UnknownChar", "UnterminatedBlockComment", ...), которую внешний слой
// переводит в diag-коды. Так пакет лексера не зависит от diag.
type Reporter interface {
	Report(kind string, span source.Span, msg string)
}

// Options настраивают лексер. Нулевое значение пригодно к работе:
// без Reporter ошибки молча пропускаются, лексинг продолжается.
type Options struct {
	Reporter Reporter
}

func (lx *Lexer) report(kind string, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(kind, sp, msg)
	}
}
