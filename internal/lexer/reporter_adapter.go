package lexer

import (
	"structlens/internal/diag"
	"structlens/internal/source"
)

// ReporterAdapter адаптирует diag.Reporter для использования в лексере
type ReporterAdapter struct {
	Reporter diag.Reporter
}

func (a *ReporterAdapter) Report(kind string, sp source.Span, msg string) {
	if a == nil || a.Reporter == nil {
		return
	}
	code := diag.LexInfo
	switch kind {
	case "UnknownChar":
		code = diag.LexUnknownChar
	case "UnterminatedString":
		code = diag.LexUnterminatedString
	case "UnterminatedBlockComment":
		code = diag.LexUnterminatedBlockComment
	case "BadNumber":
		code = diag.LexBadNumber
	case "UnterminatedChar":
		code = diag.LexUnterminatedChar
	}
	a.Reporter.Report(code, diag.SevWarning, sp, msg, nil)
}
