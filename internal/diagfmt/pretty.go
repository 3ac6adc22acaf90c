package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"structlens/internal/diag"
	"structlens/internal/source"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	infoColor = color.New(color.FgCyan, color.Bold)
	gutter    = color.New(color.FgBlue)
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		printOne(w, fs, d.Severity, d.Code.ID(), d.Primary, d.Message, opts)
		for _, n := range d.Notes {
			printOne(w, fs, diag.SevInfo, "note", n.Span, n.Msg, opts)
		}
	}
}

func printOne(w io.Writer, fs *source.FileSet, sev diag.Severity, code string, sp source.Span, msg string, opts PrettyOpts) {
	start, _ := fs.Resolve(sp)
	path := displayPath(fs.Get(sp.File).Path, opts.PathMode)

	sevText := sev.String()
	if opts.Color {
		sevText = severityColor(sev).Sprint(sevText)
	}
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", path, start.Line, start.Col, sevText, code, msg)

	if sp.Empty() && sp.Start == 0 {
		// пустой спан без позиции: контекст бессмысленен
		return
	}
	printContext(w, fs, sp, opts)
}

// printContext печатает строки вокруг спана с подчёркиванием.
func printContext(w io.Writer, fs *source.FileSet, sp source.Span, opts PrettyOpts) {
	f := fs.Get(sp.File)
	start, end := fs.Resolve(sp)

	first := int(start.Line) - int(opts.Context)
	if first < 1 {
		first = 1
	}
	last := int(start.Line) + int(opts.Context)

	for line := first; line <= last; line++ {
		text, ok := lineText(f, uint32(line))
		if !ok {
			break
		}
		prefix := fmt.Sprintf("%5d | ", line)
		if opts.Color {
			prefix = gutter.Sprint(prefix)
		}
		fmt.Fprintf(w, "%s%s\n", prefix, text)

		if uint32(line) == start.Line {
			width := 1
			if end.Line == start.Line && end.Col > start.Col {
				width = int(end.Col - start.Col)
			}
			marker := "^" + strings.Repeat("~", max(width-1, 0))
			pad := strings.Repeat(" ", int(start.Col)-1)
			underPrefix := "      | "
			if opts.Color {
				underPrefix = gutter.Sprint(underPrefix)
				marker = warnColor.Sprint(marker)
			}
			fmt.Fprintf(w, "%s%s%s\n", underPrefix, pad, marker)
		}
	}
}

// lineText возвращает текст строки без завершающего \n.
func lineText(f *source.File, line uint32) (string, bool) {
	if line == 0 {
		return "", false
	}
	var start uint32
	if line > 1 {
		idx := int(line) - 2
		if idx >= len(f.LineIdx) {
			return "", false
		}
		start = f.LineIdx[idx] + 1
	}
	end := uint32(len(f.Content))
	if idx := int(line) - 1; idx < len(f.LineIdx) {
		end = f.LineIdx[idx]
	}
	if start > end {
		return "", false
	}
	if start == end && int(start) >= len(f.Content) {
		return "", false
	}
	return string(f.Content[start:end]), true
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errColor
	case diag.SevWarning:
		return warnColor
	default:
		return infoColor
	}
}

func displayPath(path string, mode PathMode) string {
	if mode == PathModeBasename {
		return filepath.Base(path)
	}
	return path
}
