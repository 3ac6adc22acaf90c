package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"

	"structlens/internal/analyzer"
	"structlens/internal/layout"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ececec")).
			Align(lipgloss.Center)

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#aeaeae"))

	padStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("3"))

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))

	savedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
)

// RenderAggregate рисует таблицу раскладки одного агрегата.
func RenderAggregate(agg analyzer.Aggregate, nameWidth int) string {
	var b strings.Builder

	title := fmt.Sprintf("%s %s: %d bytes (align %d, padding %d)",
		agg.Kind, agg.Name, agg.TotalSize, agg.Alignment, agg.PaddingBytes)
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(renderFieldTable(agg.Fields, nameWidth))
	return b.String()
}

// RenderOptimization рисует предложение оптимизатора. Для агрегатов без
// выигрыша печатается только причина.
func RenderOptimization(agg analyzer.Aggregate, nameWidth int) string {
	var b strings.Builder
	if agg.MemorySaved <= 0 {
		if agg.OptimizationReason != "" {
			b.WriteString(rowStyle.Render("no reorder: " + agg.OptimizationReason))
			b.WriteString("\n")
		}
		return b.String()
	}

	title := fmt.Sprintf("suggested order: %d bytes, saves %d (%.1f%%)",
		agg.OptimizedSize, agg.MemorySaved, agg.OptimizationRatio)
	b.WriteString(savedStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(renderFieldTable(agg.OptimizedFields, nameWidth))
	return b.String()
}

func renderFieldTable(fields []layout.Field, nameWidth int) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#aeaeae"))).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == 0 {
				return headerStyle
			}
			return rowStyle
		}).
		Headers("Field", "Type", "Offset", "Size", "Align", "Pad")

	addRows(t, fields, "", nameWidth)
	return t.Render()
}

// addRows добавляет строки таблицы, разворачивая безымянные вложенные
// агрегаты с префиксом родителя.
func addRows(t *table.Table, fields []layout.Field, prefix string, nameWidth int) {
	for _, f := range fields {
		name := f.Name
		if prefix != "" {
			name = prefix + "." + name
		}
		t.Row(
			truncate(name, nameWidth),
			truncate(fieldTypeLabel(f), nameWidth),
			strconv.Itoa(f.Offset),
			strconv.Itoa(f.Size),
			strconv.Itoa(f.Alignment),
			strconv.Itoa(f.Padding),
		)
		if f.IsAnonymous {
			addRows(t, f.Inner, name, nameWidth)
		}
	}
}

// fieldTypeLabel формирует человекочитаемую подпись типа поля.
func fieldTypeLabel(f layout.Field) string {
	switch {
	case f.IsAnonymous && f.IsUnion:
		return "union <anon>"
	case f.IsAnonymous:
		return "struct <anon>"
	case f.IsBitField:
		return fmt.Sprintf("%s : %d", f.Type, f.Bits)
	case f.IsFlexibleArray:
		return f.Type + " []"
	case f.ArraySize > 0:
		return fmt.Sprintf("%s [%d]", f.Type, f.ArraySize)
	default:
		return f.Type
	}
}

// PaddingNote возвращает выделенную подпись про суммарный паддинг.
func PaddingNote(agg analyzer.Aggregate) string {
	if agg.PaddingBytes == 0 {
		return ""
	}
	return padStyle.Render(fmt.Sprintf("%d wasted byte(s)", agg.PaddingBytes))
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
