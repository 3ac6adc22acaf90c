package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"structlens/internal/analyzer"
)

// viewerModel — интерактивный просмотр отчёта: стрелки влево/вправо
// листают агрегаты, "o" показывает предложение оптимизатора, q выходит.
type viewerModel struct {
	path    string
	aggs    []analyzer.Aggregate
	index   int
	showOpt bool
	vp      viewport.Model
	ready   bool
	width   int
	height  int
}

var (
	viewerHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	viewerHintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// NewViewer returns a Bubble Tea model that browses analyzed aggregates.
func NewViewer(path string, aggs []analyzer.Aggregate) tea.Model {
	return &viewerModel{path: path, aggs: aggs, width: 80, height: 24}
}

func (m *viewerModel) Init() tea.Cmd {
	return nil
}

func (m *viewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "left", "h":
			if m.index > 0 {
				m.index--
				m.refresh()
			}
			return m, nil
		case "right", "l", "tab":
			if m.index < len(m.aggs)-1 {
				m.index++
				m.refresh()
			}
			return m, nil
		case "o":
			m.showOpt = !m.showOpt
			m.refresh()
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		headerHeight := 2
		footerHeight := 2
		if !m.ready {
			m.vp = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = msg.Height - headerHeight - footerHeight
		}
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m *viewerModel) View() string {
	if len(m.aggs) == 0 {
		return viewerHintStyle.Render("no aggregates found, press q to quit") + "\n"
	}
	if !m.ready {
		return "loading..."
	}

	agg := m.aggs[m.index]
	header := fmt.Sprintf("%s  [%d/%d] %s %s",
		m.path, m.index+1, len(m.aggs), agg.Kind, agg.Name)

	var b strings.Builder
	b.WriteString(viewerHeaderStyle.Render(header))
	b.WriteString("\n\n")
	b.WriteString(m.vp.View())
	b.WriteString("\n")
	b.WriteString(viewerHintStyle.Render("←/→ aggregate  ↑/↓ scroll  o optimization  q quit"))
	b.WriteString("\n")
	return b.String()
}

// refresh пересобирает содержимое вьюпорта под текущий агрегат.
func (m *viewerModel) refresh() {
	if !m.ready || len(m.aggs) == 0 {
		return
	}
	agg := m.aggs[m.index]
	nameWidth := m.width / 3
	if nameWidth < 16 {
		nameWidth = 16
	}

	var b strings.Builder
	b.WriteString(RenderAggregate(agg, nameWidth))
	b.WriteString("\n")
	if note := PaddingNote(agg); note != "" {
		b.WriteString(note)
		b.WriteString("\n")
	}
	if m.showOpt {
		b.WriteString(RenderOptimization(agg, nameWidth))
	}
	m.vp.SetContent(b.String())
	m.vp.GotoTop()
}
