package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"structlens/internal/driver"
	"structlens/internal/ui"
)

var viewCmd = &cobra.Command{
	Use:   "view [flags] file.c",
	Short: "Browse struct layouts interactively",
	Long:  `View analyzes a C source file and opens an interactive browser for the computed layouts`,
	Args:  cobra.ExactArgs(1),
	RunE:  runView,
}

func runView(cmd *cobra.Command, args []string) error {
	if !isTerminal(os.Stdout) {
		return fmt.Errorf("view requires a terminal; use `structlens analyze` for plain output")
	}

	cfg, err := loadAnalyzerConfig(cmd)
	if err != nil {
		return err
	}

	res, err := driver.AnalyzeFile(args[0], cfg, nil)
	if err != nil {
		return err
	}
	if res.Err != nil {
		return res.Err
	}

	model := ui.NewViewer(res.Path, res.Report.Aggregates)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("viewer failed: %w", err)
	}
	return nil
}
