package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"structlens/internal/analyzer"
	"structlens/internal/diagfmt"
	"structlens/internal/driver"
	"structlens/internal/project"
	"structlens/internal/ui"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [flags] file.c [file2.h ...]",
	Short: "Analyze struct and union layouts in C sources",
	Long: `Analyze parses the given C sources, computes the memory layout of every
top-level struct and union and reports padding plus a reordering that
minimizes it. Directories are scanned recursively.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().String("format", "text", "output format (text|json)")
	analyzeCmd.Flags().Int("target-alignment", 0, "pointer width in bytes, 4 or 8 (default from structlens.toml or 8)")
	analyzeCmd.Flags().StringArray("type", nil, "custom type size as name=bytes, repeatable")
	analyzeCmd.Flags().Int("jobs", 0, "number of parallel workers (0 = GOMAXPROCS)")
	analyzeCmd.Flags().Bool("no-cache", false, "bypass the on-disk result cache")
	analyzeCmd.Flags().Bool("optimize", true, "include the suggested field reordering")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "text" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	cfg, err := loadAnalyzerConfig(cmd)
	if err != nil {
		return err
	}

	jobs, _ := cmd.Flags().GetInt("jobs")
	noCache, _ := cmd.Flags().GetBool("no-cache")
	showOpt, _ := cmd.Flags().GetBool("optimize")
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")

	var cache *driver.DiskCache
	if !noCache {
		// кэш best-effort: без него анализ просто медленнее
		cache, _ = driver.OpenDiskCache("structlens")
	}

	paths, err := expandArgs(args)
	if err != nil {
		return err
	}

	results, err := driver.AnalyzePaths(cmd.Context(), paths, cfg, driver.Options{
		Jobs:  jobs,
		Cache: cache,
	})
	if err != nil {
		return err
	}

	switch format {
	case "json":
		return renderJSON(cmd, results)
	default:
		return renderText(cmd, results, showOpt, quiet)
	}
}

// loadAnalyzerConfig берёт конфигурацию из structlens.toml и накладывает
// поверх неё флаги команды.
func loadAnalyzerConfig(cmd *cobra.Command) (analyzer.Config, error) {
	cfg, _, err := project.LoadConfig(".")
	if err != nil {
		return analyzer.Config{}, err
	}

	if n, _ := cmd.Flags().GetInt("target-alignment"); n != 0 {
		cfg.TargetAlignment = n
	}

	overrides, _ := cmd.Flags().GetStringArray("type")
	for _, kv := range overrides {
		name, sizeText, ok := strings.Cut(kv, "=")
		if !ok {
			return analyzer.Config{}, fmt.Errorf("invalid --type %q (expected name=bytes)", kv)
		}
		size, err := strconv.Atoi(strings.TrimSpace(sizeText))
		if err != nil || size <= 0 {
			return analyzer.Config{}, fmt.Errorf("invalid --type size in %q", kv)
		}
		if cfg.CustomTypeSizes == nil {
			cfg.CustomTypeSizes = make(map[string]int)
		}
		cfg.CustomTypeSizes[strings.TrimSpace(name)] = size
	}
	return cfg, nil
}

// expandArgs разворачивает директории в списки исходников.
func expandArgs(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			files, err := driver.ListSources(arg)
			if err != nil {
				return nil, err
			}
			paths = append(paths, files...)
			continue
		}
		paths = append(paths, arg)
	}
	return paths, nil
}

func renderText(cmd *cobra.Command, results []driver.FileResult, showOpt, quiet bool) error {
	errColor := useColor(cmd, os.Stderr)
	out := cmd.OutOrStdout()
	failed := false

	for _, res := range results {
		if res.Err != nil {
			failed = true
			fmt.Fprintf(os.Stderr, "%s: %v\n", res.Path, res.Err)
			continue
		}
		if len(results) > 1 && !quiet {
			fmt.Fprintf(out, "== %s ==\n", res.Path)
		}

		printDiags(res, errColor)

		for _, agg := range res.Report.Aggregates {
			fmt.Fprintln(out, ui.RenderAggregate(agg, 40))
			if showOpt {
				if s := ui.RenderOptimization(agg, 40); s != "" {
					fmt.Fprint(out, s)
				}
			}
			fmt.Fprintln(out)
		}
	}

	if failed {
		return fmt.Errorf("some files failed to analyze")
	}
	return nil
}

// printDiags выводит диагностики файла в stderr.
func printDiags(res driver.FileResult, color bool) {
	bag := res.Report.Diags
	if bag == nil || (!bag.HasErrors() && !bag.HasWarnings()) {
		return
	}
	if res.Cached {
		// у кэшированных отчётов нет спанов, печатаем без контекста
		for _, d := range bag.Items() {
			fmt.Fprintf(os.Stderr, "%s: %s %s: %s\n", res.Path, d.Severity, d.Code.ID(), d.Message)
		}
		return
	}
	if res.FileSet == nil {
		return
	}
	diagfmt.Pretty(os.Stderr, bag, res.FileSet, diagfmt.PrettyOpts{Color: color, Context: 1})
}

type fileReportJSON struct {
	Path       string               `json:"path"`
	Error      string               `json:"error,omitempty"`
	Aggregates []analyzer.Aggregate `json:"aggregates,omitempty"`
	Cached     bool                 `json:"cached,omitempty"`
}

func renderJSON(cmd *cobra.Command, results []driver.FileResult) error {
	out := make([]fileReportJSON, 0, len(results))
	for _, res := range results {
		entry := fileReportJSON{Path: res.Path, Cached: res.Cached}
		if res.Err != nil {
			entry.Error = res.Err.Error()
		} else {
			entry.Aggregates = res.Report.Aggregates
		}
		out = append(out, entry)
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
