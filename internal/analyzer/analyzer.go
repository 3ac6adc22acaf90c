// Package analyzer ties the pipeline together: lex, parse, build the type
// table, relax it to a fixpoint, lay out every aggregate and run the
// optimizer. Analyze is a pure function of (source text, config): it owns
// its type table for the duration of one call and shares nothing, so
// concurrent calls never interfere and identical inputs give identical
// reports.
package analyzer

import (
	"structlens/internal/ast"
	"structlens/internal/diag"
	"structlens/internal/layout"
	"structlens/internal/lexer"
	"structlens/internal/optimize"
	"structlens/internal/parser"
	"structlens/internal/source"
	"structlens/internal/types"
)

// Config is the per-call analysis configuration.
type Config struct {
	// TargetAlignment is the pointer/long width: 4 or 8.
	TargetAlignment int `json:"targetAlignment" msgpack:"targetAlignment"`
	// CustomTypeSizes overrides sizes for named types.
	CustomTypeSizes map[string]int `json:"customTypeSizes,omitempty" msgpack:"customTypeSizes,omitempty"`
}

// DefaultConfig returns the configuration used when none is supplied.
func DefaultConfig() Config {
	return Config{TargetAlignment: 8}
}

// Aggregate is one output record of the boundary contract: an analyzed
// top-level struct or union with its layout and reorder proposal.
type Aggregate struct {
	Name string `json:"name" msgpack:"name"`
	Kind string `json:"kind" msgpack:"kind"`

	Fields       []layout.Field `json:"fields" msgpack:"fields"`
	TotalSize    int            `json:"totalSize" msgpack:"totalSize"`
	PaddingBytes int            `json:"paddingBytes" msgpack:"paddingBytes"`
	Alignment    int            `json:"alignment" msgpack:"alignment"`

	OptimizedFields    []layout.Field `json:"optimizedFields" msgpack:"optimizedFields"`
	OptimizedSize      int            `json:"optimizedSize" msgpack:"optimizedSize"`
	MemorySaved        int            `json:"memorySaved" msgpack:"memorySaved"`
	OptimizationRatio  float64        `json:"optimizationRatio" msgpack:"optimizationRatio"`
	OptimizationReason string         `json:"optimizationReason,omitempty" msgpack:"optimizationReason,omitempty"`

	// SourceMatch is the original textual span of the definition.
	SourceMatch string `json:"sourceMatch" msgpack:"sourceMatch"`
}

// Report is the result of one analysis call.
type Report struct {
	Aggregates []Aggregate `json:"aggregates" msgpack:"aggregates"`
	Diags      *diag.Bag   `json:"-" msgpack:"-"`
}

// maxPasses ограничивает цикл релаксации: после последнего прохода все
// неразрешённые поля принудительно получают размер 0.
const maxPasses = 3

// Analyze разбирает исходный текст и возвращает отчёт по всем агрегатам.
// Единственная фатальная ошибка — некорректная конфигурация.
func Analyze(src string, cfg Config) (*Report, error) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("<input>", []byte(src))
	return AnalyzeFile(fs, id, cfg)
}

// AnalyzeFile анализирует уже загруженный файл из FileSet.
func AnalyzeFile(fs *source.FileSet, id source.FileID, cfg Config) (*Report, error) {
	target, err := types.TargetForAlignment(cfg.TargetAlignment)
	if err != nil {
		return nil, err
	}

	bag := diag.NewBag(512)
	reporter := &diag.BagReporter{Bag: bag}

	file := fs.Get(id)
	lx := lexer.New(file, lexer.Options{
		Reporter: &lexer.ReporterAdapter{Reporter: reporter},
	})
	parsed := parser.ParseFile(lx, parser.Options{Reporter: reporter})

	table := types.NewTable()
	r := &resolver{
		fs:       fs,
		table:    table,
		target:   target,
		custom:   cfg.CustomTypeSizes,
		reporter: reporter,
		layouts:  make(map[string]layout.AggregateLayout),
	}

	for _, td := range parsed.File.Typedefs {
		table.AddAlias(td.Name, td.BaseType)
	}
	for _, agg := range parsed.File.Aggregates {
		r.register(agg)
	}

	// релаксация до неподвижной точки (с ограничением числа проходов)
	for pass := 1; pass <= maxPasses; pass++ {
		final := pass == maxPasses
		unresolved := 0
		for _, e := range table.Aggregates() {
			if e.Resolved {
				continue
			}
			if lay, ok := r.tryResolve(e, final); ok {
				table.MarkResolved(e.Name, lay.TotalSize, lay.Alignment)
				r.layouts[e.Name] = lay
			} else {
				unresolved++
			}
		}
		if unresolved == 0 {
			break
		}
	}

	report := &Report{Diags: bag}
	for _, agg := range parsed.File.Aggregates {
		lay, ok := r.layouts[agg.Name]
		if !ok {
			// не должно случаться: финальный проход разрешает всё
			continue
		}
		report.Aggregates = append(report.Aggregates, r.buildRecord(agg, lay))
	}

	bag.Sort()
	bag.Dedup()
	return report, nil
}

// buildRecord собирает выходную запись: раскладка плюс результат оптимизатора.
func (r *resolver) buildRecord(agg *ast.AggregateDecl, lay layout.AggregateLayout) Aggregate {
	var opt optimize.Result
	if agg.Kind == ast.KindUnion {
		opt = optimize.Result{
			Fields: lay.Fields,
			Size:   lay.TotalSize,
			Reason: optimize.ReasonUnion,
		}
	} else {
		opt = optimize.Reorder(lay, agg.IsPacked, agg.AlignAttr)
	}

	return Aggregate{
		Name:               agg.Name,
		Kind:               agg.Kind.String(),
		Fields:             lay.Fields,
		TotalSize:          lay.TotalSize,
		PaddingBytes:       lay.PaddingBytes,
		Alignment:          lay.Alignment,
		OptimizedFields:    opt.Fields,
		OptimizedSize:      opt.Size,
		MemorySaved:        opt.MemorySaved,
		OptimizationRatio:  opt.Ratio,
		OptimizationReason: opt.Reason,
		SourceMatch:        r.fs.Snippet(agg.Span),
	}
}
