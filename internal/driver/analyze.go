package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"structlens/internal/analyzer"
	"structlens/internal/diag"
	"structlens/internal/source"
)

// FileResult содержит отчёт по одному файлу.
type FileResult struct {
	Path   string           // путь, как его передали
	Report *analyzer.Report // nil при ошибке загрузки
	Err    error            // I/O или фатальная ошибка конфигурации
	Cached bool             // отчёт взят из дискового кэша

	// FileSet и FileID заполнены только для свежих отчётов: кэш не
	// хранит исходный текст, нужный для контекста диагностик.
	FileSet *source.FileSet
	FileID  source.FileID
}

// Options управляет пакетным анализом.
type Options struct {
	Jobs  int        // 0 — GOMAXPROCS
	Cache *DiskCache // nil — без кэширования
}

// sourceExts перечисляет расширения, которые считаем исходниками C.
var sourceExts = map[string]bool{
	".c": true, ".h": true,
	".cc": true, ".cpp": true, ".hpp": true,
}

// ListSources возвращает отсортированный список исходников в директории.
func ListSources(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && sourceExts[strings.ToLower(filepath.Ext(path))] {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// AnalyzeFile анализирует один файл с диска.
func AnalyzeFile(path string, cfg analyzer.Config, cache *DiskCache) (*FileResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return analyzeContent(path, content, cfg, cache), nil
}

// AnalyzePaths анализирует набор файлов параллельно. Порядок результатов
// совпадает с порядком путей. Ошибка возвращается только при отмене
// контекста; все прочие сбои попадают в соответствующий FileResult.
func AnalyzePaths(ctx context.Context, paths []string, cfg analyzer.Config, opts Options) ([]FileResult, error) {
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]FileResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, max(len(paths), 1)))

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			content, err := os.ReadFile(path)
			if err != nil {
				results[i] = FileResult{Path: path, Err: err}
				return nil
			}
			results[i] = *analyzeContent(path, content, cfg, opts.Cache)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// AnalyzeDir анализирует все исходники C в директории параллельно.
func AnalyzeDir(ctx context.Context, dir string, cfg analyzer.Config, opts Options) ([]FileResult, error) {
	files, err := ListSources(dir)
	if err != nil {
		return nil, err
	}
	return AnalyzePaths(ctx, files, cfg, opts)
}

func analyzeContent(path string, content []byte, cfg analyzer.Config, cache *DiskCache) *FileResult {
	key := CacheKey(content, cfg)
	if cache != nil {
		var payload DiskPayload
		if ok, err := cache.Get(key, &payload); err == nil && ok {
			if report := payloadToReport(&payload); report != nil {
				return &FileResult{Path: path, Report: report, Cached: true}
			}
		}
	}

	fs := source.NewFileSet()
	id := fs.Add(path, content, 0)
	report, err := analyzer.AnalyzeFile(fs, id, cfg)
	if err != nil {
		return &FileResult{Path: path, Err: err}
	}

	if cache != nil {
		// ошибка записи кэша не фатальна, отчёт уже готов
		_ = cache.Put(key, reportToPayload(report))
	}
	return &FileResult{Path: path, Report: report, FileSet: fs, FileID: id}
}

// payloadToReport восстанавливает отчёт из кэша; спаны диагностик не
// сохраняются, поэтому Bag пересобирается без них.
func payloadToReport(p *DiskPayload) *analyzer.Report {
	if p == nil || p.Schema != diskCacheSchemaVersion {
		return nil
	}
	bag := diag.NewBag(512)
	for _, cd := range p.Diags {
		bag.Add(diag.New(diag.Severity(cd.Severity), diag.Code(cd.Code), source.Span{}, cd.Message))
	}
	return &analyzer.Report{Aggregates: p.Aggregates, Diags: bag}
}

func reportToPayload(r *analyzer.Report) *DiskPayload {
	p := &DiskPayload{
		Schema:     diskCacheSchemaVersion,
		Aggregates: r.Aggregates,
	}
	if r.Diags != nil {
		for _, d := range r.Diags.Items() {
			p.Diags = append(p.Diags, CachedDiag{
				Severity: uint8(d.Severity),
				Code:     uint16(d.Code),
				Message:  d.Message,
			})
		}
	}
	return p
}
