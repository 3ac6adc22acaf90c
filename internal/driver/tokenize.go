package driver

import (
	"structlens/internal/diag"
	"structlens/internal/lexer"
	"structlens/internal/source"
	"structlens/internal/token"
)

// TokenizeResult — результат отладочной токенизации одного файла.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize прогоняет файл через лексер и собирает все токены до EOF.
// Используется командой `structlens tokenize` для отладки.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	adapter := &lexer.ReporterAdapter{Reporter: &diag.BagReporter{Bag: bag}}
	lx := lexer.New(file, lexer.Options{Reporter: adapter})

	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}, nil
}
