package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAddVirtualNormalizesCRLF(t *testing.T) {
	fs := NewFileSet()

	id := fs.AddVirtual("test.c", []byte("struct A {\r\n};\r\n"))
	file := fs.Get(id)

	if file.Flags&FileVirtual == 0 {
		t.Error("expected FileVirtual flag to be set")
	}
	if file.Flags&FileNormalizedCRLF == 0 {
		t.Error("expected FileNormalizedCRLF flag to be set")
	}
	if string(file.Content) != "struct A {\n};\n" {
		t.Errorf("unexpected normalized content: %q", string(file.Content))
	}
}

func TestLoadMissingFile(t *testing.T) {
	fs := NewFileSet()
	if _, err := fs.Load(filepath.Join(t.TempDir(), "nope.c")); err == nil {
		t.Fatal("expected error loading missing file")
	}
}

func TestLoadAndGetByPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.c")
	if err := os.WriteFile(path, []byte("int x;\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	file, ok := fs.GetByPath(path)
	if !ok {
		t.Fatal("expected GetByPath to find loaded file")
	}
	if file.ID != id {
		t.Errorf("GetByPath ID = %d, want %d", file.ID, id)
	}
	if string(file.Content) != "int x;\n" {
		t.Errorf("unexpected content: %q", string(file.Content))
	}
}

// TestResolveUTF8 проверяет разрешение позиций в UTF-8 тексте
func TestResolveUTF8(t *testing.T) {
	fs := NewFileSet()

	// α занимает 2 байта
	content := []byte("α\n")
	id := fs.AddVirtual("test.c", content)

	span := Span{File: id, Start: 0, End: 1}
	start, end := fs.Resolve(span)

	expectedStart := LineCol{Line: 1, Col: 1}
	expectedEnd := LineCol{Line: 1, Col: 2}

	if start != expectedStart {
		t.Errorf("Expected start %+v, got %+v", expectedStart, start)
	}
	if end != expectedEnd {
		t.Errorf("Expected end %+v, got %+v", expectedEnd, end)
	}
}

func TestResolveMultiline(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.c", []byte("struct A {\n  int x;\n};\n"))

	tests := []struct {
		name     string
		off      uint32
		expected LineCol
	}{
		{"start of file", 0, LineCol{Line: 1, Col: 1}},
		{"newline belongs to its line", 10, LineCol{Line: 1, Col: 11}},
		{"first char of line 2", 11, LineCol{Line: 2, Col: 1}},
		{"int keyword", 13, LineCol{Line: 2, Col: 3}},
		{"closing brace", 20, LineCol{Line: 3, Col: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
			if start != tt.expected {
				t.Errorf("Resolve(%d) = %+v, want %+v", tt.off, start, tt.expected)
			}
		})
	}
}

func TestSnippet(t *testing.T) {
	fs := NewFileSet()
	src := "typedef struct { int a; } T;"
	id := fs.AddVirtual("test.c", []byte(src))

	if got := fs.Snippet(Span{File: id, Start: 8, End: 14}); got != "struct" {
		t.Errorf("Snippet = %q, want %q", got, "struct")
	}

	// спан за пределами контента обрезается
	if got := fs.Snippet(Span{File: id, Start: 24, End: 999}); got != "} T;" {
		t.Errorf("clamped Snippet = %q, want %q", got, "} T;")
	}
}
