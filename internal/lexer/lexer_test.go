package lexer

import (
	"testing"

	"structlens/internal/diag"
	"structlens/internal/source"
	"structlens/internal/token"
)

// helper function to create a file
func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.c", []byte(content))
	return fs.Get(id)
}

func lexKinds(t *testing.T, src string) []token.Kind {
	t.Helper()
	lx := New(createFile(src), Options{})
	var kinds []token.Kind
	for _, tok := range lx.Tokens() {
		kinds = append(kinds, tok.Kind)
	}
	return kinds
}

func TestLexSimpleStruct(t *testing.T) {
	src := "struct Point { int x; int y; };"
	expected := []token.Kind{
		token.KwStruct, token.Ident, token.LBrace,
		token.Ident, token.Ident, token.Semicolon,
		token.Ident, token.Ident, token.Semicolon,
		token.RBrace, token.Semicolon, token.EOF,
	}

	got := lexKinds(t, src)
	if len(got) != len(expected) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(expected), got)
	}
	for i, k := range expected {
		if got[i] != k {
			t.Errorf("token %d = %v, want %v", i, got[i], k)
		}
	}
}

func TestLexKeywords(t *testing.T) {
	tests := []struct {
		text string
		kind token.Kind
	}{
		{"struct", token.KwStruct},
		{"union", token.KwUnion},
		{"enum", token.KwEnum},
		{"typedef", token.KwTypedef},
		{"const", token.KwConst},
		{"volatile", token.KwVolatile},
		{"signed", token.KwSigned},
		{"unsigned", token.KwUnsigned},
		{"__attribute__", token.KwAttribute},
		{"int", token.Ident},
		{"structx", token.Ident},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			lx := New(createFile(tt.text), Options{})
			tok := lx.Next()
			if tok.Kind != tt.kind {
				t.Errorf("kind = %v, want %v", tok.Kind, tt.kind)
			}
			if tok.Text != tt.text {
				t.Errorf("text = %q, want %q", tok.Text, tt.text)
			}
		})
	}
}

func TestLexNumbers(t *testing.T) {
	tests := []struct {
		name string
		src  string
		text string
	}{
		{"decimal", "42", "42"},
		{"hex", "0x1F", "0x1F"},
		{"octal", "017", "017"},
		{"zero", "0", "0"},
		{"unsigned suffix", "32u", "32u"},
		{"long suffix", "64UL", "64UL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lx := New(createFile(tt.src), Options{})
			tok := lx.Next()
			if tok.Kind != token.IntLit {
				t.Fatalf("kind = %v, want IntLit", tok.Kind)
			}
			if tok.Text != tt.text {
				t.Errorf("text = %q, want %q", tok.Text, tt.text)
			}
		})
	}
}

func TestLexCommentsBecomeTrivia(t *testing.T) {
	src := "// header\nint /* mid */ x;"
	lx := New(createFile(src), Options{})

	first := lx.Next()
	if first.Kind != token.Ident || first.Text != "int" {
		t.Fatalf("first token = %v %q, want Ident int", first.Kind, first.Text)
	}
	var kinds []token.TriviaKind
	for _, tr := range first.Leading {
		kinds = append(kinds, tr.Kind)
	}
	if len(kinds) != 2 || kinds[0] != token.TriviaLineComment || kinds[1] != token.TriviaNewline {
		t.Errorf("leading trivia = %v, want [LineComment Newline]", kinds)
	}

	second := lx.Next()
	if second.Kind != token.Ident || second.Text != "x" {
		t.Fatalf("second token = %v %q, want Ident x", second.Kind, second.Text)
	}
	foundBlock := false
	for _, tr := range second.Leading {
		if tr.Kind == token.TriviaBlockComment {
			foundBlock = true
		}
	}
	if !foundBlock {
		t.Error("expected block comment in leading trivia of 'x'")
	}
}

func TestLexPragmaPack(t *testing.T) {
	tests := []struct {
		name string
		src  string
		args string
	}{
		{"push with value", "#pragma pack(push, 1)", "push, 1"},
		{"pop", "#pragma pack(pop)", "pop"},
		{"bare value", "#pragma pack(4)", "4"},
		{"empty", "#pragma pack()", ""},
		{"spaces", "#  pragma  pack( push, 2 )", "push, 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lx := New(createFile(tt.src), Options{})
			tok := lx.Next()
			if tok.Kind != token.Pragma {
				t.Fatalf("kind = %v, want Pragma", tok.Kind)
			}
			if tok.Text != tt.args {
				t.Errorf("args = %q, want %q", tok.Text, tt.args)
			}
		})
	}
}

func TestLexOtherDirectivesAreTrivia(t *testing.T) {
	src := "#include <stdint.h>\n#define FOO 1\nstruct A {};"
	lx := New(createFile(src), Options{})

	tok := lx.Next()
	if tok.Kind != token.KwStruct {
		t.Fatalf("first significant token = %v, want struct", tok.Kind)
	}
	directives := 0
	for _, tr := range tok.Leading {
		if tr.Kind == token.TriviaDirective {
			directives++
		}
	}
	if directives != 2 {
		t.Errorf("directive trivia count = %d, want 2", directives)
	}
}

func TestLexUnterminatedBlockComment(t *testing.T) {
	bag := diag.NewBag(16)
	adapter := &ReporterAdapter{Reporter: &diag.BagReporter{Bag: bag}}
	lx := New(createFile("int x; /* never closed"), Options{Reporter: adapter})

	for tok := lx.Next(); tok.Kind != token.EOF; tok = lx.Next() {
	}

	if !bag.HasWarnings() {
		t.Fatal("expected diagnostic for unterminated block comment")
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.LexUnterminatedBlockComment {
			found = true
		}
	}
	if !found {
		t.Error("expected LexUnterminatedBlockComment code")
	}
}

func TestLexUnknownByteIsInvalid(t *testing.T) {
	lx := New(createFile("int a; @"), Options{})
	var kinds []token.Kind
	for _, tok := range lx.Tokens() {
		kinds = append(kinds, tok.Kind)
	}
	// int a ; @ EOF
	if len(kinds) != 5 || kinds[3] != token.Invalid {
		t.Errorf("kinds = %v, want Invalid before EOF", kinds)
	}
}

func TestLexEllipsisAndPunct(t *testing.T) {
	got := lexKinds(t, "*;:,()[]{}=...")
	expected := []token.Kind{
		token.Star, token.Semicolon, token.Colon, token.Comma,
		token.LParen, token.RParen, token.LBracket, token.RBracket,
		token.LBrace, token.RBrace, token.Assign, token.DotDotDot, token.EOF,
	}
	if len(got) != len(expected) {
		t.Fatalf("got %v, want %v", got, expected)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("token %d = %v, want %v", i, got[i], expected[i])
		}
	}
}

func TestLexDirectiveContinuation(t *testing.T) {
	src := "#define LONG \\\n  1\nint y;"
	lx := New(createFile(src), Options{})
	tok := lx.Next()
	if tok.Kind != token.Ident || tok.Text != "int" {
		t.Fatalf("first token = %v %q, want Ident int", tok.Kind, tok.Text)
	}
}
