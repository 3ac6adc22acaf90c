package parser

import (
	"testing"

	"structlens/internal/ast"
	"structlens/internal/diag"
	"structlens/internal/lexer"
	"structlens/internal/source"
)

func parseSrc(t *testing.T, src string) (*ast.File, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.c", []byte(src))
	bag := diag.NewBag(64)
	lx := lexer.New(fs.Get(id), lexer.Options{})
	res := ParseFile(lx, Options{Reporter: &diag.BagReporter{Bag: bag}})
	return res.File, bag
}

func singleAggregate(t *testing.T, src string) *ast.AggregateDecl {
	t.Helper()
	file, _ := parseSrc(t, src)
	if len(file.Aggregates) != 1 {
		t.Fatalf("got %d aggregates, want 1", len(file.Aggregates))
	}
	return file.Aggregates[0]
}

func TestParseSimpleStruct(t *testing.T) {
	agg := singleAggregate(t, "struct Point { int x; int y; };")

	if agg.Kind != ast.KindStruct {
		t.Errorf("kind = %v, want struct", agg.Kind)
	}
	if agg.Name != "Point" || agg.Tag != "Point" {
		t.Errorf("name/tag = %q/%q, want Point", agg.Name, agg.Tag)
	}
	if len(agg.Fields) != 2 {
		t.Fatalf("got %d fields, want 2", len(agg.Fields))
	}
	for i, want := range []string{"x", "y"} {
		if agg.Fields[i].Name != want || agg.Fields[i].Type != "int" {
			t.Errorf("field %d = %q %q, want int %s", i, agg.Fields[i].Type, agg.Fields[i].Name, want)
		}
	}
}

func TestParseTypedefStruct(t *testing.T) {
	agg := singleAggregate(t, "typedef struct { char c; double d; } Sample;")

	if agg.Tag != "" {
		t.Errorf("tag = %q, want empty", agg.Tag)
	}
	if agg.Alias != "Sample" || agg.Name != "Sample" {
		t.Errorf("alias/name = %q/%q, want Sample", agg.Alias, agg.Name)
	}
}

func TestParseUnion(t *testing.T) {
	agg := singleAggregate(t, "union Value { int i; float f; char bytes[8]; };")

	if agg.Kind != ast.KindUnion {
		t.Errorf("kind = %v, want union", agg.Kind)
	}
	if len(agg.Fields) != 3 {
		t.Fatalf("got %d fields, want 3", len(agg.Fields))
	}
	if agg.Fields[2].ArrayCount() != 8 {
		t.Errorf("bytes array count = %d, want 8", agg.Fields[2].ArrayCount())
	}
}

func TestParseMultiDeclarator(t *testing.T) {
	agg := singleAggregate(t, "struct V { int a, b, c; };")

	if len(agg.Fields) != 3 {
		t.Fatalf("got %d fields, want 3", len(agg.Fields))
	}
	for i, want := range []string{"a", "b", "c"} {
		if agg.Fields[i].Name != want || agg.Fields[i].Type != "int" {
			t.Errorf("field %d = %q %q", i, agg.Fields[i].Type, agg.Fields[i].Name)
		}
	}
}

func TestParsePointerFields(t *testing.T) {
	agg := singleAggregate(t, "struct P { char *name; const void *data; int **pp; };")

	tests := []struct {
		name string
		typ  string
	}{
		{"name", "char*"},
		{"data", "void*"},
		{"pp", "int*"},
	}
	if len(agg.Fields) != 3 {
		t.Fatalf("got %d fields, want 3", len(agg.Fields))
	}
	for i, tt := range tests {
		fd := agg.Fields[i]
		if fd.Name != tt.name || !fd.IsPointer {
			t.Errorf("field %d = %+v, want pointer %s", i, fd, tt.name)
		}
		if fd.Type != tt.typ {
			t.Errorf("field %s type = %q, want %q", tt.name, fd.Type, tt.typ)
		}
	}
}

func TestParseBitFields(t *testing.T) {
	agg := singleAggregate(t, "struct Flags { unsigned int a : 3; unsigned int b : 5; int : 0; int c : 2; };")

	if len(agg.Fields) != 4 {
		t.Fatalf("got %d fields, want 4", len(agg.Fields))
	}
	widths := []int{3, 5, 0, 2}
	for i, w := range widths {
		fd := agg.Fields[i]
		if !fd.IsBitField || fd.Bits != w {
			t.Errorf("field %d: IsBitField=%v Bits=%d, want bits %d", i, fd.IsBitField, fd.Bits, w)
		}
	}
	if agg.Fields[2].Name != "" {
		t.Errorf("zero-width field name = %q, want unnamed", agg.Fields[2].Name)
	}
}

func TestParseArrays(t *testing.T) {
	agg := singleAggregate(t, "struct A { int grid[3][4]; char tail[]; };")

	grid := agg.Fields[0]
	if len(grid.ArrayDims) != 2 || grid.ArrayDims[0] != 3 || grid.ArrayDims[1] != 4 {
		t.Errorf("grid dims = %v, want [3 4]", grid.ArrayDims)
	}
	if grid.ArrayCount() != 12 {
		t.Errorf("grid count = %d, want 12", grid.ArrayCount())
	}

	tail := agg.Fields[1]
	if !tail.IsFlexibleArray {
		t.Error("expected tail to be a flexible array member")
	}
}

func TestParseFunctionPointer(t *testing.T) {
	agg := singleAggregate(t, "struct Ops { void (*handler)(int, char*); int id; };")

	fd := agg.Fields[0]
	if !fd.IsFunctionPointer || fd.Name != "handler" {
		t.Errorf("field = %+v, want function pointer 'handler'", fd)
	}
	if agg.Fields[1].Name != "id" {
		t.Errorf("second field = %q, want id", agg.Fields[1].Name)
	}
}

func TestParseAnonymousNested(t *testing.T) {
	src := `struct Outer {
		int head;
		struct { char a; int b; } named;
		union { int x; char y; };
	};`
	agg := singleAggregate(t, src)

	if len(agg.Fields) != 3 {
		t.Fatalf("got %d fields, want 3", len(agg.Fields))
	}

	named := agg.Fields[1]
	if named.Inner == nil || named.Name != "named" {
		t.Fatalf("field 1 = %+v, want inner struct member 'named'", named)
	}
	if named.Inner.Kind != ast.KindStruct || len(named.Inner.Fields) != 2 {
		t.Errorf("inner = %+v, want struct with 2 fields", named.Inner)
	}

	anon := agg.Fields[2]
	if anon.Inner == nil || anon.Inner.Kind != ast.KindUnion {
		t.Fatalf("field 2 = %+v, want anonymous union", anon)
	}
	if anon.Inner.Tag != "" {
		t.Errorf("anonymous union tag = %q, want empty", anon.Inner.Tag)
	}
}

func TestAnonymousNamesAreDeterministic(t *testing.T) {
	src := `
	struct A { struct { int x; } in; };
	struct B { union { int y; } u; };
	typedef struct { int z; } C;`
	file, _ := parseSrc(t, src)

	if len(file.Aggregates) != 3 {
		t.Fatalf("got %d aggregates, want 3", len(file.Aggregates))
	}
	if name := file.Aggregates[0].Fields[0].Inner.Name; name != "__anon_struct_0" {
		t.Errorf("first inner name = %q, want __anon_struct_0", name)
	}
	if name := file.Aggregates[1].Fields[0].Inner.Name; name != "__anon_union_1" {
		t.Errorf("second inner name = %q, want __anon_union_1", name)
	}
	// typedef с алиасом синтетики не получает
	if file.Aggregates[2].Name != "C" {
		t.Errorf("typedef name = %q, want C", file.Aggregates[2].Name)
	}
}

func TestParseTaggedNestedAggregate(t *testing.T) {
	agg := singleAggregate(t, "struct Outer { struct Embedded { char c; int n; } emb; };")

	emb := agg.Fields[0]
	if emb.Name != "emb" {
		t.Errorf("member name = %q, want emb", emb.Name)
	}
	if emb.Inner == nil || emb.Inner.Tag != "Embedded" || emb.Inner.Name != "Embedded" {
		t.Errorf("inner = %+v, want tagged Embedded", emb.Inner)
	}
	if emb.Type != "struct Embedded" {
		t.Errorf("member type = %q, want 'struct Embedded'", emb.Type)
	}
}

func TestParsePackedAttribute(t *testing.T) {
	agg := singleAggregate(t, "struct P { char c; int n; } __attribute__((packed));")
	if !agg.IsPacked {
		t.Error("expected IsPacked from trailing attribute")
	}

	agg = singleAggregate(t, "struct __attribute__((packed)) Q { char c; int n; };")
	if !agg.IsPacked {
		t.Error("expected IsPacked from leading attribute")
	}
}

func TestParseAlignedAttribute(t *testing.T) {
	agg := singleAggregate(t, "struct A { char c; } __attribute__((aligned(16)));")
	if agg.AlignAttr != 16 {
		t.Errorf("AlignAttr = %d, want 16", agg.AlignAttr)
	}

	agg = singleAggregate(t, "struct B { char c; int n __attribute__((aligned(8))); };")
	if agg.Fields[1].AlignAttr != 8 {
		t.Errorf("field AlignAttr = %d, want 8", agg.Fields[1].AlignAttr)
	}
}

func TestPragmaPackStack(t *testing.T) {
	src := `
	#pragma pack(push, 1)
	struct Tight { char c; int n; };
	#pragma pack(pop)
	struct Loose { char c; int n; };`
	file, _ := parseSrc(t, src)

	if len(file.Aggregates) != 2 {
		t.Fatalf("got %d aggregates, want 2", len(file.Aggregates))
	}
	tight, loose := file.Aggregates[0], file.Aggregates[1]
	if tight.PackValue != 1 || !tight.IsPacked {
		t.Errorf("Tight: PackValue=%d IsPacked=%v, want 1/true", tight.PackValue, tight.IsPacked)
	}
	if loose.PackValue != 0 || loose.IsPacked {
		t.Errorf("Loose: PackValue=%d IsPacked=%v, want 0/false", loose.PackValue, loose.IsPacked)
	}
}

func TestPragmaPackUnmatchedPushStaysActive(t *testing.T) {
	src := `
	#pragma pack(push, 2)
	struct A { char c; };
	struct B { char c; };`
	file, _ := parseSrc(t, src)

	for _, agg := range file.Aggregates {
		if agg.PackValue != 2 {
			t.Errorf("%s: PackValue = %d, want 2", agg.Name, agg.PackValue)
		}
	}
}

func TestPragmaPackBareValueBecomesActive(t *testing.T) {
	src := `
	#pragma pack(push, 4)
	#pragma pack(1)
	struct A { char c; short s; };`
	file, _ := parseSrc(t, src)

	if file.Aggregates[0].PackValue != 1 {
		t.Errorf("PackValue = %d, want 1", file.Aggregates[0].PackValue)
	}
}

func TestPragmaPackBadArgsWarns(t *testing.T) {
	_, bag := parseSrc(t, "#pragma pack(banana)\nstruct A { int x; };")

	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.SynBadPragmaPack {
			found = true
		}
	}
	if !found {
		t.Error("expected SynBadPragmaPack diagnostic")
	}
}

func TestParseSimpleTypedefs(t *testing.T) {
	src := `
	typedef unsigned long u64;
	typedef u64 id_t;
	typedef char *cstr;
	typedef struct Node NodeAlias;
	typedef void (*callback_t)(int);`
	file, _ := parseSrc(t, src)

	expected := map[string]string{
		"u64":        "unsigned long",
		"id_t":       "u64",
		"cstr":       "char*",
		"NodeAlias":  "struct Node",
		"callback_t": "void*",
	}
	if len(file.Typedefs) != len(expected) {
		t.Fatalf("got %d typedefs, want %d", len(file.Typedefs), len(expected))
	}
	for _, td := range file.Typedefs {
		want, ok := expected[td.Name]
		if !ok {
			t.Errorf("unexpected typedef %q", td.Name)
			continue
		}
		if td.BaseType != want {
			t.Errorf("typedef %s = %q, want %q", td.Name, td.BaseType, want)
		}
	}
}

func TestUnterminatedBodyKeepsCollectedFields(t *testing.T) {
	file, bag := parseSrc(t, "struct Broken { int a; char b;")

	if len(file.Aggregates) != 1 {
		t.Fatalf("got %d aggregates, want 1", len(file.Aggregates))
	}
	agg := file.Aggregates[0]
	if len(agg.Fields) != 2 {
		t.Errorf("got %d fields, want 2 collected before EOF", len(agg.Fields))
	}

	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.SynUnterminatedAggregate {
			found = true
		}
	}
	if !found {
		t.Error("expected SynUnterminatedAggregate diagnostic")
	}
}

func TestMalformedFieldSkipsToNext(t *testing.T) {
	file, bag := parseSrc(t, "struct S { int a; ???; int b; };")

	agg := file.Aggregates[0]
	names := make([]string, 0, len(agg.Fields))
	for _, f := range agg.Fields {
		names = append(names, f.Name)
	}
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("fields = %v, want [a b]", names)
	}
	if bag.Len() == 0 {
		t.Error("expected a diagnostic for the malformed field")
	}
}

func TestNonDeclarationCodeIsSkipped(t *testing.T) {
	src := `
	int global_counter = 0;
	void helper(int x) { return; }
	struct Real { int n; };`
	file, _ := parseSrc(t, src)

	if len(file.Aggregates) != 1 || file.Aggregates[0].Name != "Real" {
		t.Errorf("aggregates = %+v, want just Real", file.Aggregates)
	}
}

func TestForwardDeclarationIsNotADefinition(t *testing.T) {
	file, _ := parseSrc(t, "struct Fwd;\nstruct Def { int x; };")

	if len(file.Aggregates) != 1 || file.Aggregates[0].Name != "Def" {
		t.Errorf("aggregates: got %d, want only Def", len(file.Aggregates))
	}
}

func TestEnumFieldParses(t *testing.T) {
	agg := singleAggregate(t, "struct E { enum Color { RED, GREEN } c; int n; };")

	if len(agg.Fields) != 2 {
		t.Fatalf("got %d fields, want 2", len(agg.Fields))
	}
	if agg.Fields[0].Type != "enum Color" || agg.Fields[0].Name != "c" {
		t.Errorf("enum field = %q %q", agg.Fields[0].Type, agg.Fields[0].Name)
	}
}
