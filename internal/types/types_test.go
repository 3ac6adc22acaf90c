package types

import (
	"testing"

	"structlens/internal/ast"
)

func mustTarget(t *testing.T, n int) Target {
	t.Helper()
	tgt, err := TargetForAlignment(n)
	if err != nil {
		t.Fatalf("TargetForAlignment(%d): %v", n, err)
	}
	return tgt
}

func TestTargetForAlignment(t *testing.T) {
	if tgt := mustTarget(t, 8); tgt.PtrSize != 8 || tgt.PtrAlign != 8 {
		t.Errorf("target(8) = %+v", tgt)
	}
	if tgt := mustTarget(t, 4); tgt.PtrSize != 4 || tgt.PtrAlign != 4 {
		t.Errorf("target(4) = %+v", tgt)
	}
	for _, bad := range []int{0, 1, 2, 3, 16, -8} {
		if _, err := TargetForAlignment(bad); err == nil {
			t.Errorf("TargetForAlignment(%d): expected error", bad)
		}
	}
}

func TestAlignForSize(t *testing.T) {
	t8 := mustTarget(t, 8)
	t4 := mustTarget(t, 4)

	tests := []struct {
		target Target
		size   int
		want   int
	}{
		{t8, 1, 1},
		{t8, 2, 2},
		{t8, 3, 2},
		{t8, 4, 4},
		{t8, 7, 4},
		{t8, 8, 8},
		{t8, 16, 8},
		{t4, 8, 4},
		{t4, 16, 4},
		{t4, 2, 2},
	}
	for _, tt := range tests {
		if got := tt.target.AlignForSize(tt.size); got != tt.want {
			t.Errorf("target %d: AlignForSize(%d) = %d, want %d",
				tt.target.PtrAlign, tt.size, got, tt.want)
		}
	}
}

func TestNormalizeType(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"int", "int"},
		{"const int", "int"},
		{"unsigned   long", "unsigned long"},
		{"volatile const char", "char"},
		{"char*", "char*"},
		{"const char *", "char*"},
		{"struct  Foo", "struct Foo"},
	}
	for _, tt := range tests {
		if got := NormalizeType(tt.in); got != tt.want {
			t.Errorf("NormalizeType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuiltinSize(t *testing.T) {
	t8 := mustTarget(t, 8)
	t4 := mustTarget(t, 4)

	tests := []struct {
		target Target
		name   string
		size   int
		align  int
	}{
		{t8, "char", 1, 1},
		{t8, "unsigned char", 1, 1},
		{t8, "short", 2, 2},
		{t8, "int", 4, 4},
		{t8, "unsigned int", 4, 4},
		{t8, "long", 8, 8},
		{t4, "long", 4, 4},
		{t8, "long long", 8, 8},
		{t4, "long long", 8, 4},
		{t8, "float", 4, 4},
		{t8, "double", 8, 8},
		{t4, "double", 8, 4},
		{t8, "size_t", 8, 8},
		{t4, "size_t", 4, 4},
		{t8, "uint64_t", 8, 8},
		{t8, "int16_t", 2, 2},
		{t8, "char*", 8, 8},
		{t4, "void*", 4, 4},
		{t8, "struct Foo*", 8, 8},
		{t8, "enum Color", 4, 4},
		{t8, "enum", 4, 4},
		{t8, "const unsigned long", 8, 8},
	}
	for _, tt := range tests {
		size, align, ok := tt.target.BuiltinSize(tt.name)
		if !ok {
			t.Errorf("BuiltinSize(%q): not builtin", tt.name)
			continue
		}
		if size != tt.size || align != tt.align {
			t.Errorf("target %d: BuiltinSize(%q) = %d/%d, want %d/%d",
				tt.target.PtrAlign, tt.name, size, align, tt.size, tt.align)
		}
	}

	if _, _, ok := t8.BuiltinSize("mytype_t"); ok {
		t.Error("BuiltinSize(mytype_t): expected not builtin")
	}
}

func TestTableAddAggregate(t *testing.T) {
	tab := NewTable()
	tab.AddAggregate(&ast.AggregateDecl{
		Kind: ast.KindStruct,
		Tag:  "Point",
		Name: "Point",
	})

	if _, ok := tab.Lookup("Point"); !ok {
		t.Fatal("Point not registered")
	}
	tagged, ok := tab.Lookup("struct Point")
	if !ok || tagged.Kind != EntryAlias || tagged.BaseType != "Point" {
		t.Errorf("'struct Point' entry = %+v", tagged)
	}

	// первое определение побеждает
	first, _ := tab.Lookup("Point")
	tab.AddAggregate(&ast.AggregateDecl{Kind: ast.KindUnion, Name: "Point"})
	second, _ := tab.Lookup("Point")
	if first != second {
		t.Error("re-registration replaced the original entry")
	}

	aggs := tab.Aggregates()
	if len(aggs) != 1 || aggs[0].Name != "Point" {
		t.Errorf("Aggregates() = %+v", aggs)
	}
}

func TestTableTypedefAliasFromAggregate(t *testing.T) {
	tab := NewTable()
	tab.AddAggregate(&ast.AggregateDecl{
		Kind:  ast.KindStruct,
		Tag:   "node",
		Name:  "node",
		Alias: "node_t",
	})

	alias, ok := tab.Lookup("node_t")
	if !ok || alias.Kind != EntryAlias || alias.BaseType != "node" {
		t.Fatalf("node_t entry = %+v", alias)
	}
}

func TestResolveAliasChain(t *testing.T) {
	t8 := mustTarget(t, 8)
	tab := NewTable()
	tab.AddAlias("u64", "unsigned long")
	tab.AddAlias("id_t", "u64")

	size, align, res := tab.ResolveType("id_t", t8, nil)
	if res != ResolvedOK || size != 8 || align != 8 {
		t.Errorf("id_t = %d/%d res=%v, want 8/8 ok", size, align, res)
	}
}

func TestResolvePendingAggregate(t *testing.T) {
	t8 := mustTarget(t, 8)
	tab := NewTable()
	tab.AddAggregate(&ast.AggregateDecl{Kind: ast.KindStruct, Tag: "Foo", Name: "Foo"})

	_, _, res := tab.ResolveType("struct Foo", t8, nil)
	if res != Pending {
		t.Fatalf("unresolved aggregate: res = %v, want Pending", res)
	}

	tab.MarkResolved("Foo", 12, 4)
	size, align, res := tab.ResolveType("struct Foo", t8, nil)
	if res != ResolvedOK || size != 12 || align != 4 {
		t.Errorf("resolved Foo = %d/%d res=%v, want 12/4 ok", size, align, res)
	}
}

func TestResolveCircularAlias(t *testing.T) {
	t8 := mustTarget(t, 8)
	tab := NewTable()
	tab.AddAlias("a_t", "b_t")
	tab.AddAlias("b_t", "a_t")

	_, _, res := tab.ResolveType("a_t", t8, nil)
	if res != Circular {
		t.Errorf("res = %v, want Circular", res)
	}
}

func TestResolveUnknown(t *testing.T) {
	t8 := mustTarget(t, 8)
	tab := NewTable()

	_, _, res := tab.ResolveType("opaque_handle_t", t8, nil)
	if res != Unknown {
		t.Errorf("res = %v, want Unknown", res)
	}
}

func TestResolveCustomSizes(t *testing.T) {
	t8 := mustTarget(t, 8)
	tab := NewTable()
	custom := map[string]int{"handle_t": 16, "small_t": 2}

	size, align, res := tab.ResolveType("handle_t", t8, custom)
	if res != ResolvedOK || size != 16 || align != 8 {
		t.Errorf("handle_t = %d/%d res=%v, want 16/8 ok", size, align, res)
	}
	size, align, res = tab.ResolveType("small_t", t8, custom)
	if res != ResolvedOK || size != 2 || align != 2 {
		t.Errorf("small_t = %d/%d res=%v, want 2/2 ok", size, align, res)
	}
}

func TestResolvePointerAlwaysResolves(t *testing.T) {
	t8 := mustTarget(t, 8)
	tab := NewTable()

	// указатель на неизвестный тип всё равно имеет размер указателя
	size, align, res := tab.ResolveType("struct never_defined*", t8, nil)
	if res != ResolvedOK || size != 8 || align != 8 {
		t.Errorf("pointer = %d/%d res=%v, want 8/8 ok", size, align, res)
	}
}

func TestMarkResolvedIsMonotone(t *testing.T) {
	tab := NewTable()
	tab.AddAggregate(&ast.AggregateDecl{Kind: ast.KindStruct, Name: "S"})

	tab.MarkResolved("S", 8, 4)
	tab.MarkResolved("S", 100, 100)

	e, _ := tab.Lookup("S")
	if e.Size != 8 || e.Align != 4 {
		t.Errorf("entry = %d/%d, want first values 8/4", e.Size, e.Align)
	}
}
