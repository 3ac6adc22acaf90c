// Package ast defines the declaration nodes produced by the parser:
// aggregate definitions, typedef aliases, field declarations and the
// pragma-pack records that accompany them. Nodes carry raw type text and
// source spans; sizes and offsets appear only after resolution and layout.
package ast

import (
	"structlens/internal/source"
)

// AggregateKind distinguishes struct and union definitions.
type AggregateKind uint8

const (
	KindStruct AggregateKind = iota
	KindUnion
)

func (k AggregateKind) String() string {
	if k == KindUnion {
		return "union"
	}
	return "struct"
}

// PragmaPack is one interpreted "#pragma pack(...)" directive.
// Pos is the byte offset of the directive; directives apply to every
// aggregate whose definition starts after Pos.
type PragmaPack struct {
	Span  source.Span
	IsPop bool
	// Value is the pack value for push/set forms; 0 for pop.
	Value int
}

// File is the parse result for one translation unit.
type File struct {
	Span source.Span
	// Aggregates holds top-level struct/union definitions in source order.
	Aggregates []*AggregateDecl
	// Typedefs holds simple (non-aggregate) typedef aliases in source order.
	Typedefs []*TypedefDecl
	// Pragmas holds every recognized pack directive in source order.
	Pragmas []PragmaPack
}

// TypedefDecl is a simple (non-defining) typedef alias.
type TypedefDecl struct {
	// Name is the alias being introduced.
	Name string
	// BaseType is the raw aliased type text; a trailing '*' marks a pointer.
	BaseType string
	Span     source.Span
}

// AggregateDecl is one struct/union definition with its body fields.
type AggregateDecl struct {
	Kind AggregateKind
	// Tag is the explicit tag name; empty for tagless definitions.
	Tag string
	// Name is the primary catalog name: tag, else typedef alias,
	// else a synthesized __anon_<kind>_<n> name.
	Name string
	// Alias is the typedef alias when the definition appeared under typedef.
	Alias  string
	Fields []FieldDecl

	// IsPacked is true for __attribute__((packed)) or an active pack value of 1.
	IsPacked bool
	// AlignAttr is the aggregate-level aligned(N) value; 0 when absent.
	AlignAttr int
	// PackValue is the #pragma pack value active at the definition; 0 when none.
	PackValue int

	Span     source.Span // whole definition, for SourceMatch
	BodySpan source.Span // between the braces
}

// FieldDecl is one parsed member declaration.
type FieldDecl struct {
	Name string
	// Type is the raw type text ("unsigned long", "struct Foo", "char*", ...).
	Type string

	// ArrayDims holds explicit dimensions; nil for non-arrays.
	ArrayDims       []int
	IsFlexibleArray bool

	IsBitField bool
	Bits       int

	IsFunctionPointer bool
	IsPointer         bool

	// AlignAttr is a per-field aligned(N) override; 0 when absent.
	AlignAttr int

	// Inner is set for members defined with an inline struct/union body.
	Inner *AggregateDecl

	Span source.Span
}

// ArrayCount returns the product of all array dimensions (1 for non-arrays).
func (f *FieldDecl) ArrayCount() int {
	n := 1
	for _, d := range f.ArrayDims {
		n *= d
	}
	return n
}
