// Package layout computes the in-memory layout of aggregate types:
// sequential struct placement with padding, bitfield storage-unit packing,
// flexible array members, recursive anonymous aggregates and union sizing.
// Fields arrive with their sizes and alignments already resolved; the
// engine fills offsets and padding and derives the totals.
package layout

// Field is one laid-out member of an aggregate. The JSON shape is the
// boundary contract consumed by renderers and editor integrations; the
// always-present numerics stay at zero when not applicable.
type Field struct {
	Name      string `json:"name" msgpack:"name"`
	Type      string `json:"type" msgpack:"type"`
	Size      int    `json:"size" msgpack:"size"`
	Offset    int    `json:"offset" msgpack:"offset"`
	Alignment int    `json:"alignment" msgpack:"alignment"`
	Padding   int    `json:"padding" msgpack:"padding"`

	ArraySize int `json:"arraySize,omitempty" msgpack:"arraySize,omitempty"`

	IsBitField bool `json:"isBitField,omitempty" msgpack:"isBitField,omitempty"`
	Bits       int  `json:"bits,omitempty" msgpack:"bits,omitempty"`
	BitOffset  int  `json:"bitOffset,omitempty" msgpack:"bitOffset,omitempty"`

	IsFunctionPointer bool `json:"isFunctionPointer,omitempty" msgpack:"isFunctionPointer,omitempty"`
	IsFlexibleArray   bool `json:"isFlexibleArray,omitempty" msgpack:"isFlexibleArray,omitempty"`

	IsAnonymous bool    `json:"isAnonymous,omitempty" msgpack:"isAnonymous,omitempty"`
	IsUnion     bool    `json:"isUnion,omitempty" msgpack:"isUnion,omitempty"`
	Inner       []Field `json:"innerFields,omitempty" msgpack:"innerFields,omitempty"`

	// AlignOverride is a per-field aligned(N) attribute value; it survives
	// even under packed layout. Not part of the boundary contract.
	AlignOverride int `json:"-" msgpack:"-"`
}

// AggregateLayout is the computed layout of one struct or union.
type AggregateLayout struct {
	Fields       []Field
	TotalSize    int
	PaddingBytes int
	Alignment    int
}

func roundUp(n, align int) int {
	if align <= 1 {
		return n
	}
	r := n % align
	if r == 0 {
		return n
	}
	return n + (align - r)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
