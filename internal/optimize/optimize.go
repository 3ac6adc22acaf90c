// Package optimize proposes a field order that minimizes struct padding:
// a stable sort by descending alignment, then descending size, re-laid out
// through the layout engine. Reordering is refused when it would change
// semantics (packed layout, bitfields, anonymous members, flexible arrays).
package optimize

import (
	"sort"

	"structlens/internal/layout"
)

// Reasons why a struct was not reordered.
const (
	ReasonPacked        = "packed layout"
	ReasonBitfields     = "contains bitfields"
	ReasonAnonymous     = "contains anonymous members"
	ReasonFlexibleArray = "contains a flexible array member"
	ReasonNoImprovement = "no improvement possible"
	ReasonUnion         = "union members all start at offset 0"
)

// Result describes the proposed reordering for one struct.
// When Reason is non-empty the original order is returned untouched
// and MemorySaved is zero.
type Result struct {
	Fields      []layout.Field
	Size        int
	MemorySaved int
	Ratio       float64 // percent of the original size saved
	Reason      string
}

// Reorder proposes an optimized field order for a laid-out struct.
// Unions are never passed here: reordering cannot shrink them.
func Reorder(original layout.AggregateLayout, packed bool, alignAttr int) Result {
	if disqualified := disqualify(original, packed); disqualified != "" {
		return Result{
			Fields: original.Fields,
			Size:   original.TotalSize,
			Reason: disqualified,
		}
	}

	sorted := make([]layout.Field, len(original.Fields))
	copy(sorted, original.Fields)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Alignment != sorted[j].Alignment {
			return sorted[i].Alignment > sorted[j].Alignment
		}
		return sorted[i].Size > sorted[j].Size
	})

	optimized := layout.Struct(sorted, packed, alignAttr)
	saved := original.TotalSize - optimized.TotalSize
	if saved <= 0 {
		return Result{
			Fields: original.Fields,
			Size:   original.TotalSize,
			Reason: ReasonNoImprovement,
		}
	}

	ratio := 0.0
	if original.TotalSize > 0 {
		ratio = float64(saved) / float64(original.TotalSize) * 100
	}
	return Result{
		Fields:      optimized.Fields,
		Size:        optimized.TotalSize,
		MemorySaved: saved,
		Ratio:       ratio,
	}
}

func disqualify(original layout.AggregateLayout, packed bool) string {
	if packed {
		return ReasonPacked
	}
	for i := range original.Fields {
		f := &original.Fields[i]
		switch {
		case f.IsBitField:
			return ReasonBitfields
		case f.IsAnonymous || len(f.Inner) > 0:
			return ReasonAnonymous
		case f.IsFlexibleArray:
			return ReasonFlexibleArray
		}
	}
	return ""
}
