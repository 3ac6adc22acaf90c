package layout

import (
	"strings"
)

// bitUnit — открытая единица хранения для упаковки битовых полей.
type bitUnit struct {
	size   int // размер единицы в байтах
	bitOff int // следующий свободный бит
	start  int // смещение начала единицы
}

// Struct lays out fields sequentially. packed suppresses all alignment
// (per-field aligned(N) overrides still apply); alignAttr is an
// aggregate-level aligned(N) that can only raise the final alignment.
// The input slice is not modified; the returned layout owns its fields.
func Struct(fields []Field, packed bool, alignAttr int) AggregateLayout {
	out := make([]Field, len(fields))
	copy(out, fields)

	offset := 0
	padding := 0
	finalAlign := 1
	var unit *bitUnit

	flush := func() {
		if unit != nil {
			offset = unit.start + unit.size
			unit = nil
		}
	}

	for i := range out {
		f := &out[i]

		switch {
		case f.IsFlexibleArray:
			// гибкий массив: без выравнивания, не двигает offset
			flush()
			f.Offset = offset
			f.Size = 0
			f.Padding = 0

		case f.IsBitField:
			unitSize := BitfieldUnitSize(f.Type)
			if f.Bits == 0 {
				// нулевая ширина: закрыть текущую единицу, поля не создавать
				flush()
				f.Offset = offset
				f.Size = 0
				continue
			}
			if unit != nil && unit.size == unitSize && unit.bitOff+f.Bits <= unitSize*8 {
				f.Offset = unit.start
				f.BitOffset = unit.bitOff
				f.Size = 0
				f.Padding = 0
				unit.bitOff += f.Bits
			} else {
				flush()
				al := unitSize
				if packed {
					al = 1
				}
				pad := (al - offset%al) % al
				padding += pad
				offset += pad
				f.Offset = offset
				f.BitOffset = 0
				f.Size = 0
				f.Padding = pad
				unit = &bitUnit{size: unitSize, bitOff: f.Bits, start: offset}
			}
			f.Alignment = unitSize
			if !packed {
				finalAlign = maxInt(finalAlign, unitSize)
			}

		default:
			if len(f.Inner) > 0 || f.IsAnonymous {
				var innerLayout AggregateLayout
				if f.IsUnion {
					innerLayout = Union(f.Inner, packed)
				} else {
					innerLayout = Struct(f.Inner, packed, 0)
				}
				f.Inner = innerLayout.Fields
				f.Size = innerLayout.TotalSize
				f.Alignment = innerLayout.Alignment
			}

			flush()
			al := effectiveAlign(f, packed)
			pad := (al - offset%al) % al
			padding += pad
			offset += pad
			f.Offset = offset
			f.Padding = pad
			offset += f.Size
			if !packed || f.AlignOverride > 0 {
				finalAlign = maxInt(finalAlign, al)
			}
		}
	}
	flush()

	if packed && alignAttr <= 0 {
		finalAlign = maxInt(finalAlign, 1)
	}
	if alignAttr > 0 {
		finalAlign = maxInt(finalAlign, alignAttr)
	}

	trailing := roundUp(offset, finalAlign) - offset
	padding += trailing
	offset += trailing

	return AggregateLayout{
		Fields:       out,
		TotalSize:    offset,
		PaddingBytes: padding,
		Alignment:    finalAlign,
	}
}

// Union lays the fields over each other at offset 0.
func Union(fields []Field, packed bool) AggregateLayout {
	out := make([]Field, len(fields))
	copy(out, fields)

	maxSize := 0
	align := 1

	for i := range out {
		f := &out[i]
		if len(f.Inner) > 0 || f.IsAnonymous {
			var innerLayout AggregateLayout
			if f.IsUnion {
				innerLayout = Union(f.Inner, packed)
			} else {
				innerLayout = Struct(f.Inner, packed, 0)
			}
			f.Inner = innerLayout.Fields
			f.Size = innerLayout.TotalSize
			f.Alignment = innerLayout.Alignment
		}

		f.Offset = 0
		f.Padding = 0

		memberSize := f.Size
		if f.IsBitField {
			// битовое поле занимает целую единицу хранения
			memberSize = BitfieldUnitSize(f.Type)
			f.Alignment = memberSize
		}
		maxSize = maxInt(maxSize, memberSize)
		if !packed {
			align = maxInt(align, effectiveAlign(f, false))
		}
	}

	total := roundUp(maxSize, align)
	return AggregateLayout{
		Fields:       out,
		TotalSize:    total,
		PaddingBytes: total - maxSize,
		Alignment:    align,
	}
}

// effectiveAlign — выравнивание поля с учётом packed и aligned(N).
// Атрибут на поле сильнее packed: так ведёт себя наблюдаемое поведение GCC.
func effectiveAlign(f *Field, packed bool) int {
	al := f.Alignment
	if f.AlignOverride > 0 {
		al = maxInt(al, f.AlignOverride)
	}
	if packed && f.AlignOverride <= 0 {
		al = 1
	}
	if al <= 0 {
		al = 1
	}
	return al
}

// BitfieldUnitSize возвращает размер единицы хранения по категории
// подлежащего типа: char — 1, short — 2, long long — 8, иначе int (4).
func BitfieldUnitSize(typ string) int {
	t := strings.ToLower(typ)
	switch {
	case strings.Contains(t, "long long"):
		return 8
	case strings.Contains(t, "char"):
		return 1
	case strings.Contains(t, "short"):
		return 2
	default:
		return 4
	}
}
