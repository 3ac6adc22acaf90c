package analyzer

import (
	"fmt"

	"structlens/internal/ast"
	"structlens/internal/diag"
	"structlens/internal/layout"
	"structlens/internal/source"
	"structlens/internal/types"
)

// resolver превращает сырые декларации в разрешённые списки полей и
// раскладки, опираясь на таблицу типов.
type resolver struct {
	fs       *source.FileSet
	table    *types.Table
	target   types.Target
	custom   map[string]int
	reporter diag.Reporter
	layouts  map[string]layout.AggregateLayout
}

// register кладёт агрегат в таблицу вместе со всеми именованными
// inline-вложенными определениями (они разрешаются самостоятельно).
func (r *resolver) register(decl *ast.AggregateDecl) {
	r.table.AddAggregate(decl)
	for i := range decl.Fields {
		fd := &decl.Fields[i]
		if fd.IsFlexibleArray && i != len(decl.Fields)-1 {
			r.warn(diag.LayFlexibleNotLast, fd.Span,
				fmt.Sprintf("flexible array member '%s' is not the last field of %s", fd.Name, decl.Name))
		}
		if inner := fd.Inner; inner != nil && inner.Tag != "" {
			r.register(inner)
		}
	}
}

// tryResolve пытается разрешить все поля агрегата и выполнить раскладку.
// final == true — последний проход: всё неразрешённое принудительно
// получает размер 0 с предупреждением, чтобы гарантировать завершение.
func (r *resolver) tryResolve(e *types.Entry, final bool) (layout.AggregateLayout, bool) {
	fields, ok := r.buildFields(e.Decl, final)
	if !ok {
		return layout.AggregateLayout{}, false
	}

	var lay layout.AggregateLayout
	if e.Decl.Kind == ast.KindUnion {
		lay = layout.Union(fields, e.Decl.IsPacked)
		if e.Decl.AlignAttr > 0 && lay.Alignment < e.Decl.AlignAttr {
			old := lay.TotalSize
			lay.Alignment = e.Decl.AlignAttr
			lay.TotalSize = roundUp(old, e.Decl.AlignAttr)
			lay.PaddingBytes += lay.TotalSize - old
		}
	} else {
		lay = layout.Struct(fields, e.Decl.IsPacked, e.Decl.AlignAttr)
	}
	return lay, true
}

// buildFields строит дескрипторы полей с разрешёнными размерами.
// ok == false — есть поле, тип которого ещё не разрешён (не на final).
func (r *resolver) buildFields(decl *ast.AggregateDecl, final bool) ([]layout.Field, bool) {
	out := make([]layout.Field, 0, len(decl.Fields))
	for i := range decl.Fields {
		fd := &decl.Fields[i]
		f := layout.Field{
			Name:          fd.Name,
			Type:          fd.Type,
			AlignOverride: fd.AlignAttr,
		}

		switch {
		case fd.Inner != nil && fd.Inner.Tag == "":
			// безымянный вложенный агрегат: размер считает движок раскладки
			f.IsAnonymous = true
			f.IsUnion = fd.Inner.Kind == ast.KindUnion
			innerFields, ok := r.buildFields(fd.Inner, final)
			if !ok {
				return nil, false
			}
			f.Inner = innerFields

		case fd.IsFunctionPointer:
			f.IsFunctionPointer = true
			f.Size = r.target.PtrSize
			f.Alignment = r.target.PtrAlign

		case fd.IsFlexibleArray:
			// нулевой размер, без выравнивания; хвостовую позицию
			// проверяет register
			f.IsFlexibleArray = true

		case fd.IsBitField:
			f.IsBitField = true
			f.Bits = fd.Bits
			// выравнивание — как у подлежащего типа; размер остаётся 0,
			// единицы хранения учитывает движок раскладки
			if _, align, res := r.table.ResolveType(fd.Type, r.target, r.custom); res == types.ResolvedOK {
				f.Alignment = align
			} else {
				f.Alignment = r.target.AlignForSize(layout.BitfieldUnitSize(fd.Type))
			}

		default:
			size, align, ok := r.resolveFieldType(fd, final)
			if !ok {
				return nil, false
			}
			f.Size = size
			f.Alignment = align
			if len(fd.ArrayDims) > 0 {
				f.ArraySize = fd.ArrayCount()
				// размер структур уже кратен их выравниванию,
				// поэтому stride == size
				f.Size = size * f.ArraySize
			}
		}
		out = append(out, f)
	}
	return out, true
}

// resolveFieldType разрешает тип обычного поля.
func (r *resolver) resolveFieldType(fd *ast.FieldDecl, final bool) (size, align int, ok bool) {
	size, align, res := r.table.ResolveType(fd.Type, r.target, r.custom)
	switch res {
	case types.ResolvedOK:
		return size, align, true

	case types.Pending, types.Circular:
		if !final {
			return 0, 1, false
		}
		code := diag.LayUnresolvedField
		msg := fmt.Sprintf("type '%s' of field '%s' is unresolved, forcing size 0", fd.Type, fd.Name)
		if res == types.Circular {
			code = diag.LayCircularType
			msg = fmt.Sprintf("circular reference through type '%s' of field '%s', forcing size 0", fd.Type, fd.Name)
		}
		r.warn(code, fd.Span, msg)
		return 0, 1, true

	default: // types.Unknown
		r.warn(diag.LayUnknownType, fd.Span,
			fmt.Sprintf("unknown type '%s', assuming 4 bytes", fd.Type))
		return 4, r.target.AlignForSize(4), true
	}
}

func (r *resolver) warn(code diag.Code, sp source.Span, msg string) {
	if r.reporter != nil {
		r.reporter.Report(code, diag.SevWarning, sp, msg, nil)
	}
}

func roundUp(n, align int) int {
	if align <= 1 {
		return n
	}
	rem := n % align
	if rem == 0 {
		return n
	}
	return n + (align - rem)
}
