package types

import (
	"strings"
)

// Resolution classifies the outcome of a type lookup.
type Resolution uint8

const (
	// ResolvedOK — размер и выравнивание известны.
	ResolvedOK Resolution = iota
	// Pending — тип ссылается на агрегат, ещё не прошедший раскладку;
	// следующий проход цикла разрешения может его закрыть.
	Pending
	// Circular — цепочка алиасов замкнулась сама на себя.
	Circular
	// Unknown — имя не найдено ни в таблице, ни среди встроенных типов.
	Unknown
)

// ResolveType определяет размер и выравнивание типа по имени.
// Порядок источников: таблица типов (с раскруткой цепочек алиасов под
// защитой visited-set), затем карта переопределений, затем встроенные
// типы C. Unknown не фатален — вызывающий подставит значение по умолчанию.
func (t *Table) ResolveType(name string, target Target, custom map[string]int) (size, align int, res Resolution) {
	cur := NormalizeType(name)
	visited := make(map[string]struct{}, 4)

	for {
		if strings.HasSuffix(cur, "*") {
			return target.PtrSize, target.PtrAlign, ResolvedOK
		}
		if _, seen := visited[cur]; seen {
			return 0, 1, Circular
		}
		visited[cur] = struct{}{}

		entry, ok := t.entries[cur]
		if !ok {
			break
		}
		if entry.Kind == EntryAggregate {
			if entry.Resolved {
				return entry.Size, entry.Align, ResolvedOK
			}
			return 0, 1, Pending
		}
		cur = NormalizeType(entry.BaseType)
	}

	if custom != nil {
		if s, ok := custom[cur]; ok && s > 0 {
			return s, target.AlignForSize(s), ResolvedOK
		}
	}

	if s, a, ok := target.BuiltinSize(cur); ok {
		return s, a, ResolvedOK
	}
	return 0, 1, Unknown
}
