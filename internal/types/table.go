// Package types holds the per-analysis type table: every struct/union
// definition and typedef alias found in the source, addressed by name.
// The table is built once per analysis call, relaxed towards a fixpoint by
// the resolution loop, and discarded afterwards — no state crosses calls.
package types

import (
	"structlens/internal/ast"
)

// EntryKind distinguishes alias entries from aggregate definitions.
type EntryKind uint8

const (
	EntryAlias EntryKind = iota
	EntryAggregate
)

// Entry is one named slot in the type table.
//
// An alias points at another table key through BaseType. An aggregate
// carries its raw declaration and, once the resolution loop succeeds,
// its computed Size and Align. Resolution is monotone: Resolved never
// goes back to false within a run.
type Entry struct {
	Name     string
	Kind     EntryKind
	BaseType string             // alias target; may end in '*'
	Decl     *ast.AggregateDecl // aggregate definition

	Resolved bool
	Size     int
	Align    int
}

// Table is an arena of type entries owned by a single analysis call.
type Table struct {
	entries map[string]*Entry
	// aggregates lists aggregate entry names in registration order,
	// for the deterministic resolution queue.
	aggregates []string
}

func NewTable() *Table {
	return &Table{
		entries: make(map[string]*Entry, 16),
	}
}

// AddAggregate registers an aggregate definition under its primary name,
// plus a "<kind> <tag>" alias for tagged definitions and a typedef-alias
// entry when one was declared. Re-registration under an existing name is
// ignored (first definition wins).
func (t *Table) AddAggregate(decl *ast.AggregateDecl) {
	if decl == nil || decl.Name == "" {
		return
	}
	if _, exists := t.entries[decl.Name]; exists {
		return
	}
	t.entries[decl.Name] = &Entry{
		Name: decl.Name,
		Kind: EntryAggregate,
		Decl: decl,
	}
	t.aggregates = append(t.aggregates, decl.Name)

	if decl.Tag != "" {
		tagged := decl.Kind.String() + " " + decl.Tag
		if _, exists := t.entries[tagged]; !exists {
			t.entries[tagged] = &Entry{Name: tagged, Kind: EntryAlias, BaseType: decl.Name}
		}
	}
	if decl.Alias != "" && decl.Alias != decl.Name {
		if _, exists := t.entries[decl.Alias]; !exists {
			t.entries[decl.Alias] = &Entry{Name: decl.Alias, Kind: EntryAlias, BaseType: decl.Name}
		}
	}
}

// AddAlias registers a typedef alias entry.
func (t *Table) AddAlias(name, base string) {
	if name == "" || name == base {
		return
	}
	if _, exists := t.entries[name]; exists {
		return
	}
	t.entries[name] = &Entry{Name: name, Kind: EntryAlias, BaseType: base}
}

// Lookup returns the entry registered under name, if any.
func (t *Table) Lookup(name string) (*Entry, bool) {
	e, ok := t.entries[name]
	return e, ok
}

// Aggregates returns aggregate entries in registration order.
func (t *Table) Aggregates() []*Entry {
	out := make([]*Entry, 0, len(t.aggregates))
	for _, name := range t.aggregates {
		out = append(out, t.entries[name])
	}
	return out
}

// MarkResolved записывает вычисленные размер и выравнивание.
// Повторный вызов для уже разрешённого входа игнорируется (монотонность).
func (t *Table) MarkResolved(name string, size, align int) {
	e, ok := t.entries[name]
	if !ok || e.Resolved {
		return
	}
	e.Resolved = true
	e.Size = size
	e.Align = align
}
