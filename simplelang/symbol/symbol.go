// Package symbol builds per-identifier usage statistics from a token
// sequence produced by the scanner.
package symbol

import (
	"fmt"

	"github.com/mawais/slc/simplelang/scan"
)

// Entry holds the usage statistics of one identifier.
//
// Count reflects every occurrence of the identifier, including repeats on
// the same line. Lines holds the distinct line numbers the identifier
// appears on, in ascending order.
type Entry struct {
	Name  string
	Count int
	Lines []int
}

func (e Entry) String() string {
	return fmt.Sprintf("%s x%d %v", e.Name, e.Count, e.Lines)
}

// Table maps identifier names to their usage statistics. Iteration via Names
// or Entries is in first-seen order, so repeated builds over the same token
// sequence display identically. The zero value is an empty table ready for
// display; use Build to populate one.
type Table struct {
	entries map[string]*Entry
	order   []string
}

// Build derives a symbol table from the given token sequence. Only tokens of
// kind Identifier contribute; keywords are never entered. Build is total
// over any token sequence, including an empty or nil one.
func Build(tokens []scan.Token) *Table {
	t := &Table{
		entries: make(map[string]*Entry),
	}

	for _, tok := range tokens {
		if tok.Kind != scan.Identifier {
			continue
		}

		e, ok := t.entries[tok.Text]
		if !ok {
			e = &Entry{Name: tok.Text}
			t.entries[tok.Text] = e
			t.order = append(t.order, tok.Text)
		}

		e.Count++

		// tokens arrive in non-decreasing line order, so checking the last
		// recorded line is enough to keep Lines distinct and ascending
		if len(e.Lines) == 0 || e.Lines[len(e.Lines)-1] != tok.Line {
			e.Lines = append(e.Lines, tok.Line)
		}
	}

	return t
}

// Get returns the entry for the named identifier, if present.
func (t *Table) Get(name string) (Entry, bool) {
	e, ok := t.entries[name]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Names returns the identifier names in the table in first-seen order.
func (t *Table) Names() []string {
	names := make([]string, len(t.order))
	copy(names, t.order)
	return names
}

// Entries returns all entries in first-seen order.
func (t *Table) Entries() []Entry {
	all := make([]Entry, len(t.order))
	for i, name := range t.order {
		all[i] = *t.entries[name]
	}
	return all
}

// Len returns the number of distinct identifiers in the table.
func (t *Table) Len() int {
	return len(t.order)
}
