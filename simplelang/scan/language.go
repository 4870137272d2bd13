package scan

import "sort"

// Language holds the lexical tables the scanner classifies against. The
// zero-value is not useful; either call SimpleLang for the built-in language
// or build one from a language definition file (see internal/langdef).
type Language struct {
	// Name is the human-readable name of the language.
	Name string

	// Keywords is the reserved word list. An identifier-shaped lexeme that is
	// present here lexes as Keyword instead of Identifier.
	Keywords map[string]bool

	// Operators are the operator lexemes, multi-character ones included.
	// Longest match against this table wins over any shorter symbol.
	Operators []string

	// Punctuation are the separator lexemes.
	Punctuation []string

	// LineComment starts a comment that runs to end of line, e.g. "//".
	// Empty disables line comments.
	LineComment string

	// BlockCommentStart and BlockCommentEnd delimit block comments. Both
	// empty disables block comments.
	BlockCommentStart string
	BlockCommentEnd   string

	// Quote is the string literal delimiter.
	Quote rune
}

// SimpleLang returns the lexical definition of SimpleLang, the small
// imperative teaching language the analyzer ships with.
func SimpleLang() Language {
	return Language{
		Name: "SimpleLang",
		Keywords: map[string]bool{
			"program": true,
			"begin":   true,
			"end":     true,
			"int":     true,
			"float":   true,
			"string":  true,
			"if":      true,
			"then":    true,
			"else":    true,
			"while":   true,
			"do":      true,
			"read":    true,
			"write":   true,
			"return":  true,
		},
		Operators: []string{
			":=", "==", "!=", "<=", ">=",
			"+", "-", "*", "/", "=", "<", ">",
		},
		Punctuation: []string{"(", ")", ";", ","},
		LineComment: "//",

		BlockCommentStart: "/*",
		BlockCommentEnd:   "*/",

		Quote: '"',
	}
}

// symbols returns every operator and punctuation lexeme merged into a single
// table sorted longest-first, so that a linear probe implements longest
// match. Operator entries sort before punctuation entries of equal length,
// which gives operator-table membership priority on length ties.
func (lang Language) symbols() []symbolEntry {
	entries := make([]symbolEntry, 0, len(lang.Operators)+len(lang.Punctuation))
	for _, op := range lang.Operators {
		entries = append(entries, symbolEntry{text: op, kind: Operator})
	}
	for _, p := range lang.Punctuation {
		entries = append(entries, symbolEntry{text: p, kind: Punctuation})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if len(entries[i].text) != len(entries[j].text) {
			return len(entries[i].text) > len(entries[j].text)
		}
		return entries[i].kind == Operator && entries[j].kind != Operator
	})

	return entries
}

type symbolEntry struct {
	text string
	kind Kind
}
