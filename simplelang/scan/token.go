package scan

import "fmt"

// Kind is the lexical category assigned to a Token by the scanner.
type Kind int

const (
	Unknown Kind = iota
	Keyword
	Identifier
	Integer
	Float
	String
	Operator
	Punctuation
	Comment
	Whitespace
)

func (k Kind) String() string {
	switch k {
	case Unknown:
		return "Unknown"
	case Keyword:
		return "Keyword"
	case Identifier:
		return "Identifier"
	case Integer:
		return "Integer"
	case Float:
		return "Float"
	case String:
		return "String"
	case Operator:
		return "Operator"
	case Punctuation:
		return "Punctuation"
	case Comment:
		return "Comment"
	case Whitespace:
		return "Whitespace"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// LexError tags a token produced from a malformed region of source. It is not
// a Go error; scanning never fails, it only marks the tokens it had trouble
// with so a caller can still render a complete best-effort token table.
type LexError int

const (
	NoError LexError = iota
	UnterminatedString
	UnterminatedComment
	UnknownChar
)

func (le LexError) String() string {
	switch le {
	case NoError:
		return "no error"
	case UnterminatedString:
		return "unterminated string"
	case UnterminatedComment:
		return "unterminated comment"
	case UnknownChar:
		return "unknown character"
	default:
		return fmt.Sprintf("LexError(%d)", int(le))
	}
}

// Token is a classified, positioned substring of source code. Text is the
// exact substring matched, so concatenating the Text of every token produced
// from a source string (whitespace and comment tokens included) gives back
// that string unchanged.
type Token struct {
	// Kind is the lexical category of the token.
	Kind Kind

	// Text is the exact substring of the source that the token covers.
	Text string

	// Line is the 1-based line the token starts on.
	Line int

	// Column is the 1-based column (counted in runes) the token starts at.
	Column int

	// Err tags the token with a recoverable lexical error condition, or
	// NoError for tokens from well-formed regions.
	Err LexError
}

func (t Token) String() string {
	if t.Err != NoError {
		return fmt.Sprintf("%s(%q)@%d:%d<%s>", t.Kind, t.Text, t.Line, t.Column, t.Err)
	}
	return fmt.Sprintf("%s(%q)@%d:%d", t.Kind, t.Text, t.Line, t.Column)
}

// Significant returns only the tokens that carry meaning for later phases;
// whitespace and comments are dropped. The returned slice is freshly
// allocated and ordering is preserved.
func Significant(tokens []Token) []Token {
	sig := make([]Token, 0, len(tokens))
	for _, t := range tokens {
		if t.Kind == Whitespace || t.Kind == Comment {
			continue
		}
		sig = append(sig, t)
	}
	return sig
}
