// Package scan provides the lexical scanner for the analyzer. It converts
// raw source text into an ordered sequence of classified tokens via a
// deterministic single pass with longest-match classification.
//
// The scanner is total: it never fails on malformed input. Unterminated
// strings and comments, and characters that match no rule, are emitted as
// tokens tagged with a LexError so callers can keep rendering a complete
// token table over mid-edit source.
package scan

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Scanner produces tokens from a source string one at a time. The zero value
// is not usable; create one with New. A Scanner is single-use: to scan the
// same text again, create a new one (scanning is pure, so results of repeat
// scans are identical).
type Scanner struct {
	lang    Language
	symbols []symbolEntry

	src  string
	pos  int
	line int
	col  int
}

// New creates a Scanner over the given source text using the lexical tables
// in lang.
func New(lang Language, source string) *Scanner {
	return &Scanner{
		lang:    lang,
		symbols: lang.symbols(),
		src:     source,
		line:    1,
		col:     1,
	}
}

// Tokenize scans all of source using the lexical tables in lang and returns
// every token, whitespace and comments included. The concatenation of the
// Text fields of the returned tokens is exactly source, byte for byte, even
// when source is not valid UTF-8; bytes that do not decode are emitted as
// Unknown tokens.
func Tokenize(lang Language, source string) []Token {
	s := New(lang, source)

	var tokens []Token
	for {
		tok, ok := s.Next()
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// Next returns the next token and true, or the zero Token and false if the
// source is exhausted.
func (s *Scanner) Next() (Token, bool) {
	if s.pos >= len(s.src) {
		return Token{}, false
	}

	startLine, startCol := s.line, s.col
	start := s.pos

	var kind Kind
	var lexErr LexError

	switch ch := s.cur(); {
	case isSpace(ch):
		s.takeWhitespace()
		kind = Whitespace
	case s.atMarker(s.lang.LineComment):
		s.takeLineComment()
		kind = Comment
	case s.atMarker(s.lang.BlockCommentStart):
		lexErr = s.takeBlockComment()
		kind = Comment
	case ch == s.lang.Quote && s.lang.Quote != 0:
		lexErr = s.takeString()
		kind = String
	case unicode.IsDigit(ch):
		kind = s.takeNumber()
	case isIdentStart(ch):
		s.takeIdentifier()
		kind = Identifier
		if s.lang.Keywords[s.src[start:s.pos]] {
			kind = Keyword
		}
	default:
		if symKind, ok := s.takeSymbol(); ok {
			kind = symKind
		} else {
			// no rule matches; emit a one-character Unknown token and keep
			// going so the rest of the input still gets scanned. A byte that
			// does not decode as UTF-8 comes through here one byte at a time.
			s.advance()
			kind = Unknown
			lexErr = UnknownChar
		}
	}

	return Token{
		Kind:   kind,
		Text:   s.src[start:s.pos],
		Line:   startLine,
		Column: startCol,
		Err:    lexErr,
	}, true
}

// cur returns the rune at the current position. A byte sequence that does
// not decode yields utf8.RuneError, which matches no lexical rule.
func (s *Scanner) cur() rune {
	r, _ := utf8.DecodeRuneInString(s.src[s.pos:])
	return r
}

// advance consumes one rune, keeping line and column positions current. A
// byte that does not decode is consumed on its own and counts as one column.
func (s *Scanner) advance() {
	r, size := utf8.DecodeRuneInString(s.src[s.pos:])
	if r == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	s.pos += size
}

// take consumes text that is already known to be the content at the current
// position, such as a matched marker.
func (s *Scanner) take(text string) {
	end := s.pos + len(text)
	for s.pos < end {
		s.advance()
	}
}

// atMarker reports whether the source at the current position begins with
// the given marker text. An empty marker never matches.
func (s *Scanner) atMarker(marker string) bool {
	return marker != "" && strings.HasPrefix(s.src[s.pos:], marker)
}

func (s *Scanner) takeWhitespace() {
	for s.pos < len(s.src) && isSpace(s.cur()) {
		s.advance()
	}
}

func (s *Scanner) takeLineComment() {
	for s.pos < len(s.src) && s.cur() != '\n' {
		s.advance()
	}
}

func (s *Scanner) takeBlockComment() LexError {
	s.take(s.lang.BlockCommentStart)

	for s.pos < len(s.src) {
		if s.atMarker(s.lang.BlockCommentEnd) {
			s.take(s.lang.BlockCommentEnd)
			return NoError
		}
		s.advance()
	}

	return UnterminatedComment
}

func (s *Scanner) takeString() LexError {
	s.advance() // opening quote

	for s.pos < len(s.src) {
		switch s.cur() {
		case '\\':
			s.advance()
			if s.pos < len(s.src) {
				s.advance()
			}
		case s.lang.Quote:
			s.advance()
			return NoError
		default:
			s.advance()
		}
	}

	return UnterminatedString
}

// takeNumber consumes a numeric literal: a run of digits with at most one
// decimal point. A second decimal point ends the literal; the stray point
// will then lex on its own (as Unknown, unless the language defines it as a
// symbol).
func (s *Scanner) takeNumber() Kind {
	sawDot := false

	for s.pos < len(s.src) {
		ch := s.cur()
		if unicode.IsDigit(ch) {
			s.advance()
			continue
		}
		if ch == '.' && !sawDot {
			next, _ := utf8.DecodeRuneInString(s.src[s.pos+1:])
			if unicode.IsDigit(next) {
				sawDot = true
				s.advance()
				continue
			}
		}
		break
	}

	if sawDot {
		return Float
	}
	return Integer
}

func (s *Scanner) takeIdentifier() {
	for s.pos < len(s.src) && isIdentPart(s.cur()) {
		s.advance()
	}
}

// takeSymbol attempts a longest match against the merged operator and
// punctuation table. Returns false without consuming anything if no entry
// matches.
func (s *Scanner) takeSymbol() (Kind, bool) {
	for _, entry := range s.symbols {
		if s.atMarker(entry.text) {
			s.take(entry.text)
			return entry.kind, true
		}
	}
	return Unknown, false
}

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\v' || ch == '\f'
}

func isIdentStart(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

func isIdentPart(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_'
}
