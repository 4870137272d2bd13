package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Tokenize_significant(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect []Token
	}{
		{
			name:   "empty input",
			input:  "",
			expect: []Token{},
		},
		{
			name:  "declaration statement",
			input: "int x = 5;",
			expect: []Token{
				{Kind: Keyword, Text: "int", Line: 1, Column: 1},
				{Kind: Identifier, Text: "x", Line: 1, Column: 5},
				{Kind: Operator, Text: "=", Line: 1, Column: 7},
				{Kind: Integer, Text: "5", Line: 1, Column: 9},
				{Kind: Punctuation, Text: ";", Line: 1, Column: 10},
			},
		},
		{
			name:  "assignment with multi-char operator",
			input: "x := x + 1",
			expect: []Token{
				{Kind: Identifier, Text: "x", Line: 1, Column: 1},
				{Kind: Operator, Text: ":=", Line: 1, Column: 3},
				{Kind: Identifier, Text: "x", Line: 1, Column: 6},
				{Kind: Operator, Text: "+", Line: 1, Column: 8},
				{Kind: Integer, Text: "1", Line: 1, Column: 10},
			},
		},
		{
			name:  "longest match on relational operators",
			input: "a<=b>=c==d!=e",
			expect: []Token{
				{Kind: Identifier, Text: "a", Line: 1, Column: 1},
				{Kind: Operator, Text: "<=", Line: 1, Column: 2},
				{Kind: Identifier, Text: "b", Line: 1, Column: 4},
				{Kind: Operator, Text: ">=", Line: 1, Column: 5},
				{Kind: Identifier, Text: "c", Line: 1, Column: 7},
				{Kind: Operator, Text: "==", Line: 1, Column: 8},
				{Kind: Identifier, Text: "d", Line: 1, Column: 10},
				{Kind: Operator, Text: "!=", Line: 1, Column: 11},
				{Kind: Identifier, Text: "e", Line: 1, Column: 13},
			},
		},
		{
			name:  "float literal",
			input: "pi := 3.14",
			expect: []Token{
				{Kind: Identifier, Text: "pi", Line: 1, Column: 1},
				{Kind: Operator, Text: ":=", Line: 1, Column: 4},
				{Kind: Float, Text: "3.14", Line: 1, Column: 7},
			},
		},
		{
			name:  "second decimal point ends the literal",
			input: "1.2.3",
			expect: []Token{
				{Kind: Float, Text: "1.2", Line: 1, Column: 1},
				{Kind: Unknown, Text: ".", Line: 1, Column: 4, Err: UnknownChar},
				{Kind: Integer, Text: "3", Line: 1, Column: 5},
			},
		},
		{
			name:  "keyword-prefixed identifier stays an identifier",
			input: "integer ifx",
			expect: []Token{
				{Kind: Identifier, Text: "integer", Line: 1, Column: 1},
				{Kind: Identifier, Text: "ifx", Line: 1, Column: 9},
			},
		},
		{
			name:  "string literal with escape",
			input: `write("say \"hi\"");`,
			expect: []Token{
				{Kind: Keyword, Text: "write", Line: 1, Column: 1},
				{Kind: Punctuation, Text: "(", Line: 1, Column: 6},
				{Kind: String, Text: `"say \"hi\""`, Line: 1, Column: 7},
				{Kind: Punctuation, Text: ")", Line: 1, Column: 19},
				{Kind: Punctuation, Text: ";", Line: 1, Column: 20},
			},
		},
		{
			name:  "unterminated string runs to end of input",
			input: `"abc`,
			expect: []Token{
				{Kind: String, Text: `"abc`, Line: 1, Column: 1, Err: UnterminatedString},
			},
		},
		{
			name:  "unknown character recovery",
			input: "x @ y",
			expect: []Token{
				{Kind: Identifier, Text: "x", Line: 1, Column: 1},
				{Kind: Unknown, Text: "@", Line: 1, Column: 3, Err: UnknownChar},
				{Kind: Identifier, Text: "y", Line: 1, Column: 5},
			},
		},
		{
			name:  "bytes that are not valid UTF-8 lex one at a time",
			input: "x := \x80\xfe y",
			expect: []Token{
				{Kind: Identifier, Text: "x", Line: 1, Column: 1},
				{Kind: Operator, Text: ":=", Line: 1, Column: 3},
				{Kind: Unknown, Text: "\x80", Line: 1, Column: 6, Err: UnknownChar},
				{Kind: Unknown, Text: "\xfe", Line: 1, Column: 7, Err: UnknownChar},
				{Kind: Identifier, Text: "y", Line: 1, Column: 9},
			},
		},
		{
			name:  "truncated multibyte sequence does not swallow the next byte",
			input: "int a\xc3;",
			expect: []Token{
				{Kind: Keyword, Text: "int", Line: 1, Column: 1},
				{Kind: Identifier, Text: "a", Line: 1, Column: 5},
				{Kind: Unknown, Text: "\xc3", Line: 1, Column: 6, Err: UnknownChar},
				{Kind: Punctuation, Text: ";", Line: 1, Column: 7},
			},
		},
		{
			name:  "line positions across newlines",
			input: "int x;\nx := 2;",
			expect: []Token{
				{Kind: Keyword, Text: "int", Line: 1, Column: 1},
				{Kind: Identifier, Text: "x", Line: 1, Column: 5},
				{Kind: Punctuation, Text: ";", Line: 1, Column: 6},
				{Kind: Identifier, Text: "x", Line: 2, Column: 1},
				{Kind: Operator, Text: ":=", Line: 2, Column: 3},
				{Kind: Integer, Text: "2", Line: 2, Column: 6},
				{Kind: Punctuation, Text: ";", Line: 2, Column: 8},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual := Significant(Tokenize(SimpleLang(), tc.input))

			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_Tokenize_comments(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expect    []Token
		expectErr LexError
	}{
		{
			name:  "line comment runs to end of line",
			input: "x // note\ny",
			expect: []Token{
				{Kind: Identifier, Text: "x", Line: 1, Column: 1},
				{Kind: Whitespace, Text: " ", Line: 1, Column: 2},
				{Kind: Comment, Text: "// note", Line: 1, Column: 3},
				{Kind: Whitespace, Text: "\n", Line: 1, Column: 10},
				{Kind: Identifier, Text: "y", Line: 2, Column: 1},
			},
		},
		{
			name:  "block comment",
			input: "a /* b\nc */ d",
			expect: []Token{
				{Kind: Identifier, Text: "a", Line: 1, Column: 1},
				{Kind: Whitespace, Text: " ", Line: 1, Column: 2},
				{Kind: Comment, Text: "/* b\nc */", Line: 1, Column: 3},
				{Kind: Whitespace, Text: " ", Line: 2, Column: 5},
				{Kind: Identifier, Text: "d", Line: 2, Column: 6},
			},
		},
		{
			name:  "unterminated block comment",
			input: "a /* never closed",
			expect: []Token{
				{Kind: Identifier, Text: "a", Line: 1, Column: 1},
				{Kind: Whitespace, Text: " ", Line: 1, Column: 2},
				{Kind: Comment, Text: "/* never closed", Line: 1, Column: 3, Err: UnterminatedComment},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual := Tokenize(SimpleLang(), tc.input)

			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_Tokenize_whitespaceKinds(t *testing.T) {
	assert := assert.New(t)

	// every ASCII whitespace character coalesces into one Whitespace token
	actual := Tokenize(SimpleLang(), "a \t\v\f\r\nb")

	assert.Equal([]Token{
		{Kind: Identifier, Text: "a", Line: 1, Column: 1},
		{Kind: Whitespace, Text: " \t\v\f\r\n", Line: 1, Column: 2},
		{Kind: Identifier, Text: "b", Line: 2, Column: 1},
	}, actual)
}

func Test_Tokenize_coversInputExactly(t *testing.T) {
	inputs := []string{
		"",
		"int x = 5;",
		"program P begin\n\tread(x);\nend",
		"??? \"unterminated\n/* also unterminated",
		"x:=1;//trailing comment",
		"\n\n\n",
		"déjà := vu", // non-ASCII identifiers count columns in runes
		"\xff",
		"x := \x80\xfe y",
		"int a\xc3;",
		"\"literal with bad byte \x80",
		"// comment with bad byte \xfe\nx",
		"/* bad \x80 byte */",
	}

	for _, input := range inputs {
		assert := assert.New(t)

		tokens := Tokenize(SimpleLang(), input)

		var rebuilt string
		for _, tok := range tokens {
			rebuilt += tok.Text
		}
		assert.Equal(input, rebuilt, "token texts must concatenate back to the input")
	}
}

func Test_Tokenize_orderingAndIdempotence(t *testing.T) {
	assert := assert.New(t)

	input := "program P begin\nint x;\nx := x + 1; // bump\nwrite(x);\nend"

	first := Tokenize(SimpleLang(), input)
	second := Tokenize(SimpleLang(), input)

	assert.Equal(first, second, "scanning must be idempotent")

	prevLine, prevCol := 0, 0
	for _, tok := range first {
		if tok.Line == prevLine {
			assert.Greater(tok.Column, prevCol, "columns must increase within a line")
		} else {
			assert.Greater(tok.Line, prevLine, "lines must not decrease")
		}
		prevLine, prevCol = tok.Line, tok.Column
	}
}
