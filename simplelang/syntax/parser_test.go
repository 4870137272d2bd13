package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mawais/slc/simplelang/scan"
)

func parseSource(src string) Result {
	return Parse(scan.Tokenize(scan.SimpleLang(), src))
}

func Test_Parse_cleanPrograms(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{
			name:  "minimal program",
			input: "program P begin end",
		},
		{
			name:  "declarations and assignment",
			input: "program P begin\nint x;\nx := 1 + 2 * 3;\nend",
		},
		{
			name:  "if with else",
			input: "program P begin\nint x;\nx := 1;\nif (x > 0) then\nwrite(x);\nelse\nwrite(0);\nend\nend",
		},
		{
			name:  "while loop",
			input: "program P begin\nint i;\ni := 0;\nwhile (i < 10) do\ni := i + 1;\nend\nend",
		},
		{
			name:  "read and write",
			input: "program P begin\nint n;\nread(n);\nwrite(n / 2);\nend",
		},
		{
			name:  "parenthesized expression",
			input: "program P begin\nfloat y;\ny := (1.5 + 2.5) * 2;\nend",
		},
		{
			name:  "comments are ignored",
			input: "program P begin // header\n/* body\nstarts here */\nint x;\nx := 1;\nend",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			r := parseSource(tc.input)

			assert.True(r.OK(), "expected no errors, got %v", r.Errors)
		})
	}
}

func Test_Parse_errors(t *testing.T) {
	testCases := []struct {
		name        string
		input       string
		expectMsgs  []string
		expectCount int
	}{
		{
			name:        "missing program keyword",
			input:       "begin end",
			expectMsgs:  []string{`expected program, got "begin"`},
			expectCount: 2,
		},
		{
			name:        "undeclared variable in assignment",
			input:       "program P begin\nx := 1;\nend",
			expectMsgs:  []string{`undeclared variable "x"`},
			expectCount: 1,
		},
		{
			name:        "undeclared variable in expression",
			input:       "program P begin\nint x;\nx := y + 1;\nend",
			expectMsgs:  []string{`undeclared variable "y"`},
			expectCount: 1,
		},
		{
			name:        "redeclaration in same scope",
			input:       "program P begin\nint x;\nint x;\nend",
			expectMsgs:  []string{`variable "x" already declared in current scope`},
			expectCount: 1,
		},
		{
			name:        "missing semicolon",
			input:       "program P begin\nint x\nx := 1;\nend",
			expectMsgs:  []string{`expected ;`},
			expectCount: 1,
		},
		{
			name:        "missing relational operator",
			input:       "program P begin\nint x;\nx := 1;\nif (x) then\nwrite(x);\nend\nend",
			expectMsgs:  []string{"expected relational operator"},
			expectCount: 1,
		},
		{
			name:        "trailing tokens after program end",
			input:       "program P begin end extra",
			expectMsgs:  []string{"unexpected tokens after program end"},
			expectCount: 1,
		},
		{
			name:        "empty input",
			input:       "",
			expectCount: 4,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			r := parseSource(tc.input)

			assert.False(r.OK())
			assert.Len(r.Errors, tc.expectCount)
			for i, want := range tc.expectMsgs {
				if i < len(r.Errors) {
					assert.Contains(r.Errors[i].Msg, want)
				}
			}
		})
	}
}

func Test_Parse_recoversAndReportsAll(t *testing.T) {
	assert := assert.New(t)

	// two independent problems; both must be reported in one pass
	r := parseSource("program P begin\nx := 1;\ny := 2;\nend")

	assert.Len(r.Errors, 2)
	assert.Contains(r.Errors[0].Msg, `undeclared variable "x"`)
	assert.Contains(r.Errors[1].Msg, `undeclared variable "y"`)
	assert.Equal(2, r.Errors[0].Line)
	assert.Equal(3, r.Errors[1].Line)
}

func Test_Parse_scoping(t *testing.T) {
	t.Run("shadowing in nested scope is allowed", func(t *testing.T) {
		assert := assert.New(t)

		r := parseSource("program P begin\nint x;\nx := 1;\nif (x > 0) then\nint x;\nx := 2;\nend\nend")

		assert.True(r.OK(), "got %v", r.Errors)
		assert.Equal([]Decl{
			{Name: "x", Type: "int", Scope: 0, Line: 2},
			{Name: "x", Type: "int", Scope: 1, Line: 5},
		}, r.Decls)
	})

	t.Run("inner declaration not visible after scope exits", func(t *testing.T) {
		assert := assert.New(t)

		r := parseSource("program P begin\nint x;\nx := 1;\nwhile (x < 3) do\nint y;\ny := 0;\nend\nwrite(y);\nend")

		assert.Len(r.Errors, 1)
		assert.Contains(r.Errors[0].Msg, `undeclared variable "y"`)
	})

	t.Run("outer declaration visible inside nested scope", func(t *testing.T) {
		assert := assert.New(t)

		r := parseSource("program P begin\nint x;\nx := 0;\nwhile (x < 3) do\nx := x + 1;\nend\nend")

		assert.True(r.OK(), "got %v", r.Errors)
	})
}

func Test_Parse_neverHangs(t *testing.T) {
	// pathological inputs must terminate with errors rather than loop
	inputs := []string{
		"program",
		"program P begin ; ; ; end",
		") ( ) (",
		"program P begin if if if end",
		"\"unterminated",
		"@#$%",
	}

	for _, input := range inputs {
		r := parseSource(input)
		assert.False(t, r.OK(), "input %q should report errors", input)
	}
}
