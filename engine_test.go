package slc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestEngine(t *testing.T) *Engine {
	eng, err := New(strings.NewReader(""), &strings.Builder{}, "", true)
	if err != nil {
		t.Fatalf("could not create engine: %v", err)
	}
	return eng
}

func Test_Engine_Execute_sourceLines(t *testing.T) {
	assert := assert.New(t)

	eng := newTestEngine(t)

	msg, quit := eng.Execute("int x;")
	assert.False(quit)
	assert.Contains(msg, "1 lines")
	assert.Contains(msg, "1 symbols")

	msg, quit = eng.Execute("x := x + 1;")
	assert.False(quit)
	assert.Contains(msg, "2 lines")

	assert.Equal("int x;\nx := x + 1;", eng.Source())
}

func Test_Engine_Execute_commands(t *testing.T) {
	testCases := []struct {
		name      string
		setup     []string
		command   string
		expect    []string
		notExpect []string
	}{
		{
			name:    "TOKENS on empty buffer",
			command: "TOKENS",
			expect:  []string{"source buffer is empty"},
		},
		{
			name:    "TOKENS shows kinds and positions",
			setup:   []string{"int x;"},
			command: "TOKENS",
			expect:  []string{"Keyword", "Identifier", "Punctuation", "int", "x", ";"},
		},
		{
			name:    "SYMBOLS shows counts",
			setup:   []string{"x := x + y;"},
			command: "SYMBOLS",
			expect:  []string{"Name", "Count", "x", "y"},
		},
		{
			name:      "PARSE reports problems",
			setup:     []string{"program P begin", "x := 1;", "end"},
			command:   "PARSE",
			expect:    []string{"undeclared variable"},
			notExpect: []string{"no syntax errors"},
		},
		{
			name:    "PARSE on clean program",
			setup:   []string{"program P begin", "int x;", "x := 1;", "end"},
			command: "PARSE",
			expect:  []string{"no syntax errors", "Name", "Type", "Scope"},
		},
		{
			name:    "TAC lowers the buffer",
			setup:   []string{"program P begin", "int x;", "x := 1 + 2;", "end"},
			command: "TAC",
			expect:  []string{"t1 = 1 + 2", "x = t1"},
		},
		{
			name:    "LIST numbers lines",
			setup:   []string{"int x;", "x := 1;"},
			command: "LIST",
			expect:  []string{"1 | int x;", "2 | x := 1;"},
		},
		{
			name:    "lowercase words are source, not commands",
			setup:   []string{"tokens"},
			command: "LIST",
			expect:  []string{"1 | tokens"},
		},
		{
			name:    "HELP lists commands",
			command: "HELP",
			expect:  []string{"TOKENS", "SYMBOLS", "QUIT"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			eng := newTestEngine(t)
			for _, line := range tc.setup {
				eng.Execute(line)
			}

			msg, quit := eng.Execute(tc.command)

			assert.False(quit)
			for _, want := range tc.expect {
				assert.Contains(msg, want)
			}
			for _, dontWant := range tc.notExpect {
				assert.NotContains(msg, dontWant)
			}
		})
	}
}

func Test_Engine_Execute_bufferManagement(t *testing.T) {
	assert := assert.New(t)

	eng := newTestEngine(t)

	_, quit := eng.Execute("SAMPLE")
	assert.False(quit)
	assert.NotEmpty(eng.Source())

	msg, _ := eng.Execute("CLEAR")
	assert.Contains(msg, "cleared")
	assert.Empty(eng.Source())
}

func Test_Engine_Execute_quit(t *testing.T) {
	assert := assert.New(t)

	eng := newTestEngine(t)

	_, quit := eng.Execute("QUIT")
	assert.True(quit)
}

func Test_Engine_RunUntilQuit(t *testing.T) {
	assert := assert.New(t)

	in := strings.NewReader("int x;\nTOKENS\nQUIT\n")
	var out strings.Builder

	eng, err := New(in, &out, "", true)
	assert.NoError(err)

	err = eng.RunUntilQuit()
	assert.NoError(err)

	assert.Contains(out.String(), "Keyword")
	assert.Contains(out.String(), "Goodbye")
}
