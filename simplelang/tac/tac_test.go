package tac

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mawais/slc/simplelang/scan"
)

func genSource(src string) []string {
	return Generate(scan.Tokenize(scan.SimpleLang(), src))
}

func Test_Generate(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect []string
	}{
		{
			name:   "empty input",
			input:  "",
			expect: nil,
		},
		{
			name:   "declarations emit nothing",
			input:  "program P begin\nint x;\nfloat y;\nend",
			expect: nil,
		},
		{
			name:  "simple assignment",
			input: "program P begin\nint x;\nx := 5;\nend",
			expect: []string{
				"x = 5",
			},
		},
		{
			name:  "binary expression uses a temporary",
			input: "program P begin\nint x;\nx := 1 + 2;\nend",
			expect: []string{
				"t1 = 1 + 2",
				"x = t1",
			},
		},
		{
			name:  "precedence lowers multiplication first",
			input: "program P begin\nint x;\nx := 1 + 2 * 3;\nend",
			expect: []string{
				"t1 = 2 * 3",
				"t2 = 1 + t1",
				"x = t2",
			},
		},
		{
			name:  "parentheses override precedence",
			input: "program P begin\nint x;\nx := (1 + 2) * 3;\nend",
			expect: []string{
				"t1 = 1 + 2",
				"t2 = t1 * 3",
				"x = t2",
			},
		},
		{
			name:  "read and write",
			input: "program P begin\nint n;\nread(n);\nwrite(n / 2);\nend",
			expect: []string{
				"read n",
				"t1 = n / 2",
				"write t1",
			},
		},
		{
			name:  "if without else",
			input: "program P begin\nint x;\nx := 1;\nif (x > 0) then\nwrite(x);\nend\nend",
			expect: []string{
				"x = 1",
				"t1 = x > 0",
				"ifFalse t1 goto L1",
				"write x",
				"L1:",
			},
		},
		{
			name:  "if with else",
			input: "program P begin\nint x;\nx := 1;\nif (x > 0) then\nwrite(1);\nelse\nwrite(0);\nend\nend",
			expect: []string{
				"x = 1",
				"t1 = x > 0",
				"ifFalse t1 goto L1",
				"write 1",
				"goto L2",
				"L1:",
				"write 0",
				"L2:",
			},
		},
		{
			name:  "while loop",
			input: "program P begin\nint i;\ni := 0;\nwhile (i < 3) do\ni := i + 1;\nend\nend",
			expect: []string{
				"i = 0",
				"L1:",
				"t1 = i < 3",
				"ifFalse t1 goto L2",
				"t2 = i + 1",
				"i = t2",
				"goto L1",
				"L2:",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual := genSource(tc.input)

			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_Generate_bestEffortOnBadInput(t *testing.T) {
	assert := assert.New(t)

	// malformed statements are skipped; well-formed ones still lower
	actual := genSource("program P begin\n??? ;\nint x;\nx := 2;\nend")

	assert.Equal([]string{"x = 2"}, actual)
}

func Test_Generate_isDeterministic(t *testing.T) {
	assert := assert.New(t)

	input := "program P begin\nint a;\na := 0;\nwhile (a < 5) do\nif (a == 2) then\nwrite(a);\nend\na := a + 1;\nend\nend"

	first := genSource(input)
	second := genSource(input)

	assert.Equal(first, second)
	assert.NotEmpty(first)
}
