package langdef

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mawais/slc/simplelang/scan"
)

const validFile = `
format = "SLC"
type = "LANGUAGE"

[language]
name = "TinyLang"
keywords = ["let", "print"]
operators = ["<-", "+", "-"]
punctuation = [";"]
line_comment = "#"
quote = "'"
`

func Test_ParseLanguageData(t *testing.T) {
	t.Run("valid definition", func(t *testing.T) {
		assert := assert.New(t)

		lang, err := ParseLanguageData([]byte(validFile))

		assert.NoError(err)
		assert.Equal(scan.Language{
			Name:        "TinyLang",
			Keywords:    map[string]bool{"let": true, "print": true},
			Operators:   []string{"<-", "+", "-"},
			Punctuation: []string{";"},
			LineComment: "#",
			Quote:       '\'',
		}, lang)
	})

	t.Run("loaded language drives the scanner", func(t *testing.T) {
		assert := assert.New(t)

		lang, err := ParseLanguageData([]byte(validFile))
		assert.NoError(err)

		toks := scan.Significant(scan.Tokenize(lang, "let x <- 1; # done"))

		assert.Len(toks, 5)
		assert.Equal(scan.Keyword, toks[0].Kind)
		assert.Equal(scan.Operator, toks[2].Kind)
	})
}

func Test_ParseLanguageData_errors(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expectMsg string
	}{
		{
			name:      "missing format header",
			input:     "type = \"LANGUAGE\"\n[language]\nname = \"X\"",
			expectMsg: "'format' key must exist",
		},
		{
			name:      "wrong type header",
			input:     "format = \"SLC\"\ntype = \"CONFIG\"\n[language]\nname = \"X\"",
			expectMsg: "'type' must exist and be set to 'LANGUAGE'",
		},
		{
			name:      "missing name",
			input:     "format = \"SLC\"\ntype = \"LANGUAGE\"\n[language]\nkeywords = [\"if\"]",
			expectMsg: "'name' key must exist",
		},
		{
			name:      "non-identifier keyword",
			input:     "format = \"SLC\"\ntype = \"LANGUAGE\"\n[language]\nname = \"X\"\nkeywords = [\"9lives\"]",
			expectMsg: "not a valid keyword",
		},
		{
			name:      "duplicate lexeme across tables",
			input:     "format = \"SLC\"\ntype = \"LANGUAGE\"\n[language]\nname = \"X\"\noperators = [\",\"]\npunctuation = [\",\"]",
			expectMsg: "already defined in operators",
		},
		{
			name:      "unbalanced block comment markers",
			input:     "format = \"SLC\"\ntype = \"LANGUAGE\"\n[language]\nname = \"X\"\nblock_comment_start = \"/*\"",
			expectMsg: "both be set or both be empty",
		},
		{
			name:      "multi-character quote",
			input:     "format = \"SLC\"\ntype = \"LANGUAGE\"\n[language]\nname = \"X\"\nquote = \"''\"",
			expectMsg: "'quote' must be a single character",
		},
		{
			name:      "not toml at all",
			input:     "{\"name\": \"X\"}",
			expectMsg: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			_, err := ParseLanguageData([]byte(tc.input))

			assert.Error(err)
			if tc.expectMsg != "" {
				assert.Contains(err.Error(), tc.expectMsg)
			}
		})
	}
}

func Test_ScanFileInfo(t *testing.T) {
	assert := assert.New(t)

	info, err := ScanFileInfo([]byte(validFile))

	assert.NoError(err)
	assert.Equal(FileInfo{Format: "SLC", Type: "LANGUAGE"}, info)
}
