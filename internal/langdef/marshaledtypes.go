package langdef

import "github.com/mawais/slc/simplelang/scan"

// topLevelLanguage is the raw shape of an SLC language file as unmarshaled
// from TOML, before validation.
type topLevelLanguage struct {
	Format string `toml:"format"`
	Type   string `toml:"type"`

	Language languageDef `toml:"language"`
}

type languageDef struct {
	Name              string   `toml:"name"`
	Keywords          []string `toml:"keywords"`
	Operators         []string `toml:"operators"`
	Punctuation       []string `toml:"punctuation"`
	LineComment       string   `toml:"line_comment"`
	BlockCommentStart string   `toml:"block_comment_start"`
	BlockCommentEnd   string   `toml:"block_comment_end"`
	Quote             string   `toml:"quote"`
}

// toLanguage converts the validated raw definition to the scanner's form.
// Callers must have run validateLanguageDef first.
func (def languageDef) toLanguage() scan.Language {
	lang := scan.Language{
		Name:              def.Name,
		Keywords:          make(map[string]bool, len(def.Keywords)),
		Operators:         make([]string, len(def.Operators)),
		Punctuation:       make([]string, len(def.Punctuation)),
		LineComment:       def.LineComment,
		BlockCommentStart: def.BlockCommentStart,
		BlockCommentEnd:   def.BlockCommentEnd,
	}

	for _, kw := range def.Keywords {
		lang.Keywords[kw] = true
	}
	copy(lang.Operators, def.Operators)
	copy(lang.Punctuation, def.Punctuation)

	if def.Quote != "" {
		lang.Quote = []rune(def.Quote)[0]
	}

	return lang
}
