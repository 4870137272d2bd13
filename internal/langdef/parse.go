package langdef

import (
	"fmt"
	"unicode"

	"github.com/mawais/slc/simplelang/scan"
)

func parseLanguage(tl topLevelLanguage) (scan.Language, error) {
	if err := validateLanguageDef(tl.Language); err != nil {
		return scan.Language{}, fmt.Errorf("language: %w", err)
	}

	return tl.Language.toLanguage(), nil
}

func validateLanguageDef(def languageDef) error {
	if def.Name == "" {
		return fmt.Errorf("'name' key must exist and be non-empty")
	}

	for i, kw := range def.Keywords {
		if !isIdentShaped(kw) {
			return fmt.Errorf("keywords[%d]: %q is not a valid keyword; must be letters, digits, or underscores and not start with a digit", i, kw)
		}
	}

	// operators and punctuation share a match table, so lexemes must be
	// unique across both
	seen := map[string]string{}
	for i, op := range def.Operators {
		if op == "" {
			return fmt.Errorf("operators[%d]: lexeme must be non-empty", i)
		}
		if prior, ok := seen[op]; ok {
			return fmt.Errorf("operators[%d]: %q already defined in %s", i, op, prior)
		}
		seen[op] = "operators"
	}
	for i, p := range def.Punctuation {
		if p == "" {
			return fmt.Errorf("punctuation[%d]: lexeme must be non-empty", i)
		}
		if prior, ok := seen[p]; ok {
			return fmt.Errorf("punctuation[%d]: %q already defined in %s", i, p, prior)
		}
		seen[p] = "punctuation"
	}

	if (def.BlockCommentStart == "") != (def.BlockCommentEnd == "") {
		return fmt.Errorf("'block_comment_start' and 'block_comment_end' must either both be set or both be empty")
	}

	if qr := []rune(def.Quote); len(qr) > 1 {
		return fmt.Errorf("'quote' must be a single character, got %q", def.Quote)
	}

	return nil
}

func isIdentShaped(s string) bool {
	for i, ch := range s {
		if unicode.IsLetter(ch) || ch == '_' {
			continue
		}
		if i > 0 && unicode.IsDigit(ch) {
			continue
		}
		return false
	}
	return s != ""
}
