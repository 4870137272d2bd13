// Package simplelang analyzes SimpleLang source code. It ties the scanning,
// symbol collection, syntax checking, and code lowering phases together into
// a single Analyze call; each phase is also available on its own in the
// subpackages scan, symbol, syntax, and tac.
package simplelang

import (
	"golang.org/x/text/unicode/norm"

	"github.com/mawais/slc/simplelang/scan"
	"github.com/mawais/slc/simplelang/symbol"
	"github.com/mawais/slc/simplelang/syntax"
	"github.com/mawais/slc/simplelang/tac"
)

// Sample is a small SimpleLang program exercising every statement form. It
// is what interactive frontends load when asked for example input.
const Sample = `program TestProgram
begin
    int x;
    int y;
    float result;

    read(x);
    read(y);

    result := x + y * 2;

    if (x > y) then
        write(x);
    else
        write(y);
    end

    int counter;
    counter := 0;

    while (counter < 5) do
        write(counter);
        counter := counter + 1;
    end

    write(result);
end`

// Analysis is the combined output of every phase over one source text.
type Analysis struct {
	// Source is the analyzed text after normalization. Token positions and
	// texts refer to this string.
	Source string

	// Tokens is the full token sequence, whitespace and comments included.
	Tokens []scan.Token

	// Symbols is the identifier usage table.
	Symbols *symbol.Table

	// SyntaxErrors holds every grammar and declaration problem found, in
	// source order. Empty means the program is well-formed.
	SyntaxErrors []syntax.Error

	// Decls holds every variable declaration the checker accepted.
	Decls []syntax.Decl

	// TAC is the three-address code listing, best-effort when the source
	// has errors.
	TAC []string
}

// Analyze runs every phase over SimpleLang source text. It never fails:
// lexical problems are tagged on tokens and syntax problems are collected in
// SyntaxErrors, so the result is always fully populated.
//
// The source is normalized to NFC before scanning so that visually identical
// identifiers composed differently count as one symbol.
func Analyze(source string) Analysis {
	return AnalyzeWith(scan.SimpleLang(), source)
}

// AnalyzeWith is Analyze with a custom lexical definition in place of the
// built-in SimpleLang one. The syntax and lowering phases still follow the
// SimpleLang grammar, so they are only meaningful for languages that keep
// its keywords; for purely lexical work, read Tokens and Symbols and ignore
// the rest.
func AnalyzeWith(lang scan.Language, source string) Analysis {
	source = norm.NFC.String(source)

	tokens := scan.Tokenize(lang, source)
	parsed := syntax.Parse(tokens)

	return Analysis{
		Source:       source,
		Tokens:       tokens,
		Symbols:      symbol.Build(tokens),
		SyntaxErrors: parsed.Errors,
		Decls:        parsed.Decls,
		TAC:          tac.Generate(tokens),
	}
}
