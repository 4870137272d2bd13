// Package syntax checks a token sequence against the SimpleLang grammar. It
// is a recursive-descent parser that collects every problem it finds instead
// of stopping at the first one, so a single pass reports all syntax errors
// along with undeclared-variable and redeclaration uses.
//
// The grammar:
//
//	Program  → program ID begin StmtList end
//	StmtList → Stmt StmtList | ε
//	Stmt     → Type ID ; | ID := Expr ; | if ( BoolExpr ) then StmtList [else StmtList] end
//	         | while ( BoolExpr ) do StmtList end | read ( ID ) ; | write ( Expr ) ;
//	Expr     → Term (('+'|'-') Term)*
//	Term     → Factor (('*'|'/') Factor)*
//	Factor   → ID | NUM | ( Expr )
//	BoolExpr → Expr RelOp Expr
package syntax

import (
	"fmt"

	"github.com/mawais/slc/simplelang/scan"
)

// Error is one problem found during parsing, positioned at the token where
// it was detected.
type Error struct {
	Line   int
	Column int
	Msg    string
}

func (e Error) Error() string {
	return fmt.Sprintf("syntax error at %d:%d: %s", e.Line, e.Column, e.Msg)
}

// Result is the outcome of parsing a token sequence.
type Result struct {
	// Errors holds every problem found, in source order. Empty means the
	// input parsed cleanly.
	Errors []Error

	// Decls holds every variable declaration encountered, in order, even
	// when other parts of the input had errors.
	Decls []Decl
}

// OK reports whether the parse found no errors.
func (r Result) OK() bool {
	return len(r.Errors) == 0
}

// Parse checks tokens against the SimpleLang grammar. Whitespace, comment,
// and unclassifiable tokens are skipped first, so the caller can pass the
// scanner output unfiltered. Parse never fails; problems are reported in the
// returned Result.
func Parse(tokens []scan.Token) Result {
	p := &parser{}
	for _, tok := range tokens {
		switch tok.Kind {
		case scan.Whitespace, scan.Comment, scan.Unknown:
			continue
		}
		p.tokens = append(p.tokens, tok)
	}
	p.decls = newDeclTable()

	p.program()
	if !p.done() {
		p.errorf("unexpected tokens after program end")
	}

	return Result{
		Errors: p.errors,
		Decls:  p.decls.all,
	}
}

type parser struct {
	tokens []scan.Token
	pos    int
	errors []Error
	decls  *declTable
}

func (p *parser) done() bool {
	return p.pos >= len(p.tokens)
}

// cur returns the current token, or a zero token positioned past the last
// real one when input is exhausted.
func (p *parser) cur() scan.Token {
	if p.done() {
		if len(p.tokens) == 0 {
			return scan.Token{Line: 1, Column: 1}
		}
		last := p.tokens[len(p.tokens)-1]
		return scan.Token{Line: last.Line, Column: last.Column + len([]rune(last.Text))}
	}
	return p.tokens[p.pos]
}

func (p *parser) advance() {
	if !p.done() {
		p.pos++
	}
}

func (p *parser) errorf(format string, a ...interface{}) {
	at := p.cur()
	p.errors = append(p.errors, Error{
		Line:   at.Line,
		Column: at.Column,
		Msg:    fmt.Sprintf(format, a...),
	})
}

// at reports whether the current token has the given kind and, when text is
// non-empty, that exact text.
func (p *parser) at(kind scan.Kind, text string) bool {
	if p.done() {
		return false
	}
	t := p.tokens[p.pos]
	return t.Kind == kind && (text == "" || t.Text == text)
}

func (p *parser) atKeyword(kws ...string) bool {
	for _, kw := range kws {
		if p.at(scan.Keyword, kw) {
			return true
		}
	}
	return false
}

// expect consumes the current token if it matches, and records an error
// without consuming anything if it does not. The matched token and whether
// it matched are returned.
func (p *parser) expect(kind scan.Kind, text string) (scan.Token, bool) {
	if p.at(kind, text) {
		t := p.tokens[p.pos]
		p.advance()
		return t, true
	}

	want := text
	if want == "" {
		want = kind.String()
	}
	if p.done() {
		p.errorf("expected %s, got end of input", want)
	} else {
		p.errorf("expected %s, got %q", want, p.cur().Text)
	}
	return scan.Token{}, false
}

func (p *parser) program() {
	p.expect(scan.Keyword, "program")
	p.expect(scan.Identifier, "")
	p.expect(scan.Keyword, "begin")
	p.stmtList()
	p.expect(scan.Keyword, "end")
}

func (p *parser) stmtList() {
	for !p.done() && !p.atKeyword("end", "else") {
		before := p.pos
		p.stmt()
		if p.pos == before {
			// stmt could not consume anything; skip a token so the parse
			// always terminates
			p.advance()
		}
	}
}

func (p *parser) stmt() {
	switch {
	case p.atKeyword("int", "float", "string"):
		p.declStmt()
	case p.at(scan.Identifier, ""):
		p.assignStmt()
	case p.atKeyword("if"):
		p.ifStmt()
	case p.atKeyword("while"):
		p.whileStmt()
	case p.atKeyword("read"):
		p.readStmt()
	case p.atKeyword("write"):
		p.writeStmt()
	default:
		p.errorf("unexpected statement starting with %q", p.cur().Text)
		p.advance()
	}
}

func (p *parser) declStmt() {
	typ := p.cur()
	p.advance()

	if id, ok := p.expect(scan.Identifier, ""); ok {
		if !p.decls.declare(id.Text, typ.Text, id.Line) {
			p.errorf("variable %q already declared in current scope", id.Text)
		}
	}
	p.expect(scan.Punctuation, ";")
}

func (p *parser) assignStmt() {
	if id, ok := p.expect(scan.Identifier, ""); ok {
		p.checkDeclared(id)
	}
	p.expect(scan.Operator, ":=")
	p.expr()
	p.expect(scan.Punctuation, ";")
}

func (p *parser) ifStmt() {
	p.expect(scan.Keyword, "if")
	p.expect(scan.Punctuation, "(")
	p.boolExpr()
	p.expect(scan.Punctuation, ")")
	p.expect(scan.Keyword, "then")

	p.decls.enterScope()
	p.stmtList()
	if p.atKeyword("else") {
		p.advance()
		p.stmtList()
	}
	p.decls.exitScope()

	p.expect(scan.Keyword, "end")
}

func (p *parser) whileStmt() {
	p.expect(scan.Keyword, "while")
	p.expect(scan.Punctuation, "(")
	p.boolExpr()
	p.expect(scan.Punctuation, ")")
	p.expect(scan.Keyword, "do")

	p.decls.enterScope()
	p.stmtList()
	p.decls.exitScope()

	p.expect(scan.Keyword, "end")
}

func (p *parser) readStmt() {
	p.expect(scan.Keyword, "read")
	p.expect(scan.Punctuation, "(")
	if id, ok := p.expect(scan.Identifier, ""); ok {
		p.checkDeclared(id)
	}
	p.expect(scan.Punctuation, ")")
	p.expect(scan.Punctuation, ";")
}

func (p *parser) writeStmt() {
	p.expect(scan.Keyword, "write")
	p.expect(scan.Punctuation, "(")
	p.expr()
	p.expect(scan.Punctuation, ")")
	p.expect(scan.Punctuation, ";")
}

func (p *parser) expr() {
	p.term()
	for p.at(scan.Operator, "+") || p.at(scan.Operator, "-") {
		p.advance()
		p.term()
	}
}

func (p *parser) term() {
	p.factor()
	for p.at(scan.Operator, "*") || p.at(scan.Operator, "/") {
		p.advance()
		p.factor()
	}
}

func (p *parser) factor() {
	switch {
	case p.at(scan.Identifier, ""):
		p.checkDeclared(p.cur())
		p.advance()
	case p.at(scan.Integer, "") || p.at(scan.Float, ""):
		p.advance()
	case p.at(scan.Punctuation, "("):
		p.advance()
		p.expr()
		p.expect(scan.Punctuation, ")")
	default:
		p.errorf("expected identifier, number, or '(', got %q", p.cur().Text)
	}
}

func (p *parser) boolExpr() {
	p.expr()
	if p.atRelOp() {
		p.advance()
		p.expr()
	} else {
		p.errorf("expected relational operator")
	}
}

func (p *parser) atRelOp() bool {
	for _, op := range []string{"==", "!=", "<", ">", "<=", ">="} {
		if p.at(scan.Operator, op) {
			return true
		}
	}
	return false
}

func (p *parser) checkDeclared(id scan.Token) {
	if _, ok := p.decls.lookup(id.Text); !ok {
		p.errors = append(p.errors, Error{
			Line:   id.Line,
			Column: id.Column,
			Msg:    fmt.Sprintf("undeclared variable %q", id.Text),
		})
	}
}
