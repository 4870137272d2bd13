// Package tac lowers a SimpleLang token sequence into three-address code.
// It walks the same grammar as package syntax but emits instructions instead
// of diagnostics, on a best-effort basis: malformed regions produce no
// instructions rather than stopping generation.
//
// Temporaries are named t1, t2, ... and labels L1, L2, ... in order of
// allocation, so generation over the same input always produces the same
// listing.
package tac

import (
	"fmt"

	"github.com/mawais/slc/simplelang/scan"
)

// Generate lowers tokens to a three-address code listing, one instruction
// per element. Whitespace, comment, and unclassifiable tokens are skipped
// first, so the caller can pass the scanner output unfiltered.
func Generate(tokens []scan.Token) []string {
	g := &generator{}
	for _, tok := range tokens {
		switch tok.Kind {
		case scan.Whitespace, scan.Comment, scan.Unknown:
			continue
		}
		g.tokens = append(g.tokens, tok)
	}

	g.program()
	return g.code
}

type generator struct {
	tokens []scan.Token
	pos    int

	code       []string
	tempCount  int
	labelCount int
}

func (g *generator) newTemp() string {
	g.tempCount++
	return fmt.Sprintf("t%d", g.tempCount)
}

func (g *generator) newLabel() string {
	g.labelCount++
	return fmt.Sprintf("L%d", g.labelCount)
}

func (g *generator) emit(format string, a ...interface{}) {
	g.code = append(g.code, fmt.Sprintf(format, a...))
}

func (g *generator) done() bool {
	return g.pos >= len(g.tokens)
}

func (g *generator) at(kind scan.Kind, text string) bool {
	if g.done() {
		return false
	}
	t := g.tokens[g.pos]
	return t.Kind == kind && (text == "" || t.Text == text)
}

func (g *generator) atKeyword(kws ...string) bool {
	for _, kw := range kws {
		if g.at(scan.Keyword, kw) {
			return true
		}
	}
	return false
}

// match consumes the current token if it has the given kind and text,
// returning it and whether it matched. Unlike the checker in package syntax,
// a mismatch is silent.
func (g *generator) match(kind scan.Kind, text string) (scan.Token, bool) {
	if g.at(kind, text) {
		t := g.tokens[g.pos]
		g.pos++
		return t, true
	}
	return scan.Token{}, false
}

func (g *generator) advance() {
	if !g.done() {
		g.pos++
	}
}

func (g *generator) program() {
	g.match(scan.Keyword, "program")
	g.match(scan.Identifier, "")
	g.match(scan.Keyword, "begin")
	g.stmtList()
	g.match(scan.Keyword, "end")
}

func (g *generator) stmtList() {
	for !g.done() && !g.atKeyword("end", "else") {
		before := g.pos
		g.stmt()
		if g.pos == before {
			g.advance()
		}
	}
}

func (g *generator) stmt() {
	switch {
	case g.atKeyword("int", "float", "string"):
		// declarations produce no code
		g.advance()
		g.match(scan.Identifier, "")
		g.match(scan.Punctuation, ";")
	case g.at(scan.Identifier, ""):
		id := g.tokens[g.pos]
		g.advance()
		g.match(scan.Operator, ":=")
		result := g.expr()
		g.emit("%s = %s", id.Text, result)
		g.match(scan.Punctuation, ";")
	case g.atKeyword("if"):
		g.ifStmt()
	case g.atKeyword("while"):
		g.whileStmt()
	case g.atKeyword("read"):
		g.advance()
		g.match(scan.Punctuation, "(")
		if id, ok := g.match(scan.Identifier, ""); ok {
			g.emit("read %s", id.Text)
		}
		g.match(scan.Punctuation, ")")
		g.match(scan.Punctuation, ";")
	case g.atKeyword("write"):
		g.advance()
		g.match(scan.Punctuation, "(")
		result := g.expr()
		g.emit("write %s", result)
		g.match(scan.Punctuation, ")")
		g.match(scan.Punctuation, ";")
	default:
		g.advance()
	}
}

func (g *generator) ifStmt() {
	g.match(scan.Keyword, "if")
	g.match(scan.Punctuation, "(")
	cond := g.boolExpr()
	g.match(scan.Punctuation, ")")
	g.match(scan.Keyword, "then")

	labelFalse := g.newLabel()
	labelEnd := g.newLabel()

	g.emit("ifFalse %s goto %s", cond, labelFalse)
	g.stmtList()

	if g.atKeyword("else") {
		g.emit("goto %s", labelEnd)
		g.emit("%s:", labelFalse)
		g.advance()
		g.stmtList()
		g.emit("%s:", labelEnd)
	} else {
		g.emit("%s:", labelFalse)
	}

	g.match(scan.Keyword, "end")
}

func (g *generator) whileStmt() {
	g.match(scan.Keyword, "while")
	g.match(scan.Punctuation, "(")

	labelBegin := g.newLabel()
	labelEnd := g.newLabel()

	g.emit("%s:", labelBegin)
	cond := g.boolExpr()
	g.emit("ifFalse %s goto %s", cond, labelEnd)

	g.match(scan.Punctuation, ")")
	g.match(scan.Keyword, "do")
	g.stmtList()

	g.emit("goto %s", labelBegin)
	g.emit("%s:", labelEnd)
	g.match(scan.Keyword, "end")
}

func (g *generator) expr() string {
	left := g.term()
	for g.at(scan.Operator, "+") || g.at(scan.Operator, "-") {
		op := g.tokens[g.pos].Text
		g.advance()
		right := g.term()
		temp := g.newTemp()
		g.emit("%s = %s %s %s", temp, left, op, right)
		left = temp
	}
	return left
}

func (g *generator) term() string {
	left := g.factor()
	for g.at(scan.Operator, "*") || g.at(scan.Operator, "/") {
		op := g.tokens[g.pos].Text
		g.advance()
		right := g.factor()
		temp := g.newTemp()
		g.emit("%s = %s %s %s", temp, left, op, right)
		left = temp
	}
	return left
}

func (g *generator) factor() string {
	switch {
	case g.at(scan.Identifier, ""), g.at(scan.Integer, ""), g.at(scan.Float, ""):
		value := g.tokens[g.pos].Text
		g.advance()
		return value
	case g.at(scan.Punctuation, "("):
		g.advance()
		result := g.expr()
		g.match(scan.Punctuation, ")")
		return result
	}
	return "0"
}

func (g *generator) boolExpr() string {
	left := g.expr()
	if g.atRelOp() {
		op := g.tokens[g.pos].Text
		g.advance()
		right := g.expr()
		temp := g.newTemp()
		g.emit("%s = %s %s %s", temp, left, op, right)
		return temp
	}
	return left
}

func (g *generator) atRelOp() bool {
	for _, op := range []string{"==", "!=", "<", ">", "<=", ">="} {
		if g.at(scan.Operator, op) {
			return true
		}
	}
	return false
}
