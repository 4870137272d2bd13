package api

// note that these are *not* the DAO models; those are distinct and closer to
// the DB format they are in. Rather these are the models that are received
// from and sent to the client.

import (
	"github.com/mawais/slc/simplelang"
	"github.com/mawais/slc/simplelang/scan"
	"github.com/mawais/slc/simplelang/symbol"
	"github.com/mawais/slc/simplelang/syntax"
)

type LoginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UserModel struct {
	URI            string `json:"uri"`
	ID             string `json:"id,omitempty"`
	Username       string `json:"username,omitempty"`
	Password       string `json:"password,omitempty"`
	Email          string `json:"email,"`
	Role           string `json:"role,omitempty"`
	Created        string `json:"created,omitempty"`
	Modified       string `json:"modified,omitempty"`
	LastLogoutTime string `json:"last_logout_time,omitempty"`
	LastLoginTime  string `json:"last_login_time,omitempty"`
}

type UserUpdateRequest struct {
	ID       UpdateString `json:"id,omitempty"`
	Username UpdateString `json:"username,omitempty"`
	Password UpdateString `json:"password,omitempty"`
	Email    UpdateString `json:"email,"`
	Role     UpdateString `json:"role,omitempty"`
}

type UpdateString struct {
	Update bool   `json:"u,omitempty"`
	Value  string `json:"v,omitempty"`
}

type InfoModel struct {
	Version struct {
		Server     string `json:"server"`
		SimpleLang string `json:"simplelang"`
	} `json:"version"`
}

// AnalysisRequest is the body of requests that create or replace a stored
// analysis.
type AnalysisRequest struct {
	Name   string `json:"name"`
	Source string `json:"source"`
}

// AnalyzeRequest is the body of requests for an ephemeral analysis that is
// not persisted.
type AnalyzeRequest struct {
	Source string `json:"source"`
}

type AnalysisModel struct {
	URI      string       `json:"uri"`
	ID       string       `json:"id,omitempty"`
	Owner    string       `json:"owner,omitempty"`
	Name     string       `json:"name,omitempty"`
	Source   string       `json:"source"`
	Tokens   []TokenModel `json:"tokens"`
	Created  string       `json:"created,omitempty"`
	Modified string       `json:"modified,omitempty"`
}

type TokenModel struct {
	Kind   string `json:"kind"`
	Text   string `json:"text"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Error  string `json:"error,omitempty"`
}

type SymbolModel struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
	Lines []int  `json:"lines"`
}

type SyntaxErrorModel struct {
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Message string `json:"message"`
}

type DeclarationModel struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Scope int    `json:"scope"`
	Line  int    `json:"line"`
}

// AnalysisResultModel carries the output of every analysis phase for a
// source listing.
type AnalysisResultModel struct {
	Source       string             `json:"source"`
	Tokens       []TokenModel       `json:"tokens"`
	Symbols      []SymbolModel      `json:"symbols"`
	SyntaxErrors []SyntaxErrorModel `json:"syntax_errors"`
	Declarations []DeclarationModel `json:"declarations"`
	TAC          []string           `json:"tac"`
}

func modelForTokens(tokens []scan.Token) []TokenModel {
	out := make([]TokenModel, len(tokens))
	for i := range tokens {
		out[i] = TokenModel{
			Kind:   tokens[i].Kind.String(),
			Text:   tokens[i].Text,
			Line:   tokens[i].Line,
			Column: tokens[i].Column,
		}
		if tokens[i].Err != scan.NoError {
			out[i].Error = tokens[i].Err.String()
		}
	}
	return out
}

func modelForSymbols(entries []symbol.Entry) []SymbolModel {
	out := make([]SymbolModel, len(entries))
	for i := range entries {
		out[i] = SymbolModel{
			Name:  entries[i].Name,
			Count: entries[i].Count,
			Lines: entries[i].Lines,
		}
	}
	return out
}

func modelForSyntaxErrors(errs []syntax.Error) []SyntaxErrorModel {
	out := make([]SyntaxErrorModel, len(errs))
	for i := range errs {
		out[i] = SyntaxErrorModel{
			Line:    errs[i].Line,
			Column:  errs[i].Column,
			Message: errs[i].Msg,
		}
	}
	return out
}

func modelForDeclarations(decls []syntax.Decl) []DeclarationModel {
	out := make([]DeclarationModel, len(decls))
	for i := range decls {
		out[i] = DeclarationModel{
			Name:  decls[i].Name,
			Type:  decls[i].Type,
			Scope: decls[i].Scope,
			Line:  decls[i].Line,
		}
	}
	return out
}

func modelForAnalysisResult(anal simplelang.Analysis) AnalysisResultModel {
	return AnalysisResultModel{
		Source:       anal.Source,
		Tokens:       modelForTokens(anal.Tokens),
		Symbols:      modelForSymbols(anal.Symbols.Entries()),
		SyntaxErrors: modelForSyntaxErrors(anal.SyntaxErrors),
		Declarations: modelForDeclarations(anal.Decls),
		TAC:          anal.TAC,
	}
}
