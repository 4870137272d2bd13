package syntax

// Decl records one variable declaration found while parsing.
type Decl struct {
	// Name is the declared identifier.
	Name string

	// Type is the declared type keyword, e.g. "int".
	Type string

	// Scope is the nesting depth the declaration was made at. The program
	// body is scope 0; each if or while body opens a deeper scope.
	Scope int

	// Line is the 1-based source line of the declaration.
	Line int
}

// declTable is a stack of lexical scopes used during parsing to check
// declare-before-use and redeclaration rules.
type declTable struct {
	scopes []map[string]Decl

	// all holds every successful declaration in the order made, including
	// ones whose scope has since been exited.
	all []Decl
}

func newDeclTable() *declTable {
	return &declTable{
		scopes: []map[string]Decl{{}},
	}
}

func (dt *declTable) enterScope() {
	dt.scopes = append(dt.scopes, map[string]Decl{})
}

func (dt *declTable) exitScope() {
	if len(dt.scopes) > 1 {
		dt.scopes = dt.scopes[:len(dt.scopes)-1]
	}
}

// declare adds name to the current scope. It fails if name is already
// declared in that same scope; shadowing an outer scope is allowed.
func (dt *declTable) declare(name, typ string, line int) bool {
	cur := dt.scopes[len(dt.scopes)-1]
	if _, ok := cur[name]; ok {
		return false
	}

	d := Decl{
		Name:  name,
		Type:  typ,
		Scope: len(dt.scopes) - 1,
		Line:  line,
	}
	cur[name] = d
	dt.all = append(dt.all, d)
	return true
}

// lookup searches from the innermost scope outward.
func (dt *declTable) lookup(name string) (Decl, bool) {
	for i := len(dt.scopes) - 1; i >= 0; i-- {
		if d, ok := dt.scopes[i][name]; ok {
			return d, true
		}
	}
	return Decl{}, false
}
