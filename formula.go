package sheetengine

// Formula is the facade spec.md §4.3 describes: it owns a parsed AST and
// exposes evaluation, canonical printing, and referent listing, without
// exposing the AST's node types to callers.
type Formula struct {
	ast  Node
	refs []Position
}

// ParseFormula parses source (the text after the leading '=') into a
// Formula. It can fail with a ParsingError (lexical/syntactic failure) or
// a FormulaException (a cell token that decodes outside the grid).
func ParseFormula(source string) (*Formula, error) {
	node, refs, err := NewParser(source).Parse()
	if err != nil {
		return nil, err
	}
	return &Formula{ast: node, refs: refs}, nil
}

// Evaluate runs the AST against r and returns the result as a CellValue:
// a number on success, a FormulaError value if evaluation raised one.
// Per spec.md §4.3, a raised FormulaError is caught here and returned as
// a value — it is not propagated as a Go error, since it is one of the
// three things a cell's value may legitimately be.
func (f *Formula) Evaluate(r CellResolver) CellValue {
	v, fe := f.ast.Eval(r)
	if fe != nil {
		return errorValue(*fe)
	}
	return numberValue(v)
}

// GetExpression returns the canonicalized source string (no leading '='),
// produced by the AST's precedence-aware printer.
func (f *Formula) GetExpression() string {
	return printNode(f.ast)
}

// GetReferencedCells returns the sorted, deduplicated list of valid
// positions this formula mentions.
func (f *Formula) GetReferencedCells() []Position {
	return f.refs
}
