package sheetengine

// FormulaErrorCategory is the closed set of runtime formula error values
// (spec.md §3, §7 strata 2): these are returned from GetValue, never
// thrown across the API boundary.
type FormulaErrorCategory uint8

const (
	// ErrRef means a formula referenced a position that is not a valid
	// coordinate.
	ErrRef FormulaErrorCategory = iota
	// ErrValue means a referenced cell's value could not be interpreted
	// as a number, or an upstream FormulaError was read transitively.
	ErrValue
	// ErrDiv0 means arithmetic produced a non-finite result (division by
	// zero, or overflow/underflow to +/-Inf or NaN).
	ErrDiv0
)

var formulaErrorText = map[FormulaErrorCategory]string{
	ErrRef:   "#REF!",
	ErrValue: "#VALUE!",
	ErrDiv0:  "#DIV/0!",
}

// FormulaError is a tagged error value, one of exactly three categories.
// It implements the error interface so AST evaluation can short-circuit by
// returning it like any other error, but it is a value at the Cell/Sheet
// boundary, not an exception.
type FormulaError struct {
	Category FormulaErrorCategory
}

func (e FormulaError) Error() string {
	return formulaErrorText[e.Category]
}

// String renders the cell-display form, identical to Error.
func (e FormulaError) String() string {
	return e.Error()
}

// InvalidPositionError is raised by Sheet.SetCell, Sheet.GetCell, and
// Sheet.ClearCell when given a Position outside the grid.
type InvalidPositionError struct {
	Pos Position
}

func (e *InvalidPositionError) Error() string {
	return "invalid position: " + positionDebugString(e.Pos)
}

// ParsingError is raised when a formula's source text is lexically or
// syntactically malformed.
type ParsingError struct {
	Message string
}

func (e *ParsingError) Error() string {
	return "parsing error: " + e.Message
}

// FormulaException is raised when a formula token that is syntactically a
// cell reference decodes to coordinates outside the grid (e.g. "ZZZZ1").
type FormulaException struct {
	Message string
}

func (e *FormulaException) Error() string {
	return "formula error: " + e.Message
}

// CircularDependencyError is raised by Sheet.SetCell when committing the
// proposed formula would create a cycle in the forward-edge graph. The
// sheet is left entirely unchanged when this is returned.
type CircularDependencyError struct {
	Pos Position
}

func (e *CircularDependencyError) Error() string {
	return "circular dependency through " + positionDebugString(e.Pos)
}

func positionDebugString(p Position) string {
	if s := p.String(); s != "" {
		return s
	}
	return "<invalid>"
}
