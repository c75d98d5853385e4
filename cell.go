package sheetengine

import "sort"

// cellValueKind tags the three-way sum that is CellValue (spec.md §3:
// "CellValue — a sum of {empty-string, number (double), FormulaError}").
type cellValueKind uint8

const (
	cellValueText cellValueKind = iota
	cellValueNumber
	cellValueError
)

// CellValue is the result of GetValue: a computed string, number, or
// formula error. Empty cells and text cells both surface as
// cellValueText (Text == "" for Empty), matching spec.md's "empty is
// represented as the empty string for uniformity with text cells."
type CellValue struct {
	Kind   cellValueKind
	Text   string
	Number float64
	Err    FormulaError
}

// String renders the value the way PrintValues does: numbers in Go's
// default decimal format, errors as their #TAG! form, text/empty as-is.
func (v CellValue) String() string {
	switch v.Kind {
	case cellValueNumber:
		return formatNumber(v.Number)
	case cellValueError:
		return v.Err.String()
	default:
		return v.Text
	}
}

func emptyValue() CellValue                { return CellValue{Kind: cellValueText, Text: ""} }
func textValue(s string) CellValue         { return CellValue{Kind: cellValueText, Text: s} }
func numberValue(n float64) CellValue      { return CellValue{Kind: cellValueNumber, Number: n} }
func errorValue(e FormulaError) CellValue  { return CellValue{Kind: cellValueError, Err: e} }

// contentKind tags the three mutually exclusive shapes a Cell's content can
// take (spec.md §4.6 state machine; spec.md §9 design note: "model as a
// tagged variant ... avoid class hierarchies").
type contentKind uint8

const (
	contentEmpty contentKind = iota
	contentText
	contentFormula
)

// cellContent is the immutable representation a Cell currently holds. A
// fresh cellContent is built off to one side by stageContent before the
// Sheet commits it (spec.md §4.4, §5: "the new content is constructed into
// a scratch cell first").
type cellContent struct {
	kind contentKind

	// contentText: the raw stored text, including a leading escape
	// apostrophe if present.
	text string

	// contentFormula: the parsed Formula facade (spec.md §4.3), whose
	// referenced positions are computed once at parse time
	// (SPEC_FULL.md §5.2) rather than recomputed per call.
	formula *Formula
}

// Cell holds one of three content shapes, a memoized formula value, and
// the set of other cells whose formulas reference this one (spec.md §3:
// "Each Cell additionally holds a set of reverse dependencies"). Reverse
// dependencies are mutated only by Sheet, never by Cell itself.
type Cell struct {
	content cellContent

	cacheValid bool
	cacheValue CellValue

	reverseDeps map[Position]struct{}

	// resolver is a borrowed reference back to the owning Sheet, used
	// only to look up referents during formula evaluation (spec.md §9:
	// "Cyclic ownership avoidance ... Cells hold borrowed references
	// back to the Sheet solely for referent lookup"). It is never used
	// to mutate the sheet.
	resolver CellResolver
}

func newCell(resolver CellResolver) *Cell {
	return &Cell{
		content:     cellContent{kind: contentEmpty},
		reverseDeps: make(map[Position]struct{}),
		resolver:    resolver,
	}
}

// stageContent parses text into a cellContent without mutating c, so the
// cycle check in Sheet.SetCell can be run against the proposed content
// before anything observable changes (spec.md §4.4, §5 step 3-4).
func stageContent(text string) (cellContent, error) {
	if text == "" {
		return cellContent{kind: contentEmpty}, nil
	}

	if text[0] == '=' && len(text) > 1 {
		f, err := ParseFormula(text[1:])
		if err != nil {
			return cellContent{}, err
		}
		return cellContent{kind: contentFormula, formula: f}, nil
	}

	return cellContent{kind: contentText, text: text}, nil
}

// referencedCells returns the positions this content's formula mentions,
// or nil for Empty/Text content (spec.md §4.4 GetReferencedCells).
func (c cellContent) referencedCells() []Position {
	if c.kind != contentFormula {
		return nil
	}
	return c.formula.GetReferencedCells()
}

// GetReferencedCells returns the cell's referents: empty for Empty/Text
// content, the sorted deduplicated referents for a Formula.
func (c *Cell) GetReferencedCells() []Position {
	return c.content.referencedCells()
}

// GetText returns the raw stored text for Text content (including a
// leading escape apostrophe), the canonical "=<expr>" form for Formula
// content, or "" for Empty (spec.md §4.4 GetText).
func (c *Cell) GetText() string {
	switch c.content.kind {
	case contentText:
		return c.content.text
	case contentFormula:
		return "=" + c.content.formula.GetExpression()
	default:
		return ""
	}
}

// GetValue computes, or returns the memoized, value of this cell (spec.md
// §4.4 GetValue). A Formula's result is cached on first read and reused
// until Sheet invalidates it.
func (c *Cell) GetValue() CellValue {
	switch c.content.kind {
	case contentText:
		if len(c.content.text) > 0 && c.content.text[0] == '\'' {
			return textValue(c.content.text[1:])
		}
		return textValue(c.content.text)

	case contentFormula:
		if c.cacheValid {
			return c.cacheValue
		}
		result := c.content.formula.Evaluate(c.resolver)
		c.cacheValue = result
		c.cacheValid = true
		return result

	default:
		return emptyValue()
	}
}

// invalidate clears the memoized formula value. A no-op on Empty/Text
// cells and idempotent on an already-invalid Formula cell (spec.md
// invariant 4: "idempotent if the bit is already invalid").
func (c *Cell) invalidate() {
	c.cacheValid = false
}

// sortedReverseDeps returns this cell's reverse-dependency set as a
// sorted slice, used only for deterministic test assertions.
func (c *Cell) sortedReverseDeps() []Position {
	out := make([]Position, 0, len(c.reverseDeps))
	for pos := range c.reverseDeps {
		out = append(out, pos)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}
