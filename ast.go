package sheetengine

import (
	"math"
	"strconv"
	"strings"
)

// CellResolver is the narrow read surface an AST needs from a Sheet during
// evaluation: look up a cell's current value by Position. Sheet implements
// this; the AST package never depends on the Sheet type directly, which
// keeps the parser/AST free of any import of the orchestrator (spec.md §9:
// "cyclic ownership avoidance").
type CellResolver interface {
	valueAt(pos Position) (CellValue, bool)
}

// exprPrecedence levels, tighter last, exactly as spec.md §4.2 names them.
// Higher is tighter.
type exprPrecedence int

const (
	precAdd exprPrecedence = iota
	precSub
	precMul
	precDiv
	precUnary
	precAtom
	precEnd
)

// parenRule is a bitmask: which side(s) of a binary parent require
// parentheses around a child of a given precedence to round-trip through
// the grammar unchanged.
type parenRule uint8

const (
	parenNone  parenRule = 0
	parenLeft  parenRule = 1 << 0
	parenRight parenRule = 1 << 1
	parenBoth  parenRule = parenLeft | parenRight
)

// precedenceRules is copied verbatim from spec.md §4.2 (itself load-bearing,
// per spec.md §9: "do not attempt to derive parentheses from grammar
// precedence alone"). precedenceRules[parent][child] says whether a child
// of that precedence needs parens when printed under that parent.
var precedenceRules = [precEnd][precEnd]parenRule{
	precAdd:   {precAdd: parenNone, precSub: parenNone, precMul: parenNone, precDiv: parenNone, precUnary: parenNone, precAtom: parenNone},
	precSub:   {precAdd: parenRight, precSub: parenRight, precMul: parenNone, precDiv: parenNone, precUnary: parenNone, precAtom: parenNone},
	precMul:   {precAdd: parenBoth, precSub: parenBoth, precMul: parenNone, precDiv: parenNone, precUnary: parenNone, precAtom: parenNone},
	precDiv:   {precAdd: parenBoth, precSub: parenBoth, precMul: parenRight, precDiv: parenRight, precUnary: parenNone, precAtom: parenNone},
	precUnary: {precAdd: parenBoth, precSub: parenBoth, precMul: parenNone, precDiv: parenNone, precUnary: parenNone, precAtom: parenNone},
	precAtom:  {precAdd: parenNone, precSub: parenNone, precMul: parenNone, precDiv: parenNone, precUnary: parenNone, precAtom: parenNone},
}

// Node is a formula AST expression. Eval short-circuits to a FormulaError
// the moment one is raised anywhere below it (spec.md §4.2: "any raised
// FormulaError short-circuits evaluation to the top").
type Node interface {
	Eval(r CellResolver) (float64, *FormulaError)
	precedence() exprPrecedence
	printTo(sb *strings.Builder, parentPrec exprPrecedence, isRightChild bool)
	// debugString renders an S-expression form for debugging; never part
	// of the public Formula facade. No code in this module calls it.
	debugString() string
}

func printNode(n Node) string {
	var sb strings.Builder
	n.printTo(&sb, precAtom, false)
	return sb.String()
}

// NumberNode is a numeric literal.
type NumberNode struct {
	Value float64
}

func (n *NumberNode) Eval(CellResolver) (float64, *FormulaError) { return n.Value, nil }
func (n *NumberNode) precedence() exprPrecedence                 { return precAtom }

func (n *NumberNode) printTo(sb *strings.Builder, _ exprPrecedence, _ bool) {
	sb.WriteString(formatNumber(n.Value))
}

func (n *NumberNode) debugString() string {
	return formatNumber(n.Value)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// CellRefNode references another cell by Position. The parser only builds
// one for a valid Position (spec.md §4.2: a grammar-valid CELL token whose
// coordinates are out of range raises FormulaException at parse time, in
// parser.go), but Eval and printTo still defend against an invalid
// Position for robustness, matching the original's CellExpr which checks
// IsValid() itself.
type CellRefNode struct {
	Pos Position
}

func (n *CellRefNode) Eval(r CellResolver) (float64, *FormulaError) {
	if !n.Pos.IsValid() {
		return 0, &FormulaError{Category: ErrRef}
	}

	cv, ok := r.valueAt(n.Pos)
	if !ok {
		return 0, nil
	}

	switch cv.Kind {
	case cellValueError:
		return 0, &FormulaError{Category: ErrValue}
	case cellValueNumber:
		return cv.Number, nil
	case cellValueText:
		if cv.Text == "" {
			return 0, nil
		}
		// strconv.ParseFloat already requires the entire string to be
		// consumed, matching spec.md §4.2: "parse as a decimal number
		// consuming the entire string (no trailing garbage)".
		v, err := strconv.ParseFloat(cv.Text, 64)
		if err != nil {
			return 0, &FormulaError{Category: ErrValue}
		}
		return v, nil
	}
	return 0, nil
}

func (n *CellRefNode) precedence() exprPrecedence { return precAtom }

func (n *CellRefNode) printTo(sb *strings.Builder, _ exprPrecedence, _ bool) {
	if !n.Pos.IsValid() {
		sb.WriteString("#REF!")
		return
	}
	sb.WriteString(n.Pos.String())
}

func (n *CellRefNode) debugString() string {
	return "Cell(" + printNode(n) + ")"
}

// UnaryOp is the operator of a UnaryOpNode.
type UnaryOp uint8

const (
	UnaryPlus UnaryOp = iota
	UnaryMinus
)

// UnaryOpNode is a prefix +/- applied to an operand.
type UnaryOpNode struct {
	Op      UnaryOp
	Operand Node
}

func (n *UnaryOpNode) Eval(r CellResolver) (float64, *FormulaError) {
	v, fe := n.Operand.Eval(r)
	if fe != nil {
		return 0, fe
	}
	if n.Op == UnaryMinus {
		return -v, nil
	}
	return v, nil
}

func (n *UnaryOpNode) precedence() exprPrecedence { return precUnary }

func (n *UnaryOpNode) printTo(sb *strings.Builder, parentPrec exprPrecedence, isRightChild bool) {
	writeWithParens(sb, n, parentPrec, isRightChild, func() {
		if n.Op == UnaryMinus {
			sb.WriteByte('-')
		} else {
			sb.WriteByte('+')
		}
		n.Operand.printTo(sb, precUnary, false)
	})
}

func (n *UnaryOpNode) debugString() string {
	sign := "+"
	if n.Op == UnaryMinus {
		sign = "-"
	}
	return "(" + sign + " " + n.Operand.debugString() + ")"
}

// BinaryOp is the operator of a BinaryOpNode.
type BinaryOp uint8

const (
	BinaryAdd BinaryOp = iota
	BinarySub
	BinaryMul
	BinaryDiv
)

// BinaryOpNode is a left/right pair joined by one of the four arithmetic
// operators.
type BinaryOpNode struct {
	Op    BinaryOp
	Left  Node
	Right Node
}

func (n *BinaryOpNode) Eval(r CellResolver) (float64, *FormulaError) {
	left, fe := n.Left.Eval(r)
	if fe != nil {
		return 0, fe
	}
	right, fe := n.Right.Eval(r)
	if fe != nil {
		return 0, fe
	}

	var result float64
	switch n.Op {
	case BinaryAdd:
		result = left + right
	case BinarySub:
		result = left - right
	case BinaryMul:
		result = left * right
	case BinaryDiv:
		result = left / right
	}

	if !math.IsInf(result, 0) && !math.IsNaN(result) {
		return result, nil
	}
	return 0, &FormulaError{Category: ErrDiv0}
}

func (n *BinaryOpNode) precedence() exprPrecedence {
	switch n.Op {
	case BinaryAdd:
		return precAdd
	case BinarySub:
		return precSub
	case BinaryMul:
		return precMul
	case BinaryDiv:
		return precDiv
	}
	return precAtom
}

func (n *BinaryOpNode) opByte() byte {
	switch n.Op {
	case BinaryAdd:
		return '+'
	case BinarySub:
		return '-'
	case BinaryMul:
		return '*'
	case BinaryDiv:
		return '/'
	}
	return '?'
}

func (n *BinaryOpNode) printTo(sb *strings.Builder, parentPrec exprPrecedence, isRightChild bool) {
	writeWithParens(sb, n, parentPrec, isRightChild, func() {
		prec := n.precedence()
		n.Left.printTo(sb, prec, false)
		sb.WriteByte(n.opByte())
		n.Right.printTo(sb, prec, true)
	})
}

func (n *BinaryOpNode) debugString() string {
	return "(" + string(n.opByte()) + " " + n.Left.debugString() + " " + n.Right.debugString() + ")"
}

// writeWithParens consults precedenceRules for n's own precedence against
// parentPrec and the side it occupies, wrapping body() in parentheses when
// the table says they're required.
func writeWithParens(sb *strings.Builder, n Node, parentPrec exprPrecedence, isRightChild bool, body func()) {
	mask := parenLeft
	if isRightChild {
		mask = parenRight
	}
	needed := precedenceRules[parentPrec][n.precedence()]&mask != 0
	if needed {
		sb.WriteByte('(')
	}
	body()
	if needed {
		sb.WriteByte(')')
	}
}
