package pluralforms

import (
	"strconv"
)

// Expression is a plural forms expression over the count n. Eval evaluates
// the expression for a given n and String renders it in the C syntax used by
// the Plural-Forms header of a message catalog.
type Expression interface {
	Eval(n uint64) int
	String() string

	precedence() int
}

// Operator precedence, loosest first.
const (
	precTernary = iota
	precOr
	precAnd
	precEquality
	precRelational
	precMultiplicative
	precAtom
)

func logic(b bool) int {
	if b {
		return 1
	}
	return 0
}

type binaryExpr struct {
	left  Expression
	right Expression
}

// render joins the operands of a left-associative binary operator, adding
// parentheses only where precedence requires them.
func (e binaryExpr) render(op string, prec int) string {
	left := e.left.String()
	if e.left.precedence() < prec {
		left = "(" + left + ")"
	}
	right := e.right.String()
	if e.right.precedence() <= prec {
		right = "(" + right + ")"
	}
	return left + op + right
}

type orExpr binaryExpr

func (e orExpr) Eval(n uint64) int {
	return logic(e.left.Eval(n) != 0 || e.right.Eval(n) != 0)
}

func (e orExpr) String() string  { return binaryExpr(e).render(" || ", precOr) }
func (e orExpr) precedence() int { return precOr }

type andExpr binaryExpr

func (e andExpr) Eval(n uint64) int {
	return logic(e.left.Eval(n) != 0 && e.right.Eval(n) != 0)
}

func (e andExpr) String() string  { return binaryExpr(e).render(" && ", precAnd) }
func (e andExpr) precedence() int { return precAnd }

type eqExpr binaryExpr

func (e eqExpr) Eval(n uint64) int {
	return logic(e.left.Eval(n) == e.right.Eval(n))
}

func (e eqExpr) String() string  { return binaryExpr(e).render(" == ", precEquality) }
func (e eqExpr) precedence() int { return precEquality }

type neExpr binaryExpr

func (e neExpr) Eval(n uint64) int {
	return logic(e.left.Eval(n) != e.right.Eval(n))
}

func (e neExpr) String() string  { return binaryExpr(e).render(" != ", precEquality) }
func (e neExpr) precedence() int { return precEquality }

type ltExpr binaryExpr

func (e ltExpr) Eval(n uint64) int {
	return logic(e.left.Eval(n) < e.right.Eval(n))
}

func (e ltExpr) String() string  { return binaryExpr(e).render(" < ", precRelational) }
func (e ltExpr) precedence() int { return precRelational }

type lteExpr binaryExpr

func (e lteExpr) Eval(n uint64) int {
	return logic(e.left.Eval(n) <= e.right.Eval(n))
}

func (e lteExpr) String() string  { return binaryExpr(e).render(" <= ", precRelational) }
func (e lteExpr) precedence() int { return precRelational }

type gtExpr binaryExpr

func (e gtExpr) Eval(n uint64) int {
	return logic(e.left.Eval(n) > e.right.Eval(n))
}

func (e gtExpr) String() string  { return binaryExpr(e).render(" > ", precRelational) }
func (e gtExpr) precedence() int { return precRelational }

type gteExpr binaryExpr

func (e gteExpr) Eval(n uint64) int {
	return logic(e.left.Eval(n) >= e.right.Eval(n))
}

func (e gteExpr) String() string  { return binaryExpr(e).render(" >= ", precRelational) }
func (e gteExpr) precedence() int { return precRelational }

// modExpr keeps the modulus in uint64 so that large counts do not wrap
// through int.
type modExpr struct {
	left    Expression
	modulus uint64
}

func (e modExpr) Eval(n uint64) int {
	return int(uint64(e.left.Eval(n)) % e.modulus)
}

func (e modExpr) String() string {
	left := e.left.String()
	if e.left.precedence() < precMultiplicative {
		left = "(" + left + ")"
	}
	return left + "%" + strconv.FormatUint(e.modulus, 10)
}

func (e modExpr) precedence() int { return precMultiplicative }

type ternaryExpr struct {
	test    Expression
	ifTrue  Expression
	ifFalse Expression
}

func (e ternaryExpr) Eval(n uint64) int {
	if e.test.Eval(n) != 0 {
		return e.ifTrue.Eval(n)
	}
	return e.ifFalse.Eval(n)
}

func (e ternaryExpr) String() string {
	test := e.test.String()
	if e.test.precedence() <= precTernary {
		test = "(" + test + ")"
	}
	ifTrue := e.ifTrue.String()
	if e.ifTrue.precedence() <= precTernary {
		ifTrue = "(" + ifTrue + ")"
	}
	// the conditional operator is right associative
	return test + " ? " + ifTrue + " : " + e.ifFalse.String()
}

func (e ternaryExpr) precedence() int { return precTernary }

type numberExpr struct {
	value int
}

func (e numberExpr) Eval(n uint64) int {
	return e.value
}

func (e numberExpr) String() string  { return strconv.Itoa(e.value) }
func (e numberExpr) precedence() int { return precAtom }

type varExpr struct{}

// Eval saturates counts that do not fit an int; every rule in the table is
// stable for such values.
func (e varExpr) Eval(n uint64) int {
	if n > uint64(maxInt) {
		return maxInt
	}
	return int(n)
}

func (e varExpr) String() string  { return "n" }
func (e varExpr) precedence() int { return precAtom }

const maxInt = int(^uint(0) >> 1)

// Constructors used to spell the rule table.

var n Expression = varExpr{}

func num(v int) Expression { return numberExpr{v} }

func mod(e Expression, m uint64) Expression { return modExpr{e, m} }

func or(l, r Expression) Expression  { return orExpr{l, r} }
func and(l, r Expression) Expression { return andExpr{l, r} }
func eq(l Expression, v int) Expression {
	return eqExpr{l, num(v)}
}
func ne(l Expression, v int) Expression {
	return neExpr{l, num(v)}
}
func lt(l Expression, v int) Expression {
	return ltExpr{l, num(v)}
}
func lte(l Expression, v int) Expression {
	return lteExpr{l, num(v)}
}
func gt(l Expression, v int) Expression {
	return gtExpr{l, num(v)}
}
func gte(l Expression, v int) Expression {
	return gteExpr{l, num(v)}
}

// between reports lo <= e <= hi.
func between(e Expression, lo, hi int) Expression {
	return and(gte(e, lo), lte(e, hi))
}

func cond(test Expression, ifTrue int, ifFalse Expression) Expression {
	return ternaryExpr{test, num(ifTrue), ifFalse}
}
