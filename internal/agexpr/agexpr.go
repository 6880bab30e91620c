// Public domain.

// Package agexpr parses and evaluates the boolean selection expressions
// used to pick sources out of a source library.
//
// Grammar, lowest precedence first:
//
//	Expression := AndTerm { "OR" AndTerm }
//	AndTerm    := Condition { "AND" Condition }
//	Condition  := Terminal CompareOp Terminal | "(" Expression ")"
//	Terminal   := Number | QuotedString | Identifier
//	CompareOp  := "<" | "<=" | ">" | ">=" | "==" | "!="
//
// So A AND B OR C AND D groups as (A AND B) OR (C AND D).
// Identifiers are variables resolved against a binding map at evaluation.
package agexpr

import (
	"fmt"
	"sort"
)

// ParseError reports a malformed expression.  Index is the position of the
// offending token in the token sequence, len(tokens) for unexpected end.
type ParseError struct {
	Expr  string
	Index int
	Token string
	Msg   string
}

func (e *ParseError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("selection %q: token %d: %s", e.Expr, e.Index, e.Msg)
	}
	return fmt.Sprintf("selection %q: token %d (%s): %s",
		e.Expr, e.Index, e.Token, e.Msg)
}

// CompareError reports a comparison between values that have no ordering,
// a missing variable or a string compared with a number.
type CompareError struct {
	Op          string
	Left, Right any
}

func (e *CompareError) Error() string {
	return fmt.Sprintf("not comparable: %#v %s %#v", e.Left, e.Op, e.Right)
}

// Expr is a parsed expression.
type Expr struct {
	src  string
	root node
	vars []string
}

// Parse parses a selection expression.
func Parse(expr string) (*Expr, error) {
	p := &parser{src: expr, toks: tokenize(expr)}
	root, err := p.expression()
	if err != nil {
		return nil, err
	}
	if p.i < len(p.toks) {
		return nil, p.errorf("unexpected token after expression")
	}
	set := map[string]bool{}
	for _, t := range p.toks {
		if t.typ == tIdent {
			set[t.text] = true
		}
	}
	vars := make([]string, 0, len(set))
	for v := range set {
		vars = append(vars, v)
	}
	sort.Strings(vars)
	return &Expr{src: expr, root: root, vars: vars}, nil
}

// String returns the source text of the expression.
func (e *Expr) String() string { return e.src }

// Vars returns the sorted variable names referenced by the expression.
func (e *Expr) Vars() []string { return append([]string(nil), e.vars...) }

// Eval evaluates the expression with variables bound from vars.
// A variable missing from vars evaluates as nil, which fails comparison
// with a CompareError.
func (e *Expr) Eval(vars map[string]any) (bool, error) {
	return e.root.eval(vars)
}

// Evaluate parses and evaluates expr in one step.
func Evaluate(expr string, vars map[string]any) (bool, error) {
	e, err := Parse(expr)
	if err != nil {
		return false, err
	}
	return e.Eval(vars)
}

// ExtractVariableNames returns the sorted variable names of expr.
func ExtractVariableNames(expr string) ([]string, error) {
	e, err := Parse(expr)
	if err != nil {
		return nil, err
	}
	return e.vars, nil
}

type parser struct {
	src  string
	toks []token
	i    int
}

func (p *parser) errorf(format string, a ...any) *ParseError {
	e := &ParseError{Expr: p.src, Index: p.i, Msg: fmt.Sprintf(format, a...)}
	if p.i < len(p.toks) {
		e.Token = p.toks[p.i].text
	} else {
		e.Msg += " (end of expression)"
	}
	return e
}

func (p *parser) peek(t tokenType) bool {
	return p.i < len(p.toks) && p.toks[p.i].typ == t
}

func (p *parser) expression() (node, error) {
	left, err := p.andTerm()
	if err != nil {
		return nil, err
	}
	for p.peek(tOr) {
		p.i++
		right, err := p.andTerm()
		if err != nil {
			return nil, err
		}
		left = &orNode{left, right}
	}
	return left, nil
}

func (p *parser) andTerm() (node, error) {
	left, err := p.condition()
	if err != nil {
		return nil, err
	}
	for p.peek(tAnd) {
		p.i++
		right, err := p.condition()
		if err != nil {
			return nil, err
		}
		left = &andNode{left, right}
	}
	return left, nil
}

func (p *parser) condition() (node, error) {
	if p.peek(tLParen) {
		p.i++
		e, err := p.expression()
		if err != nil {
			return nil, err
		}
		if !p.peek(tRParen) {
			return nil, p.errorf("missing )")
		}
		p.i++
		return e, nil
	}
	left, err := p.terminal()
	if err != nil {
		return nil, err
	}
	if !p.peek(tCompare) {
		return nil, p.errorf("comparison operator expected")
	}
	op := p.toks[p.i].text
	p.i++
	right, err := p.terminal()
	if err != nil {
		return nil, err
	}
	return &compareNode{op, left, right}, nil
}

func (p *parser) terminal() (terminal, error) {
	if p.i >= len(p.toks) {
		return terminal{}, p.errorf("operand expected")
	}
	t := p.toks[p.i]
	switch t.typ {
	case tNumber, tString, tIdent:
		p.i++
		return terminal(t), nil
	case tInvalid:
		return terminal{}, p.errorf("not a number, string, or name")
	}
	return terminal{}, p.errorf("operand expected")
}
