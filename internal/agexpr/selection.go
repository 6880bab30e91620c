// Public domain.

package agexpr

import (
	"errors"
	"sort"
)

// Selection is either a Query or a Predicate.
type Selection interface {
	isSelection()
}

// Query is a selection written as an expression string.
type Query string

// Predicate is a selection written as a Go function.  Params names the
// variables Fn reads; only those are bound in the map passed to Fn.
type Predicate struct {
	Params []string
	Fn     func(vars map[string]any) bool
}

func (Query) isSelection()     {}
func (Predicate) isSelection() {}

// Matcher is a compiled Selection.
type Matcher struct {
	vars  []string
	match func(vars map[string]any) (bool, error)
}

// Compile prepares sel for repeated matching.
func Compile(sel Selection) (*Matcher, error) {
	switch s := sel.(type) {
	case Query:
		e, err := Parse(string(s))
		if err != nil {
			return nil, err
		}
		return &Matcher{vars: e.vars, match: e.Eval}, nil
	case Predicate:
		if s.Fn == nil {
			return nil, errors.New("predicate selection has no function")
		}
		set := map[string]bool{}
		for _, p := range s.Params {
			set[p] = true
		}
		vars := make([]string, 0, len(set))
		for p := range set {
			vars = append(vars, p)
		}
		sort.Strings(vars)
		return &Matcher{vars: vars, match: func(m map[string]any) (bool, error) {
			return s.Fn(m), nil
		}}, nil
	}
	return nil, errors.New("nil selection")
}

// Vars returns the sorted variable names the selection reads.
func (m *Matcher) Vars() []string { return append([]string(nil), m.vars...) }

// Match reports whether vars satisfy the selection.
func (m *Matcher) Match(vars map[string]any) (bool, error) {
	return m.match(vars)
}
