// Public domain.

package agexpr

import (
	"regexp"
	"strconv"
	"strings"
)

type tokenType int

const (
	tInvalid tokenType = iota // text that is not a number, string, or name
	tNumber
	tString
	tIdent
	tCompare
	tAnd
	tOr
	tLParen
	tRParen
)

type token struct {
	typ  tokenType
	text string
	num  float64 // tNumber
	str  string  // tString, quotes removed
}

// One pass over the delimiter set.  Quoted strings are matched here too so
// that operators inside quotes do not split them.
var rxDelim = regexp.MustCompile(
	`"[^"]*"|'[^']*'|<=|>=|==|!=|<|>|\(|\)|\bAND\b|\bOR\b`)

var rxIdent = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)

func tokenize(expr string) []token {
	var toks []token
	last := 0
	for _, m := range rxDelim.FindAllStringIndex(expr, -1) {
		if s := strings.TrimSpace(expr[last:m[0]]); s > "" {
			toks = append(toks, classify(s))
		}
		toks = append(toks, delimToken(expr[m[0]:m[1]]))
		last = m[1]
	}
	if s := strings.TrimSpace(expr[last:]); s > "" {
		toks = append(toks, classify(s))
	}
	return toks
}

func delimToken(s string) token {
	switch s {
	case "AND":
		return token{typ: tAnd, text: s}
	case "OR":
		return token{typ: tOr, text: s}
	case "(":
		return token{typ: tLParen, text: s}
	case ")":
		return token{typ: tRParen, text: s}
	case "<", "<=", ">", ">=", "==", "!=":
		return token{typ: tCompare, text: s}
	}
	// only quoted strings remain
	return classify(s)
}

// classify tries number, then quoted string, then identifier.
func classify(s string) token {
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return token{typ: tNumber, text: s, num: f}
	}
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return token{typ: tString, text: s, str: s[1 : len(s)-1]}
	}
	if rxIdent.MatchString(s) {
		return token{typ: tIdent, text: s}
	}
	return token{typ: tInvalid, text: s}
}
