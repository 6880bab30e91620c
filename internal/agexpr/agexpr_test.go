// Public domain.

package agexpr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agilescience/agtools/internal/agexpr"
)

func ExampleEvaluate() {
	vars := map[string]any{"flux": 7.45398e-08, "name": "2AGLJ2254+1609", "dist": 3.2}
	ok, err := agexpr.Evaluate(`flux > 0 AND (name == "X" OR dist < 5)`, vars)
	fmt.Println(ok, err)
	// Output:
	// true <nil>
}

func ExampleExtractVariableNames() {
	v, _ := agexpr.ExtractVariableNames(`sqrtts > 3 AND dist <= 10 OR sqrtts > 5`)
	fmt.Println(v)
	// Output:
	// [dist sqrtts]
}

var evalTestCases = []struct {
	expr string
	want bool
}{
	{`flux > 0`, true},
	{`flux < 0`, false},
	{`flux >= 1e-7`, true},
	{`flux <= 1e-7`, false},
	{`index == 2`, true},
	{`index != 2`, false},
	{`2 == index`, true},
	{`name == "VELA"`, true},
	{`name == 'VELA'`, true},
	{`name != "VELA"`, false},
	{`name < "W"`, true},
	{`name == "A OR B"`, false},
	{`flux > 0 AND dist < 5`, false},
	{`flux > 0 AND dist > 5`, true},
	// OR of ANDs: (F AND T) OR (T AND T)
	{`dist < 5 AND flux > 0 OR index == 2 AND name == "VELA"`, true},
	// (T AND F) OR (F AND T)
	{`flux > 0 AND dist < 5 OR index != 2 AND name == "VELA"`, false},
	// AND binds tighter: T OR (F AND F) is true
	{`flux > 0 OR dist < 5 AND index != 2`, true},
	// parens override: (T OR F) AND F is false
	{`(flux > 0 OR dist < 5) AND index != 2`, false},
	{`((flux > 0))`, true},
	{`(flux > 0 AND (dist > 5 AND (index == 2)))`, true},
}

func TestEval(t *testing.T) {
	vars := map[string]any{
		"flux":  1.5e-7,
		"dist":  10,
		"index": 2.0,
		"name":  "VELA",
	}
	for _, c := range evalTestCases {
		got, err := agexpr.Evaluate(c.expr, vars)
		if assert.NoError(t, err, c.expr) {
			assert.Equal(t, c.want, got, c.expr)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, c := range []struct {
		expr  string
		index int
	}{
		{`flux > 0 AND`, 4},
		{`(flux > 0`, 4},
		{`flux > 0)`, 3},
		{`flux 0`, 0},
		{`flux > 0 dist < 5`, 2},
		{`flux >`, 2},
		{`> 0`, 0},
		{``, 0},
		{`flux > 2AGL`, 2},
		{`flux > 0 OR OR dist < 1`, 4},
	} {
		_, err := agexpr.Parse(c.expr)
		var pe *agexpr.ParseError
		if assert.ErrorAs(t, err, &pe, c.expr) {
			assert.Equal(t, c.index, pe.Index, "%s: %v", c.expr, err)
		}
	}
}

func TestCompareErrors(t *testing.T) {
	vars := map[string]any{"flux": 1.0, "name": "VELA", "sqrtts": nil}
	for _, expr := range []string{
		`sqrtts > 3`,
		`missing == 1`,
		`name > 3`,
		`flux == "1"`,
	} {
		_, err := agexpr.Evaluate(expr, vars)
		var ce *agexpr.CompareError
		assert.True(t, errors.As(err, &ce), "%s: %v", expr, err)
	}
}

func TestVars(t *testing.T) {
	e, err := agexpr.Parse(`(b > 1 OR a == "x") AND b < a.c`)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "a.c", "b"}, e.Vars())
	assert.Equal(t, `(b > 1 OR a == "x") AND b < a.c`, e.String())
}

func TestCompile(t *testing.T) {
	m, err := agexpr.Compile(agexpr.Query(`flux > 1 AND dist < 2`))
	require.NoError(t, err)
	assert.Equal(t, []string{"dist", "flux"}, m.Vars())
	ok, err := m.Match(map[string]any{"flux": 2, "dist": 1})
	require.NoError(t, err)
	assert.True(t, ok)

	m, err = agexpr.Compile(agexpr.Predicate{
		Params: []string{"flux", "dist", "flux"},
		Fn: func(v map[string]any) bool {
			return v["flux"].(float64) > 1 && v["dist"].(float64) < 2
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"dist", "flux"}, m.Vars())
	ok, err = m.Match(map[string]any{"flux": 2.0, "dist": 3.0})
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = agexpr.Compile(agexpr.Predicate{Params: []string{"flux"}})
	assert.Error(t, err)
	_, err = agexpr.Compile(nil)
	assert.Error(t, err)
	_, err = agexpr.Compile(agexpr.Query(`flux >`))
	assert.Error(t, err)
}
