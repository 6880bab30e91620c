// Public domain.

package agmle_test

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agilescience/agtools/internal/agmle"
)

const fixture = "testdata/2AGLJ2254+1609.source"

func ExampleParseFile() {
	m, err := agmle.ParseFile(fixture)
	if err != nil {
		fmt.Println(err)
		return
	}
	ts, _ := m.Float("multiSqrtTS")
	f, _ := m.Float("multiFlux")
	fmt.Println(m.Name(), ts, f)
	// Output:
	// 2AGLJ2254+1609 2.17268 9.07364e-06
}

func TestParseFile(t *testing.T) {
	m, err := agmle.ParseFile(fixture)
	require.NoError(t, err)
	for name, want := range map[string]any{
		"multiName":                "2AGLJ2254+1609",
		"multiStartL":              92.4102,
		"multiStartB":              -10.3946,
		"multiLPeak":               92.41,
		"multiL":                   92.4,
		"multiphi":                 30.,
		"multiCountsUL":            80.2,
		"multiFluxErr":             2.5e-06,
		"multiExpSpectraCorFactor": 1.,
		"multiSensitivity":         3e-07,
		"multiIndex":               2.1,
		"multiFluxPerChannel":      []float64{3e-06, 6e-06},
		"multiIsoErr":              []float64{1.1},
		"multiFitStatus1":          0,
		"multiFcn1":                1234.5,
		"multiLikelihood1":         1229.8,
		"multiPar2LimitMax":        10000.,
		"multiNullLikelihood":      1231.1,
		"multiEnergyBinMin":        []float64{100, 1000},
		"multiEnergyBinMax":        []float64{1000, 10000},
		"multiCountsPerChannel":    []float64{30, 15},
		"multiEmin":                100.,
		"multiEmax":                10000.,
		"multiFovMax":              60.,
		"multiAlbedo":              80.,
		"multiPhaseCode":           0,
		"multiTstartTT":            507945600.,
		"multiTstopMJD":            58891.,
	} {
		got, ok := m.Get(name)
		require.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}
	assert.True(t, m.ValidPosition())
}

func TestOffsets(t *testing.T) {
	seen := map[string]bool{}
	for off, name := range agmle.Offsets {
		assert.True(t, off >= 0 && off < agmle.Values, "offset %d", off)
		assert.False(t, seen[name], "%s mapped twice", name)
		seen[name] = true
	}
	m, err := agmle.ParseFile(fixture)
	require.NoError(t, err)
	// every field has a home in the file
	assert.Len(t, agmle.Offsets, len(m.Names()))
}

func body(t *testing.T) []string {
	b, err := os.ReadFile(fixture)
	require.NoError(t, err)
	var lines []string
	for _, l := range strings.Split(string(b), "\n") {
		if l = strings.TrimSpace(l); l != "" && l[0] != '!' {
			lines = append(lines, l)
		}
	}
	require.Len(t, lines, 17)
	return lines
}

func TestParseFail(t *testing.T) {
	lines := body(t)
	edit := func(i int, l string) string {
		c := append([]string(nil), lines...)
		c[i] = l
		return strings.Join(c, "\n")
	}
	for _, tc := range []struct {
		name, text string
		line       int
	}{
		{"short", strings.Join(lines[:16], "\n"), 0},
		{"long", strings.Join(append(lines, "1"), "\n"), 18},
		{"value count", edit(2, "2.17268 1"), 3},
		{"range counts twice", edit(3, "92.41 -10.39..1 0.0214"), 4},
		{"bad float", edit(2, "high"), 3},
		{"bad int", edit(12, "0 0 0 0 0 0 ok 1234.5 0 0 0 0 1229.8"), 13},
	} {
		_, err := agmle.Parse(strings.NewReader(tc.text))
		var fe *agmle.FormatError
		require.ErrorAs(t, err, &fe, tc.name)
		assert.Equal(t, tc.line, fe.Line, tc.name)
		assert.Empty(t, fe.File)
	}

	_, err := agmle.ParseFile("testdata/missing.source")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseFailFirstBadValue(t *testing.T) {
	c := body(t)
	c[2] = "high"
	c[12] = "0 0 0 0 0 0 ok 1234.5 0 0 0 0 1229.8"
	text := strings.Join(c, "\n")
	for i := 0; i < 20; i++ {
		_, err := agmle.Parse(strings.NewReader(text))
		var fe *agmle.FormatError
		require.ErrorAs(t, err, &fe)
		require.Equal(t, 3, fe.Line)
	}
}

func TestParseFileExpandsEnv(t *testing.T) {
	t.Setenv("AGMLE_TESTDATA", "testdata")
	m, err := agmle.ParseFile("$AGMLE_TESTDATA/2AGLJ2254+1609.source")
	require.NoError(t, err)
	assert.Equal(t, "2AGLJ2254+1609", m.Name())
}

func TestParseFileNamesFile(t *testing.T) {
	fn := t.TempDir() + "/bad.source"
	require.NoError(t, os.WriteFile(fn, []byte("! only a comment\n"), 0o644))
	_, err := agmle.ParseFile(fn)
	var fe *agmle.FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fn, fe.File)
	assert.Contains(t, err.Error(), "0 lines, want 17")
}
