// Public domain.

package aglib_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agilescience/agtools/internal/agastro"
	"github.com/agilescience/agtools/internal/agexpr"
	"github.com/agilescience/agtools/internal/aglib"
	"github.com/agilescience/agtools/internal/aglog"
	"github.com/agilescience/agtools/internal/agparam"
	"github.com/agilescience/agtools/internal/agsource"
)

var testOptions = aglib.Options{
	Band:       agastro.Band{Emin: 100, Emax: 10000},
	Center:     agparam.Pair{92, -10},
	CatalogDir: "testdata/catalogs",
}

func newLib(t *testing.T) *aglib.Library {
	return aglib.New(testOptions, aglog.Discard())
}

func loadText(t *testing.T) *aglib.Library {
	lib := newLib(t)
	added, err := lib.LoadSourcesFromFile("testdata/sources.txt", aglib.AnyDist, nil)
	require.NoError(t, err)
	require.Len(t, added, 4)
	return lib
}

func names(s []*agsource.Source) []string {
	n := []string{}
	for _, x := range s {
		n = append(n, x.Name)
	}
	return n
}

func TestLoadSourcesFromFile(t *testing.T) {
	for _, tc := range []struct {
		rng  aglib.DistRange
		want []string
	}{
		{aglib.AnyDist, []string{"2AGLJ2254+1609", "2AGLJ2301+1339", "2AGLJ2021+4029", "CENTER"}},
		{aglib.DistRange{Lo: 0, Hi: 5}, []string{"2AGLJ2254+1609", "2AGLJ2301+1339", "CENTER"}},
		{aglib.DistRange{Lo: 1, Hi: 20}, []string{"2AGLJ2301+1339", "2AGLJ2021+4029"}},
		{aglib.DistRange{Lo: 20, Hi: 30}, []string{}},
	} {
		lib := newLib(t)
		added, err := lib.LoadSourcesFromFile("testdata/sources.txt", tc.rng, nil)
		require.NoError(t, err)
		assert.Equal(t, tc.want, names(added), "%+v", tc.rng)
		assert.Equal(t, tc.want, names(lib.Sources()))
	}
}

func TestLoadDuplicates(t *testing.T) {
	var buf bytes.Buffer
	lib := aglib.New(testOptions, aglog.New(&buf, slog.LevelWarn))
	_, err := lib.LoadSourcesFromFile("testdata/sources.txt", aglib.AnyDist, nil)
	require.NoError(t, err)
	added, err := lib.LoadSourcesFromFile("testdata/sources.xml", aglib.AnyDist, nil)
	require.NoError(t, err)
	assert.Empty(t, added)
	assert.Equal(t, 4, lib.Len())
	assert.Contains(t, buf.String(), "not added")
	assert.Contains(t, buf.String(), "name=2AGLJ2301+1339")
}

func TestLoadXML(t *testing.T) {
	lib := newLib(t)
	added, err := lib.LoadSourcesFromFile("testdata/sources.xml", aglib.AnyDist, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"2AGLJ2254+1609", "2AGLJ2301+1339"}, names(added))

	s := added[0]
	flux, _ := s.Spectrum.Float("flux")
	assert.Equal(t, 7.45398e-08, flux)
	p, _ := s.Spectrum.Param("flux")
	require.NotNil(t, p.Scale)
	assert.Equal(t, 1e-08, *p.Scale)
	l, b, _ := s.Pos()
	assert.Equal(t, agparam.Pair{92.4102, -10.3946}, agparam.Pair{l, b})
	d, ok := s.Dist()
	require.True(t, ok)
	assert.InDelta(t, .5645, d, 1e-4)

	s = added[1]
	assert.Equal(t, agsource.PLExpCutoff, s.Spectrum.Type)
	assert.Equal(t, 1, s.Spatial.LocationLimit)
	assert.Equal(t, 32, s.Fixflag())
}

func TestLoadFail(t *testing.T) {
	lib := newLib(t)
	_, err := lib.LoadSourcesFromFile("testdata/sources.csv", aglib.AnyDist, nil)
	var fe *aglib.FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, ".csv", fe.Format)
	assert.Equal(t, aglib.SourceFormats, fe.Supported)

	_, err = lib.LoadSourcesFromFile("testdata/bad.txt", aglib.AnyDist, nil)
	var pe *aglib.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 2, pe.Line)
	assert.Contains(t, err.Error(), "testdata/bad.txt")

	_, err = lib.LoadSourcesFromFile("testdata/badtag.xml", aglib.AnyDist, nil)
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "testdata/badtag.xml", pe.File)

	_, err = lib.LoadSourcesFromFile("testdata/missing.txt", aglib.AnyDist, nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Zero(t, lib.Len(), "failed loads add nothing")
}

func TestLoadSourcesFromCatalog(t *testing.T) {
	lib := newLib(t)
	added, err := lib.LoadSourcesFromCatalog("2AGL", aglib.DistRange{Lo: 0, Hi: 20})
	require.NoError(t, err)
	assert.Equal(t, []string{"2AGLJ2254+1609", "2AGLJ2021+4029"}, names(added))
	flux, _ := added[0].Spectrum.Float("flux")
	assert.Equal(t, 7.45398e-08, flux, "same band, no rescaling")

	opt := testOptions
	opt.Band = agastro.Band{Emin: 10, Emax: 1000}
	lib = aglib.New(opt, aglog.Discard())
	added, err = lib.LoadSourcesFromCatalog("2AGL", aglib.DistRange{Lo: 0, Hi: 1})
	require.NoError(t, err)
	require.Len(t, added, 1)
	flux, _ = added[0].Spectrum.Float("flux")
	assert.InEpsilon(t, 5.920906775070099e-07, flux, 1e-12)

	_, err = lib.LoadSourcesFromCatalog("3FGL", aglib.AnyDist)
	var ce *aglib.CatalogError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, []string{"2AGL"}, ce.Supported)
}

func TestPathsExpandEnv(t *testing.T) {
	t.Setenv("AGLIB_TESTDATA", "testdata")
	out := t.TempDir()
	t.Setenv("AGLIB_OUT", out)

	lib := newLib(t)
	added, err := lib.LoadSourcesFromFile("$AGLIB_TESTDATA/sources.txt", aglib.AnyDist, nil)
	require.NoError(t, err)
	assert.Len(t, added, 4)

	opt := testOptions
	opt.CatalogDir = "${AGLIB_TESTDATA}/catalogs"
	cat := aglib.New(opt, aglog.Discard())
	added, err = cat.LoadSourcesFromCatalog("2AGL", aglib.AnyDist)
	require.NoError(t, err)
	assert.Len(t, added, 3)

	fn, err := lib.WriteToFile("$AGLIB_OUT/lib", "txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, "lib")+".txt", fn)
	_, err = os.Stat(fn)
	assert.NoError(t, err)
}

func TestAddSource(t *testing.T) {
	lib := newLib(t)
	s, err := lib.AddSource(agsource.SourceSpec{
		Name:   "NEW",
		Params: map[string]any{"flux": 1e-7, "index": 2.},
		Pos:    agparam.Pair{93, -10},
		Free:   map[string]int{"flux": 1},
	})
	require.NoError(t, err)
	require.NotNil(t, s)
	d, _ := s.Dist()
	assert.InDelta(t, .9848, d, 1e-4)

	dup, err := lib.AddSource(agsource.New("NEW", agsource.LogParabola))
	assert.NoError(t, err)
	assert.Nil(t, dup)
	assert.Equal(t, 1, lib.Len())

	_, err = lib.AddSource(agsource.SourceSpec{Name: "BAD", Spectrum: "Cubic"})
	assert.Error(t, err)

	got, err := lib.Source("NEW")
	require.NoError(t, err)
	assert.Same(t, s, got)
	_, err = lib.Source("OLD")
	var nf *agsource.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestSelectSources(t *testing.T) {
	lib := loadText(t)
	for _, tc := range []struct {
		sel  agexpr.Selection
		want []string
	}{
		{agexpr.Query(`flux > 1e-07`), []string{"2AGLJ2301+1339", "2AGLJ2021+4029"}},
		{agexpr.Query(`flux >= 1e-07 AND dist < 5`), []string{"2AGLJ2301+1339", "CENTER"}},
		{agexpr.Query(`name == "CENTER" OR locationLimit > 3`), []string{"2AGLJ2021+4029", "CENTER"}},
		{agexpr.Query(`pivotEnergy > 1000`), []string{"2AGLJ2301+1339"}},
		{agexpr.Predicate{Params: []string{"dist"}, Fn: func(v map[string]any) bool {
			return v["dist"].(float64) < 1
		}}, []string{"2AGLJ2254+1609", "CENTER"}},
		{agexpr.Query(`sqrtts > 3`), []string{}},
	} {
		got, err := lib.SelectSources(tc.sel)
		require.NoError(t, err, "%v", tc.sel)
		assert.Equal(t, tc.want, names(got), "%v", tc.sel)
	}

	_, err := lib.UpdateMulti(multi(t, "2AGLJ2254+1609", -1, -1))
	require.NoError(t, err)
	got, err := lib.SelectSources(agexpr.Query(`sqrtts > 3`))
	require.NoError(t, err)
	assert.Equal(t, []string{"2AGLJ2254+1609"}, names(got))
}

func TestSelectSourcesFail(t *testing.T) {
	lib := loadText(t)
	_, err := lib.SelectSources(agexpr.Query(`bogus > 1`))
	var nf *agsource.NotFoundError
	assert.ErrorAs(t, err, &nf)

	_, err = lib.SelectSources(agexpr.Query(`flux > `))
	var pe *agexpr.ParseError
	assert.ErrorAs(t, err, &pe)

	_, err = lib.SelectSources(agexpr.Query(`name > 1`))
	var ce *agexpr.CompareError
	assert.ErrorAs(t, err, &ce)
}

func TestFreeSources(t *testing.T) {
	lib := loadText(t)
	sel := agexpr.Query(`flux > 0`)

	changed, err := lib.FreeSources(sel, "curvature", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"2AGLJ2301+1339"}, names(changed))
	changed, err = lib.FreeSources(sel, "curvature", 0)
	require.NoError(t, err)
	assert.Empty(t, changed)

	changed, err = lib.FreeSources(agexpr.Query(`dist < 1`), "pos", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"2AGLJ2254+1609", "CENTER"}, names(changed))
	s, _ := lib.Source("CENTER")
	assert.Equal(t, 35, s.Fixflag())

	_, err = lib.FreeSources(sel, "dist", 1)
	var nfe *agsource.NotFreeableError
	assert.ErrorAs(t, err, &nfe)
	_, err = lib.FreeSources(sel, "flux", 2)
	assert.Error(t, err)
}

func TestDeleteBackupRestore(t *testing.T) {
	lib := loadText(t)
	assert.ErrorIs(t, lib.RestoreSL(), aglib.ErrNoBackup)

	lib.BackupSL()
	del, err := lib.DeleteSources(agexpr.Query(`dist > 10`))
	require.NoError(t, err)
	assert.Equal(t, []string{"2AGLJ2021+4029"}, names(del))
	assert.Equal(t, 3, lib.Len())
	_, err = lib.FreeSources(agexpr.Query(`flux > 0`), "flux", 0)
	require.NoError(t, err)

	require.NoError(t, lib.RestoreSL())
	assert.Equal(t, 4, lib.Len())
	s, err := lib.Source("2AGLJ2254+1609")
	require.NoError(t, err)
	f, _ := s.Spectrum.GetFree("flux")
	assert.Equal(t, 1, f, "edits after the backup are undone")
	assert.ErrorIs(t, lib.RestoreSL(), aglib.ErrNoBackup, "backup is consumed")

	lib.Reset()
	assert.Zero(t, lib.Len())
}

func TestUpdateSourcePosition(t *testing.T) {
	lib := loadText(t)
	var re *aglib.RangeError
	require.ErrorAs(t, lib.UpdateSourcePosition("CENTER", 10, 91), &re)
	assert.Equal(t, "glat", re.What)
	require.ErrorAs(t, lib.UpdateSourcePosition("CENTER", -1, 0), &re)
	assert.Equal(t, "glon", re.What)
	var nf *agsource.NotFoundError
	assert.ErrorAs(t, lib.UpdateSourcePosition("NOWHERE", 10, 10), &nf)
	assert.ErrorAs(t, lib.UpdateSourcePosition("NOWHERE", 400, 91), &nf,
		"name is looked up before the position is checked")

	require.NoError(t, lib.UpdateSourcePosition("2AGLJ2254+1609", 93, -10))
	s, _ := lib.Source("2AGLJ2254+1609")
	l, b, _ := s.Pos()
	assert.Equal(t, agparam.Pair{93, -10}, agparam.Pair{l, b})
	d, _ := s.Dist()
	assert.InDelta(t, .9848, d, 1e-4)
	f, _ := s.Spatial.GetFree("pos")
	assert.Equal(t, 1, f)
}

func multi(t *testing.T, name string, l, b float64) *agsource.MultiOutput {
	m := agsource.NewMultiOutput()
	for k, v := range map[string]any{
		"multiName":   name,
		"multiSqrtTS": 5.5,
		"multiFlux":   9.07364e-06,
		"multiIndex":  2.5,
		"multiL":      l,
		"multiB":      b,
		"multiLPeak":  92.41,
		"multiBPeak":  -10.39,
		"multia":      -1,
		"multib":      -1,
		"multiphi":    -1,
	} {
		require.NoError(t, m.Set(k, v), k)
	}
	return m
}

func TestUpdateMulti(t *testing.T) {
	lib := loadText(t)
	s, err := lib.UpdateMulti(multi(t, "2AGLJ2254+1609", 93, -10))
	require.NoError(t, err)
	flux, _ := s.Spectrum.Float("flux")
	assert.Equal(t, 9.07364e-06, flux)
	d, _ := s.Dist()
	assert.InDelta(t, .9848, d, 1e-4)

	_, err = lib.UpdateMulti(multi(t, "NOWHERE", 93, -10))
	var nf *agsource.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestWriteToFile(t *testing.T) {
	dir := t.TempDir()
	prefix := filepath.Join(dir, "out")

	fn, err := newLib(t).WriteToFile(prefix, "txt")
	require.NoError(t, err)
	assert.Empty(t, fn)
	_, err = os.Stat(prefix + ".txt")
	assert.ErrorIs(t, err, os.ErrNotExist)

	lib := loadText(t)
	_, err = lib.WriteToFile(prefix, "fits")
	var fe *aglib.FormatError
	assert.ErrorAs(t, err, &fe)

	fn, err = lib.WriteToFile(prefix, "txt")
	require.NoError(t, err)
	assert.Equal(t, prefix+".txt", fn)
	got, err := os.ReadFile(fn)
	require.NoError(t, err)
	want, err := os.ReadFile("testdata/sources.txt")
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))

	fn, err = lib.WriteToFile(prefix, "xml")
	require.NoError(t, err)
	back := newLib(t)
	_, err = back.LoadSourcesFromFile(fn, aglib.AnyDist, nil)
	require.NoError(t, err)
	require.Equal(t, lib.Len(), back.Len())
	for i, s := range back.Sources() {
		assert.Equal(t, lib.Sources()[i].AgileLine(), s.AgileLine())
	}

	_, err = lib.UpdateMulti(multi(t, "CENTER", -1, -1))
	require.NoError(t, err)
	fn, err = lib.WriteToFile(prefix, "reg")
	require.NoError(t, err)
	reg, err := os.ReadFile(fn)
	require.NoError(t, err)
	assert.Equal(t, agsource.RegionHeader+
		"ellipse(92.41,-10.39,0.5,0.5,0) #color=green width=2 text={CENTER}\n",
		string(reg))
	assert.True(t, strings.HasPrefix(string(reg), "# Region file format: DS9"))
}
