// Public domain.

package aglib

import (
	"bufio"
	"encoding/xml"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/agilescience/agtools/internal/agastro"
	"github.com/agilescience/agtools/internal/agsource"
)

// Catalog is a named source catalog shipped under Options.CatalogDir.
type Catalog struct {
	File string       // relative to the catalog directory
	Band agastro.Band // energy band of the catalog fluxes
}

// Catalogs lists the supported catalogs by name.
var Catalogs = map[string]Catalog{
	"2AGL": {File: filepath.Join("2AGL", "2AGL_2.multi"), Band: agastro.Band{Emin: 100, Emax: 10000}},
}

func catalogNames() []string {
	n := make([]string, 0, len(Catalogs))
	for k := range Catalogs {
		n = append(n, k)
	}
	sort.Strings(n)
	return n
}

// LoadSourcesFromCatalog loads the sources of a named catalog within rng
// of the map center.  Environment variables in Options.CatalogDir are
// expanded.  Fluxes are rescaled when the catalog band differs
// from the analysis band.
func (l *Library) LoadSourcesFromCatalog(name string, rng DistRange) ([]*agsource.Source, error) {
	c, ok := Catalogs[name]
	if !ok {
		return nil, &CatalogError{Name: name, Supported: catalogNames()}
	}
	var scale *agastro.Band
	if c.Band != l.opt.Band {
		scale = &c.Band
	}
	dir := os.ExpandEnv(l.opt.CatalogDir)
	return l.LoadSourcesFromFile(filepath.Join(dir, c.File), rng, scale)
}

var readers = map[string]func(string) ([]*agsource.Source, error){
	".txt":   readText,
	".multi": readText,
	".xml":   readXML,
}

// SourceFormats lists the file extensions LoadSourcesFromFile reads.
var SourceFormats = []string{".multi", ".txt", ".xml"}

// LoadSourcesFromFile loads the sources of an AGILE text (.txt, .multi)
// or XML (.xml) file within rng of the map center, and returns those
// added.  $VAR and ${VAR} in path are expanded from the environment.
//
// If scaleFrom is not nil it is the energy band of the file fluxes, and
// the fluxes of added sources are rescaled to the analysis band.
func (l *Library) LoadSourcesFromFile(path string, rng DistRange, scaleFrom *agastro.Band) ([]*agsource.Source, error) {
	path = os.ExpandEnv(path)
	ext := filepath.Ext(path)
	read, ok := readers[ext]
	if !ok {
		return nil, &FormatError{Path: path, Format: ext, Supported: SourceFormats}
	}
	parsed, err := read(path)
	if err != nil {
		return nil, err
	}
	var added []*agsource.Source
	for _, s := range parsed {
		s.UpdateDistance(l.opt.Center[0], l.opt.Center[1])
		if d, ok := s.Dist(); !ok || !rng.Contains(d) {
			continue
		}
		a, err := l.AddSource(s)
		if err != nil {
			return added, err
		}
		if a == nil {
			continue
		}
		if scaleFrom != nil {
			l.scaleFlux(a, *scaleFrom)
		}
		added = append(added, a)
	}
	l.log.Info("sources loaded", "file", path, "parsed", len(parsed),
		"added", len(added), "dist", rng)
	return added, nil
}

func (l *Library) scaleFlux(s *agsource.Source, from agastro.Band) {
	flux, okf := s.Spectrum.Float("flux")
	index, oki := s.Spectrum.Index()
	if !okf || !oki {
		l.log.Warn("flux not rescaled, missing flux or index", "name", s.Name)
		return
	}
	scaled := agastro.ScaleFlux(flux, index, from, l.opt.Band)
	if _, err := s.Spectrum.Set("flux", scaled); err != nil {
		l.log.Warn("flux not rescaled", "name", s.Name, "err", err)
		return
	}
	l.log.Debug("flux rescaled", "name", s.Name, "from", from, "to", l.opt.Band,
		"flux", flux, "scaled", scaled)
}

func readText(path string) ([]*agsource.Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var r []*agsource.Source
	sc := bufio.NewScanner(f)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		s, err := agsource.ParseAgileLine(line)
		if err != nil {
			return nil, &ParseError{File: path, Line: n, Err: err}
		}
		r = append(r, s)
	}
	if err := sc.Err(); err != nil {
		return nil, &ParseError{File: path, Err: err}
	}
	return r, nil
}

func readXML(path string) ([]*agsource.Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var lib agsource.XMLLibrary
	if err := xml.NewDecoder(f).Decode(&lib); err != nil {
		return nil, &ParseError{File: path, Err: err}
	}
	r := make([]*agsource.Source, 0, len(lib.Sources))
	for _, x := range lib.Sources {
		s, err := agsource.FromXML(x)
		if err != nil {
			return nil, &ParseError{File: path, Err: err}
		}
		r = append(r, s)
	}
	return r, nil
}
