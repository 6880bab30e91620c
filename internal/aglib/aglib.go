// Public domain.

// Package aglib is the sources library of an analysis session: an ordered
// collection of sources, unique by name.
//
// A Library is owned by one goroutine.  None of its methods lock; callers
// sharing a Library must serialize access themselves.
package aglib

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/agilescience/agtools/internal/agastro"
	"github.com/agilescience/agtools/internal/agexpr"
	"github.com/agilescience/agtools/internal/agparam"
	"github.com/agilescience/agtools/internal/agsource"
)

// Options are the session settings a library depends on.
type Options struct {
	Band       agastro.Band // analysis energy band, MeV
	Center     agparam.Pair // map center, galactic degrees
	CatalogDir string       // root of the catalog files
}

// DistRange is an inclusive range of distances from the map center, in
// degrees.
type DistRange struct{ Lo, Hi float64 }

// AnyDist accepts every source.
var AnyDist = DistRange{0, math.Inf(1)}

// Contains reports whether d is in r.
func (r DistRange) Contains(d float64) bool { return d >= r.Lo && d <= r.Hi }

// Library is the sources library.
type Library struct {
	opt     Options
	log     *slog.Logger
	sources []*agsource.Source
	backup  []*agsource.Source
}

// New returns an empty library.
func New(opt Options, logger *slog.Logger) *Library {
	return &Library{opt: opt, log: logger}
}

// Options returns the settings the library was created with.
func (l *Library) Options() Options { return l.opt }

// Sources returns the sources in library order.  The slice is a copy; the
// sources are not.
func (l *Library) Sources() []*agsource.Source {
	return append([]*agsource.Source(nil), l.sources...)
}

// Len returns the number of sources.
func (l *Library) Len() int { return len(l.sources) }

func (l *Library) find(name string) int {
	for i, s := range l.sources {
		if s.Name == name {
			return i
		}
	}
	return -1
}

// Source returns the source with the given name.
func (l *Library) Source(name string) (*agsource.Source, error) {
	i := l.find(name)
	if i < 0 {
		return nil, &agsource.NotFoundError{What: "source", Name: name,
			Owner: "sources library"}
	}
	return l.sources[i], nil
}

// AddSource builds and adds a source, computing its distance from the map
// center.  A source whose name is already in the library is not added; a
// warning is logged and the result is nil with no error.
func (l *Library) AddSource(in agsource.Input) (*agsource.Source, error) {
	s, err := agsource.Build(in)
	if err != nil {
		return nil, err
	}
	if l.find(s.Name) >= 0 {
		l.log.Warn("source already in library, not added", "name", s.Name)
		return nil, nil
	}
	s.UpdateDistance(l.opt.Center[0], l.opt.Center[1])
	l.sources = append(l.sources, s)
	l.log.Debug("source added", "name", s.Name)
	return s, nil
}

// SelectSources returns the sources matching sel, in library order.
//
// Sources without MLE results are skipped, with a warning, if sel reads
// a variable that exists only after a fit.  Sources with no value for a
// variable, such as a parameter of another spectrum type, are skipped.
func (l *Library) SelectSources(sel agexpr.Selection) ([]*agsource.Source, error) {
	m, err := agexpr.Compile(sel)
	if err != nil {
		return nil, err
	}
	vars := m.Vars()
	var r []*agsource.Source
	for _, s := range l.sources {
		if !s.Compatible(vars) {
			l.log.Warn("source has no MLE results, skipped by selection",
				"name", s.Name, "vars", vars)
			continue
		}
		v, err := s.SelectionValues(vars)
		if err != nil {
			return nil, err
		}
		if n := nullVar(v); n != "" {
			l.log.Debug("source has no value for selection variable, skipped",
				"name", s.Name, "var", n)
			continue
		}
		ok, err := m.Match(v)
		if err != nil {
			return nil, fmt.Errorf("source %s: %w", s.Name, err)
		}
		if ok {
			r = append(r, s)
		}
	}
	return r, nil
}

func nullVar(v map[string]any) string {
	for k, x := range v {
		if x == nil {
			return k
		}
	}
	return ""
}

// FreeSources sets the free flag of param on the sources matching sel.
// It returns the sources whose flag changed.  Matching sources whose
// spectrum has no such parameter are left alone.
func (l *Library) FreeSources(sel agexpr.Selection, param string, flag int) ([]*agsource.Source, error) {
	if err := agsource.CheckFree(param, flag); err != nil {
		return nil, err
	}
	matched, err := l.SelectSources(sel)
	if err != nil {
		return nil, err
	}
	var changed []*agsource.Source
	for _, s := range matched {
		c, err := s.SetFreeAttributeValueOf(param, flag)
		switch err.(type) {
		case nil:
		case *agsource.NotFoundError:
			l.log.Debug("parameter not in spectrum", "name", s.Name, "param", param)
			continue
		default:
			return changed, err
		}
		if c {
			changed = append(changed, s)
		}
	}
	return changed, nil
}

// DeleteSources removes the sources matching sel and returns them.
func (l *Library) DeleteSources(sel agexpr.Selection) ([]*agsource.Source, error) {
	matched, err := l.SelectSources(sel)
	if err != nil || len(matched) == 0 {
		return nil, err
	}
	del := make(map[*agsource.Source]bool, len(matched))
	for _, s := range matched {
		del[s] = true
	}
	keep := l.sources[:0]
	for _, s := range l.sources {
		if !del[s] {
			keep = append(keep, s)
		}
	}
	for i := len(keep); i < len(l.sources); i++ {
		l.sources[i] = nil
	}
	l.sources = keep
	return matched, nil
}

// UpdateSourcePosition moves the named source, keeping the free flag of
// its position, and recomputes its distance from the map center.
func (l *Library) UpdateSourcePosition(name string, glon, glat float64) error {
	s, err := l.Source(name)
	if err != nil {
		return err
	}
	if glat < -90 || glat > 90 {
		return &RangeError{What: "glat", Value: glat, Min: -90, Max: 90}
	}
	if glon < 0 || glon > 360 {
		return &RangeError{What: "glon", Value: glon, Min: 0, Max: 360}
	}
	s.SetPosition(glon, glat, l.opt.Center[0], l.opt.Center[1])
	return nil
}

// UpdateMulti merges an MLE result into the source it names.
func (l *Library) UpdateMulti(m *agsource.MultiOutput) (*agsource.Source, error) {
	s, err := l.Source(m.Name())
	if err != nil {
		return nil, err
	}
	moved, err := s.MergeMLE(m, l.opt.Center[0], l.opt.Center[1])
	if err != nil {
		return nil, fmt.Errorf("source %s: %w", s.Name, err)
	}
	if moved {
		gl, gb, _ := s.Pos()
		l.log.Info("source position updated from MLE", "name", s.Name,
			"glon", gl, "glat", gb)
	}
	return s, nil
}

// BackupSL saves a deep copy of the sources, replacing any earlier backup.
func (l *Library) BackupSL() {
	l.backup = make([]*agsource.Source, len(l.sources))
	for i, s := range l.sources {
		l.backup[i] = s.Clone()
	}
}

// RestoreSL replaces the sources with the last backup, which is consumed.
func (l *Library) RestoreSL() error {
	if l.backup == nil {
		return ErrNoBackup
	}
	l.sources, l.backup = l.backup, nil
	return nil
}

// Reset empties the library and drops any backup.
func (l *Library) Reset() {
	l.sources = nil
	l.backup = nil
}
