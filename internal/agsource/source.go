// Public domain.

// Package agsource models AGILE sources: a spectral model, a spatial model,
// and optionally the results of a maximum likelihood run.
//
// Parameters are addressed by name through explicit lookup tables; a name
// a component does not declare is reported as not found rather than
// panicking.
package agsource

import (
	"github.com/agilescience/agtools/internal/agparam"
)

// FreeableParams lists every parameter name that may be freed for a fit.
var FreeableParams = []string{
	"flux", "index", "index1", "index2",
	"cutoffEnergy", "pivotEnergy", "curvature", "pos",
}

func freeable(name string) bool {
	for _, n := range FreeableParams {
		if n == name {
			return true
		}
	}
	return false
}

// Source is a catalog entry.
type Source struct {
	Name     string
	Type     string
	Spectrum *Spectrum
	Spatial  *SpatialModel
	Multi    *MultiOutput // nil until an MLE result is merged

	// state before the first change, for pre-fit reporting
	initSpectrum *Spectrum
	initSpatial  *SpatialModel
}

// New returns a point source with spectrum type st and null parameters.
func New(name string, st SpectrumType) *Source {
	return &Source{
		Name:     name,
		Type:     PointSourceType,
		Spectrum: NewSpectrum(st),
		Spatial:  NewPointSource(),
	}
}

func (s *Source) snapshot() {
	if s.initSpectrum == nil {
		s.initSpectrum = s.Spectrum.Clone()
		s.initSpatial = s.Spatial.Clone()
	}
}

// Initial returns the spectrum and spatial model as they were before the
// first change made through Source methods.
func (s *Source) Initial() (*Spectrum, *SpatialModel) {
	if s.initSpectrum == nil {
		return s.Spectrum, s.Spatial
	}
	return s.initSpectrum, s.initSpatial
}

// Pos returns the position in galactic degrees.
func (s *Source) Pos() (l, b float64, ok bool) { return s.Spatial.Pos() }

// Dist returns the distance from the map center.
func (s *Source) Dist() (float64, bool) { return s.Spatial.Dist() }

// GetFreeParams returns free parameter names, spectrum first then spatial.
func (s *Source) GetFreeParams() []string {
	return append(s.Spectrum.FreeParams(), s.Spatial.FreeParams()...)
}

// SetFreeAttributeValueOf sets the free flag of a parameter, reporting
// whether it changed.
//
// Names outside FreeableParams fail with NotFreeableError.  A freeable name
// the source's spectrum does not have fails with NotFoundError.
func (s *Source) SetFreeAttributeValueOf(name string, flag int) (bool, error) {
	if !freeable(name) {
		return false, &NotFreeableError{Param: name,
			Allowed: append([]string(nil), FreeableParams...)}
	}
	var changed, found bool
	var err error
	if name == "pos" {
		changed, found, err = s.Spatial.SetFree(name, flag)
	} else {
		changed, found, err = s.Spectrum.SetFree(name, flag)
	}
	if !found {
		return false, &NotFoundError{What: "parameter", Name: name,
			Owner: s.Spectrum.Type.String() + " spectrum of " + s.Name}
	}
	return changed, err
}

// CheckFree returns the error SetFreeAttributeValueOf gives for name and
// flag on a source whose spectrum declares name.
func CheckFree(name string, flag int) error {
	if !freeable(name) {
		return &NotFreeableError{Param: name,
			Allowed: append([]string(nil), FreeableParams...)}
	}
	k := agparam.Float
	if name == "pos" {
		k = agparam.Tuple
	}
	_, err := agparam.NewParam(name, k).SetFree(flag)
	return err
}

// SetPosition replaces the position, keeping its free flag, and recomputes
// the distance from map center (cl, cb).
func (s *Source) SetPosition(l, b, cl, cb float64) {
	s.snapshot()
	s.Spatial.SetPos(l, b)
	s.Spatial.UpdateDist(cl, cb)
}

// UpdateDistance recomputes the distance from map center (cl, cb).
func (s *Source) UpdateDistance(cl, cb float64) {
	s.Spatial.UpdateDist(cl, cb)
}

// spectrum parameter -> MLE value and error fields
var mleFields = map[string][2]string{
	"flux":         {"multiFlux", "multiFluxErr"},
	"index":        {"multiIndex", "multiIndexErr"},
	"index1":       {"multiIndex", "multiIndexErr"},
	"cutoffEnergy": {"multiPar2", "multiPar2Err"},
	"pivotEnergy":  {"multiPar2", "multiPar2Err"},
	"index2":       {"multiPar3", "multiPar3Err"},
	"curvature":    {"multiPar3", "multiPar3Err"},
}

// MergeMLE attaches an MLE result and copies fitted values into the
// currently free spectrum parameters.  The position is replaced only if
// the result has a valid one, in which case the distance from map center
// (cl, cb) is recomputed.  Reports whether the position changed.
func (s *Source) MergeMLE(m *MultiOutput, cl, cb float64) (posChanged bool, err error) {
	s.snapshot()
	s.Multi = m
	for _, name := range s.Spectrum.FreeParams() {
		f, ok := mleFields[name]
		if !ok {
			continue
		}
		v, ok := m.Float(f[0])
		if !ok {
			continue
		}
		p, _ := s.Spectrum.Param(name)
		if err := p.Set(v); err != nil {
			return false, err
		}
		if e, ok := m.Float(f[1]); ok {
			p.Err = agparam.F(e)
		}
	}
	if !m.ValidPosition() {
		return false, nil
	}
	l, _ := m.Float("multiL")
	b, _ := m.Float("multiB")
	ol, ob, _ := s.Pos()
	s.Spatial.SetPos(l, b)
	s.Spatial.UpdateDist(cl, cb)
	return l != ol || b != ob, nil
}

// Clone returns a deep copy.
func (s *Source) Clone() *Source {
	c := &Source{
		Name:     s.Name,
		Type:     s.Type,
		Spectrum: s.Spectrum.Clone(),
		Spatial:  s.Spatial.Clone(),
	}
	if s.Multi != nil {
		c.Multi = s.Multi.Clone()
	}
	if s.initSpectrum != nil {
		c.initSpectrum = s.initSpectrum.Clone()
		c.initSpatial = s.initSpatial.Clone()
	}
	return c
}
