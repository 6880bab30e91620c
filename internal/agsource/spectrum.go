// Public domain.

package agsource

import (
	"strconv"

	"github.com/agilescience/agtools/internal/agparam"
)

// SpectrumType identifies a spectral model.  The numeric value is the code
// used in the spectrum type column of AGILE text source files.
type SpectrumType int

const (
	PowerLaw SpectrumType = iota
	PLExpCutoff
	PLSuperExpCutoff
	LogParabola
)

var spectrumTypeNames = [...]string{
	PowerLaw:         "PowerLaw",
	PLExpCutoff:      "PLExpCutoff",
	PLSuperExpCutoff: "PLSuperExpCutoff",
	LogParabola:      "LogParabola",
}

// parameter names by spectrum type, in declaration order.
var spectrumParams = [...][]string{
	PowerLaw:         {"flux", "index"},
	PLExpCutoff:      {"flux", "index", "cutoffEnergy"},
	PLSuperExpCutoff: {"flux", "index1", "cutoffEnergy", "index2"},
	LogParabola:      {"flux", "index", "pivotEnergy", "curvature"},
}

func (t SpectrumType) String() string {
	if t < 0 || int(t) >= len(spectrumTypeNames) {
		return "SpectrumType(" + strconv.Itoa(int(t)) + ")"
	}
	return spectrumTypeNames[t]
}

// SpectrumTypes returns the supported type names.
func SpectrumTypes() []string {
	return append([]string(nil), spectrumTypeNames[:]...)
}

// ParseSpectrumType looks up a spectrum type by name.
func ParseSpectrumType(s string) (SpectrumType, error) {
	for t, n := range spectrumTypeNames {
		if n == s {
			return SpectrumType(t), nil
		}
	}
	return 0, &TypeNotFoundError{What: "spectrum", Name: s, Supported: SpectrumTypes()}
}

// SpectrumTypeFromCode looks up a spectrum type by AGILE code.
func SpectrumTypeFromCode(code int) (SpectrumType, error) {
	if code < 0 || code >= len(spectrumTypeNames) {
		return 0, &TypeNotFoundError{What: "spectrum", Name: strconv.Itoa(code),
			Supported: SpectrumTypes()}
	}
	return SpectrumType(code), nil
}

// ParamNames returns the parameter names of spectrum type t in
// declaration order.  These are the only names a Spectrum of type t
// answers to.
func ParamNames(t SpectrumType) []string {
	return append([]string(nil), spectrumParams[t]...)
}

// Spectrum is a spectral model, one of the SpectrumType variants.
type Spectrum struct {
	Type   SpectrumType
	params []*agparam.Param
}

// NewSpectrum returns a spectrum of type t with null parameters.
func NewSpectrum(t SpectrumType) *Spectrum {
	s := &Spectrum{Type: t}
	for _, n := range spectrumParams[t] {
		s.params = append(s.params, agparam.NewParam(n, agparam.Float))
	}
	return s
}

// Params returns the parameters in declaration order.
func (s *Spectrum) Params() []*agparam.Param { return s.params }

// Param looks up a parameter by name.
func (s *Spectrum) Param(name string) (*agparam.Param, bool) {
	for _, p := range s.params {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// Get returns the value of the named parameter.
func (s *Spectrum) Get(name string) (any, bool) {
	p, ok := s.Param(name)
	if !ok {
		return nil, false
	}
	return p.Get(), true
}

// Float returns the value of the named parameter if it is set.
func (s *Spectrum) Float(name string) (float64, bool) {
	p, ok := s.Param(name)
	if !ok {
		return 0, false
	}
	return p.Float()
}

// Set casts and stores the value of the named parameter.  Found is false
// if the spectrum has no such parameter.
func (s *Spectrum) Set(name string, raw any) (found bool, err error) {
	p, ok := s.Param(name)
	if !ok {
		return false, nil
	}
	return true, p.Set(raw)
}

// GetFree returns the free flag of the named parameter.
func (s *Spectrum) GetFree(name string) (int, bool) {
	p, ok := s.Param(name)
	if !ok {
		return 0, false
	}
	return p.Free, true
}

// SetFree sets the free flag of the named parameter.
func (s *Spectrum) SetFree(name string, flag int) (changed, found bool, err error) {
	p, ok := s.Param(name)
	if !ok {
		return false, false, nil
	}
	changed, err = p.SetFree(flag)
	return changed, true, err
}

// FreeParams returns the names of free parameters in declaration order.
func (s *Spectrum) FreeParams() []string {
	var f []string
	for _, p := range s.params {
		if p.Free != agparam.Fixed {
			f = append(f, p.Name)
		}
	}
	return f
}

// indexName, par2Name, par3Name map the positional AGILE spectrum columns
// to parameter names.  Empty means the type has no such parameter.
func (s *Spectrum) indexName() string {
	if s.Type == PLSuperExpCutoff {
		return "index1"
	}
	return "index"
}

func (s *Spectrum) par2Name() string {
	switch s.Type {
	case PLExpCutoff, PLSuperExpCutoff:
		return "cutoffEnergy"
	case LogParabola:
		return "pivotEnergy"
	}
	return ""
}

func (s *Spectrum) par3Name() string {
	switch s.Type {
	case PLSuperExpCutoff:
		return "index2"
	case LogParabola:
		return "curvature"
	}
	return ""
}

// Index returns the photon index, index1 for PLSuperExpCutoff.
func (s *Spectrum) Index() (float64, bool) {
	return s.Float(s.indexName())
}

// Clone returns a deep copy.
func (s *Spectrum) Clone() *Spectrum {
	c := &Spectrum{Type: s.Type, params: make([]*agparam.Param, len(s.params))}
	for i, p := range s.params {
		c.params[i] = p.Clone()
	}
	return c
}
