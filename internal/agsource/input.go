// Public domain.

package agsource

import (
	"errors"
	"fmt"
	"sort"

	"github.com/agilescience/agtools/internal/agparam"
)

// Input is a source to add to a library: either a *Source or a SourceSpec.
type Input interface {
	isInput()
}

func (*Source) isInput()   {}
func (SourceSpec) isInput() {}

// SourceSpec describes a point source by value.
type SourceSpec struct {
	Name          string
	Spectrum      string         // spectrum type name, PowerLaw if empty
	Params        map[string]any // spectrum parameter values by name
	Pos           agparam.Pair
	LocationLimit int
	Free          map[string]int // free flags by parameter name, pos included
}

// Build returns the source for in.  A *Source is returned as is.
func Build(in Input) (*Source, error) {
	switch in := in.(type) {
	case *Source:
		return in, nil
	case SourceSpec:
		return in.build()
	}
	return nil, fmt.Errorf("unsupported source input %T", in)
}

func (sp SourceSpec) build() (*Source, error) {
	if sp.Name == "" {
		return nil, errors.New("SourceSpec has no name")
	}
	st := PowerLaw
	if sp.Spectrum != "" {
		var err error
		if st, err = ParseSpectrumType(sp.Spectrum); err != nil {
			return nil, err
		}
	}
	s := New(sp.Name, st)
	for _, name := range sortedKeys(sp.Params) {
		found, err := s.Spectrum.Set(name, sp.Params[name])
		if !found {
			return nil, &NotFoundError{What: "parameter", Name: name,
				Owner: st.String() + " spectrum of " + sp.Name}
		}
		if err != nil {
			return nil, err
		}
	}
	s.Spatial.SetPos(sp.Pos[0], sp.Pos[1])
	s.Spatial.LocationLimit = sp.LocationLimit
	for _, name := range sortedKeys(sp.Free) {
		if _, err := s.SetFreeAttributeValueOf(name, sp.Free[name]); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func sortedKeys[V any](m map[string]V) []string {
	k := make([]string, 0, len(m))
	for n := range m {
		k = append(k, n)
	}
	sort.Strings(k)
	return k
}
