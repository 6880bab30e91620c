// Public domain.

package agsource

// SelectionVars are the variables a selection may use besides spectrum
// parameter names.
var SelectionVars = []string{"name", "flux", "index", "dist", "glon", "glat",
	"locationLimit", "sqrtts"}

// MLEOnly reports whether a selection variable exists only after an MLE
// result has been merged.
func MLEOnly(name string) bool {
	return name == "sqrtts"
}

// Compatible reports whether every variable can be resolved for s.  A
// source without MLE results is incompatible with MLE-only variables.
func (s *Source) Compatible(vars []string) bool {
	if s.Multi != nil {
		return true
	}
	for _, v := range vars {
		if MLEOnly(v) {
			return false
		}
	}
	return true
}

// SelectionValue resolves a selection variable.  MLE results, when present
// and set, take precedence over model values.
func (s *Source) SelectionValue(name string) (any, error) {
	mle := func(field string) (float64, bool) {
		if s.Multi == nil {
			return 0, false
		}
		return s.Multi.Float(field)
	}
	switch name {
	case "name":
		return s.Name, nil
	case "sqrtts":
		if v, ok := mle("multiSqrtTS"); ok {
			return v, nil
		}
		return nil, nil
	case "flux":
		if v, ok := mle("multiFlux"); ok {
			return v, nil
		}
		v, _ := s.Spectrum.Get("flux")
		return v, nil
	case "index":
		if v, ok := mle("multiIndex"); ok {
			return v, nil
		}
		if v, ok := s.Spectrum.Index(); ok {
			return v, nil
		}
		return nil, nil
	case "dist":
		if v, ok := s.Spatial.Dist(); ok {
			return v, nil
		}
		return nil, nil
	case "glon", "glat":
		l, b, ok := s.Pos()
		if !ok {
			return nil, nil
		}
		if name == "glon" {
			return l, nil
		}
		return b, nil
	case "locationLimit":
		return s.Spatial.LocationLimit, nil
	}
	if p, ok := s.Spectrum.Param(name); ok {
		return p.Get(), nil
	}
	if _, ok := spectrumParamNames[name]; ok {
		// declared by another spectrum type
		return nil, nil
	}
	return nil, &NotFoundError{What: "selection variable", Name: name}
}

var spectrumParamNames = func() map[string]bool {
	m := map[string]bool{}
	for _, names := range spectrumParams {
		for _, n := range names {
			m[n] = true
		}
	}
	return m
}()

// SelectionValues resolves every name in vars.
func (s *Source) SelectionValues(vars []string) (map[string]any, error) {
	m := make(map[string]any, len(vars))
	for _, v := range vars {
		x, err := s.SelectionValue(v)
		if err != nil {
			return nil, err
		}
		m[v] = x
	}
	return m, nil
}
