// Public domain.

package agsource

import (
	"github.com/agilescience/agtools/internal/agparam"
)

// MultiFields declares the MLE output fields and their datatypes.
var MultiFields = []struct {
	Name string
	Kind agparam.Kind
}{
	{"multiName", agparam.String},
	{"multiStartL", agparam.Float},
	{"multiStartB", agparam.Float},
	{"multiSqrtTS", agparam.Float},
	{"multiLPeak", agparam.Float},
	{"multiBPeak", agparam.Float},
	{"multiDistFromStartPositionPeak", agparam.Float},
	{"multiL", agparam.Float},
	{"multiB", agparam.Float},
	{"multiDistFromStartPosition", agparam.Float},
	{"multir", agparam.Float},
	{"multia", agparam.Float},
	{"multib", agparam.Float},
	{"multiphi", agparam.Float},
	{"multiCounts", agparam.Float},
	{"multiCountsErr", agparam.Float},
	{"multiCountsUL", agparam.Float},
	{"multiFlux", agparam.Float},
	{"multiFluxErr", agparam.Float},
	{"multiFluxUL", agparam.Float},
	{"multiFluxULBayes", agparam.Float},
	{"multiExp", agparam.Float},
	{"multiExpSpectraCorFactor", agparam.Float},
	{"multiErgLog", agparam.Float},
	{"multiErgLogErr", agparam.Float},
	{"multiErgLogUL", agparam.Float},
	{"multiSensitivity", agparam.Float},
	{"multiIndex", agparam.Float},
	{"multiIndexErr", agparam.Float},
	{"multiPar2", agparam.Float},
	{"multiPar2Err", agparam.Float},
	{"multiPar3", agparam.Float},
	{"multiPar3Err", agparam.Float},
	{"multiFluxPerChannel", agparam.FloatList},
	{"multiFluxPerChannelErr", agparam.FloatList},
	{"multiGalCoeff", agparam.FloatList},
	{"multiGalErr", agparam.FloatList},
	{"multiIsoCoeff", agparam.FloatList},
	{"multiIsoErr", agparam.FloatList},
	{"multiGalZeroCoeff", agparam.FloatList},
	{"multiIsoZeroCoeff", agparam.FloatList},
	{"multiFitStatus1", agparam.Int},
	{"multiFcn1", agparam.Float},
	{"multiLikelihood1", agparam.Float},
	{"multiIndexLimitMin", agparam.Float},
	{"multiIndexLimitMax", agparam.Float},
	{"multiPar2LimitMin", agparam.Float},
	{"multiPar2LimitMax", agparam.Float},
	{"multiPar3LimitMin", agparam.Float},
	{"multiPar3LimitMax", agparam.Float},
	{"multiExpRatio", agparam.Float},
	{"multiNullLikelihood", agparam.Float},
	{"multiEnergyBinMin", agparam.FloatList},
	{"multiEnergyBinMax", agparam.FloatList},
	{"multiExpPerChannel", agparam.FloatList},
	{"multiCountsPerChannel", agparam.FloatList},
	{"multiEmin", agparam.Float},
	{"multiEmax", agparam.Float},
	{"multiFovMin", agparam.Float},
	{"multiFovMax", agparam.Float},
	{"multiAlbedo", agparam.Float},
	{"multiBinSize", agparam.Float},
	{"multiExpStep", agparam.Float},
	{"multiPhaseCode", agparam.Int},
	{"multiTstartTT", agparam.Float},
	{"multiTstopTT", agparam.Float},
	{"multiTstartMJD", agparam.Float},
	{"multiTstopMJD", agparam.Float},
}

// MultiOutput holds the results of one MLE run for one source.
type MultiOutput struct {
	fields map[string]*agparam.Value
}

// NewMultiOutput returns a MultiOutput with every field null.
func NewMultiOutput() *MultiOutput {
	m := &MultiOutput{fields: make(map[string]*agparam.Value, len(MultiFields))}
	for _, f := range MultiFields {
		m.fields[f.Name] = agparam.NewValue(f.Name, f.Kind)
	}
	return m
}

// Value returns the named field.
func (m *MultiOutput) Value(name string) (*agparam.Value, bool) {
	v, ok := m.fields[name]
	return v, ok
}

// Get returns the typed value of the named field.
func (m *MultiOutput) Get(name string) (any, bool) {
	v, ok := m.fields[name]
	if !ok {
		return nil, false
	}
	return v.Get(), true
}

// Float returns a float field if it is set.
func (m *MultiOutput) Float(name string) (float64, bool) {
	v, ok := m.fields[name]
	if !ok {
		return 0, false
	}
	return v.Float()
}

// Set casts and stores a field.
func (m *MultiOutput) Set(name string, raw any) error {
	v, ok := m.fields[name]
	if !ok {
		return &NotFoundError{What: "MLE output field", Name: name}
	}
	return v.Set(raw)
}

// Name returns the source name the result belongs to.
func (m *MultiOutput) Name() string {
	return m.fields["multiName"].String()
}

// Names returns the field names in declaration order.
func (m *MultiOutput) Names() []string {
	n := make([]string, len(MultiFields))
	for i, f := range MultiFields {
		n[i] = f.Name
	}
	return n
}

// ValidPosition reports whether the fit produced a position.  The MLE
// tool writes -1, -1 when it did not.
func (m *MultiOutput) ValidPosition() bool {
	l, okl := m.Float("multiL")
	b, okb := m.Float("multiB")
	return okl && okb && !(l == -1 && b == -1)
}

// Clone returns a deep copy.
func (m *MultiOutput) Clone() *MultiOutput {
	c := &MultiOutput{fields: make(map[string]*agparam.Value, len(m.fields))}
	for k, v := range m.fields {
		c.fields[k] = v.Clone()
	}
	return c
}
