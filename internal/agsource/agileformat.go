// Public domain.

package agsource

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agilescience/agtools/internal/agparam"
)

// AgileFields is the number of whitespace separated fields of a source in
// the AGILE text format:
//
//	flux glon glat index fixflag 2 name locationLimit spectrumType
//	par2 par3 indexMin indexMax par2Min par2Max par3Min par3Max
//
// par2 is cutoffEnergy or pivotEnergy, par3 is index2 or curvature, by
// spectrum type.  The 2 column is the minimum sqrt(TS) of the MLE tool and
// is always written as 2.
const AgileFields = 17

// Bounds written when a parameter has none.
var (
	defaultIndexBounds = [2]float64{.5, 5}
	defaultPar2Bounds  = [2]float64{20, 10000}
	defaultPar3Bounds  = [2]float64{0, 100}
)

// Flags are the free flags carried by a fixflag.
type Flags struct {
	Flux, Pos, Index, Par2, Par3 int
}

// DecodeFixflag decodes a fixflag.
//
// Bits, least significant first: flux, pos, index, par2, par3, and pos
// flag 2.  Two values are special: 0 fixes everything, 32 frees only the
// position, with flag 2.
func DecodeFixflag(ff int) (Flags, error) {
	switch {
	case ff < 0 || ff > 63:
		return Flags{}, fmt.Errorf("fixflag %d out of range 0..63", ff)
	case ff == 0:
		return Flags{}, nil
	case ff == 32:
		return Flags{Pos: agparam.FreeFlag}, nil
	}
	var bit [6]int
	for i := range bit {
		bit[i] = ff >> i & 1
	}
	f := Flags{Flux: bit[0], Pos: bit[1], Index: bit[2], Par2: bit[3], Par3: bit[4]}
	if bit[5] == 1 {
		f.Pos = agparam.FreeFlag
	}
	return f, nil
}

// EncodeFixflag encodes flags as a fixflag.
//
// A fixed flux forces 0, other flags are dropped, except that a position
// with flag 2 then encodes as 32.
func EncodeFixflag(f Flags) int {
	if f.Flux == 0 {
		if f.Pos == agparam.FreeFlag {
			return 32
		}
		return 0
	}
	ff := 1
	if f.Pos != agparam.Fixed {
		ff |= 2
	}
	if f.Pos == agparam.FreeFlag {
		ff |= 32
	}
	return ff | f.Index<<2 | f.Par2<<3 | f.Par3<<4
}

// Flags returns the free flags of s in fixflag terms.
func (s *Source) Flags() Flags {
	free := func(name string) int {
		if name == "" {
			return 0
		}
		f, _ := s.Spectrum.GetFree(name)
		return f
	}
	sp := s.Spectrum
	f := Flags{
		Flux:  free("flux"),
		Index: free(sp.indexName()),
		Par2:  free(sp.par2Name()),
		Par3:  free(sp.par3Name()),
	}
	f.Pos, _ = s.Spatial.GetFree("pos")
	return f
}

// Fixflag returns the fixflag of s.
func (s *Source) Fixflag() int { return EncodeFixflag(s.Flags()) }

// ParseAgileLine parses one source in the AGILE text format.
func ParseAgileLine(line string) (*Source, error) {
	f := strings.Fields(line)
	if len(f) != AgileFields {
		return nil, fmt.Errorf("%d fields, want %d", len(f), AgileFields)
	}
	var fl [AgileFields]float64
	for _, i := range []int{0, 1, 2, 3, 9, 10, 11, 12, 13, 14, 15, 16} {
		v, err := strconv.ParseFloat(f[i], 64)
		if err != nil {
			return nil, fmt.Errorf("field %d (%s): %w", i+1, f[i], err)
		}
		fl[i] = v
	}
	var in [AgileFields]int
	for _, i := range []int{4, 7, 8} {
		v, err := strconv.Atoi(f[i])
		if err != nil {
			return nil, fmt.Errorf("field %d (%s): %w", i+1, f[i], err)
		}
		in[i] = v
	}
	st, err := SpectrumTypeFromCode(in[8])
	if err != nil {
		return nil, err
	}
	flags, err := DecodeFixflag(in[4])
	if err != nil {
		return nil, err
	}

	s := New(f[6], st)
	sp := s.Spectrum
	set := func(name string, v float64, free int, bounds *[2]float64) {
		p, _ := sp.Param(name)
		_ = p.Set(v) // float64 casts to Float
		p.Free = free
		if bounds != nil {
			p.Min = agparam.F(bounds[0])
			p.Max = agparam.F(bounds[1])
		}
	}
	set("flux", fl[0], flags.Flux, nil)
	set(sp.indexName(), fl[3], flags.Index, &[2]float64{fl[11], fl[12]})
	if n := sp.par2Name(); n != "" {
		set(n, fl[9], flags.Par2, &[2]float64{fl[13], fl[14]})
	}
	if n := sp.par3Name(); n != "" {
		set(n, fl[10], flags.Par3, &[2]float64{fl[15], fl[16]})
	}
	s.Spatial.SetPos(fl[1], fl[2])
	s.Spatial.pos.Free = flags.Pos
	s.Spatial.LocationLimit = in[7]
	return s, nil
}

// AgileLine formats s in the AGILE text format.  Parameters a spectrum type
// does not have are written as 0 with default bounds.
func (s *Source) AgileLine() string {
	sp := s.Spectrum
	val := func(name string) string {
		if name == "" {
			return "0"
		}
		v, ok := sp.Float(name)
		if !ok {
			return "0"
		}
		return agparam.FormatFloat(v)
	}
	bounds := func(name string, def [2]float64) string {
		b := def
		if p, ok := sp.Param(name); ok {
			if p.Min != nil {
				b[0] = *p.Min
			}
			if p.Max != nil {
				b[1] = *p.Max
			}
		}
		return agparam.FormatFloat(b[0]) + " " + agparam.FormatFloat(b[1])
	}
	l, b, _ := s.Pos()
	return strings.Join([]string{
		val("flux"),
		agparam.FormatFloat(l),
		agparam.FormatFloat(b),
		val(sp.indexName()),
		strconv.Itoa(s.Fixflag()),
		"2",
		s.Name,
		strconv.Itoa(s.Spatial.LocationLimit),
		strconv.Itoa(int(sp.Type)),
		val(sp.par2Name()),
		val(sp.par3Name()),
		bounds(sp.indexName(), defaultIndexBounds),
		bounds(sp.par2Name(), defaultPar2Bounds),
		bounds(sp.par3Name(), defaultPar3Bounds),
	}, " ")
}
