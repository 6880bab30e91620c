// Public domain.

// Package agmle reads the .source result file the AGILE maximum likelihood
// tool writes for each fitted source.
//
// The file has no header or field names.  After removing comment lines,
// which start with '!', and blank lines, exactly 17 lines remain.  Tokens
// are separated by white space.  A token "min..max" stands for two values,
// a comma separated token for one list value.  A token of comma separated
// ranges, "a..b,c..d", stands for two lists, the mins and the maxes.
// Flattened, the 17 lines hold 128 values, addressed by offset.
package agmle

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/agilescience/agtools/internal/agsource"
)

// Values is the number of values in a .source file.
const Values = 128

// number of values on each body line
var lineValues = [17]int{26, 11, 1, 3, 7, 5, 8, 6, 6, 2, 4, 2, 13, 6, 9, 4, 15}

// Offsets maps value offsets to MultiOutput field names.  Offsets not
// listed are not kept.
var Offsets = map[int]string{
	0:   "multiName",
	5:   "multiStartL",
	6:   "multiStartB",
	37:  "multiSqrtTS",
	38:  "multiLPeak",
	39:  "multiBPeak",
	40:  "multiDistFromStartPositionPeak",
	41:  "multiL",
	42:  "multiB",
	43:  "multiDistFromStartPosition",
	44:  "multir",
	45:  "multia",
	46:  "multib",
	47:  "multiphi",
	48:  "multiCounts",
	49:  "multiCountsErr",
	52:  "multiCountsUL",
	53:  "multiFlux",
	54:  "multiFluxErr",
	57:  "multiFluxUL",
	58:  "multiFluxULBayes",
	59:  "multiExp",
	60:  "multiExpSpectraCorFactor",
	61:  "multiErgLog",
	62:  "multiErgLogErr",
	65:  "multiErgLogUL",
	66:  "multiSensitivity",
	67:  "multiIndex",
	68:  "multiIndexErr",
	69:  "multiPar2",
	70:  "multiPar2Err",
	71:  "multiPar3",
	72:  "multiPar3Err",
	73:  "multiFluxPerChannel",
	74:  "multiFluxPerChannelErr",
	75:  "multiGalCoeff",
	76:  "multiGalErr",
	77:  "multiIsoCoeff",
	78:  "multiIsoErr",
	79:  "multiGalZeroCoeff",
	80:  "multiIsoZeroCoeff",
	87:  "multiFitStatus1",
	88:  "multiFcn1",
	93:  "multiLikelihood1",
	94:  "multiIndexLimitMin",
	95:  "multiIndexLimitMax",
	96:  "multiPar2LimitMin",
	97:  "multiPar2LimitMax",
	98:  "multiPar3LimitMin",
	99:  "multiPar3LimitMax",
	100: "multiExpRatio",
	101: "multiNullLikelihood",
	109: "multiEnergyBinMin",
	110: "multiEnergyBinMax",
	111: "multiExpPerChannel",
	112: "multiCountsPerChannel",
	113: "multiEmin",
	114: "multiEmax",
	115: "multiFovMin",
	116: "multiFovMax",
	117: "multiAlbedo",
	118: "multiBinSize",
	119: "multiExpStep",
	120: "multiPhaseCode",
	121: "multiTstartTT",
	122: "multiTstopTT",
	123: "multiTstartMJD",
	124: "multiTstopMJD",
}

// FormatError reports a malformed .source file.
type FormatError struct {
	File string // empty when reading from a reader
	Line int    // physical line number, 0 if not specific to a line
	Msg  string
	Err  error
}

func (e *FormatError) Error() string {
	var b strings.Builder
	b.WriteString("mle output")
	if e.File != "" {
		b.WriteString(" " + e.File)
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, " line %d", e.Line)
	}
	b.WriteString(": " + e.Msg)
	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	return b.String()
}

func (e *FormatError) Unwrap() error { return e.Err }

// split expands one token into its values.
func split(tok string) []string {
	if !strings.Contains(tok, "..") {
		return []string{tok}
	}
	var lo, hi []string
	for _, r := range strings.Split(tok, ",") {
		a, b, _ := strings.Cut(r, "..")
		lo = append(lo, a)
		hi = append(hi, b)
	}
	return []string{strings.Join(lo, ","), strings.Join(hi, ",")}
}

// ParseFile reads the .source file fn, after expanding environment
// variables in the name.
func ParseFile(fn string) (*agsource.MultiOutput, error) {
	fn = os.ExpandEnv(fn)
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := Parse(f)
	if fe, ok := err.(*FormatError); ok {
		fe.File = fn
	}
	return m, err
}

// Parse reads a .source file.
func Parse(r io.Reader) (*agsource.MultiOutput, error) {
	var vals []string
	var lineAt [Values]int // physical line of each value
	body := 0
	s := bufio.NewScanner(r)
	for n := 1; s.Scan(); n++ {
		line := strings.TrimSpace(s.Text())
		if line == "" || line[0] == '!' {
			continue
		}
		if body == len(lineValues) {
			return nil, &FormatError{Line: n,
				Msg: fmt.Sprintf("more than %d lines", len(lineValues))}
		}
		var lv []string
		for _, tok := range strings.Fields(line) {
			lv = append(lv, split(tok)...)
		}
		if len(lv) != lineValues[body] {
			return nil, &FormatError{Line: n, Msg: fmt.Sprintf(
				"%d values, want %d", len(lv), lineValues[body])}
		}
		for i := range lv {
			lineAt[len(vals)+i] = n
		}
		vals = append(vals, lv...)
		body++
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	if body != len(lineValues) {
		return nil, &FormatError{
			Msg: fmt.Sprintf("%d lines, want %d", body, len(lineValues))}
	}

	m := agsource.NewMultiOutput()
	for _, off := range offsets() {
		name := Offsets[off]
		if err := m.Set(name, vals[off]); err != nil {
			return nil, &FormatError{Line: lineAt[off],
				Msg: fmt.Sprintf("value %d (%s)", off, name), Err: err}
		}
	}
	return m, nil
}

func offsets() []int {
	o := make([]int, 0, len(Offsets))
	for off := range Offsets {
		o = append(o, off)
	}
	sort.Ints(o)
	return o
}
