// Public domain.

package agsource

import (
	"fmt"
	"strings"

	"github.com/agilescience/agtools/internal/agastro"
	"github.com/agilescience/agtools/internal/agparam"
)

// Describe returns a multi-line report of s.  Values changed since the
// first change to s are shown as initial -> current.
func (s *Source) Describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Source %s (%s, %s)\n", s.Name, s.Type, s.Spectrum.Type)

	initSp, initSm := s.Initial()
	for _, p := range s.Spectrum.params {
		ip, _ := initSp.Param(p.Name)
		fmt.Fprintf(&b, "  %-13s %s", p.Name, change(ip.String(), p.String()))
		if p.Err != nil {
			fmt.Fprintf(&b, " +/- %s", agparam.FormatFloat(*p.Err))
		}
		if p.Free != agparam.Fixed {
			b.WriteString("  free")
		}
		b.WriteByte('\n')
	}

	il, ib, _ := initSm.Pos()
	if l, lb, ok := s.Pos(); ok {
		fmt.Fprintf(&b, "  %-13s %s", "pos", change(
			agparam.Pair{il, ib}.String(), agparam.Pair{l, lb}.String()))
		if f, _ := s.Spatial.GetFree("pos"); f != agparam.Fixed {
			fmt.Fprintf(&b, "  free(%d)", f)
		}
		ra, dec := agastro.GalToEquaJ2000(l, lb)
		fmt.Fprintf(&b, "\n  %-13s %s\n  %-13s RA %.4f Dec %.4f\n",
			"", agastro.FmtPos(l, lb), "J2000", ra, dec)
	}
	if d, ok := s.Dist(); ok {
		fmt.Fprintf(&b, "  %-13s %.4f deg\n", "dist", d)
	}
	fmt.Fprintf(&b, "  %-13s %d\n", "locationLimit", s.Spatial.LocationLimit)
	if s.Multi != nil {
		if v, ok := s.Multi.Float("multiSqrtTS"); ok {
			fmt.Fprintf(&b, "  %-13s %s\n", "sqrt(TS)", agparam.FormatFloat(v))
		}
		if v, ok := s.Multi.Float("multiFluxUL"); ok {
			fmt.Fprintf(&b, "  %-13s %s\n", "flux UL", agparam.FormatFloat(v))
		}
	}
	return b.String()
}

func change(from, to string) string {
	if from == to {
		return to
	}
	return from + " -> " + to
}
