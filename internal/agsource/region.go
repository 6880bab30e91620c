// Public domain.

package agsource

import (
	"fmt"

	"github.com/agilescience/agtools/internal/agparam"
)

// RegionHeader starts a DS9 region file of RegionLine lines.
const RegionHeader = "# Region file format: DS9 version 4.1\ngalactic\n"

// placeholder ellipse semi-axes in degrees, for results without a
// position fit
const peakRadius = .5

// RegionLine returns the DS9 ellipse of the MLE confidence contour of s.
// If the fit produced no contour, all of L, B, a, b, phi -1, the ellipse is
// a placeholder circle at the peak position.  Ok is false if s has no MLE
// result.
func (s *Source) RegionLine() (line string, ok bool) {
	if s.Multi == nil {
		return "", false
	}
	var v [5]float64
	for i, f := range []string{"multiL", "multiB", "multia", "multib", "multiphi"} {
		v[i], _ = s.Multi.Float(f)
	}
	if v == [5]float64{-1, -1, -1, -1, -1} {
		v[0], _ = s.Multi.Float("multiLPeak")
		v[1], _ = s.Multi.Float("multiBPeak")
		v[2], v[3], v[4] = peakRadius, peakRadius, 0
	}
	ff := agparam.FormatFloat
	return fmt.Sprintf("ellipse(%s,%s,%s,%s,%s) #color=green width=2 text={%s}",
		ff(v[0]), ff(v[1]), ff(v[2]), ff(v[3]), ff(v[4]), s.Name), true
}
