// Public domain.

// Package agastro, stuff generally useful in AGILE source analysis.
//
// Angles cross package boundaries as float64 degrees, the unit used by
// AGILE catalogs and tool outputs.  Inside the package they are carried as
// unit.Angle.
package agastro

import (
	"fmt"
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/coord"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/precess"
	sexa "github.com/soniakeys/sexagesimal"
	"github.com/soniakeys/unit"
)

// Band is an energy band in MeV.
type Band struct {
	Emin, Emax float64
}

func (b Band) String() string {
	return fmt.Sprintf("[%g, %g]", b.Emin, b.Emax)
}

// Distance computes the angular separation in degrees between two points
// given in galactic longitude and latitude, also in degrees.
//
// The spherical law of cosines is applied to the colatitudes.  Downstream
// distance filters compare against values computed this way, so do not
// substitute a haversine or vector formula.
func Distance(l1, b1, l2, b2 float64) float64 {
	d1 := unit.AngleFromDeg(90 - b1)
	d2 := unit.AngleFromDeg(90 - b2)
	dl := unit.AngleFromDeg(l1 - l2)
	c := d1.Cos()*d2.Cos() + d1.Sin()*d2.Sin()*dl.Cos()
	// rounding can push c just outside the domain of acos
	switch {
	case c > 1:
		c = 1
	case c < -1:
		c = -1
	}
	return unit.Angle(math.Acos(c)).Deg()
}

// ScaleFlux converts an integral flux measured over band from to the
// equivalent flux over band to, assuming a power law with the given
// photon index.
func ScaleFlux(flux, index float64, from, to Band) float64 {
	s1 := 1 - index
	p1 := flux * (index - 1) / (math.Pow(from.Emin, s1) - math.Pow(from.Emax, s1))
	return (p1 / (index - 1)) * (math.Pow(to.Emin, s1) - math.Pow(to.Emax, s1))
}

// GalToEquaJ2000 converts galactic coordinates to equatorial coordinates
// referred to J2000.  All values in degrees.
//
// The galactic system is defined against B1950 equatorial coordinates, so
// the result is precessed from 1950 to 2000.  Accuracy is that of the
// rigorous precession of Meeus chapter 21, a few arc seconds at most,
// fine for reports but not for astrometry.
func GalToEquaJ2000(l, b float64) (ra, dec float64) {
	α, δ := coord.GalToEq(unit.AngleFromDeg(l), unit.AngleFromDeg(b))
	eq := precess.Position(&coord.Equatorial{RA: α, Dec: δ},
		&coord.Equatorial{}, 1950, 2000, 0, 0)
	return unit.Angle(eq.RA).Deg(), eq.Dec.Deg()
}

// FmtPos formats a galactic position in sexagesimal degrees.
func FmtPos(l, b float64) string {
	return fmt.Sprintf("l %.1s  b %.1s",
		sexa.FmtAngle(unit.AngleFromDeg(l)),
		sexa.FmtAngle(unit.AngleFromDeg(b)))
}

// jdMJD is the Julian date of MJD 0.
const jdMJD = 2400000.5

// AGILE mission time is TT seconds elapsed since 2004-01-01 00:00:00.
var agileEpochMJD = julian.CalendarGregorianToJD(2004, 1, 1) - jdMJD

// MJDToTT converts a modified Julian date to AGILE mission seconds.
func MJDToTT(mjd float64) float64 {
	return (mjd - agileEpochMJD) * 86400
}

// TTToMJD converts AGILE mission seconds to a modified Julian date.
func TTToMJD(tt float64) float64 {
	return tt/86400 + agileEpochMJD
}

// TTToTime converts AGILE mission seconds to a time.Time.  The TT-UTC
// offset is ignored.
func TTToTime(tt float64) time.Time {
	return julian.JDToTime(TTToMJD(tt) + jdMJD)
}
