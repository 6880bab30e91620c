// Public domain.

package agsource

import (
	"github.com/agilescience/agtools/internal/agastro"
	"github.com/agilescience/agtools/internal/agparam"
)

// PointSourceType is the only spatial model and source type.
const PointSourceType = "PointSource"

// SpatialModel is the sky position of a source.
type SpatialModel struct {
	Type string
	// LocationLimit bounds the position search of the fit.
	LocationLimit int

	pos  *agparam.Param
	dist *agparam.Value
}

// NewPointSource returns a point source spatial model with null position.
func NewPointSource() *SpatialModel {
	return &SpatialModel{
		Type: PointSourceType,
		pos:  agparam.NewParam("pos", agparam.Tuple),
		dist: agparam.NewValue("dist", agparam.Float),
	}
}

// Param looks up a parameter by name.  The only parameter is "pos".
func (m *SpatialModel) Param(name string) (*agparam.Param, bool) {
	if name == "pos" {
		return m.pos, true
	}
	return nil, false
}

// Get returns the value of pos, dist, or locationLimit.
func (m *SpatialModel) Get(name string) (any, bool) {
	switch name {
	case "pos":
		return m.pos.Get(), true
	case "dist":
		return m.dist.Get(), true
	case "locationLimit":
		return m.LocationLimit, true
	}
	return nil, false
}

// Set casts and stores pos or locationLimit.  Dist is read-only.
func (m *SpatialModel) Set(name string, raw any) (found bool, err error) {
	switch name {
	case "pos":
		return true, m.pos.Set(raw)
	case "locationLimit":
		v, err := agparam.Cast(agparam.Int, raw)
		if err != nil {
			err.(*agparam.DatatypeError).Name = name
			return true, err
		}
		m.LocationLimit = v.(int)
		return true, nil
	case "dist":
		return true, &ReadOnlyError{name}
	}
	return false, nil
}

// GetFree returns the free flag of pos.
func (m *SpatialModel) GetFree(name string) (int, bool) {
	if name != "pos" {
		return 0, false
	}
	return m.pos.Free, true
}

// SetFree sets the free flag of pos: 0, 1, or 2.
func (m *SpatialModel) SetFree(name string, flag int) (changed, found bool, err error) {
	if name != "pos" {
		return false, false, nil
	}
	changed, err = m.pos.SetFree(flag)
	return changed, true, err
}

// FreeParams returns ["pos"] if the position is free.
func (m *SpatialModel) FreeParams() []string {
	if m.pos.Free != agparam.Fixed {
		return []string{"pos"}
	}
	return nil
}

// Pos returns galactic longitude and latitude in degrees.
func (m *SpatialModel) Pos() (l, b float64, ok bool) {
	p, ok := m.pos.Pair()
	return p[0], p[1], ok
}

// SetPos replaces the position, keeping the free flag.  Dist becomes null
// until the next UpdateDist.
func (m *SpatialModel) SetPos(l, b float64) {
	// A Pair always casts to Tuple, nil to null.
	_ = m.pos.Set(agparam.Pair{l, b})
	_ = m.dist.Set(nil)
}

// Dist returns the distance in degrees from the map center as of the last
// UpdateDist.
func (m *SpatialModel) Dist() (float64, bool) {
	return m.dist.Float()
}

// UpdateDist recomputes dist from the map center (l, b).
func (m *SpatialModel) UpdateDist(l, b float64) {
	sl, sb, ok := m.Pos()
	if !ok {
		_ = m.dist.Set(nil)
		return
	}
	_ = m.dist.Set(agastro.Distance(sl, sb, l, b)) // float64 casts to Float
}

// Clone returns a deep copy.
func (m *SpatialModel) Clone() *SpatialModel {
	c := *m
	c.pos = m.pos.Clone()
	c.dist = m.dist.Clone()
	return &c
}
