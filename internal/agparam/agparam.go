// Public domain.

// Package agparam holds typed, castable parameter values.
//
// A Value is a named, read-only output quantity such as an MLE result.
// A Param is a Value that can also be fitted: it carries a free flag,
// bounds, a scale, and the error reported by the fit.
package agparam

import (
	"errors"
	"fmt"
	"strconv"
)

// Value is a named datum of fixed Kind.  The zero value of v, nil, is null.
type Value struct {
	Name string
	Kind Kind
	v    any
}

// NewValue returns a null value.
func NewValue(name string, k Kind) *Value {
	return &Value{Name: name, Kind: k}
}

// Set casts raw to the Kind of p and stores it.  Set(nil) makes p null.
func (p *Value) Set(raw any) error {
	if raw == nil {
		p.v = nil
		return nil
	}
	v, err := Cast(p.Kind, raw)
	if err != nil {
		err.(*DatatypeError).Name = p.Name
		return err
	}
	p.v = v
	return nil
}

// Get returns the typed value, nil if null.
func (p *Value) Get() any { return p.v }

// String returns the value formatted as text, empty if null.
func (p *Value) String() string { return format(p.v) }

// IsNull reports whether p has no value.
func (p *Value) IsNull() bool { return p.v == nil }

// Float returns the value of a Float value.
func (p *Value) Float() (float64, bool) {
	f, ok := p.v.(float64)
	return f, ok
}

// Int returns the value of an Int value.
func (p *Value) Int() (int, bool) {
	i, ok := p.v.(int)
	return i, ok
}

// Pair returns the value of a Tuple value.
func (p *Value) Pair() (Pair, bool) {
	x, ok := p.v.(Pair)
	return x, ok
}

// Floats returns the value of a FloatList value.
func (p *Value) Floats() ([]float64, bool) {
	x, ok := p.v.([]float64)
	return x, ok
}

// Clone returns a deep copy.
func (p *Value) Clone() *Value {
	c := *p
	switch x := p.v.(type) {
	case []int:
		c.v = append([]int(nil), x...)
	case []float64:
		c.v = append([]float64(nil), x...)
	case []string:
		c.v = append([]string(nil), x...)
	}
	return &c
}

// ToMap returns the non-null attributes as strings.
func (p *Value) ToMap() map[string]string {
	m := map[string]string{"name": p.Name}
	if p.v != nil {
		m["value"] = p.String()
	}
	return m
}

// Free flag values.
const (
	Fixed    = 0
	Free     = 1
	FreeFlag = 2 // free with the special position flag, Tuple params only
)

// Param is a fittable Value.
type Param struct {
	Value
	Free  int
	Scale *float64
	Min   *float64
	Max   *float64
	Err   *float64 // reported by the fit
}

// NewParam returns a null, fixed parameter.
func NewParam(name string, k Kind) *Param {
	return &Param{Value: Value{Name: name, Kind: k}}
}

// SetFree sets the free flag, reporting whether it changed.
func (p *Param) SetFree(flag int) (changed bool, err error) {
	switch {
	case flag < Fixed || flag > FreeFlag:
		return false, fmt.Errorf("parameter %q: invalid free flag %d", p.Name, flag)
	case flag == FreeFlag && p.Kind != Tuple:
		return false, fmt.Errorf("parameter %q: free flag 2 applies only to positions", p.Name)
	case p.Free == flag:
		return false, nil
	}
	p.Free = flag
	return true, nil
}

// AttrOrder lists the keys of Param.ToMap in serialization order.
var AttrOrder = []string{"name", "value", "free", "scale", "min", "max", "err"}

// ToMap returns the non-null attributes as strings.
func (p *Param) ToMap() map[string]string {
	m := p.Value.ToMap()
	m["free"] = strconv.Itoa(p.Free)
	for _, a := range []struct {
		k string
		f *float64
	}{{"scale", p.Scale}, {"min", p.Min}, {"max", p.Max}, {"err", p.Err}} {
		if a.f != nil {
			m[a.k] = FormatFloat(*a.f)
		}
	}
	return m
}

// ErrUnknownAttr is returned by SetAttr for keys not in AttrOrder.
var ErrUnknownAttr = errors.New("unknown parameter attribute")

// SetAttr sets one attribute from its text form, the inverse of ToMap.
func (p *Param) SetAttr(key, s string) error {
	switch key {
	case "name":
		p.Name = s
		return nil
	case "value":
		return p.Set(s)
	case "free":
		f, ok := toInt(s)
		if !ok {
			return &DatatypeError{Name: p.Name + ".free", Kind: Int, Raw: s}
		}
		_, err := p.SetFree(f)
		return err
	}
	var dst **float64
	switch key {
	case "scale":
		dst = &p.Scale
	case "min":
		dst = &p.Min
	case "max":
		dst = &p.Max
	case "err":
		dst = &p.Err
	default:
		return fmt.Errorf("parameter %q: %w %q", p.Name, ErrUnknownAttr, key)
	}
	f, ok := toFloat(s)
	if !ok {
		return &DatatypeError{Name: p.Name + "." + key, Kind: Float, Raw: s}
	}
	*dst = &f
	return nil
}

// Clone returns a deep copy.
func (p *Param) Clone() *Param {
	c := &Param{Value: *p.Value.Clone(), Free: p.Free}
	c.Scale = clonef(p.Scale)
	c.Min = clonef(p.Min)
	c.Max = clonef(p.Max)
	c.Err = clonef(p.Err)
	return c
}

func clonef(f *float64) *float64 {
	if f == nil {
		return nil
	}
	c := *f
	return &c
}

// F returns a pointer to a copy of f, for the optional attributes.
func F(f float64) *float64 { return &f }
