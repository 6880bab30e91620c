// Public domain.

package agsource

import (
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/agilescience/agtools/internal/agparam"
)

// XMLLibrary is the root element of an XML source file.
type XMLLibrary struct {
	XMLName xml.Name    `xml:"source_library"`
	Title   string      `xml:"title,attr"`
	Sources []XMLSource `xml:"source"`
}

// XMLSource is one <source> element.
type XMLSource struct {
	Name     string       `xml:"name,attr"`
	Type     string       `xml:"type,attr"`
	Spectrum XMLComponent `xml:"spectrum"`
	Spatial  XMLComponent `xml:"spatialModel"`
}

// XMLComponent is a <spectrum> or <spatialModel> element.
//
// LegacyLocationLimit and Free appear only in files written by older
// tools, which also give the position as separate GLON and GLAT
// parameters.  They are read but never written.
type XMLComponent struct {
	Type                string     `xml:"type,attr"`
	LocationLimit       string     `xml:"locationLimit,attr,omitempty"`
	LegacyLocationLimit string     `xml:"location_limit,attr,omitempty"`
	Free                string     `xml:"free,attr,omitempty"`
	Params              []XMLParam `xml:"parameter"`
}

// XMLParam is a <parameter> element.  Its attributes are those of
// agparam.Param.ToMap.
type XMLParam struct {
	Attrs []xml.Attr `xml:",any,attr"`
}

func (p XMLParam) attr(name string) (string, bool) {
	for _, a := range p.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func xmlParam(p *agparam.Param) XMLParam {
	m := p.ToMap()
	var x XMLParam
	for _, k := range agparam.AttrOrder {
		if v, ok := m[k]; ok {
			x.Attrs = append(x.Attrs, xml.Attr{Name: xml.Name{Local: k}, Value: v})
		}
	}
	return x
}

// ToXML returns the XML element for s.
func (s *Source) ToXML() XMLSource {
	x := XMLSource{
		Name: s.Name,
		Type: s.Type,
		Spectrum: XMLComponent{
			Type: s.Spectrum.Type.String(),
		},
		Spatial: XMLComponent{
			Type:          s.Spatial.Type,
			LocationLimit: strconv.Itoa(s.Spatial.LocationLimit),
			Params:        []XMLParam{xmlParam(s.Spatial.pos)},
		},
	}
	for _, p := range s.Spectrum.params {
		x.Spectrum.Params = append(x.Spectrum.Params, xmlParam(p))
	}
	return x
}

func setAttrs(p *agparam.Param, x XMLParam) error {
	for _, a := range x.Attrs {
		if a.Name.Local == "name" {
			continue
		}
		if err := p.SetAttr(a.Name.Local, a.Value); err != nil {
			return err
		}
	}
	return nil
}

// FromXML builds a source from its XML element.
func FromXML(x XMLSource) (*Source, error) {
	if x.Type != "" && x.Type != PointSourceType {
		return nil, &TypeNotFoundError{What: "source", Name: x.Type,
			Supported: []string{PointSourceType}}
	}
	st, err := ParseSpectrumType(x.Spectrum.Type)
	if err != nil {
		return nil, err
	}
	s := New(x.Name, st)
	for _, xp := range x.Spectrum.Params {
		name, _ := xp.attr("name")
		p, ok := s.Spectrum.Param(name)
		if !ok {
			return nil, &NotFoundError{What: "parameter", Name: name,
				Owner: st.String() + " spectrum of " + x.Name}
		}
		if err := setAttrs(p, xp); err != nil {
			return nil, err
		}
	}

	sm := x.Spatial
	if sm.Type != PointSourceType {
		return nil, &TypeNotFoundError{What: "spatial model", Name: sm.Type,
			Supported: []string{PointSourceType}}
	}
	ll := sm.LocationLimit
	if ll == "" {
		ll = sm.LegacyLocationLimit
	}
	if ll != "" {
		if _, err := s.Spatial.Set("locationLimit", ll); err != nil {
			return nil, err
		}
	}
	var glon, glat string
	for _, xp := range sm.Params {
		name, _ := xp.attr("name")
		switch name {
		case "pos":
			if err := setAttrs(s.Spatial.pos, xp); err != nil {
				return nil, err
			}
		case "GLON":
			glon, _ = xp.attr("value")
		case "GLAT":
			glat, _ = xp.attr("value")
		default:
			return nil, &NotFoundError{What: "parameter", Name: name,
				Owner: "spatial model of " + x.Name}
		}
	}
	if glon != "" || glat != "" {
		if err := s.Spatial.pos.Set(glon + "," + glat); err != nil {
			return nil, err
		}
	}
	if sm.Free != "" {
		if err := s.Spatial.pos.SetAttr("free", sm.Free); err != nil {
			return nil, err
		}
	}
	if _, _, ok := s.Pos(); !ok {
		return nil, fmt.Errorf("source %s: no position", x.Name)
	}
	return s, nil
}
