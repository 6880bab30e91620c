// Public domain.

package agparam

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind is the datatype tag of a value.
type Kind int

const (
	Int Kind = iota
	Float
	String
	IntList
	FloatList
	StringList
	Tuple // tuple<float,float>, stored as Pair
)

var kindNames = [...]string{
	Int:        "int",
	Float:      "float",
	String:     "str",
	IntList:    "list<int>",
	FloatList:  "list<float>",
	StringList: "list<str>",
	Tuple:      "tuple<float,float>",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// ParseKind returns the Kind named by s.
func ParseKind(s string) (Kind, error) {
	for k, n := range kindNames {
		if s == n {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown datatype %q", s)
}

// Pair is a tuple<float,float>, for source positions galactic longitude
// and latitude in degrees.
type Pair [2]float64

func (p Pair) String() string {
	return "(" + FormatFloat(p[0]) + ", " + FormatFloat(p[1]) + ")"
}

// FormatFloat formats f with the fewest digits that parse back to f.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// DatatypeError reports a value that cannot be cast to the datatype of a
// parameter.
type DatatypeError struct {
	Name string // parameter name, may be empty
	Kind Kind
	Raw  any
}

func (e *DatatypeError) Error() string {
	return fmt.Sprintf("parameter %q: unsupported datatype: cannot cast %#v to %s",
		e.Name, e.Raw, e.Kind)
}

// Cast converts raw to the Go representation of k:
// int, float64, string, []int, []float64, []string, or Pair.
//
// Strings are parsed.  Tuples are written "(x, y)" or "x,y";
// lists are comma separated, optionally in square brackets.
func Cast(k Kind, raw any) (any, error) {
	v, ok := cast(k, raw)
	if !ok {
		return nil, &DatatypeError{Kind: k, Raw: raw}
	}
	return v, nil
}

func cast(k Kind, raw any) (any, bool) {
	switch k {
	case Int:
		return toInt(raw)
	case Float:
		return toFloat(raw)
	case String:
		switch x := raw.(type) {
		case string:
			return x, true
		case int:
			return strconv.Itoa(x), true
		case float64:
			return FormatFloat(x), true
		}
	case IntList:
		return castList(raw, toInt)
	case FloatList:
		return castList(raw, toFloat)
	case StringList:
		return castList(raw, func(a any) (string, bool) {
			s, ok := a.(string)
			return s, ok
		})
	case Tuple:
		return toPair(raw)
	}
	return nil, false
}

func toFloat(raw any) (float64, bool) {
	switch x := raw.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil
	}
	return 0, false
}

func toInt(raw any) (int, bool) {
	switch x := raw.(type) {
	case int:
		return x, true
	case int64:
		return int(x), true
	case float64:
		if x != math.Trunc(x) || math.IsInf(x, 0) {
			return 0, false
		}
		return int(x), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(x))
		return i, err == nil
	}
	return 0, false
}

func toPair(raw any) (Pair, bool) {
	switch x := raw.(type) {
	case Pair:
		return x, true
	case [2]float64:
		return Pair(x), true
	case []float64:
		if len(x) == 2 {
			return Pair{x[0], x[1]}, true
		}
	case string:
		s := strings.TrimSpace(x)
		s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
		f := strings.Split(s, ",")
		if len(f) != 2 {
			break
		}
		x0, ok0 := toFloat(f[0])
		x1, ok1 := toFloat(f[1])
		if ok0 && ok1 {
			return Pair{x0, x1}, true
		}
	}
	return Pair{}, false
}

func castList[T any](raw any, elem func(any) (T, bool)) ([]T, bool) {
	var in []any
	switch x := raw.(type) {
	case []T:
		return append([]T(nil), x...), true
	case []any:
		in = x
	case []int:
		for _, e := range x {
			in = append(in, e)
		}
	case []float64:
		for _, e := range x {
			in = append(in, e)
		}
	case string:
		s := strings.TrimSpace(x)
		s = strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
		if strings.TrimSpace(s) == "" {
			return []T{}, true
		}
		for _, e := range strings.Split(s, ",") {
			in = append(in, strings.TrimSpace(e))
		}
	default:
		return nil, false
	}
	out := make([]T, len(in))
	for i, e := range in {
		v, ok := elem(e)
		if !ok {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

// format is the inverse of Cast for string input.
func format(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case int:
		return strconv.Itoa(x)
	case float64:
		return FormatFloat(x)
	case string:
		return x
	case Pair:
		return x.String()
	case []int:
		s := make([]string, len(x))
		for i, e := range x {
			s[i] = strconv.Itoa(e)
		}
		return strings.Join(s, ",")
	case []float64:
		s := make([]string, len(x))
		for i, e := range x {
			s[i] = FormatFloat(e)
		}
		return strings.Join(s, ",")
	case []string:
		return strings.Join(x, ",")
	}
	return fmt.Sprint(v)
}
