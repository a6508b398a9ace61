// value.go — Dynamically typed option values and tolerant comparison.
package host

import "fmt"

// Value is a dynamically typed option value. The kinds that cross the host
// boundary are bool, int, float64, string, and RGB. Anything else is rejected
// by implementations with ErrUnknownOption.
type Value = any

// RGB is a color triple in the 0..1 range, as the host reports display
// preference colors.
type RGB [3]float64

// Tolerance for float comparison. The host reports colors and overscan with
// single precision, so round-tripped values drift below this bound.
const floatTolerance = 1e-4

// EqualValue compares two option values, tolerating float imprecision and
// mixed int/float numerics from the host's loosely typed scripting layer.
func EqualValue(a, b Value) bool {
	if af, aok := asFloat(a); aok {
		bf, bok := asFloat(b)
		return bok && abs(af-bf) <= floatTolerance
	}
	if ac, aok := asRGB(a); aok {
		bc, bok := asRGB(b)
		if !bok {
			return false
		}
		for i := range ac {
			if abs(ac[i]-bc[i]) > floatTolerance {
				return false
			}
		}
		return true
	}
	return a == b
}

// AsBool coerces a value to bool, treating nonzero numerics as true.
func AsBool(v Value) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case int:
		return t != 0, true
	case float64:
		return t != 0, true
	}
	return false, false
}

// AsFloat coerces a numeric value to float64.
func AsFloat(v Value) (float64, bool) { return asFloat(v) }

// AsInt coerces a numeric value to int, truncating floats.
func AsInt(v Value) (int, bool) {
	f, ok := asFloat(v)
	return int(f), ok
}

// AsString returns the value as a string if it is one.
func AsString(v Value) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// AsRGB coerces a value to an RGB triple. Slices of numerics are accepted
// because decoded YAML and JSON deliver colors that way.
func AsRGB(v Value) (RGB, bool) { return asRGB(v) }

// ValidValue reports whether v is one of the kinds allowed across the host
// boundary.
func ValidValue(v Value) bool {
	switch v.(type) {
	case bool, int, float64, string, RGB:
		return true
	}
	_, ok := asRGB(v)
	return ok
}

// FormatValue renders a value for logs and error messages.
func FormatValue(v Value) string {
	if c, ok := asRGB(v); ok {
		return fmt.Sprintf("rgb(%g, %g, %g)", c[0], c[1], c[2])
	}
	return fmt.Sprintf("%v", v)
}

func asFloat(v Value) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case float32:
		return float64(t), true
	case float64:
		return t, true
	}
	return 0, false
}

func asRGB(v Value) (RGB, bool) {
	switch t := v.(type) {
	case RGB:
		return t, true
	case [3]float64:
		return RGB(t), true
	case []float64:
		if len(t) == 3 {
			return RGB{t[0], t[1], t[2]}, true
		}
	case []any:
		if len(t) != 3 {
			return RGB{}, false
		}
		var c RGB
		for i, e := range t {
			f, ok := asFloat(e)
			if !ok {
				return RGB{}, false
			}
			c[i] = f
		}
		return c, true
	}
	return RGB{}, false
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
