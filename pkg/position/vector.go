package position

import (
	"strconv"
	"strings"
)

// Vector3 is a parsed (x, y, z) position. Components keep their input order.
type Vector3 struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
	Z float64 `json:"z" msgpack:"z"`
}

// Components returns the vector as an array in x, y, z order.
func (v Vector3) Components() [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// Format renders the components with the shortest representation that parses
// back to the same value, joined by sep.
func (v Vector3) Format(sep string) string {
	parts := make([]string, 0, 3)
	for _, c := range v.Components() {
		parts = append(parts, strconv.FormatFloat(c, 'g', -1, 64))
	}
	return strings.Join(parts, sep)
}

// Decimal returns v with each component replaced by the float64 nearest to its
// shortest decimal text at precision p. A Float32 parse of "0.1" is stored as
// float64(float32(0.1)); Decimal turns it back into 0.1 for replies and logs.
// The result converts to the same float32 values as v.
func (v Vector3) Decimal(p Precision) Vector3 {
	bits := p.bits()
	if bits == 64 {
		return v
	}
	var out [3]float64
	for i, c := range v.Components() {
		f, err := strconv.ParseFloat(strconv.FormatFloat(c, 'g', -1, bits), 64)
		if err != nil {
			f = c
		}
		out[i] = f
	}
	return Vector3{X: out[0], Y: out[1], Z: out[2]}
}

// String implements fmt.Stringer using comma separators.
func (v Vector3) String() string {
	return v.Format(",")
}

// Summary renders each component with at most three decimals, e.g. "1.5, 0, -2.125".
func (v Vector3) Summary() string {
	parts := make([]string, 0, 3)
	for _, c := range v.Components() {
		parts = append(parts, shortDecimal(c))
	}
	return strings.Join(parts, ", ")
}

func shortDecimal(f float64) string {
	s := strconv.FormatFloat(f, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}
