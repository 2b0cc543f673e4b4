package position

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Precision selects the floating-point width components are parsed into.
type Precision int

const (
	// Float32 matches the single-precision vectors used by the host editor.
	Float32 Precision = 32
	// Float64 keeps full double precision.
	Float64 Precision = 64
)

// ParsePrecision maps a config value ("float32", "float64", "single", "double", "32", "64")
// onto a Precision. Empty input selects Float32.
func ParsePrecision(raw string) (Precision, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "float32", "single", "32":
		return Float32, nil
	case "float64", "double", "64":
		return Float64, nil
	default:
		return 0, fmt.Errorf("position: unknown precision %q", raw)
	}
}

func (p Precision) String() string {
	if p == Float64 {
		return "float64"
	}
	return "float32"
}

func (p Precision) bits() int {
	if p == Float64 {
		return 64
	}
	return 32
}

// Parser converts "x,y,z", "x y z" or tab separated text into a Vector3.
// The zero value parses with Float32 precision. A Parser holds no state and
// may be shared between goroutines.
type Parser struct {
	Precision Precision
}

var (
	defaultParser = Parser{Precision: Float32}
	separators    = strings.NewReplacer(",", " ", "\t", " ")
)

// Parse parses input with single precision. See Parser.Parse.
func Parse(input string) (Vector3, error) {
	return defaultParser.Parse(input)
}

// Parse returns the three components of input in x, y, z order. On failure the
// returned vector is zero and the error is a *ParseError.
func (p Parser) Parse(input string) (Vector3, error) {
	if strings.TrimSpace(input) == "" {
		return Vector3{}, &ParseError{Kind: EmptyInput}
	}

	tokens := Tokenize(input)
	if len(tokens) != 3 {
		return Vector3{}, &ParseError{Kind: WrongComponentCount, Count: len(tokens)}
	}

	var (
		out     [3]float64
		invalid []InvalidComponent
	)
	for i, tok := range tokens {
		v, err := p.parseComponent(tok)
		if err != nil {
			invalid = append(invalid, InvalidComponent{
				Index: i,
				Token: tok,
				Range: errors.Is(err, strconv.ErrRange),
			})
			continue
		}
		out[i] = v
	}
	if len(invalid) > 0 {
		return Vector3{}, &ParseError{Kind: InvalidNumber, Invalid: invalid}
	}
	return Vector3{X: out[0], Y: out[1], Z: out[2]}, nil
}

// Tokenize trims input, normalises commas and tabs to spaces and returns the
// runs of non-separator characters. Consecutive separators collapse. Tokens
// keep any other whitespace they contain, so "1 \n 2 3" has four tokens.
func Tokenize(input string) []string {
	normalized := separators.Replace(strings.TrimSpace(input))
	parts := strings.Split(normalized, " ")
	tokens := make([]string, 0, 3)
	for _, part := range parts {
		if part == "" {
			continue
		}
		tokens = append(tokens, part)
	}
	return tokens
}

func (p Parser) parseComponent(tok string) (float64, error) {
	tok = strings.TrimSpace(tok)
	if !isInvariantDecimal(tok) {
		return 0, strconv.ErrSyntax
	}
	v, err := strconv.ParseFloat(tok, p.Precision.bits())
	if err != nil {
		// strconv reports overflow as ±Inf with ErrRange; never hand that back.
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			return 0, numErr.Err
		}
		return 0, err
	}
	return v, nil
}

// isInvariantDecimal reports whether s matches
// [+-]? (digits [. digits?] | . digits) ([eE] [+-]? digits)?
func isInvariantDecimal(s string) bool {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	intDigits := countDigits(s[i:])
	i += intDigits
	fracDigits := 0
	if i < len(s) && s[i] == '.' {
		i++
		fracDigits = countDigits(s[i:])
		i += fracDigits
	}
	if intDigits+fracDigits == 0 {
		return false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		expDigits := countDigits(s[i:])
		if expDigits == 0 {
			return false
		}
		i += expDigits
	}
	return i == len(s)
}

func countDigits(s string) int {
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	return n
}
