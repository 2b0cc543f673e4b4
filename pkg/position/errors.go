package position

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyInput is returned when the input is empty or whitespace only.
	ErrEmptyInput = errors.New("position: empty input")
	// ErrWrongComponentCount is returned when the input does not hold exactly three tokens.
	ErrWrongComponentCount = errors.New("position: wrong component count")
	// ErrInvalidNumber is returned when a token is not a finite invariant decimal number.
	ErrInvalidNumber = errors.New("position: invalid number")
)

// Kind classifies a parse failure.
type Kind int

const (
	EmptyInput Kind = iota + 1
	WrongComponentCount
	InvalidNumber
)

func (k Kind) String() string {
	switch k {
	case EmptyInput:
		return "EmptyInput"
	case WrongComponentCount:
		return "WrongComponentCount"
	case InvalidNumber:
		return "InvalidNumber"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// InvalidComponent describes a token that failed the numeric grammar.
type InvalidComponent struct {
	Index int    // 0-based position in the triple
	Token string // token text as split from the input
	Range bool   // true when the token is well formed but overflows the precision
}

// Axis returns the axis name for the component ("x", "y" or "z").
func (c InvalidComponent) Axis() string {
	return axisName(c.Index)
}

// ParseError is the failure outcome of Parse. Count is set for
// WrongComponentCount and Invalid for InvalidNumber.
type ParseError struct {
	Kind    Kind
	Count   int
	Invalid []InvalidComponent
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case EmptyInput:
		return "position is empty"
	case WrongComponentCount:
		return fmt.Sprintf("expected 3 components, got %d", e.Count)
	case InvalidNumber:
		msgs := make([]string, 0, len(e.Invalid))
		for _, c := range e.Invalid {
			reason := "is not a valid number"
			if c.Range {
				reason = "is out of range"
			}
			msgs = append(msgs, fmt.Sprintf("component %s (%q) %s", c.Axis(), c.Token, reason))
		}
		return strings.Join(msgs, "; ")
	default:
		return "position: parse failed"
	}
}

// Unwrap maps the failure kind onto its sentinel so errors.Is works.
func (e *ParseError) Unwrap() error {
	switch e.Kind {
	case EmptyInput:
		return ErrEmptyInput
	case WrongComponentCount:
		return ErrWrongComponentCount
	case InvalidNumber:
		return ErrInvalidNumber
	default:
		return nil
	}
}

func axisName(i int) string {
	switch i {
	case 0:
		return "x"
	case 1:
		return "y"
	case 2:
		return "z"
	default:
		return fmt.Sprintf("#%d", i)
	}
}
