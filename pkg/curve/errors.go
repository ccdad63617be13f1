package curve

import (
	"errors"
	"fmt"
)

// Curve construction errors.
var (
	ErrEmptyCurve      = errors.New("curve needs at least two knots")
	ErrUnsortedKnots   = errors.New("curve knot locations must be strictly increasing")
	ErrEmptyExpression = errors.New("empty expression")
)

// ParseError reports malformed curve or expression text.
type ParseError struct {
	Input string // text after alias substitution
	Pos   int    // byte offset into Input
	Msg   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("curve: %s at offset %d in %q", e.Msg, e.Pos, e.Input)
}
