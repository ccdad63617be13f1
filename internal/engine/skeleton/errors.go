package skeleton

import (
	"errors"
	"fmt"
)

// Configuration errors. Generation wraps them in a ConfigError.
var (
	ErrMissingParent         = errors.New("frequency > 0 requires parent branches")
	ErrUnknownDistribution   = errors.New("unknown distribution type")
	ErrUnknownFrondType      = errors.New("unknown frond type")
	ErrInvalidFrequency      = errors.New("invalid frequency")
	ErrEmptyCurve            = errors.New("profile has no usable curve")
	ErrNonIncreasingLocation = errors.New("point location must increase along the branch")
)

// ConfigError attributes a configuration problem to a group.
type ConfigError struct {
	Group string // slash-separated group path
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("group %s: %v", e.Group, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
