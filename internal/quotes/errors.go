package quotes

import "errors"

// Sentinel errors for the value-object core. Callers discriminate with
// errors.Is; wrapping adds context at the failure site.
var (
	// ErrSymbolMismatch is returned when arithmetic or ordering is attempted
	// between amounts quoted in different symbols.
	ErrSymbolMismatch = errors.New("symbol mismatch")

	// ErrPairMismatch is returned when an operation spans two different
	// trading pairs.
	ErrPairMismatch = errors.New("pair mismatch")

	// ErrConstruction is returned when a value object was not minted by a
	// Pair factory, or when a pair string is malformed.
	ErrConstruction = errors.New("value not created by a pair factory")

	// ErrDivisionByZero is returned by any ratio, conversion or percentage
	// computation whose denominator is zero.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrValidation is returned for out-of-range arguments.
	ErrValidation = errors.New("invalid argument")
)
