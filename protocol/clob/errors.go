package clob

import (
	"cosmossdk.io/errors"
)

// Module error codes
var (
	ErrInvalidOrderFlags      = errors.Register("clob", 1, "unrecognized order flags")
	ErrMissingGoodTilBlock    = errors.Register("clob", 2, "short term orders must set good til block")
	ErrMissingGoodTilTime     = errors.Register("clob", 3, "stateful orders must set good til block time")
	ErrUnexpectedGoodTil      = errors.Register("clob", 4, "order sets both good til block and good til block time")
	ErrGoodTilBlockOutOfRange = errors.Register("clob", 5, "good til block outside the short term window")
	ErrInvalidOrderType       = errors.Register("clob", 6, "invalid order type")
	ErrInvalidTimeInForce     = errors.Register("clob", 7, "invalid time in force")
	ErrInvalidExecution       = errors.Register("clob", 8, "execution not supported for order type")
	ErrMissingTriggerPrice    = errors.Register("clob", 9, "conditional orders must set a trigger price")
	ErrInvalidSize            = errors.Register("clob", 10, "order size must be positive")
	ErrInvalidPrice           = errors.Register("clob", 11, "order price must be non-negative")
)
