package client

import (
	"cosmossdk.io/errors"
)

// Client error codes
var (
	ErrUnexpectedResponse = errors.Register("client", 1, "unexpected response from node")
	ErrBroadcastFailed    = errors.Register("client", 2, "transaction rejected by node")
	ErrBroadcastTimeout   = errors.Register("client", 3, "timed out waiting for block inclusion")
	ErrNoMessages         = errors.Register("client", 4, "no messages to submit")
	ErrUnsupportedDenom   = errors.Register("client", 5, "unsupported coin denom")
	ErrQueryFailed        = errors.Register("client", 6, "node query failed")
)
