package policy

import "errors"

// Policy domain errors
var (
	ErrPolicyNotFound = errors.New("no policy version effective on the requested date")
	ErrInvalidPolicy  = errors.New("policy violates configuration invariants")
	ErrUnknownGroup   = errors.New("unknown employee group")
)
