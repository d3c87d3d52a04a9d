package approval

import "errors"

var (
	ErrUnauthorized           = errors.New("unauthorized")
	ErrNotFound               = errors.New("not found")
	ErrBadRequest             = errors.New("bad request")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrMissingReason          = errors.New("rejection reason is required")
)

func IsErrUnauthorized(err error) bool { return errors.Is(err, ErrUnauthorized) }
func IsErrNotFound(err error) bool     { return errors.Is(err, ErrNotFound) }
func IsErrBadRequest(err error) bool   { return errors.Is(err, ErrBadRequest) }
func IsErrInvalidStateTransition(err error) bool {
	return errors.Is(err, ErrInvalidStateTransition)
}
func IsErrMissingReason(err error) bool { return errors.Is(err, ErrMissingReason) }
