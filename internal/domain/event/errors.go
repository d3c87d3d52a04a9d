package event

import "errors"

var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrNotFound         = errors.New("not found")
	ErrBadRequest       = errors.New("bad request")
	ErrRegistrationOver = errors.New("registration deadline has passed")
	ErrEventFull        = errors.New("event is full")
)

func IsErrUnauthorized(err error) bool     { return errors.Is(err, ErrUnauthorized) }
func IsErrNotFound(err error) bool         { return errors.Is(err, ErrNotFound) }
func IsErrBadRequest(err error) bool       { return errors.Is(err, ErrBadRequest) }
func IsErrRegistrationOver(err error) bool { return errors.Is(err, ErrRegistrationOver) }
func IsErrEventFull(err error) bool        { return errors.Is(err, ErrEventFull) }
