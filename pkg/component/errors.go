package component

import "errors"

var (
	ErrTooManyTypes = errors.New("component type limit reached")
	ErrUnknownType  = errors.New("component type not registered")
)
