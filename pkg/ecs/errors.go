package ecs

import (
	"errors"
	"fmt"

	"github.com/zeusync/aecs/pkg/entity"
)

var (
	ErrDeadEntity       = errors.New("entity is not alive")
	ErrComponentExists  = errors.New("entity already has component")
	ErrComponentMissing = errors.New("entity does not have component")
	ErrEntityCapacity   = errors.New("entity index space exhausted")
	ErrInvalidConfig    = errors.New("invalid registry configuration")
)

// violation aborts on a broken precondition. The panic value is an error
// wrapping the matching sentinel, so recover sites can use errors.Is.
func violation(err error, format string, args ...any) {
	panic(fmt.Errorf("%w: "+format, append([]any{err}, args...)...))
}

func describe[E entity.Integer](e E) string {
	if !entity.IsValid(e) {
		return "invalid entity"
	}
	return fmt.Sprintf("entity %d (index %d, version %d)", uint64(e), uint64(entity.Index(e)), uint64(entity.Version(e)))
}
