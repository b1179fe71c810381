//go:build !aecs_noassert

package ecs

// AssertionsEnabled reports whether registry preconditions are checked.
// Build with -tags aecs_noassert to compile the checks out.
const AssertionsEnabled = true
