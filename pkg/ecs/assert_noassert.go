//go:build aecs_noassert

package ecs

// AssertionsEnabled reports whether registry preconditions are checked.
// In this build violated preconditions are undefined behavior; use the Try*
// variants where a checked result is needed.
const AssertionsEnabled = false
