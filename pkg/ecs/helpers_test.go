package ecs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type position struct{ X, Y float64 }
type velocity struct{ DX, DY float64 }
type health int

// requireViolation runs fn and checks it panics with an error wrapping target.
func requireViolation(t *testing.T, target error, fn func()) {
	t.Helper()

	var recovered any
	func() {
		defer func() { recovered = recover() }()
		fn()
	}()

	err, ok := recovered.(error)
	require.True(t, ok, "expected panic with error, got %v", recovered)
	require.ErrorIs(t, err, target)
}

func skipWithoutAssertions(t *testing.T) {
	t.Helper()
	if !AssertionsEnabled {
		t.Skip("built with aecs_noassert")
	}
}

// kind builds a distinct component type per N.
type kind[N any] struct{ V int }

func assignSixtyFour(r *Registry[uint32], e uint32) {
	Assign(r, e, kind[[0]byte]{V: 0})
	Assign(r, e, kind[[1]byte]{V: 1})
	Assign(r, e, kind[[2]byte]{V: 2})
	Assign(r, e, kind[[3]byte]{V: 3})
	Assign(r, e, kind[[4]byte]{V: 4})
	Assign(r, e, kind[[5]byte]{V: 5})
	Assign(r, e, kind[[6]byte]{V: 6})
	Assign(r, e, kind[[7]byte]{V: 7})
	Assign(r, e, kind[[8]byte]{V: 8})
	Assign(r, e, kind[[9]byte]{V: 9})
	Assign(r, e, kind[[10]byte]{V: 10})
	Assign(r, e, kind[[11]byte]{V: 11})
	Assign(r, e, kind[[12]byte]{V: 12})
	Assign(r, e, kind[[13]byte]{V: 13})
	Assign(r, e, kind[[14]byte]{V: 14})
	Assign(r, e, kind[[15]byte]{V: 15})
	Assign(r, e, kind[[16]byte]{V: 16})
	Assign(r, e, kind[[17]byte]{V: 17})
	Assign(r, e, kind[[18]byte]{V: 18})
	Assign(r, e, kind[[19]byte]{V: 19})
	Assign(r, e, kind[[20]byte]{V: 20})
	Assign(r, e, kind[[21]byte]{V: 21})
	Assign(r, e, kind[[22]byte]{V: 22})
	Assign(r, e, kind[[23]byte]{V: 23})
	Assign(r, e, kind[[24]byte]{V: 24})
	Assign(r, e, kind[[25]byte]{V: 25})
	Assign(r, e, kind[[26]byte]{V: 26})
	Assign(r, e, kind[[27]byte]{V: 27})
	Assign(r, e, kind[[28]byte]{V: 28})
	Assign(r, e, kind[[29]byte]{V: 29})
	Assign(r, e, kind[[30]byte]{V: 30})
	Assign(r, e, kind[[31]byte]{V: 31})
	Assign(r, e, kind[[32]byte]{V: 32})
	Assign(r, e, kind[[33]byte]{V: 33})
	Assign(r, e, kind[[34]byte]{V: 34})
	Assign(r, e, kind[[35]byte]{V: 35})
	Assign(r, e, kind[[36]byte]{V: 36})
	Assign(r, e, kind[[37]byte]{V: 37})
	Assign(r, e, kind[[38]byte]{V: 38})
	Assign(r, e, kind[[39]byte]{V: 39})
	Assign(r, e, kind[[40]byte]{V: 40})
	Assign(r, e, kind[[41]byte]{V: 41})
	Assign(r, e, kind[[42]byte]{V: 42})
	Assign(r, e, kind[[43]byte]{V: 43})
	Assign(r, e, kind[[44]byte]{V: 44})
	Assign(r, e, kind[[45]byte]{V: 45})
	Assign(r, e, kind[[46]byte]{V: 46})
	Assign(r, e, kind[[47]byte]{V: 47})
	Assign(r, e, kind[[48]byte]{V: 48})
	Assign(r, e, kind[[49]byte]{V: 49})
	Assign(r, e, kind[[50]byte]{V: 50})
	Assign(r, e, kind[[51]byte]{V: 51})
	Assign(r, e, kind[[52]byte]{V: 52})
	Assign(r, e, kind[[53]byte]{V: 53})
	Assign(r, e, kind[[54]byte]{V: 54})
	Assign(r, e, kind[[55]byte]{V: 55})
	Assign(r, e, kind[[56]byte]{V: 56})
	Assign(r, e, kind[[57]byte]{V: 57})
	Assign(r, e, kind[[58]byte]{V: 58})
	Assign(r, e, kind[[59]byte]{V: 59})
	Assign(r, e, kind[[60]byte]{V: 60})
	Assign(r, e, kind[[61]byte]{V: 61})
	Assign(r, e, kind[[62]byte]{V: 62})
	Assign(r, e, kind[[63]byte]{V: 63})
}
