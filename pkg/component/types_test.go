package component

import (
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type position struct{ X, Y float64 }
type velocity struct{ DX, DY float64 }
type health int

// slot builds a distinct type per N so the cap can be exercised.
type slot[N any] struct{}

func TestTypeIDFirstUseWins(t *testing.T) {
	types := NewTypes()

	require.Equal(t, ID(0), TypeID[position](types))
	require.Equal(t, ID(1), TypeID[velocity](types))
	require.Equal(t, ID(0), TypeID[position](types))
	require.Equal(t, ID(2), TypeID[health](types))
	require.Equal(t, 3, types.Len())

	require.Equal(t, reflect.TypeFor[velocity](), types.Type(1))
	require.Equal(t, "component.health", types.Name(2))
	require.Equal(t, "component#9", types.Name(9))
	require.Nil(t, types.Type(9))
}

func TestLookupDoesNotRegister(t *testing.T) {
	types := NewTypes()

	_, ok := Lookup[position](types)
	require.False(t, ok)
	require.Equal(t, 0, types.Len())

	TypeID[position](types)
	id, ok := Lookup[position](types)
	require.True(t, ok)
	require.Equal(t, ID(0), id)
}

func TestIndependentIDSpaces(t *testing.T) {
	a, b := NewTypes(), NewTypes()

	TypeID[position](a)
	TypeID[velocity](a)
	TypeID[velocity](b)

	require.Equal(t, ID(1), TypeID[velocity](a))
	require.Equal(t, ID(0), TypeID[velocity](b))
	require.False(t, Compatible(a, b))
}

func TestTypeCap(t *testing.T) {
	types := NewTypes()
	registerSixtyFour(types)
	require.Equal(t, MaxTypes, types.Len())

	_, err := TryTypeID[position](types)
	require.True(t, errors.Is(err, ErrTooManyTypes))

	require.PanicsWithError(t, err.Error(), func() { TypeID[position](types) })

	// Already registered types still resolve.
	_, err = TryTypeID[slot[[0]int]](types)
	require.NoError(t, err)
}

func TestFingerprint(t *testing.T) {
	a, b := NewTypes(), NewTypes()
	require.Equal(t, a.Fingerprint(), b.Fingerprint())

	TypeID[position](a)
	TypeID[velocity](a)
	TypeID[position](b)
	TypeID[velocity](b)
	require.True(t, Compatible(a, b))

	c := NewTypes()
	TypeID[velocity](c)
	TypeID[position](c)
	require.NotEqual(t, a.Fingerprint(), c.Fingerprint())
	require.False(t, Compatible(a, c))
	require.True(t, Compatible(c, c))
}

func TestDefaultIsShared(t *testing.T) {
	require.Same(t, Default(), Default())
}

func TestConcurrentRegistration(t *testing.T) {
	types := NewTypes()
	var wg sync.WaitGroup
	ids := make([]ID, 16)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i] = TypeID[health](types)
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		require.Equal(t, ids[0], id)
	}
	require.Equal(t, 1, types.Len())
}

func registerSixtyFour(types *Types) {
	TypeID[slot[[0]int]](types)
	TypeID[slot[[1]int]](types)
	TypeID[slot[[2]int]](types)
	TypeID[slot[[3]int]](types)
	TypeID[slot[[4]int]](types)
	TypeID[slot[[5]int]](types)
	TypeID[slot[[6]int]](types)
	TypeID[slot[[7]int]](types)
	TypeID[slot[[8]int]](types)
	TypeID[slot[[9]int]](types)
	TypeID[slot[[10]int]](types)
	TypeID[slot[[11]int]](types)
	TypeID[slot[[12]int]](types)
	TypeID[slot[[13]int]](types)
	TypeID[slot[[14]int]](types)
	TypeID[slot[[15]int]](types)
	TypeID[slot[[16]int]](types)
	TypeID[slot[[17]int]](types)
	TypeID[slot[[18]int]](types)
	TypeID[slot[[19]int]](types)
	TypeID[slot[[20]int]](types)
	TypeID[slot[[21]int]](types)
	TypeID[slot[[22]int]](types)
	TypeID[slot[[23]int]](types)
	TypeID[slot[[24]int]](types)
	TypeID[slot[[25]int]](types)
	TypeID[slot[[26]int]](types)
	TypeID[slot[[27]int]](types)
	TypeID[slot[[28]int]](types)
	TypeID[slot[[29]int]](types)
	TypeID[slot[[30]int]](types)
	TypeID[slot[[31]int]](types)
	TypeID[slot[[32]int]](types)
	TypeID[slot[[33]int]](types)
	TypeID[slot[[34]int]](types)
	TypeID[slot[[35]int]](types)
	TypeID[slot[[36]int]](types)
	TypeID[slot[[37]int]](types)
	TypeID[slot[[38]int]](types)
	TypeID[slot[[39]int]](types)
	TypeID[slot[[40]int]](types)
	TypeID[slot[[41]int]](types)
	TypeID[slot[[42]int]](types)
	TypeID[slot[[43]int]](types)
	TypeID[slot[[44]int]](types)
	TypeID[slot[[45]int]](types)
	TypeID[slot[[46]int]](types)
	TypeID[slot[[47]int]](types)
	TypeID[slot[[48]int]](types)
	TypeID[slot[[49]int]](types)
	TypeID[slot[[50]int]](types)
	TypeID[slot[[51]int]](types)
	TypeID[slot[[52]int]](types)
	TypeID[slot[[53]int]](types)
	TypeID[slot[[54]int]](types)
	TypeID[slot[[55]int]](types)
	TypeID[slot[[56]int]](types)
	TypeID[slot[[57]int]](types)
	TypeID[slot[[58]int]](types)
	TypeID[slot[[59]int]](types)
	TypeID[slot[[60]int]](types)
	TypeID[slot[[61]int]](types)
	TypeID[slot[[62]int]](types)
	TypeID[slot[[63]int]](types)
}
