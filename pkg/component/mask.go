package component

import (
	"math/bits"
	"strconv"
	"strings"
)

// Mask is a set of component IDs, one bit per ID.
type Mask uint64

// MaskOf builds a mask with the given IDs set.
func MaskOf(ids ...ID) Mask {
	var m Mask
	for _, id := range ids {
		m = m.Set(id)
	}
	return m
}

func (m Mask) Set(id ID) Mask {
	return m | 1<<id
}

func (m Mask) Clear(id ID) Mask {
	return m &^ (1 << id)
}

func (m Mask) Has(id ID) bool {
	return m&(1<<id) != 0
}

// Contains reports whether every bit of sub is also set in m.
func (m Mask) Contains(sub Mask) bool {
	return m&sub == sub
}

// Len returns the number of IDs in m.
func (m Mask) Len() int {
	return bits.OnesCount64(uint64(m))
}

// IDs lists the IDs in m in ascending order.
func (m Mask) IDs() []ID {
	ids := make([]ID, 0, m.Len())
	for rest := uint64(m); rest != 0; rest &= rest - 1 {
		ids = append(ids, ID(bits.TrailingZeros64(rest)))
	}
	return ids
}

func (m Mask) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, id := range m.IDs() {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(int(id)))
	}
	b.WriteByte('}')
	return b.String()
}
