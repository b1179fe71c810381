// Package entity packs entity identifiers into an index half and a version half.
//
// An identifier of width W stores the slot index in its high W/2 bits and the
// generation (version) of the slot's occupant in its low W/2 bits. The all-ones
// value is reserved as the invalid sentinel and is never handed out as a live id.
//
// Versions wrap around silently: after 2^(W/2) reuses of the same index an old
// identifier compares equal to a new one. This is a known design limit of the
// packed layout, pick a wider identifier type if a slot can churn that often.
package entity

import "unsafe"

// Integer is the set of identifier widths an entity id may use. The width bounds
// both the number of addressable slots and the number of versions per slot.
type Integer interface {
	~uint16 | ~uint32 | ~uint64
}

// Bits returns the bit width of E.
func Bits[E Integer]() uint {
	var zero E
	return uint(unsafe.Sizeof(zero)) * 8
}

// HalfBits returns the width of each half of E.
func HalfBits[E Integer]() uint {
	return Bits[E]() / 2
}

func halfMask[E Integer]() E {
	return E(1)<<HalfBits[E]() - 1
}

// Index returns the slot index stored in the high half of id.
func Index[E Integer](id E) E {
	return id >> HalfBits[E]()
}

// Version returns the generation stored in the low half of id.
func Version[E Integer](id E) E {
	return id & halfMask[E]()
}

// WithIndex returns id with its index half replaced. The version is preserved
// and index is truncated to the half width.
func WithIndex[E Integer](id, index E) E {
	return (index&halfMask[E]())<<HalfBits[E]() | Version(id)
}

// WithVersion returns id with its version half replaced. The index is preserved
// and version is truncated to the half width.
func WithVersion[E Integer](id, version E) E {
	return id&^halfMask[E]() | version&halfMask[E]()
}

// Make builds an identifier from an index and a version.
func Make[E Integer](index, version E) E {
	return WithVersion(WithIndex(0, index), version)
}

// Invalid returns the reserved sentinel.
func Invalid[E Integer]() E {
	return ^E(0)
}

// IsValid reports whether id differs from the invalid sentinel.
func IsValid[E Integer](id E) bool {
	return id != Invalid[E]()
}

// MaxIndex is the largest index representable in E.
func MaxIndex[E Integer]() E {
	return halfMask[E]()
}

// MaxVersion is the largest version representable in E.
func MaxVersion[E Integer]() E {
	return halfMask[E]()
}
