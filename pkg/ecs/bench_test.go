package ecs

import "testing"

func BenchmarkNewDeleteEntity(b *testing.B) {
	r := MustNew[uint32]()
	for i := 0; i < b.N; i++ {
		r.DeleteEntity(r.NewEntity())
	}
}

func BenchmarkAssignGet(b *testing.B) {
	r := MustNew[uint32]()
	e := r.NewEntity()
	Assign(r, e, position{})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Get[position](r, e).X++
	}
}

func BenchmarkForEach2(b *testing.B) {
	r := MustNew[uint32]()
	for i := 0; i < 10000; i++ {
		e := r.NewEntity()
		Assign(r, e, position{})
		if i%2 == 0 {
			Assign(r, e, velocity{DX: 1})
		}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ForEach2(r, func(_ uint32, p *position, v *velocity) {
			p.X += v.DX
		})
	}
}
