package ecs

import (
	"github.com/zeusync/aecs/internal/core/observability/log"
	"github.com/zeusync/aecs/pkg/component"
	"github.com/zeusync/aecs/pkg/entity"
)

// Stats is a point-in-time summary of a registry.
type Stats struct {
	Name       string         `json:"name" yaml:"name"`
	ID         string         `json:"id" yaml:"id"`
	Live       int            `json:"live" yaml:"live"`
	Free       int            `json:"free" yaml:"free"`
	HighWater  int            `json:"high_water" yaml:"high_water"`
	Capacity   int            `json:"capacity" yaml:"capacity"`
	Types      int            `json:"types" yaml:"types"`
	Stores     int            `json:"stores" yaml:"stores"`
	Components map[string]int `json:"components" yaml:"components"` // live entities per component type
}

// Stats walks the slot table once.
func (r *Registry[E]) Stats() Stats {
	var counts [component.MaxTypes]int
	for i := 0; i < r.next; i++ {
		s := r.slots[i]
		if !entity.IsValid(s.id) {
			continue
		}
		for _, id := range s.mask.IDs() {
			counts[id]++
		}
	}

	st := Stats{
		Name:       r.name,
		ID:         r.id,
		Live:       r.live,
		Free:       r.free.Len(),
		HighWater:  r.next,
		Capacity:   len(r.slots),
		Types:      r.types.Len(),
		Stores:     r.storage.Len(),
		Components: make(map[string]int),
	}
	for id, n := range counts {
		if n > 0 {
			st.Components[r.types.Name(component.ID(id))] = n
		}
	}
	return st
}

// Fields renders s for structured logging.
func (s Stats) Fields() []log.Field {
	return []log.Field{
		log.String("registry", s.Name),
		log.Int("live", s.Live),
		log.Int("free", s.Free),
		log.Int("high_water", s.HighWater),
		log.Int("capacity", s.Capacity),
		log.Int("types", s.Types),
		log.Int("stores", s.Stores),
		log.Any("components", s.Components),
	}
}
