// Package world drives a fixed set of registries in parallel.
//
// Registries are not safe for concurrent use, so a Group never hands the same
// shard to two goroutines at once. All shards share one component.Types so
// masks and IDs mean the same thing in every shard, and one event bus when
// events are enabled.
package world

import (
	"context"
	"fmt"
	"time"

	"github.com/zeusync/aecs/internal/core/observability/log"
	"github.com/zeusync/aecs/pkg/component"
	"github.com/zeusync/aecs/pkg/concurrent"
	"github.com/zeusync/aecs/pkg/ecs"
	"github.com/zeusync/aecs/pkg/entity"
	"github.com/zeusync/aecs/pkg/events"
	"github.com/zeusync/aecs/pkg/sequence"
)

// System is one unit of per-shard work.
type System[E entity.Integer] func(ctx context.Context, r *ecs.Registry[E]) error

// Group owns shards and runs systems across them.
type Group[E entity.Integer] struct {
	shards []*ecs.Registry[E]
	types  *component.Types
	log    log.Log
	limit  int
}

// NewGroup builds n shards from opts. Each shard is named after the
// configured name with its position appended.
func NewGroup[E entity.Integer](n int, opts ...ecs.Option) (*Group[E], error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: group needs at least one shard, got %d", ecs.ErrInvalidConfig, n)
	}

	cfg := ecs.DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Types == nil {
		if cfg.SharedTypes {
			cfg.Types = component.Default()
		} else {
			cfg.Types = component.NewTypes()
		}
	}
	if cfg.Events && cfg.Bus == nil {
		cfg.Bus = events.New()
	}

	g := &Group[E]{
		shards: make([]*ecs.Registry[E], n),
		types:  cfg.Types,
	}
	for i := range g.shards {
		shardCfg := cfg
		shardCfg.Name = fmt.Sprintf("%s-%d", cfg.Name, i)
		r, err := ecs.New[E](ecs.WithConfig(shardCfg))
		if err != nil {
			return nil, err
		}
		g.shards[i] = r
	}

	g.log = g.shards[0].Logger().With(log.String("group", cfg.Name), log.Int("shards", n))
	return g, nil
}

// SetLimit caps how many shards run at once. Zero or less means all of them.
func (g *Group[E]) SetLimit(n int) {
	g.limit = n
}

func (g *Group[E]) Len() int {
	return len(g.shards)
}

func (g *Group[E]) Shard(i int) *ecs.Registry[E] {
	return g.shards[i]
}

func (g *Group[E]) Shards() *sequence.Iterator[*ecs.Registry[E]] {
	return sequence.From(g.shards)
}

func (g *Group[E]) Types() *component.Types {
	return g.types
}

// Run executes system on every shard concurrently and waits for all of them.
// The first error cancels the context passed to the others.
func (g *Group[E]) Run(ctx context.Context, system System[E]) error {
	start := time.Now()
	err := concurrent.Each(ctx, g.Shards(), g.limit, func(ctx context.Context, r *ecs.Registry[E]) error {
		if err := system(ctx, r); err != nil {
			return fmt.Errorf("shard %s: %w", r.Name(), err)
		}
		return nil
	})
	if err != nil {
		g.log.Warn("system failed", log.Error(err), log.Duration("elapsed", time.Since(start)))
		return err
	}
	g.log.Debug("system finished", log.Duration("elapsed", time.Since(start)))
	return nil
}

// Tick runs systems in order, each one across all shards, stopping at the
// first failure.
func (g *Group[E]) Tick(ctx context.Context, systems ...System[E]) error {
	for _, system := range systems {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := g.Run(ctx, system); err != nil {
			return err
		}
	}
	return nil
}

// Stats collects per-shard stats in shard order.
func (g *Group[E]) Stats(ctx context.Context) ([]ecs.Stats, error) {
	return concurrent.Map(ctx, g.Shards(), g.limit, func(_ context.Context, r *ecs.Registry[E]) (ecs.Stats, error) {
		return r.Stats(), nil
	})
}

// Live sums live entities over all shards. It must not race a running system.
func (g *Group[E]) Live() int {
	n := 0
	for _, r := range g.shards {
		n += r.Len()
	}
	return n
}

// Summary renders group totals for structured logging.
func (g *Group[E]) Summary(elapsed time.Duration) []log.Field {
	return []log.Field{
		log.Int("shards", len(g.shards)),
		log.Int("live", g.Live()),
		log.Int("types", g.types.Len()),
		log.Duration("elapsed", elapsed),
	}
}
