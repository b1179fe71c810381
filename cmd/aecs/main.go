package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/zeusync/aecs/internal/injector"
	"github.com/zeusync/aecs/pkg/ecs"
	"github.com/zeusync/aecs/pkg/events"
	"github.com/zeusync/aecs/pkg/generic"
)

type Position struct{ X, Y float64 }
type Velocity struct{ DX, DY float64 }
type Lifetime struct{ Ticks int }

func main() {
	configPath := flag.String("config", "", "registry config file (.yaml or .json)")
	entities := flag.Int("entities", 1000, "entities spawned per shard")
	ticks := flag.Int("ticks", 100, "simulation ticks, 0 runs until interrupted")
	shards := flag.Int("shards", 4, "number of registries")
	interval := flag.Duration("interval", 0, "delay between ticks")
	flag.Parse()

	if err := run(*configPath, *entities, *ticks, *shards, *interval); err != nil {
		fmt.Fprintln(os.Stderr, "aecs:", err)
		os.Exit(1)
	}
}

func run(configPath string, entities, ticks, shards int, interval time.Duration) error {
	cfg := ecs.DefaultConfig()
	cfg.Name = "aecs"
	cfg.LogLevel = "info"
	if configPath != "" {
		loaded, err := ecs.LoadFile(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, cleanup, err := injector.InitializeGroup(cfg, injector.Shards(shards))
	if err != nil {
		return err
	}
	defer cleanup()

	logger := group.Shard(0).Logger()
	if bus := group.Shard(0).Bus(); bus != nil {
		sub, err := bus.Subscribe(events.EntityDeleted, func(e events.Event) error {
			logger.Debug("entity despawned", e.Fields()...)
			return nil
		})
		if err != nil {
			return err
		}
		defer func() { _ = sub.Cancel() }()
	}

	if err := group.Run(ctx, spawn(entities)); err != nil {
		return err
	}

	start := time.Now()
	for tick := 0; ticks == 0 || tick < ticks; tick++ {
		if err := group.Tick(ctx, move, age, respawn); err != nil {
			if ctx.Err() != nil {
				break
			}
			return err
		}
		if interval > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(interval):
			}
		}
		if ctx.Err() != nil {
			break
		}
	}

	stats, err := group.Stats(context.Background())
	if err != nil {
		return err
	}
	for _, st := range stats {
		logger.Info("shard stats", st.Fields()...)
	}
	logger.Info("simulation finished", group.Summary(time.Since(start))...)
	return nil
}

func spawn(n int) func(context.Context, *ecs.Registry[uint32]) error {
	return func(_ context.Context, r *ecs.Registry[uint32]) error {
		for i := 0; i < n; i++ {
			if _, err := newMover(r); err != nil {
				return err
			}
		}
		return nil
	}
}

func newMover(r *ecs.Registry[uint32]) (uint32, error) {
	e, err := r.TryNewEntity()
	if err != nil {
		return e, err
	}
	ecs.Assign(r, e, Position{X: rand.Float64() * 100, Y: rand.Float64() * 100})
	ecs.Assign(r, e, Velocity{DX: rand.Float64() - 0.5, DY: rand.Float64() - 0.5})
	ecs.Assign(r, e, Lifetime{Ticks: 10 + rand.IntN(50)})
	return e, nil
}

func move(_ context.Context, r *ecs.Registry[uint32]) error {
	ecs.ForEach2(r, func(_ uint32, p *Position, v *Velocity) {
		p.X += v.DX
		p.Y += v.DY
	})
	return nil
}

func age(_ context.Context, r *ecs.Registry[uint32]) error {
	ecs.ForEach1(r, func(_ uint32, l *Lifetime) {
		l.Ticks--
	})
	return nil
}

var expiredBuffers = generic.NewSlicePool[uint32](64)

// respawn replaces expired entities. Deletions are collected first since the
// table must not change under a running view.
func respawn(_ context.Context, r *ecs.Registry[uint32]) error {
	buf := expiredBuffers.Get()
	defer expiredBuffers.Put(buf)

	ecs.ForEach1(r, func(e uint32, l *Lifetime) {
		if l.Ticks <= 0 {
			*buf = append(*buf, e)
		}
	})
	for _, e := range *buf {
		r.DeleteEntity(e)
		if _, err := newMover(r); err != nil {
			return err
		}
	}
	return nil
}
