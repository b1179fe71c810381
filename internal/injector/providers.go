package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/aecs/internal/core/observability/log"
	"github.com/zeusync/aecs/pkg/component"
	"github.com/zeusync/aecs/pkg/ecs"
	"github.com/zeusync/aecs/pkg/events"
	"github.com/zeusync/aecs/pkg/world"
)

// Shards is the number of registries in the group.
type Shards int

var ProviderSet = wire.NewSet(
	ProvideLogger,
	wire.Bind(new(log.Log), new(*log.Logger)),
	ProvideTypes,
	ProvideBus,
	ProvideGroup,
)

// ProvideLogger builds the process logger from the configured level. The
// cleanup flushes buffered entries.
func ProvideLogger(cfg ecs.Config) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	var logger *log.Logger
	if level == log.LevelSilent {
		logger = log.NewNop()
	} else {
		logger = log.New(level)
	}
	return logger, func() { _ = logger.Sync() }, nil
}

func ProvideTypes(cfg ecs.Config) *component.Types {
	if cfg.SharedTypes {
		return component.Default()
	}
	return component.NewTypes()
}

// ProvideBus returns nil when events are disabled.
func ProvideBus(cfg ecs.Config) *events.Bus {
	if !cfg.Events {
		return nil
	}
	return events.New()
}

func ProvideGroup(cfg ecs.Config, shards Shards, logger log.Log, types *component.Types, bus *events.Bus) (*world.Group[uint32], error) {
	opts := []ecs.Option{
		ecs.WithConfig(cfg),
		ecs.WithLogger(logger),
		ecs.WithTypes(types),
	}
	if bus != nil {
		opts = append(opts, ecs.WithEvents(bus))
	}
	return world.NewGroup[uint32](int(shards), opts...)
}
