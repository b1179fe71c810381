//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/aecs/pkg/ecs"
	"github.com/zeusync/aecs/pkg/world"
)

func InitializeGroup(cfg ecs.Config, shards Shards) (*world.Group[uint32], func(), error) {
	wire.Build(ProviderSet)
	return nil, nil, nil
}
