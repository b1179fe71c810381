package injector

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zeusync/aecs/pkg/ecs"
)

func TestInitializeGroup(t *testing.T) {
	cfg := ecs.DefaultConfig()
	cfg.Name = "wired"
	cfg.Events = true

	group, cleanup, err := InitializeGroup(cfg, 2)
	require.NoError(t, err)
	defer cleanup()

	require.Equal(t, 2, group.Len())
	require.Equal(t, "wired-1", group.Shard(1).Name())
	require.NotNil(t, group.Shard(0).Bus())
	require.Same(t, group.Shard(0).Bus(), group.Shard(1).Bus())
	require.Same(t, group.Types(), group.Shard(1).Types())
}

func TestInitializeGroupErrors(t *testing.T) {
	cfg := ecs.DefaultConfig()
	cfg.LogLevel = "chatty"
	_, _, err := InitializeGroup(cfg, 1)
	require.Error(t, err)

	_, _, err = InitializeGroup(ecs.DefaultConfig(), 0)
	require.ErrorIs(t, err, ecs.ErrInvalidConfig)
}
