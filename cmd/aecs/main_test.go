package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zeusync/aecs/pkg/ecs"
)

func TestRespawnKeepsPopulation(t *testing.T) {
	r := ecs.MustNew[uint32]()
	require.NoError(t, spawn(20)(context.Background(), r))

	for i := 0; i < 80; i++ {
		require.NoError(t, move(context.Background(), r))
		require.NoError(t, age(context.Background(), r))
		require.NoError(t, respawn(context.Background(), r))
	}

	require.Equal(t, 20, r.Len())
	ecs.ForEach1(r, func(_ uint32, l *Lifetime) {
		require.Greater(t, l.Ticks, 0)
	})
}

func TestRunWithConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aecs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: test\nevents: true\n"), 0o600))

	require.NoError(t, run(path, 10, 5, 2, 0))
	require.Error(t, run(filepath.Join(t.TempDir(), "missing.yaml"), 1, 1, 1, 0))
}
