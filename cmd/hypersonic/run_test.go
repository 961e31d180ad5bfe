package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/brensch/hypersonic/agent"
	"github.com/brensch/hypersonic/store"
)

const twoTicks = `4 3 0
....
..0.
....
1
0 0 0 0 1 3
....
..0.
....
1
0 0 2 0 1 3
`

func TestRun_AnswersEveryTick(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), strings.NewReader(twoTicks), &out, agent.DefaultConfig(), nil, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "MOVE 2 0\nBOMB 2 0\n", out.String())
}

func TestRun_RecordsTicks(t *testing.T) {
	dir := t.TempDir()
	rec, err := store.NewRecorder(dir, uuid.New())
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), strings.NewReader(twoTicks), &out, agent.DefaultConfig(), rec, zap.NewNop()))

	path, rows, err := rec.Finalize()
	require.NoError(t, err)
	assert.Equal(t, 2, rows)

	got, err := store.ReadTicks(path)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "MOVE", got[0].Action)
	assert.Equal(t, "BOMB", got[1].Action)
	assert.Equal(t, int32(0), got[1].Available)
}

func TestRun_MalformedTick(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), strings.NewReader("2 1 0\n...\n0\n"), &out, agent.DefaultConfig(), nil, zap.NewNop())
	assert.Error(t, err)
	assert.Empty(t, out.String())
}

func TestRun_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	err := run(ctx, strings.NewReader(twoTicks), &out, agent.DefaultConfig(), nil, zap.NewNop())
	assert.NoError(t, err)
	assert.Empty(t, out.String())
}
