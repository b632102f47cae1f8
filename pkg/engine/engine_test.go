package engine_test

import (
	"context"
	"testing"
	"time"

	"github.com/herohde/points/pkg/board"
	"github.com/herohde/points/pkg/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOnEmptyBoardReturnsCenter(t *testing.T) {
	e := engine.New(context.Background(), 10, 10, board.BeginClean, 1, engine.Options{})

	x, y := e.Get(context.Background())

	assert.Equal(t, 5, x)
	assert.Equal(t, 5, y)
}

func TestGetOnUndersizedBoardReturnsInvalid(t *testing.T) {
	e := engine.New(context.Background(), 2, 2, board.BeginClean, 1, engine.Options{})

	x, y := e.Get(context.Background())

	assert.Equal(t, -1, x)
	assert.Equal(t, -1, y)
}

func TestGetAfterEdgeFirstMoveRepliesAtCenter(t *testing.T) {
	e := engine.New(context.Background(), 10, 10, board.BeginClean, 1, engine.Options{})
	require.True(t, e.DoStep(0, 5, board.Red))

	x, y := e.Get(context.Background())

	assert.Equal(t, 5, x)
	assert.Equal(t, 5, y)
}

func TestGetAfterInteriorFirstMoveStepsTowardCenter(t *testing.T) {
	e := engine.New(context.Background(), 10, 10, board.BeginClean, 1, engine.Options{})
	require.True(t, e.DoStep(3, 3, board.Red))

	x, y := e.Get(context.Background())

	assert.Equal(t, 3, x)
	assert.Equal(t, 4, y)
}

func TestGetTakesAnAvailableCapture(t *testing.T) {
	e := engine.New(context.Background(), 9, 9, board.BeginClean, 2, engine.Options{})
	require.True(t, e.DoStep(3, 3, board.Red))
	require.True(t, e.DoStep(2, 4, board.Red))
	require.True(t, e.DoStep(3, 5, board.Red))
	require.True(t, e.DoStep(3, 4, board.Black))
	e.SetPlayer(board.Red)

	x, y := e.Get(context.Background())

	assert.Equal(t, 4, x)
	assert.Equal(t, 4, y)
}

func TestUndoStepReturnsFalseWhenEmpty(t *testing.T) {
	e := engine.New(context.Background(), 9, 9, board.BeginClean, 1, engine.Options{})

	assert.False(t, e.UndoStep())
}

func TestGetWithTimeRespectsBudget(t *testing.T) {
	e := engine.New(context.Background(), 9, 9, board.BeginClean, 1, engine.Options{})
	require.True(t, e.DoStep(4, 4, board.Red))
	e.SetPlayer(board.Black)

	start := time.Now()
	x, y := e.GetWithTime(context.Background(), 50*time.Millisecond)

	assert.Less(t, time.Since(start), 500*time.Millisecond)
	assert.GreaterOrEqual(t, x, 0)
	assert.GreaterOrEqual(t, y, 0)
}
