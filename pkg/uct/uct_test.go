package uct_test

import (
	"context"
	"testing"
	"time"

	"github.com/herohde/points/pkg/board"
	"github.com/herohde/points/pkg/uct"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunIterationsFindsAMoveOnEmptyBoard(t *testing.T) {
	f := board.New(9, 9, 1, board.BeginClean)

	tree := uct.New(uct.Options{Radius: 4})
	result := tree.RunIterations(context.Background(), f, 200)

	assert.NotEqual(t, uct.NoMove, result.Move)
	assert.Equal(t, 0, f.MovesCount(), "search must leave the board exactly as found")
}

func TestRunIterationsPrefersAnImmediateCapture(t *testing.T) {
	f := board.New(9, 9, 2, board.BeginClean)
	require.True(t, f.DoStepAs(f.ToPos(3, 3), board.Red))
	require.True(t, f.DoStepAs(f.ToPos(2, 4), board.Red))
	require.True(t, f.DoStepAs(f.ToPos(3, 5), board.Red))
	require.True(t, f.DoStepAs(f.ToPos(3, 4), board.Black))
	f.SetPlayer(board.Red)

	tree := uct.New(uct.Options{Radius: 3, ExpandAfter: 2})
	result := tree.RunIterations(context.Background(), f, 400)

	assert.Equal(t, f.ToPos(4, 4), result.Move)
}

func TestAdvanceReusesExploredSubtree(t *testing.T) {
	f := board.New(9, 9, 1, board.BeginClean)

	tree := uct.New(uct.Options{Radius: 4})
	first := tree.RunIterations(context.Background(), f, 300)
	require.NotEqual(t, uct.NoMove, first.Move)

	child := tree.Root()
	var reused *uct.Node
	for c := child.Child(); c != nil; c = c.Sibling() {
		if c.Move == first.Move {
			reused = c
		}
	}
	require.NotNil(t, reused)
	visitsBefore := reused.Visits()

	tree.Advance(first.Move)
	assert.Equal(t, visitsBefore, tree.Root().Visits())
}

func TestRunDurationRespectsBudget(t *testing.T) {
	f := board.New(9, 9, 1, board.BeginClean)

	tree := uct.New(uct.Options{Radius: 4, Workers: 2})
	start := time.Now()
	tree.RunDuration(context.Background(), f, 50*time.Millisecond)

	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestRunIterationsCancellationReturnsWithoutPanicking(t *testing.T) {
	f := board.New(9, 9, 1, board.BeginClean)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tree := uct.New(uct.Options{Radius: 4})
	assert.NotPanics(t, func() {
		tree.RunIterations(ctx, f, 100)
	})
}
