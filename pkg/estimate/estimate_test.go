package estimate_test

import (
	"testing"

	"github.com/herohde/points/pkg/board"
	"github.com/herohde/points/pkg/estimate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBestPicksFirstOnTieInRowMajorOrder(t *testing.T) {
	f := board.New(3, 3, 1, board.BeginClean)

	pos, _, ok := estimate.Best(f, board.Red)
	require.True(t, ok)
	assert.Equal(t, f.ToPos(0, 0), pos)
}

func TestBestPrefersCellNearExistingGroups(t *testing.T) {
	f := board.New(9, 9, 1, board.BeginClean)
	require.True(t, f.DoStepAs(f.ToPos(4, 4), board.Red))
	require.True(t, f.DoStepAs(f.ToPos(4, 5), board.Red))

	pos, _, ok := estimate.Best(f, board.Red)
	require.True(t, ok)

	corner := f.ToPos(0, 0)
	assert.NotEqual(t, corner, pos)
}

func TestScoreRewardsAdjacencyToLastMove(t *testing.T) {
	f := board.New(9, 9, 1, board.BeginClean)
	require.True(t, f.DoStepAs(f.ToPos(4, 4), board.Red))

	near := estimate.Score(f, f.ToPos(5, 5), board.Black)
	far := estimate.Score(f, f.ToPos(0, 0), board.Black)
	assert.Greater(t, near, far)
}

func TestBestReturnsFalseWhenNoCellAvailable(t *testing.T) {
	f := board.New(2, 1, 1, board.BeginClean)
	require.True(t, f.DoStep(f.ToPos(0, 0)))
	require.True(t, f.DoStep(f.ToPos(1, 0)))

	_, _, ok := estimate.Best(f, board.Red)
	assert.False(t, ok)
}
