package search_test

import (
	"context"
	"testing"

	"github.com/herohde/points/pkg/board"
	"github.com/herohde/points/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinimaxOnEmptyBoardFindsNoMove(t *testing.T) {
	f := board.New(9, 9, 1, board.BeginClean)

	result := search.Minimax(context.Background(), f, 3, search.Options{})

	assert.Equal(t, search.NoMove, result.Move)
	assert.Equal(t, 0, f.MovesCount(), "search must leave the board exactly as found")
}

func TestMinimaxTakesAnAvailableCapture(t *testing.T) {
	f := board.New(9, 9, 2, board.BeginClean)
	require.True(t, f.DoStepAs(f.ToPos(3, 3), board.Red))
	require.True(t, f.DoStepAs(f.ToPos(2, 4), board.Red))
	require.True(t, f.DoStepAs(f.ToPos(3, 5), board.Red))
	require.True(t, f.DoStepAs(f.ToPos(3, 4), board.Black))
	f.SetPlayer(board.Red)

	result := search.Minimax(context.Background(), f, 2, search.Options{})

	assert.Equal(t, f.ToPos(4, 4), result.Move)
	assert.Equal(t, 4, f.MovesCount())
}

func TestMinimaxWithTranspositionTableMatchesWithout(t *testing.T) {
	f1 := board.New(9, 9, 2, board.BeginClean)
	f2 := f1.Clone()
	for _, f := range []*board.Field{f1, f2} {
		require.True(t, f.DoStepAs(f.ToPos(4, 3), board.Red))
		require.True(t, f.DoStepAs(f.ToPos(5, 4), board.Red))
		require.True(t, f.DoStepAs(f.ToPos(4, 5), board.Red))
		require.True(t, f.DoStepAs(f.ToPos(3, 4), board.Black))
		f.SetPlayer(board.Red)
	}

	plain := search.Minimax(context.Background(), f1, 2, search.Options{})
	cached := search.Minimax(context.Background(), f2, 2, search.Options{TT: search.NewTranspositionTable(1 << 16)})

	assert.Equal(t, plain.Move, cached.Move)
	assert.Equal(t, plain.Score, cached.Score)
}

func TestMTDFAgreesWithMinimax(t *testing.T) {
	f1 := board.New(9, 9, 2, board.BeginClean)
	f2 := f1.Clone()
	for _, f := range []*board.Field{f1, f2} {
		require.True(t, f.DoStepAs(f.ToPos(4, 3), board.Red))
		require.True(t, f.DoStepAs(f.ToPos(5, 4), board.Red))
		require.True(t, f.DoStepAs(f.ToPos(4, 5), board.Red))
		require.True(t, f.DoStepAs(f.ToPos(3, 4), board.Black))
		f.SetPlayer(board.Red)
	}

	minimax := search.Minimax(context.Background(), f1, 2, search.Options{})
	mtdf := search.MTDF(context.Background(), f2, 2, search.Options{})

	assert.Equal(t, minimax.Score, mtdf.Score)
}

func TestMinimaxCancellationReturnsWithoutPanicking(t *testing.T) {
	f := board.New(9, 9, 1, board.BeginClean)
	require.True(t, f.DoStepAs(f.ToPos(4, 3), board.Red))
	require.True(t, f.DoStepAs(f.ToPos(5, 4), board.Red))
	require.True(t, f.DoStepAs(f.ToPos(4, 5), board.Red))
	require.True(t, f.DoStepAs(f.ToPos(3, 4), board.Black))
	f.SetPlayer(board.Red)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NotPanics(t, func() {
		search.Minimax(ctx, f, 2, search.Options{})
	})
	assert.Equal(t, 4, f.MovesCount())
}
