package board_test

import (
	"testing"

	"github.com/herohde/points/pkg/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoStepUndoStepRoundTrip(t *testing.T) {
	f := board.New(10, 10, 1, board.BeginClean)

	type snapshot struct {
		hash  uint64
		score int
	}
	snap := func() snapshot {
		return snapshot{hash: uint64(f.Hash()), score: f.Score(board.Red)}
	}

	before := snap()

	moves := []board.Pos{f.ToPos(3, 3), f.ToPos(4, 2), f.ToPos(5, 3), f.ToPos(4, 4), f.ToPos(4, 3)}
	for _, m := range moves {
		require.True(t, f.DoStep(m))
	}
	for range moves {
		f.UndoStep()
	}

	assert.Equal(t, before, snap())
	assert.Equal(t, 0, f.MovesCount())
}

func TestHashMatchesFromScratchRebuild(t *testing.T) {
	f := board.New(10, 10, 7, board.BeginClean)

	for _, m := range []board.Pos{f.ToPos(3, 3), f.ToPos(4, 2), f.ToPos(5, 3), f.ToPos(4, 4), f.ToPos(4, 3)} {
		require.True(t, f.DoStep(m))
	}

	assert.Equal(t, f.RecomputeHash(), f.Hash())
}

func TestZobristReproducibleFromSeed(t *testing.T) {
	a := board.New(8, 8, 99, board.BeginClean)
	b := board.New(8, 8, 99, board.BeginClean)

	moves := []board.Pos{a.ToPos(2, 2), a.ToPos(3, 3), a.ToPos(4, 4)}
	for _, m := range moves {
		require.True(t, a.DoStep(m))
		require.True(t, b.DoStep(m))
	}
	assert.Equal(t, a.Hash(), b.Hash())
}

// Scenario 5 / 6 from the testable-properties section: a red diamond
// around (4,3), closed by a black stone placed in the gap.
func TestCaptureScenario(t *testing.T) {
	f := board.New(8, 8, 1, board.BeginClean)

	require.True(t, f.DoStepAs(f.ToPos(3, 3), board.Red))
	require.True(t, f.DoStepAs(f.ToPos(4, 2), board.Red))
	require.True(t, f.DoStepAs(f.ToPos(5, 3), board.Red))
	require.True(t, f.DoStepAs(f.ToPos(4, 4), board.Red))

	center := f.ToPos(4, 3)
	assert.True(t, f.IsInEmptyBase(center))

	require.True(t, f.DoStepAs(center, board.Black))

	assert.Equal(t, 1, f.Score(board.Red))
	assert.False(t, f.IsInEmptyBase(center))
	assert.True(t, f.IsCaptured(center))
	assert.Equal(t, f.RecomputeHash(), f.Hash())
}

func TestOwnEmptyBaseIsClaimedNotCaptured(t *testing.T) {
	f := board.New(8, 8, 1, board.BeginClean)

	require.True(t, f.DoStepAs(f.ToPos(3, 3), board.Red))
	require.True(t, f.DoStepAs(f.ToPos(4, 2), board.Red))
	require.True(t, f.DoStepAs(f.ToPos(5, 3), board.Red))
	require.True(t, f.DoStepAs(f.ToPos(4, 4), board.Red))

	center := f.ToPos(4, 3)
	require.True(t, f.DoStepAs(center, board.Red))

	assert.False(t, f.IsInEmptyBase(center))
	assert.False(t, f.IsCaptured(center))
	assert.Equal(t, 0, f.Score(board.Red))
}

func TestDoStepFailsOnOccupiedOrOffBoard(t *testing.T) {
	f := board.New(5, 5, 1, board.BeginClean)

	pos := f.ToPos(2, 2)
	require.True(t, f.DoStep(pos))
	assert.False(t, f.DoStep(pos))

	offBoard := f.ToPos(-1, 0)
	assert.False(t, f.DoStep(offBoard))
}

func TestCloneIsIndependent(t *testing.T) {
	f := board.New(8, 8, 1, board.BeginClean)
	require.True(t, f.DoStep(f.ToPos(3, 3)))

	c := f.Clone()
	require.True(t, c.DoStep(c.ToPos(4, 4)))

	assert.NotEqual(t, f.MovesCount(), c.MovesCount())
	assert.NotEqual(t, f.Hash(), c.Hash())
}

func TestBeginPatterns(t *testing.T) {
	cw := board.New(8, 8, 1, board.BeginCrosswire)
	assert.Equal(t, 4, cw.MovesCount())

	sq := board.New(8, 8, 1, board.BeginSquare)
	assert.Equal(t, 4, sq.MovesCount())

	clean := board.New(8, 8, 1, board.BeginClean)
	assert.Equal(t, 0, clean.MovesCount())
}
