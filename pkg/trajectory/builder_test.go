package trajectory_test

import (
	"testing"

	"github.com/herohde/points/pkg/board"
	"github.com/herohde/points/pkg/trajectory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildOnEmptyBoardProducesNoMoves(t *testing.T) {
	f := board.New(9, 9, 1, board.BeginClean)
	s := trajectory.New(f)

	s.Build(4)

	assert.Empty(t, s.Moves())
	assert.Equal(t, f.MovesCount(), 0)
}

func TestBuildFindsCapturingTrajectory(t *testing.T) {
	f := board.New(9, 9, 1, board.BeginClean)
	require.True(t, f.DoStepAs(f.ToPos(3, 3), board.Red))
	require.True(t, f.DoStepAs(f.ToPos(2, 4), board.Red))
	require.True(t, f.DoStepAs(f.ToPos(3, 5), board.Red))
	require.True(t, f.DoStepAs(f.ToPos(3, 4), board.Black))

	s := trajectory.New(f)
	s.Build(2)

	assert.Contains(t, s.MovesFor(board.Red), f.ToPos(4, 4))
	assert.Equal(t, 4, f.MovesCount(), "trajectory search must undo every speculative step")
}

func TestMaxScoreIsAtLeastCurrentScore(t *testing.T) {
	f := board.New(9, 9, 1, board.BeginClean)
	require.True(t, f.DoStepAs(f.ToPos(4, 3), board.Red))
	require.True(t, f.DoStepAs(f.ToPos(5, 4), board.Red))
	require.True(t, f.DoStepAs(f.ToPos(4, 5), board.Red))
	require.True(t, f.DoStepAs(f.ToPos(3, 4), board.Black))

	s := trajectory.New(f)
	s.Build(2)

	assert.GreaterOrEqual(t, s.MaxScore(board.Red), f.Score(board.Red))
}

func TestBuildFromLastWithMoveLeavesBoardUnchanged(t *testing.T) {
	f := board.New(9, 9, 1, board.BeginClean)
	require.True(t, f.DoStepAs(f.ToPos(4, 3), board.Red))
	require.True(t, f.DoStepAs(f.ToPos(5, 4), board.Red))
	require.True(t, f.DoStepAs(f.ToPos(4, 5), board.Red))
	require.True(t, f.DoStepAs(f.ToPos(3, 4), board.Black))

	last := trajectory.New(f)
	last.Build(3)

	require.True(t, f.DoStep(f.ToPos(0, 0)))
	next := trajectory.New(f)
	next.BuildFromLastWithMove(last, f.ToPos(0, 0))

	assert.Equal(t, 5, f.MovesCount())
}
