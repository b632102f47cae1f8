package uct

import "github.com/herohde/points/pkg/board"

// generatePossibleMoves enumerates every empty, playable cell reachable from
// the last-played position within radius steps, via a 4-directional flood
// fill that stays on the board and also passes through occupied cells (so
// the frontier can turn corners around existing stones) but only yields
// empty ones. With no prior move (fresh board), every playable cell within
// radius of the center is returned. Cells near earlier stones but out of
// radius of the last one are not included.
func generatePossibleMoves(f *board.Field, radius int) []board.Pos {
	start := f.ToPos(f.Width()/2, f.Height()/2)
	if seq := f.PointsSeq(); len(seq) > 0 {
		start = seq[len(seq)-1]
	}

	var moves []board.Pos
	f.Wave(start, func(pos board.Pos) bool {
		x, y := f.ToXY(pos)
		onBoard := x >= 0 && x < f.Width() && y >= 0 && y < f.Height()
		return onBoard && f.ManhattanDistance(start, pos) <= radius
	}, func(pos board.Pos) {
		if f.IsPuttingAllowed(pos) {
			moves = append(moves, pos)
		}
	})
	return moves
}
