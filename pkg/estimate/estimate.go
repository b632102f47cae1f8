// Package estimate provides a cheap, single-ply heuristic score used both
// to rank trajectory candidates and as the façade's fallback move chooser
// when deeper search declines to answer.
package estimate

import "github.com/herohde/points/pkg/board"

// neighborBonus is indexed by a cell's count (0..8) of adjacent stones
// belonging to one side. Score subtracts it, so an isolated cell (bonus -5)
// gains a little and a crowded one (up to 30) is penalized heavily.
var neighborBonus = [9]int{-5, -1, 0, 0, 1, 2, 5, 20, 30}

const adjacentToLastMoveBonus = 5

// Score returns the heuristic value of placing mover's next stone at pos,
// combining nearby group counts for both sides with the neighbor-count
// lookup table and a bonus for touching the most recently played stone.
func Score(f *board.Field, pos board.Pos, mover board.Player) int {
	enemy := mover.Next()

	g1 := f.NumberNearGroups(pos, mover)
	g2 := f.NumberNearGroups(pos, enemy)
	c1 := neighborBonus[f.NumberNearPoints(pos, mover)]
	c2 := neighborBonus[f.NumberNearPoints(pos, enemy)]

	diff := g1 - g2
	if diff < 0 {
		diff = -diff
	}
	value := (g1*3+g2*2)*(5-diff) - c1 - c2

	if seq := f.PointsSeq(); len(seq) > 0 {
		last := seq[len(seq)-1]
		if isNeighbor(f, pos, last) {
			value += adjacentToLastMoveBonus
		}
	}
	return value
}

func isNeighbor(f *board.Field, pos, last board.Pos) bool {
	ax, ay := f.ToXY(pos)
	bx, by := f.ToXY(last)
	dx, dy := ax-bx, ay-by
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx <= 1 && dy <= 1 && (dx != 0 || dy != 0)
}

// Best scans every cell eligible for placement in row-major order and
// returns the one with the highest Score, the first of any tie winning.
// ok is false when no cell is eligible.
func Best(f *board.Field, mover board.Player) (pos board.Pos, value int, ok bool) {
	best := 0
	bestValue := 0
	found := false

	for y := 0; y < f.Height(); y++ {
		for x := 0; x < f.Width(); x++ {
			p := f.ToPos(x, y)
			if !f.IsPuttingAllowed(p) {
				continue
			}
			v := Score(f, p, mover)
			if !found || v > bestValue {
				best, bestValue, found = p, v, true
			}
		}
	}
	return best, bestValue, found
}
