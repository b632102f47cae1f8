// Package search implements the trajectory-restricted negamax search: a
// parallel alpha-beta root driver (plain window or MTD(f) zero-width
// probing) over moves pruned by pkg/trajectory, with an optional
// transposition table.
package search

import (
	"context"

	"github.com/herohde/points/pkg/board"
	"github.com/herohde/points/pkg/trajectory"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// NoMove is returned when a search has no candidate move, or when its best
// score equals the estimate for the mover passing.
const NoMove board.Pos = -1

// inf stands in for an unreachable score magnitude; the board's int score
// never approaches this range in practice.
const inf = 1 << 30

// Result is the outcome of a root search.
type Result struct {
	Move  board.Pos
	Score int
}

// alphabeta plays pos (for the field's current player, which also advances
// the turn, mirroring the single-argument doUnsafeStep(pos) semantics of
// the original), then recursively searches depth further plies restricted
// to last's trajectory-derived move set for the position following pos.
// Returns the score for the player about to move before pos was played,
// negamax-style: a child call's result is used as-is by its caller, with
// the sign flip folded into each level's own return statement.
func alphabeta(ctx context.Context, f *board.Field, depth int, pos board.Pos, last *trajectory.Set, alpha, beta int, tt TranspositionTable) int {
	f.DoStep(pos)
	defer f.UndoStep()

	if contextx.IsCancelled(ctx) {
		return alpha
	}

	hash := f.Hash()
	if bound, d, score, _, ok := tt.Read(hash); ok && d >= depth && bound == ExactBound {
		return score
	}

	if depth == 0 {
		result := -f.Score(f.Player())
		tt.Write(hash, ExactBound, depth, result, NoMove)
		return result
	}
	if f.DeltaScore() < 0 {
		return -inf
	}

	cur := trajectory.New(f)
	cur.BuildFromLastWithMove(last, pos)
	moves := cur.Moves()
	if len(moves) == 0 {
		result := -f.Score(f.Player())
		tt.Write(hash, ExactBound, depth, result, NoMove)
		return result
	}

	for _, m := range moves {
		est := alphabeta(ctx, f, depth-1, m, cur, -alpha-1, -alpha, tt)
		if est > alpha && est < beta {
			est = alphabeta(ctx, f, depth-1, m, cur, -beta, -est, tt)
		}
		if est > alpha {
			alpha = est
			if alpha >= beta {
				break
			}
		}
	}

	bound := ExactBound
	if alpha >= beta {
		bound = LowerBound
	}
	result := -alpha
	tt.Write(hash, bound, depth, result, NoMove)
	return result
}
