package uct

import (
	"math/rand"

	"github.com/herohde/points/pkg/board"
)

// Outcome is the winner of a simulated game from some player's perspective,
// or NoWinner for an exact tie (Score(Red) == komi after all cells fill).
type Outcome int

const NoWinner Outcome = -1

// outcome reports the winner of f given komi, a handicap subtracted from
// Red's score before comparison (a positive komi favors Black). Field's
// Score is zero-sum (Score(Red) == -Score(Black)), so a single threshold on
// Red's adjusted score fully determines the result.
func outcome(f *board.Field, komi int32) Outcome {
	switch adjusted := f.Score(board.Red) - int(komi); {
	case adjusted > 0:
		return Outcome(board.Red)
	case adjusted < 0:
		return Outcome(board.Black)
	default:
		return NoWinner
	}
}

// playout plays a uniformly random permutation of moves still legal on f to
// completion (skipping any move a prior placement in the same permutation
// has since blocked, and any cell inside an empty base), reads off the
// winner, then undoes every placement it made -- f is returned to exactly
// the state it was passed in.
func playout(f *board.Field, rng *rand.Rand, moves []board.Pos, komi int32) Outcome {
	order := make([]board.Pos, len(moves))
	copy(order, moves)
	rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	placed := 0
	for _, pos := range order {
		if f.IsPuttingAllowed(pos) && !f.IsInEmptyBase(pos) {
			f.DoStep(pos)
			placed++
		}
	}

	result := outcome(f, komi)

	for i := 0; i < placed; i++ {
		f.UndoStep()
	}
	return result
}

// simulate runs one MCTS trial from node, whose field argument is always
// positioned exactly at node's own state (node's player to move, no
// descendant move played yet). Below opts.ExpandAfter visits (or past
// opts.MaxDepth), it falls back to a random playout from that state;
// otherwise it lazily expands node's children, selects one, plays its move,
// recurses, and undoes the move before returning -- f is restored to
// node's state on every exit path. A node with no legal children is marked
// terminal, its exact outcome propagating up without ever being resimulated.
//
// node's wins/draws tally outcomes from the perspective of whoever played
// the move leading into node, i.e. the opponent of f.Player() (node's own
// mover) -- not node's own mover. That is the player a selection at node's
// PARENT is trying to serve, which is exactly the quantity UCB needs.
func simulate(f *board.Field, rng *rand.Rand, moves []board.Pos, node *Node, depth int, opts *Options) Outcome {
	var result Outcome

	if depth >= opts.MaxDepth || node.Visits() < opts.ExpandAfter {
		result = playout(f, rng, moves, opts.komi())
	} else {
		ensureChildren(node, f, moves)
		next := selectChild(node, opts.selector(), opts.DrawWeight, opts.UCTK, rng)
		if next == nil {
			result = outcome(f, opts.komi())
			node.markTerminal(result == Outcome(f.Player().Next()))
			return result
		}

		f.DoStep(next.Move)
		result = simulate(f, rng, moves, next, depth+1, opts)
		f.UndoStep()
	}

	node.recordVisit(result == Outcome(f.Player().Next()), result == NoWinner)
	return result
}
