package search

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/herohde/points/pkg/board"
	"github.com/herohde/points/pkg/trajectory"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// Options configures a root search.
type Options struct {
	// TT caches search results across moves sharing a board hash. Defaults
	// to NoTranspositionTable if left nil.
	TT TranspositionTable
	// Workers caps the goroutine pool scanning root moves. Defaults to
	// runtime.GOMAXPROCS(0) if zero or negative.
	Workers int
}

func (o *Options) setDefaults() {
	if o.TT == nil {
		o.TT = NoTranspositionTable{}
	}
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
}

// Minimax runs the parallel, trajectory-restricted negamax root search:
// it builds a fresh trajectory set at depth, scans the resulting move set
// across a worker pool (each with its own cloned board), and falls back to
// NoMove whenever the best score found equals the estimate for the mover
// passing for one ply.
func Minimax(ctx context.Context, f *board.Field, depth int, opts Options) Result {
	opts.setDefaults()
	if depth <= 0 {
		return Result{Move: NoMove, Score: f.Score(f.Player())}
	}

	root := trajectory.New(f)
	root.Build(depth)
	moves := root.Moves()
	if len(moves) == 0 {
		return Result{Move: NoMove, Score: f.Score(f.Player())}
	}

	alpha := -root.MaxScore(f.Player().Next())
	beta := root.MaxScore(f.Player())

	best, score := scanRootMoves(ctx, f, moves, depth, root, alpha, beta, opts)

	if pass := enemyPassEstimate(ctx, f, root, depth-1, opts); score == pass {
		return Result{Move: NoMove, Score: score}
	}
	return Result{Move: best, Score: score}
}

// MTDF runs the same root search via repeated zero-width probes around a
// moving pivot (memory-enhanced test driver, f variant), rather than one
// wide-window pass.
func MTDF(ctx context.Context, f *board.Field, depth int, opts Options) Result {
	opts.setDefaults()
	if depth <= 0 {
		return Result{Move: NoMove, Score: f.Score(f.Player())}
	}

	root := trajectory.New(f)
	root.Build(depth)
	moves := root.Moves()
	if len(moves) == 0 {
		return Result{Move: NoMove, Score: f.Score(f.Player())}
	}

	alpha := -root.MaxScore(f.Player().Next())
	beta := root.MaxScore(f.Player())

	best := NoMove
	for alpha != beta {
		center := (alpha + beta) / 2
		if (alpha+beta)%2 == -1 {
			center--
		}

		b, est := scanRootMoves(ctx, f, moves, depth, root, center, center+1, opts)
		if est > center {
			alpha = est
		} else {
			beta = est
		}
		if b != NoMove {
			best = b
		}
	}

	if pass := enemyPassEstimate(ctx, f, root, depth-1, opts); alpha == pass {
		return Result{Move: NoMove, Score: alpha}
	}
	return Result{Move: best, Score: alpha}
}

// scanRootMoves distributes moves dynamically across a worker pool, each
// worker owning a cloned board, updating a shared alpha/best pair under a
// mutex and skipping remaining work once alpha has closed the window.
// Mirrors the OpenMP "parallel for schedule(dynamic,1)" root loop, with
// goroutines and a mutex standing in for the thread team and critical
// section.
func scanRootMoves(ctx context.Context, f *board.Field, moves []board.Pos, depth int, last *trajectory.Set, alpha, beta int, opts Options) (board.Pos, int) {
	var mu sync.Mutex
	best := NoMove

	var next int64 = -1
	workers := opts.Workers
	if workers > len(moves) {
		workers = len(moves)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			clone := f.Clone()
			for {
				if contextx.IsCancelled(ctx) {
					return
				}
				mu.Lock()
				a, b := alpha, beta
				mu.Unlock()
				if a >= b {
					return
				}

				i := int(atomic.AddInt64(&next, 1))
				if i >= len(moves) {
					return
				}
				move := moves[i]

				est := alphabeta(ctx, clone, depth-1, move, last, -a-1, -a, opts.TT)
				if est > a && est < b {
					est = alphabeta(ctx, clone, depth-1, move, last, -b, -est, opts.TT)
				}

				mu.Lock()
				if est > alpha {
					alpha = est
					best = move
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	return best, alpha
}

// enemyPassEstimate evaluates the position assuming the mover passes this
// ply: the opponent plays freely for depth plies and the result is
// negated back to the mover's perspective, giving the baseline a real
// move must beat to be worth playing at all.
func enemyPassEstimate(ctx context.Context, f *board.Field, last *trajectory.Set, depth int, opts Options) int {
	flipped := f.Clone()
	flipped.SetPlayer(flipped.Player().Next())

	cur := trajectory.New(flipped)
	cur.BuildFromLast(last)
	moves := cur.Moves()

	if len(moves) == 0 {
		return -flipped.Score(flipped.Player())
	}

	alpha := -cur.MaxScore(flipped.Player().Next())
	beta := cur.MaxScore(flipped.Player())

	_, alpha = scanRootMoves(ctx, flipped, moves, depth, cur, alpha, beta, opts)
	return -alpha
}
