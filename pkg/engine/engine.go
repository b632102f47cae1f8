// Package engine implements the BotEngine façade: it owns the board,
// Zobrist table and search components, applies the trivial-position rules
// that let a caller skip search entirely, and falls back through strategies
// (MTD(f)/minimax, then UCT, then the plain position estimator) whenever a
// stronger one reports no move worth playing.
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/herohde/points/pkg/board"
	"github.com/herohde/points/pkg/estimate"
	"github.com/herohde/points/pkg/search"
	"github.com/herohde/points/pkg/uct"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
)

var version = build.NewVersion(0, 1, 0)

// Depth/iteration ranges the complexity interpolation maps onto, taken
// directly from the reference engine's tuning constants.
const (
	minComplexity = 0
	maxComplexity = 100

	minMTDFDepth = 0
	maxMTDFDepth = 10

	minUCTIterations = 0
	maxUCTIterations = 250000

	defaultMTDFDepth     = 8
	defaultUCTIterations = 200000
)

// Options configures engine construction.
type Options struct {
	// Hash is the alpha-beta transposition table size in bytes. Zero
	// disables the table.
	Hash uint64
	// UCT configures the Monte Carlo search used as a fallback (and as the
	// sole strategy for time-bounded requests).
	UCT uct.Options
	// Workers caps goroutines used by alpha-beta root scans. Defaults to
	// runtime.GOMAXPROCS(0) if zero.
	Workers int
}

// Engine is the BotEngine façade: Zobrist table, board, and persistent UCT
// tree, guarded by a single mutex since requests are expected to arrive
// serially from one protocol session.
type Engine struct {
	seed int64
	opts Options

	f    *board.Field
	tt   search.TranspositionTable
	tree *uct.Tree

	mu sync.Mutex
}

// New constructs an engine for a board of the given dimensions, opening
// pattern and random seed.
func New(ctx context.Context, width, height int, pattern board.BeginPattern, seed int64, opts Options) *Engine {
	e := &Engine{seed: seed, opts: opts}

	e.tt = search.NoTranspositionTable{}
	if opts.Hash > 0 {
		e.tt = search.NewTranspositionTable(opts.Hash)
	}

	e.reset(width, height, pattern)

	logw.Infof(ctx, "Initialized engine: %v %v %vx%v seed=%v", Name(), version, width, height, seed)
	return e
}

// Name returns the engine name, for the protocol's name reply.
func Name() string {
	return "Open Points Artificial Intelligence"
}

func (e *Engine) reset(width, height int, pattern board.BeginPattern) {
	e.f = board.New(width, height, e.seed, pattern)
	e.tree = uct.New(e.opts.UCT)
}

// DoStep plays (x,y) for player, exactly as given -- it does not advance
// whose turn it is next; callers (the protocol layer) set that explicitly
// via SetPlayer before the next request, mirroring the reference engine's
// doStep(x,y,player) contract. Returns false if the placement is illegal.
func (e *Engine) DoStep(x, y int, player board.Player) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	pos := e.f.ToPos(x, y)
	if !e.f.DoStepAs(pos, player) {
		return false
	}
	e.tree.Advance(pos)
	return true
}

// UndoStep undoes the latest move. Returns false if there is none.
func (e *Engine) UndoStep() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.f.MovesCount() == 0 {
		return false
	}
	e.f.UndoStep()
	e.tree.Reset()
	return true
}

// SetPlayer sets whose turn it is to move.
func (e *Engine) SetPlayer(player board.Player) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.f.SetPlayer(player)
}

// Get returns the engine's recommended move using the default search
// budget, falling back through MTD(f) -> UCT -> the position estimator.
// Returns (-1,-1) if no move is available at all.
func (e *Engine) Get(ctx context.Context) (x, y int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if x, y, ok := e.boundaryCheck(); ok {
		return x, y
	}
	if x, y, ok := e.firstReplyCheck(); ok {
		return x, y
	}

	pos := e.searchMTDF(ctx, defaultMTDFDepth)
	if pos == search.NoMove {
		pos = e.searchUCT(ctx, defaultUCTIterations)
	}
	if pos == search.NoMove {
		pos, _, _ = estimate.Best(e.f, e.f.Player())
	}
	return e.f.ToXY(pos)
}

// GetWithComplexity runs the same fallback chain, scaling search depth and
// UCT iterations from complexity via linear interpolation between the
// engine's configured min/max ranges.
func (e *Engine) GetWithComplexity(ctx context.Context, complexity int) (x, y int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if x, y, ok := e.boundaryCheck(); ok {
		return x, y
	}
	if x, y, ok := e.firstReplyCheck(); ok {
		return x, y
	}

	depth := interpolate(complexity, minComplexity, maxComplexity, minMTDFDepth, maxMTDFDepth)
	iterations := interpolate(complexity, minComplexity, maxComplexity, minUCTIterations, maxUCTIterations)

	pos := e.searchMTDF(ctx, depth)
	if pos == search.NoMove {
		pos = e.searchUCT(ctx, iterations)
	}
	if pos == search.NoMove {
		pos, _, _ = estimate.Best(e.f, e.f.Player())
	}
	return e.f.ToXY(pos)
}

// GetWithTime runs only the time-bounded UCT search (the one strategy that
// supports cooperative cancellation on a deadline), falling back to the
// position estimator if it finds nothing.
func (e *Engine) GetWithTime(ctx context.Context, budget time.Duration) (x, y int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if x, y, ok := e.boundaryCheck(); ok {
		return x, y
	}
	if x, y, ok := e.firstReplyCheck(); ok {
		return x, y
	}

	result := e.tree.RunDuration(ctx, e.f, budget)
	pos := result.Move
	if pos == uct.NoMove {
		pos, _, _ = estimate.Best(e.f, e.f.Player())
	}
	return e.f.ToXY(pos)
}

func (e *Engine) searchMTDF(ctx context.Context, depth int) board.Pos {
	result := search.MTDF(ctx, e.f, depth, search.Options{TT: e.tt, Workers: e.opts.Workers})
	return result.Move
}

func (e *Engine) searchUCT(ctx context.Context, iterations int) board.Pos {
	result := e.tree.RunIterations(ctx, e.f, iterations)
	return result.Move
}

// boundaryCheck applies the rules that require no search at all: an
// undersized board never has a sensible move, an empty board always opens
// at center, and a fully occupied board has no move left.
func (e *Engine) boundaryCheck() (x, y int, ok bool) {
	if e.f.Width() < 3 || e.f.Height() < 3 {
		return -1, -1, true
	}
	if e.f.MovesCount() == 0 {
		return e.f.Width() / 2, e.f.Height() / 2, true
	}
	if e.isFieldOccupied() {
		return -1, -1, true
	}
	return 0, 0, false
}

func (e *Engine) isFieldOccupied() bool {
	for x := 0; x < e.f.Width(); x++ {
		for y := 0; y < e.f.Height(); y++ {
			if e.f.IsPuttingAllowed(e.f.ToPos(x, y)) {
				return false
			}
		}
	}
	return true
}

// firstReplyCheck handles the single-move-played book reply: on an edge
// stone it plays center, otherwise it steps one cell toward center along
// whichever axis is closer to its board edge (ties favor the y axis).
func (e *Engine) firstReplyCheck() (x, y int, ok bool) {
	if e.f.MovesCount() != 1 {
		return 0, 0, false
	}

	seq := e.f.PointsSeq()
	sx, sy := e.f.ToXY(seq[0])
	w, h := e.f.Width(), e.f.Height()

	if sx == 0 || sx == w-1 || sy == 0 || sy == h-1 {
		return w / 2, h / 2, true
	}

	edgeDistX := min(sx, w-1-sx)
	edgeDistY := min(sy, h-1-sy)

	if edgeDistX < edgeDistY {
		return step(sx, w/2), sy, true
	}
	return sx, step(sy, h/2), true
}

func step(coord, center int) int {
	switch {
	case coord-center < 0:
		return coord + 1
	case coord-center > 0:
		return coord - 1
	default:
		return coord
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func interpolate(v, inMin, inMax, outMin, outMax int) int {
	return (v-inMin)*(outMax-outMin)/(inMax-inMin) + outMin
}
