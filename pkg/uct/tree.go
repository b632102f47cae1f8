package uct

import (
	"context"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/herohde/points/pkg/board"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// Options configures a search. Unset fields take the defaults noted below.
type Options struct {
	// UCTK scales the exploration term. Default 0.2.
	UCTK float64
	// DrawWeight is how much a draw counts toward a win in the selection
	// formula, in [0,1]. Default 0.5.
	DrawWeight float64
	// Tuned selects UCB1-tuned (variance-adjusted) over plain UCB1.
	Tuned bool
	// ExpandAfter is the visit count at which a leaf gets its own children
	// instead of continuing to resolve by direct random playout. Default 5.
	ExpandAfter int32
	// MaxDepth bounds simulation recursion depth below the root. Default 200.
	MaxDepth int
	// Radius bounds move generation to cells within this Manhattan distance
	// of the last-played point. Default 3.
	Radius int
	// Workers caps the number of concurrent simulation goroutines. Defaults
	// to runtime.GOMAXPROCS(0).
	Workers int
	// Komi, if non-nil, enables dynamic komi adjustment during search.
	Komi *KomiController
}

func (o *Options) setDefaults() {
	if o.UCTK == 0 {
		o.UCTK = 0.2
	}
	if o.DrawWeight == 0 {
		o.DrawWeight = 0.5
	}
	if o.ExpandAfter == 0 {
		o.ExpandAfter = 5
	}
	if o.MaxDepth == 0 {
		o.MaxDepth = 200
	}
	if o.Radius == 0 {
		o.Radius = 3
	}
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
}

func (o *Options) selector() Selector {
	if o.Tuned {
		return UCB1Tuned
	}
	return UCB1
}

func (o *Options) komi() int32 {
	return o.Komi.Komi()
}

// Result is the outcome of a search: the chosen move and the fraction of
// root simulations that favored it.
type Result struct {
	Move       board.Pos
	Visits     int32
	WinRate    float64
	TotalCount int32
}

// Tree is a shared UCT search tree rooted at some board position. It
// supports running further simulations against that root and, once a real
// move is chosen, rebasing onto the matching child so prior simulation
// work on that subtree survives into the next search.
type Tree struct {
	root  *Node
	field *board.Field
	opts  Options
}

// New builds a tree with a fresh, unvisited root. The tree holds no board;
// all search calls take their own field argument.
func New(opts Options) *Tree {
	opts.setDefaults()
	return &Tree{root: newNode(NoMove), opts: opts}
}

// Root returns the tree's current root node.
func (t *Tree) Root() *Node { return t.root }

// Advance rebases the tree onto the child reached by playing move, so
// simulations already run against that subtree are preserved. If move has
// no corresponding published child (e.g. it was never explored, or the
// tree was never searched), the tree resets to a fresh, unvisited root.
// Must not be called concurrently with a RunIterations/RunDuration call on
// the same tree.
func (t *Tree) Advance(move board.Pos) {
	for c := t.root.Child(); c != nil; c = c.Sibling() {
		if c.Move == move {
			c.sibling = nil
			t.root = c
			return
		}
	}
	t.root = newNode(NoMove)
}

// Reset discards all accumulated search state.
func (t *Tree) Reset() {
	t.root = newNode(NoMove)
}

// RunIterations runs n simulations against f (left unmodified), or fewer
// if ctx is cancelled first, distributed across opts.Workers goroutines,
// each owning its own cloned board and random source, all operating on the
// tree's one shared root.
func (t *Tree) RunIterations(ctx context.Context, f *board.Field, n int) Result {
	moves := generatePossibleMoves(f, t.opts.Radius)
	if len(moves) == 0 || t.root.IsTerminal() {
		return t.bestResult()
	}

	workers := t.opts.Workers
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}

	per := n / workers
	extra := n % workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		count := per
		if w < extra {
			count++
		}
		wg.Add(1)
		go func(count int, seed int64) {
			defer wg.Done()
			clone := f.Clone()
			rng := rand.New(rand.NewSource(seed))
			for i := 0; i < count; i++ {
				if contextx.IsCancelled(ctx) {
					return
				}
				simulate(clone, rng, moves, t.root, 0, &t.opts)
				t.opts.Komi.maybeAdjust(t.root)
			}
		}(count, int64(w)+1)
	}
	wg.Wait()

	return t.bestResult()
}

// RunDuration runs simulations against f until budget elapses or ctx is
// cancelled, whichever comes first.
func (t *Tree) RunDuration(ctx context.Context, f *board.Field, budget time.Duration) Result {
	deadline, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	moves := generatePossibleMoves(f, t.opts.Radius)
	if len(moves) == 0 || t.root.IsTerminal() {
		return t.bestResult()
	}

	workers := t.opts.Workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			clone := f.Clone()
			rng := rand.New(rand.NewSource(seed))
			for {
				if contextx.IsCancelled(deadline) {
					return
				}
				simulate(clone, rng, moves, t.root, 0, &t.opts)
				t.opts.Komi.maybeAdjust(t.root)
			}
		}(int64(w) + 1)
	}
	wg.Wait()

	return t.bestResult()
}

// bestResult picks the visited root child with the highest selection (UCB)
// value, using the same formula as selection but without the randomized
// priority for unvisited children, which are skipped.
func (t *Tree) bestResult() Result {
	var best *Node
	var bestValue float64
	var total int32
	selector := t.opts.selector()
	for c := t.root.Child(); c != nil; c = c.Sibling() {
		total += c.Visits()
		if c.Visits() == 0 {
			continue
		}
		value := selector(t.root.Visits(), c.Wins(), c.Draws(), c.Visits(), t.opts.DrawWeight, t.opts.UCTK)
		if best == nil || value > bestValue {
			best, bestValue = c, value
		}
	}
	if best == nil {
		return Result{Move: NoMove}
	}

	// best.Wins/Draws already tally outcomes for root's own mover: a root
	// child is updated with the board positioned at the child's state
	// (root's move already played, turn advanced to the opponent), so the
	// credited winner -- the opponent of that state's mover -- is root's
	// mover. No complement is needed here, unlike komi's use of root
	// itself in maybeAdjust.
	winRate := 0.0
	if v := best.Visits(); v > 0 {
		winRate = (float64(best.Wins()) + float64(best.Draws())*t.opts.DrawWeight) / float64(v)
	}
	return Result{Move: best.Move, Visits: best.Visits(), WinRate: winRate, TotalCount: total}
}
