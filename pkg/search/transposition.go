package search

import (
	"fmt"
	"math/bits"
	"sync/atomic"

	"github.com/herohde/points/pkg/board"
	"github.com/herohde/points/pkg/zobrist"
)

// Bound represents the bound of a -- possibly inexact -- search score.
type Bound uint8

const (
	ExactBound Bound = iota
	LowerBound
)

func (b Bound) String() string {
	switch b {
	case ExactBound:
		return "Exact"
	case LowerBound:
		return "Lower"
	default:
		return "?"
	}
}

// TranspositionTable caches negamax results keyed by board hash, to avoid
// re-searching positions reachable by more than one move order. Must be
// thread-safe: root search shares one table across worker goroutines.
type TranspositionTable interface {
	Read(hash zobrist.Hash) (Bound, int, int, board.Pos, bool)
	Write(hash zobrist.Hash, bound Bound, depth int, score int, move board.Pos) bool

	Size() uint64
	Used() float64
}

// entry is a cached search result. Kept compact so the lock-free table's
// atomic.Pointer swaps stay cheap.
type entry struct {
	hash  zobrist.Hash
	score int32
	move  int32
	bound Bound
	depth uint16
}

func val(e *entry) uint16 {
	if e == nil {
		return 0
	}
	return e.depth
}

// table is a fixed-size, lock-free transposition table: each slot is an
// atomic.Pointer[entry], published via compare-and-swap so concurrent
// readers never observe a torn write. A result at least as deep as the one
// in its slot replaces it; a lost compare-and-swap retries against the
// entry that won, and gives up only if that entry is deeper.
type table struct {
	slots []atomic.Pointer[entry]
	mask  uint64
	used  atomic.Uint64
}

// NewTranspositionTable creates a table sized to the largest power of two
// number of entries that fits within size bytes.
func NewTranspositionTable(size uint64) TranspositionTable {
	const entrySize = 24
	n := uint64(1)
	if size >= entrySize {
		n = uint64(1) << (63 - bits.LeadingZeros64(size/entrySize))
	}
	return &table{
		slots: make([]atomic.Pointer[entry], n),
		mask:  n - 1,
	}
}

func (t *table) Size() uint64      { return uint64(len(t.slots)) * 24 }
func (t *table) Used() float64     { return float64(t.used.Load()) / float64(len(t.slots)) }

func (t *table) Read(hash zobrist.Hash) (Bound, int, int, board.Pos, bool) {
	slot := &t.slots[uint64(hash)&t.mask]
	e := slot.Load()
	if e != nil && e.hash == hash {
		return e.bound, int(e.depth), int(e.score), board.Pos(e.move), true
	}
	return 0, 0, 0, 0, false
}

func (t *table) Write(hash zobrist.Hash, bound Bound, depth int, score int, move board.Pos) bool {
	slot := &t.slots[uint64(hash)&t.mask]
	fresh := &entry{hash: hash, score: int32(score), move: int32(move), bound: bound, depth: uint16(depth)}

	for {
		cur := slot.Load()
		if val(cur) > val(fresh) {
			return false
		}
		if slot.CompareAndSwap(cur, fresh) {
			if cur == nil {
				t.used.Add(1)
			}
			return true
		}
	}
}

func (t *table) String() string {
	return fmt.Sprintf("TT[%v @ %v%%]", t.Size(), int(100*t.Used()))
}

// NoTranspositionTable is a Nop implementation, useful for search depths
// shallow enough that caching overhead outweighs its benefit.
type NoTranspositionTable struct{}

func (NoTranspositionTable) Read(zobrist.Hash) (Bound, int, int, board.Pos, bool) { return 0, 0, 0, 0, false }
func (NoTranspositionTable) Write(zobrist.Hash, Bound, int, int, board.Pos) bool  { return false }
func (NoTranspositionTable) Size() uint64                                        { return 0 }
func (NoTranspositionTable) Used() float64                                       { return 0 }
