// Package uct implements a lock-free, shared-tree Monte Carlo tree search:
// concurrent workers select, expand, and back up statistics on one shared
// tree guarded only by atomic counters and a single CAS per node expansion,
// with the resulting root reusable across successive real moves.
package uct

import (
	"math"
	"sync/atomic"

	"github.com/herohde/points/pkg/board"
)

// NoMove marks a root with no candidate children (nothing left to search).
const NoMove board.Pos = -1

// maxVisits flags a node as fully solved: its exact outcome is known and it
// need not be selected or simulated again.
const maxVisits = math.MaxInt32

// Node is one position in the shared tree. wins/draws/visits are updated by
// any number of concurrent simulations; child is published exactly once,
// by whichever goroutine wins the initial compare-and-swap from nil.
type Node struct {
	Move board.Pos

	wins   atomic.Int32
	draws  atomic.Int32
	visits atomic.Int32

	child   atomic.Pointer[Node]
	sibling *Node
}

func newNode(move board.Pos) *Node {
	return &Node{Move: move}
}

// Visits, Wins, and Draws report the node's accumulated simulation counts.
func (n *Node) Visits() int32 { return n.visits.Load() }
func (n *Node) Wins() int32   { return n.wins.Load() }
func (n *Node) Draws() int32  { return n.draws.Load() }

// IsTerminal reports whether the node's outcome is fully determined (no
// children left to explore below it).
func (n *Node) IsTerminal() bool { return n.visits.Load() == maxVisits }

// IsTerminalWin reports whether a terminal node is a forced win for the
// player to move at its parent.
func (n *Node) IsTerminalWin() bool { return n.IsTerminal() && n.wins.Load() == maxVisits }

func (n *Node) markTerminal(win bool) {
	n.visits.Store(maxVisits)
	if win {
		n.wins.Store(maxVisits)
	}
}

func (n *Node) recordVisit(winner, draw bool) {
	n.visits.Add(1)
	if winner {
		n.wins.Add(1)
	} else if draw {
		n.draws.Add(1)
	}
}

// Child returns the first published child, or nil if the node has not
// been expanded (or has no legal children).
func (n *Node) Child() *Node { return n.child.Load() }

// Sibling returns the next child in its parent's list.
func (n *Node) Sibling() *Node { return n.sibling }

// ensureChildren lazily builds node's child list from the positions in
// moves still playable on f. Exactly one goroutine's allocation is
// published via compare-and-swap; any other concurrent caller's
// allocation is simply discarded in favor of the winner's list, so no
// lock is needed and siblings are never mutated after publication.
func ensureChildren(node *Node, f *board.Field, moves []board.Pos) *Node {
	if head := node.child.Load(); head != nil {
		return head
	}

	var head *Node
	tail := &head
	for _, m := range moves {
		if f.IsPuttingAllowed(m) {
			c := newNode(m)
			*tail = c
			tail = &c.sibling
		}
	}

	if node.child.CompareAndSwap(nil, head) {
		return head
	}
	return node.child.Load()
}
