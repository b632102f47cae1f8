// Package zobrist computes incremental position hashes for board states.
package zobrist

import "math/rand"

// Hash is a position hash based on stone placements. It is intended for
// transposition lookups and duplicate-trajectory detection, and hashes
// identical cell contents to the same value regardless of move order.
//
// See also: https://research.cs.wisc.edu/techreports/1970/TR88.pdf.
type Hash uint64

// Table is a pseudo-randomized table of keys, one per (player, position).
// A board of length N (the full (W+2)*(H+2) array, sentinels included) is
// indexed by the position directly; player 0 uses keys [0,N), player 1 uses
// keys [N,2N).
type Table struct {
	keys []Hash
	n    int
}

// New allocates a table for a board of the given cell-array length, seeded
// deterministically: two tables built with the same seed and length yield
// identical keys.
func New(seed int64, length int) *Table {
	r := rand.New(rand.NewSource(seed))

	keys := make([]Hash, 2*length)
	for i := range keys {
		keys[i] = Hash(r.Uint64())
	}
	return &Table{keys: keys, n: length}
}

// Key returns the hash contribution of placing a stone for the given player
// at the given position.
func (t *Table) Key(player int, pos int) Hash {
	if player == 0 {
		return t.keys[pos]
	}
	return t.keys[t.n+pos]
}

// Clone returns an independent deep copy of the table.
func (t *Table) Clone() *Table {
	keys := make([]Hash, len(t.keys))
	copy(keys, t.keys)
	return &Table{keys: keys, n: t.n}
}

// Len returns the number of positions the table was built for.
func (t *Table) Len() int {
	return t.n
}
