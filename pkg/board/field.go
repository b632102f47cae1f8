// Package board implements the Points board: a rectangular grid of cells
// with reversible stone placement, surround detection and capture, and
// incremental Zobrist hashing.
package board

import (
	"fmt"

	"github.com/herohde/points/pkg/zobrist"
)

// Pos indexes a cell in the board's linear array, which has length
// (width+2)*(height+2): a sentinel border of "bad" cells surrounds the
// playable width x height region so that every direction offset is a
// simple, branch-free addition.
type Pos int

// Player is one of the two players, encoded 0 (red) and 1 (black).
type Player int

const (
	Red   Player = 0
	Black Player = 1
)

// Next returns the opposing player.
func (p Player) Next() Player {
	return p ^ 1
}

func (p Player) String() string {
	if p == Red {
		return "red"
	}
	return "black"
}

// cellState is the per-cell bitfield.
type cellState uint8

const (
	playerBit    cellState = 1
	putBit       cellState = 2
	surBit       cellState = 4
	boundBit     cellState = 8
	emptyBaseBit cellState = 16
	tagBit       cellState = 32
	badBit       cellState = 64

	enableMask = badBit | surBit | putBit | playerBit
	boundMask  = enableMask | boundBit
)

// SurroundCondition parameterizes when a traced ring actually captures, per
// the construction-time resolution of the surround-condition open question.
type SurroundCondition int

const (
	// SurroundStandard marks a ring BOUND only when it actually captured
	// something; otherwise the interior becomes an empty base.
	SurroundStandard SurroundCondition = 0
	// SurroundAlways marks every traced ring BOUND, even if it captured
	// nothing.
	SurroundAlways SurroundCondition = 1
	// SurroundAlwaysEnemy skips the current player's own-chain search when
	// resolving a placement inside an enemy empty base, always giving the
	// enemy's chain priority.
	SurroundAlwaysEnemy SurroundCondition = 2
)

// BeginPattern selects the stones placed at construction before play starts.
type BeginPattern int

const (
	BeginClean     BeginPattern = iota // no stones
	BeginCrosswire                     // two diagonal pairs at the center
	BeginSquare                        // four center cells
)

// cellChange is one (pos, previous value) restoration record.
type cellChange struct {
	pos  Pos
	prev cellState
}

// BoardChange is the undo frame pushed by every doStep.
type BoardChange struct {
	captureCount [2]int
	player       Player
	hash         zobrist.Hash
	changes      []cellChange
}

// Field is a mutable Points board with an explicit undo stack.
type Field struct {
	width, height int
	player        Player
	captureCount  [2]int
	cells         []cellState
	zt            *zobrist.Table
	hash          zobrist.Hash
	pointsSeq     []Pos
	changes       []BoardChange
	surCond       SurroundCondition
}

// Option configures a Field at construction time.
type Option func(*Field)

// WithSurroundCondition overrides the default surround-condition mode.
func WithSurroundCondition(c SurroundCondition) Option {
	return func(f *Field) {
		f.surCond = c
	}
}

// New creates a width x height board seeded for reproducible Zobrist
// hashing, with the given opening pattern placed before play begins.
func New(width, height int, seed int64, pattern BeginPattern, opts ...Option) *Field {
	f := &Field{
		width:  width,
		height: height,
		player: Red,
	}
	for _, opt := range opts {
		opt(f)
	}

	length := (width + 2) * (height + 2)
	f.cells = make([]cellState, length)
	f.zt = zobrist.New(seed, length)
	f.changes = make([]BoardChange, 0, length)
	f.pointsSeq = make([]Pos, 0, length)

	for x := -1; x <= width; x++ {
		f.cells[f.toPos(x, -1)] |= badBit
		f.cells[f.toPos(x, height)] |= badBit
	}
	for y := -1; y <= height; y++ {
		f.cells[f.toPos(-1, y)] |= badBit
		f.cells[f.toPos(width, y)] |= badBit
	}

	f.placeBeginPattern(pattern)
	return f
}

func (f *Field) placeBeginPattern(pattern BeginPattern) {
	switch pattern {
	case BeginCrosswire:
		f.DoStep(f.toPos(f.width/2-1, f.height/2-1))
		f.DoStep(f.toPos(f.width/2, f.height/2-1))
		f.DoStep(f.toPos(f.width/2, f.height/2))
		f.DoStep(f.toPos(f.width/2-1, f.height/2))
	case BeginSquare:
		f.DoStep(f.toPos(f.width/2-1, f.height/2-1))
		f.DoStep(f.toPos(f.width/2, f.height/2-1))
		f.DoStep(f.toPos(f.width/2-1, f.height/2))
		f.DoStep(f.toPos(f.width/2, f.height/2))
	case BeginClean:
	}
}

// Clone returns an independent deep copy, sharing the immutable Zobrist
// table but with its own cell array and history.
func (f *Field) Clone() *Field {
	cells := make([]cellState, len(f.cells))
	copy(cells, f.cells)

	changes := make([]BoardChange, len(f.changes))
	for i, c := range f.changes {
		cc := make([]cellChange, len(c.changes))
		copy(cc, c.changes)
		changes[i] = BoardChange{captureCount: c.captureCount, player: c.player, hash: c.hash, changes: cc}
	}

	seq := make([]Pos, len(f.pointsSeq))
	copy(seq, f.pointsSeq)

	return &Field{
		width:        f.width,
		height:       f.height,
		player:       f.player,
		captureCount: f.captureCount,
		cells:        cells,
		zt:           f.zt,
		hash:         f.hash,
		pointsSeq:    seq,
		changes:      changes,
		surCond:      f.surCond,
	}
}

func (f *Field) String() string {
	return fmt.Sprintf("Field[%vx%v, player=%v, score=%v/%v, moves=%v]", f.width, f.height, f.player,
		f.captureCount[Red], f.captureCount[Black], len(f.pointsSeq))
}

// --- geometry ---

func (f *Field) stride() int { return f.width + 2 }

func (f *Field) toPos(x, y int) Pos { return Pos((y+1)*f.stride() + x + 1) }

func (f *Field) toX(pos Pos) int { return int(pos)%f.stride() - 1 }
func (f *Field) toY(pos Pos) int { return int(pos)/f.stride() - 1 }

func (f *Field) ToXY(pos Pos) (x, y int) { return f.toX(pos), f.toY(pos) }
func (f *Field) ToPos(x, y int) Pos      { return f.toPos(x, y) }

func (f *Field) n(pos Pos) Pos  { return pos - Pos(f.stride()) }
func (f *Field) s(pos Pos) Pos  { return pos + Pos(f.stride()) }
func (f *Field) w(pos Pos) Pos  { return pos - 1 }
func (f *Field) e(pos Pos) Pos  { return pos + 1 }
func (f *Field) nw(pos Pos) Pos { return pos - Pos(f.stride()) - 1 }
func (f *Field) ne(pos Pos) Pos { return pos - Pos(f.stride()) + 1 }
func (f *Field) sw(pos Pos) Pos { return pos + Pos(f.stride()) - 1 }
func (f *Field) se(pos Pos) Pos { return pos + Pos(f.stride()) + 1 }

// Width and Height return the playable board dimensions.
func (f *Field) Width() int  { return f.width }
func (f *Field) Height() int { return f.height }

// MinPos and MaxPos return the inclusive playable position range.
func (f *Field) MinPos() Pos { return f.toPos(0, 0) }
func (f *Field) MaxPos() Pos { return f.toPos(f.width-1, f.height-1) }

// ManhattanDistance returns the L1 distance between two positions.
func (f *Field) ManhattanDistance(a, b Pos) int {
	ax, ay := f.ToXY(a)
	bx, by := f.ToXY(b)
	return abs(ax-bx) + abs(ay-by)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// --- cell bit accessors ---

func (f *Field) getPlayer(pos Pos) cellState { return f.cells[pos] & playerBit }

// GetPlayer returns the player owning the stone at pos. Only meaningful if
// IsPutted(pos) is true.
func (f *Field) GetPlayer(pos Pos) Player { return Player(f.getPlayer(pos)) }

func (f *Field) IsPutted(pos Pos) bool     { return f.cells[pos]&putBit != 0 }
func (f *Field) IsBaseBound(pos Pos) bool  { return f.cells[pos]&boundBit != 0 }
func (f *Field) IsCaptured(pos Pos) bool   { return f.cells[pos]&surBit != 0 }
func (f *Field) IsInEmptyBase(pos Pos) bool {
	return f.cells[pos]&emptyBaseBit != 0
}
func (f *Field) isTagged(pos Pos) bool { return f.cells[pos]&tagBit != 0 }
func (f *Field) isBad(pos Pos) bool    { return f.cells[pos]&badBit != 0 }

func (f *Field) getEnableCond(pos Pos) cellState { return f.cells[pos] & enableMask }
func (f *Field) isEnable(pos Pos, cond cellState) bool {
	return f.cells[pos]&enableMask == cond
}
func (f *Field) isNotEnable(pos Pos, cond cellState) bool {
	return f.cells[pos]&enableMask != cond
}
func (f *Field) isBound(pos Pos, cond cellState) bool {
	return f.cells[pos]&boundMask == cond
}
func (f *Field) isNotBound(pos Pos, cond cellState) bool {
	return f.cells[pos]&boundMask != cond
}

// IsPuttingAllowed reports whether pos is free to place a stone on.
func (f *Field) IsPuttingAllowed(pos Pos) bool {
	return f.cells[pos]&(putBit|surBit|badBit) == 0
}

func (f *Field) setPutted(pos Pos)   { f.cells[pos] |= putBit }
func (f *Field) setPlayerPutted(pos Pos, player Player) {
	f.cells[pos] = (f.cells[pos] &^ playerBit) | cellState(player) | putBit
}
func (f *Field) capture(pos Pos) { f.cells[pos] |= surBit }
func (f *Field) free(pos Pos)    { f.cells[pos] &^= surBit }
func (f *Field) setBaseBound(pos Pos)   { f.cells[pos] |= boundBit }
func (f *Field) setEmptyBase(pos Pos)   { f.cells[pos] |= emptyBaseBit }
func (f *Field) clearEmptyBase(pos Pos) { f.cells[pos] &^= emptyBaseBit }
func (f *Field) setTag(pos Pos)         { f.cells[pos] |= tagBit }
func (f *Field) clearTag(pos Pos)       { f.cells[pos] &^= tagBit }

// pushChange records the pre-mutation value of pos into the active undo
// frame. Must be called before every mutation performed after doStep's
// initial frame push.
func (f *Field) pushChange(pos Pos) {
	last := &f.changes[len(f.changes)-1]
	last.changes = append(last.changes, cellChange{pos: pos, prev: f.cells[pos]})
}

// --- read-only queries ---

func (f *Field) Score(player Player) int {
	return f.captureCount[player] - f.captureCount[player.Next()]
}

func (f *Field) prevScore(player Player) int {
	last := f.changes[len(f.changes)-1]
	return last.captureCount[player] - last.captureCount[player.Next()]
}

// DeltaScore returns the score change produced by the last move, for its
// mover.
func (f *Field) DeltaScore() int {
	mover := f.lastPlayer()
	return f.Score(mover) - f.prevScore(mover)
}

func (f *Field) lastPlayer() Player {
	return f.GetPlayer(f.pointsSeq[len(f.pointsSeq)-1])
}

func (f *Field) Player() Player { return f.player }

func (f *Field) SetPlayer(player Player) { f.player = player }

func (f *Field) Hash() zobrist.Hash { return f.hash }

// RecomputeHash rebuilds the Zobrist hash from scratch by scanning every
// PUT cell, for verification against the incrementally maintained Hash().
func (f *Field) RecomputeHash() zobrist.Hash {
	var h zobrist.Hash
	for pos := 0; pos < len(f.cells); pos++ {
		if f.cells[pos]&putBit != 0 {
			player := int(f.cells[pos] & playerBit)
			h ^= f.zt.Key(player, pos)
		}
	}
	return h
}

// NumCells returns the length of the underlying linear cell array, i.e.
// (width+2)*(height+2) including the sentinel border.
func (f *Field) NumCells() int { return len(f.cells) }

// PositionHash returns a Zobrist key that depends only on pos, not on which
// player occupies it. Used by pkg/trajectory for sequence-identity hashing,
// where player is irrelevant and only set membership matters.
func (f *Field) PositionHash(pos Pos) zobrist.Hash { return f.zt.Key(0, int(pos)) }

func (f *Field) MovesCount() int { return len(f.pointsSeq) }

func (f *Field) PointsSeq() []Pos {
	seq := make([]Pos, len(f.pointsSeq))
	copy(seq, f.pointsSeq)
	return seq
}

// NumberNearPoints returns the count of player's stones among the 8
// neighbors of pos.
func (f *Field) NumberNearPoints(pos Pos, player Player) int {
	cond := putBit | cellState(player)
	n := 0
	for _, nb := range f.neighbors(pos) {
		if f.isEnable(nb, cond) {
			n++
		}
	}
	return n
}

// NumberNearGroups returns the count of distinct stone groups of player
// touching pos, counted by corner transitions the way the original
// field.h's numberNearGroups does (one group per side where a non-player
// cell is adjacent to a player cell at the corner).
func (f *Field) NumberNearGroups(pos Pos, player Player) int {
	cond := cellState(player) | putBit
	result := 0
	if f.isNotEnable(f.w(pos), cond) && (f.isEnable(f.nw(pos), cond) || f.isEnable(f.n(pos), cond)) {
		result++
	}
	if f.isNotEnable(f.s(pos), cond) && (f.isEnable(f.sw(pos), cond) || f.isEnable(f.w(pos), cond)) {
		result++
	}
	if f.isNotEnable(f.e(pos), cond) && (f.isEnable(f.se(pos), cond) || f.isEnable(f.s(pos), cond)) {
		result++
	}
	if f.isNotEnable(f.n(pos), cond) && (f.isEnable(f.ne(pos), cond) || f.isEnable(f.e(pos), cond)) {
		result++
	}
	return result
}

// IsNearPoints reports whether any of the 8 neighbors of pos is a stone of
// player.
func (f *Field) IsNearPoints(pos Pos, player Player) bool {
	return f.NumberNearPoints(pos, player) > 0
}

func (f *Field) neighbors(pos Pos) [8]Pos {
	return [8]Pos{f.n(pos), f.s(pos), f.w(pos), f.e(pos), f.nw(pos), f.ne(pos), f.sw(pos), f.se(pos)}
}

// --- mutation ---

// DoStep places a stone for the current player at pos and advances the
// current player. Returns false (no mutation) if pos is occupied,
// captured, or off-board.
func (f *Field) DoStep(pos Pos) bool {
	if !f.IsPuttingAllowed(pos) {
		return false
	}
	f.doUnsafeStep(pos, f.player)
	f.player = f.player.Next()
	return true
}

// DoStepAs places a stone for the given player at pos without advancing
// the current player.
func (f *Field) DoStepAs(pos Pos, player Player) bool {
	if !f.IsPuttingAllowed(pos) {
		return false
	}
	f.doUnsafeStep(pos, player)
	return true
}

func (f *Field) doUnsafeStep(pos Pos, player Player) {
	f.changes = append(f.changes, BoardChange{
		captureCount: f.captureCount,
		player:       f.player,
		hash:         f.hash,
	})
	f.pushChange(pos)

	f.setPlayerPutted(pos, player)
	f.hash ^= f.zt.Key(int(player), int(pos))
	f.pointsSeq = append(f.pointsSeq, pos)

	f.checkClosure(pos, player)
}

// UndoStep reverses the last DoStep/DoStepAs. Requires non-empty history.
func (f *Field) UndoStep() bool {
	if len(f.pointsSeq) == 0 {
		return false
	}
	f.pointsSeq = f.pointsSeq[:len(f.pointsSeq)-1]

	last := f.changes[len(f.changes)-1]
	for i := len(last.changes) - 1; i >= 0; i-- {
		c := last.changes[i]
		f.cells[c.pos] = c.prev
	}
	f.player = last.player
	f.captureCount = last.captureCount
	f.hash = last.hash
	f.changes = f.changes[:len(f.changes)-1]
	return true
}
