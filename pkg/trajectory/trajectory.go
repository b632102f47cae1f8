// Package trajectory builds short forced-looking move sequences ("trajectories")
// used to restrict the search's root and recursive move sets to squares that
// plausibly matter, pruning away the rest of an otherwise-empty board.
package trajectory

import (
	"github.com/herohde/points/pkg/board"
	"github.com/herohde/points/pkg/zobrist"
)

// Trajectory is an ordered sequence of positions for one player, the last of
// which produced a positive score delta when actually played. Hash is the
// XOR of each point's position-only Zobrist key (see board.Field.PositionHash),
// used for cheap duplicate and composite-trajectory detection.
type Trajectory struct {
	Points   []board.Pos
	Hash     zobrist.Hash
	Excluded bool
}

func newTrajectory(f *board.Field, points []board.Pos) *Trajectory {
	pts := clonePoints(points)
	var hash zobrist.Hash
	for _, p := range pts {
		hash ^= f.PositionHash(p)
	}
	return &Trajectory{Points: pts, Hash: hash}
}

// Size returns the number of positions in the trajectory.
func (t *Trajectory) Size() int { return len(t.Points) }

// IsValid reports whether every position in the trajectory is still open
// for placement.
func (t *Trajectory) IsValid(f *board.Field) bool {
	for _, p := range t.Points {
		if !f.IsPuttingAllowed(p) {
			return false
		}
	}
	return true
}

// IsValidExcept is IsValid but ignores pos, used when pos was just played
// and so is expected to no longer be open.
func (t *Trajectory) IsValidExcept(f *board.Field, pos board.Pos) bool {
	for _, p := range t.Points {
		if p != pos && !f.IsPuttingAllowed(p) {
			return false
		}
	}
	return true
}

func (t *Trajectory) contains(pos board.Pos) bool {
	for _, p := range t.Points {
		if p == pos {
			return true
		}
	}
	return false
}

func clonePoints(pts []board.Pos) []board.Pos {
	out := make([]board.Pos, len(pts))
	copy(out, pts)
	return out
}

// withoutPos returns a copy of the trajectory with pos removed, or nil if
// the trajectory has at most one point or nothing is left after the
// removal.
func (t *Trajectory) withoutPos(f *board.Field, pos board.Pos) *Trajectory {
	if t.Size() <= 1 {
		return nil
	}
	pts := make([]board.Pos, 0, len(t.Points)-1)
	for _, p := range t.Points {
		if p != pos {
			pts = append(pts, p)
		}
	}
	if len(pts) == 0 {
		return nil
	}
	return newTrajectory(f, pts)
}
