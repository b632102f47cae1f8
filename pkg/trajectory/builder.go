package trajectory

import (
	"github.com/herohde/points/pkg/board"
	"github.com/herohde/points/pkg/zobrist"
)

var players = [2]board.Player{board.Red, board.Black}

// Set holds the trajectories and resulting pruned move set for both players
// over one board position. It owns no board state of its own: construction
// mutates the given Field with speculative DoStepAs/UndoStep pairs, leaving
// it exactly as found once a Build* call returns.
type Set struct {
	field      *board.Field
	depth      [2]int
	byPlayer   [2][]*Trajectory
	projection []int
	moves      [2][]board.Pos
	all        []board.Pos
}

// New creates an empty trajectory set over field. Call one of the Build
// methods before reading Moves/MaxScore.
func New(field *board.Field) *Set {
	return &Set{field: field, projection: make([]int, field.NumCells())}
}

// Depth returns player's trajectory search depth budget, set by the most
// recent Build call.
func (s *Set) Depth(player board.Player) int { return s.depth[player] }

// Moves returns the pruned union move set across both players, the
// candidate list a search should restrict itself to.
func (s *Set) Moves() []board.Pos {
	out := make([]board.Pos, len(s.all))
	copy(out, s.all)
	return out
}

// MovesFor returns the pruned move set for one player only.
func (s *Set) MovesFor(player board.Player) []board.Pos {
	out := make([]board.Pos, len(s.moves[player]))
	copy(out, s.moves[player])
	return out
}

// Build constructs trajectories from scratch for a total recursion budget
// of depth, split (depth+1)/2 to the current player and depth/2 to the
// opponent.
func (s *Set) Build(depth int) {
	cur := s.field.Player()
	enemy := cur.Next()
	s.depth[cur] = (depth + 1) / 2
	s.depth[enemy] = depth / 2

	s.buildPlayerTrajectories(cur)
	s.buildPlayerTrajectories(enemy)
	s.calculateMoves()
}

// BuildFromLastWithMove rebuilds the current player's trajectories from
// scratch and carries the opponent's trajectories over from last, dropping
// pos (the move just played) from any that contained it.
func (s *Set) BuildFromLastWithMove(last *Set, pos board.Pos) {
	cur := s.field.Player()
	enemy := cur.Next()
	s.depth[cur] = last.depth[cur]
	s.depth[enemy] = last.depth[enemy] - 1

	if s.depth[cur] > 0 {
		s.buildRecursive(s.depth[cur]-1, cur)
	}
	if s.depth[enemy] > 0 {
		for _, t := range last.byPlayer[enemy] {
			fits := t.Size() <= s.depth[enemy] || (t.Size() == s.depth[enemy]+1 && t.contains(pos))
			if fits && t.IsValidExcept(s.field, pos) {
				s.addWithoutPos(t, pos, enemy)
			}
		}
	}
	s.calculateMoves()
}

// BuildFromLast carries over both players' trajectories from last, for the
// case where the last move played was not itself on a tracked trajectory
// (or no move was played at all).
func (s *Set) BuildFromLast(last *Set) {
	cur := s.field.Player()
	enemy := cur.Next()
	s.depth[cur] = last.depth[cur]
	s.depth[enemy] = last.depth[enemy] - 1

	if s.depth[cur] > 0 {
		for _, t := range last.byPlayer[cur] {
			s.addCopy(t, cur)
		}
	}
	if s.depth[enemy] > 0 {
		for _, t := range last.byPlayer[enemy] {
			if t.Size() <= s.depth[enemy] {
				s.addCopy(t, enemy)
			}
		}
	}
	s.calculateMoves()
}

// MaxScore returns an upper bound on the score player can reach by playing
// only within its own pruned move set for its depth budget.
func (s *Set) MaxScore(player board.Player) int {
	return s.calculateMaxScore(player, s.depth[player]) + s.depth[player.Next()]
}

func (s *Set) calculateMaxScore(player board.Player, depth int) int {
	f := s.field
	result := f.Score(player)
	if depth == 0 {
		return result
	}
	for _, pos := range s.moves[player] {
		if !f.IsPuttingAllowed(pos) {
			continue
		}
		f.DoStepAs(pos, player)
		if f.DeltaScore() >= 0 {
			if v := s.calculateMaxScore(player, depth-1); v > result {
				result = v
			}
		}
		f.UndoStep()
	}
	return result
}

func (s *Set) buildPlayerTrajectories(player board.Player) {
	if s.depth[player] > 0 {
		s.buildRecursive(s.depth[player]-1, player)
	}
}

// buildRecursive explores every playable cell touching an existing stone of
// player, accepting a trajectory wherever a speculative placement produces
// a positive score delta, and recursing further along candidates that
// don't, down to depth zero.
func (s *Set) buildRecursive(depth int, player board.Player) {
	f := s.field
	for pos := f.MinPos(); pos <= f.MaxPos(); pos++ {
		if !f.IsPuttingAllowed(pos) || !f.IsNearPoints(pos, player) {
			continue
		}

		if f.IsInEmptyBase(pos) {
			f.DoStepAs(pos, player)
			if f.DeltaScore() > 0 {
				s.addFromSeqTail(player, s.depth[player]-depth)
			}
			f.UndoStep()
			continue
		}

		f.DoStepAs(pos, player)
		if f.DeltaScore() > 0 {
			s.addFromSeqTail(player, s.depth[player]-depth)
		} else if depth > 0 {
			s.buildRecursive(depth-1, player)
		}
		f.UndoStep()
	}
}

// addFromSeqTail considers the last count moves played on the field as a
// candidate trajectory for player, applying the heuristic admission filter
// (every point must be base-bound and have at least 2 neighboring groups)
// and suppressing exact duplicates by Zobrist hash.
func (s *Set) addFromSeqTail(player board.Player, count int) {
	f := s.field
	seq := f.PointsSeq()
	pts := seq[len(seq)-count:]

	for _, p := range pts {
		if !f.IsBaseBound(p) || f.NumberNearGroups(p, player) < 2 {
			return
		}
	}

	t := newTrajectory(f, pts)
	for _, existing := range s.byPlayer[player] {
		if existing.Hash == t.Hash {
			return
		}
	}
	s.byPlayer[player] = append(s.byPlayer[player], t)
}

func (s *Set) addCopy(t *Trajectory, player board.Player) {
	s.byPlayer[player] = append(s.byPlayer[player], &Trajectory{Points: clonePoints(t.Points), Hash: t.Hash})
}

func (s *Set) addWithoutPos(t *Trajectory, pos board.Pos, player board.Player) {
	if nt := t.withoutPos(s.field, pos); nt != nil {
		s.byPlayer[player] = append(s.byPlayer[player], nt)
	}
}

// calculateMoves reduces the raw per-player trajectory lists to the pruned
// move set: composite trajectories are excluded, then trajectories holding
// more than one cell unique to themselves are excluded to a fixed point,
// and the union of what remains becomes the candidate move list.
func (s *Set) calculateMoves() {
	for _, p := range players {
		s.excludeCompositeTrajectories(p)
	}
	s.project()
	for {
		changed := false
		for _, p := range players {
			if s.excludeUnnecessary(p) {
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	for _, p := range players {
		s.moves[p] = s.collectPoints(p)
	}
	s.all = mergeUnique(s.moves[board.Red], s.moves[board.Black])
	s.unproject()
	s.includeAll()
}

// excludeCompositeTrajectories drops any trajectory k for which two other,
// smaller trajectories i and j together cover exactly k's point set (by
// Zobrist-hash comparison of their union) — k adds nothing beyond what i
// and j already contribute individually.
func (s *Set) excludeCompositeTrajectories(player board.Player) {
	list := s.byPlayer[player]
	for k := 0; k < len(list); k++ {
		for i := 0; i < len(list)-1; i++ {
			if list[k].Size() <= list[i].Size() {
				continue
			}
			for j := i + 1; j < len(list); j++ {
				if list[k].Size() > list[j].Size() && list[k].Hash == s.intersectHash(list[i], list[j]) {
					list[k].Excluded = true
				}
			}
		}
	}
}

func (s *Set) intersectHash(a, b *Trajectory) zobrist.Hash {
	hash := a.Hash
	for _, p := range b.Points {
		if !a.contains(p) {
			hash ^= s.field.PositionHash(p)
		}
	}
	return hash
}

func (s *Set) project() {
	for _, p := range players {
		for _, t := range s.byPlayer[p] {
			if !t.Excluded {
				for _, pos := range t.Points {
					s.projection[pos]++
				}
			}
		}
	}
}

func (s *Set) unproject() {
	for _, p := range players {
		for _, t := range s.byPlayer[p] {
			if !t.Excluded {
				for _, pos := range t.Points {
					s.projection[pos]--
				}
			}
		}
	}
}

func (s *Set) excludeUnnecessary(player board.Player) bool {
	changed := false
	for _, t := range s.byPlayer[player] {
		if t.Excluded {
			continue
		}
		unique := 0
		for _, pos := range t.Points {
			if s.projection[pos] == 1 {
				unique++
			}
		}
		if unique > 1 {
			t.Excluded = true
			for _, pos := range t.Points {
				s.projection[pos]--
			}
			changed = true
		}
	}
	return changed
}

func (s *Set) collectPoints(player board.Player) []board.Pos {
	var out []board.Pos
	seen := make(map[board.Pos]bool)
	for _, t := range s.byPlayer[player] {
		if t.Excluded {
			continue
		}
		for _, p := range t.Points {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	return out
}

func (s *Set) includeAll() {
	for _, p := range players {
		for _, t := range s.byPlayer[p] {
			t.Excluded = false
		}
	}
}

func mergeUnique(a, b []board.Pos) []board.Pos {
	seen := make(map[board.Pos]bool, len(a)+len(b))
	out := make([]board.Pos, 0, len(a)+len(b))
	for _, p := range a {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	for _, p := range b {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}
