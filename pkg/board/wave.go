package board

// wave performs a breadth-first flood fill starting at start, using the
// TAG bit as the visited marker. cond decides both whether a position is
// included in the frontier and whether the fill should expand from it. All
// TAG bits touched by the fill are cleared before returning, even if cond
// never returns false (exhausting the board).
func (f *Field) wave(start Pos, cond func(Pos) bool) {
	if !cond(start) {
		return
	}

	queue := []Pos{start}
	f.setTag(start)

	for i := 0; i < len(queue); i++ {
		cur := queue[i]
		for _, nb := range [4]Pos{f.w(cur), f.n(cur), f.e(cur), f.s(cur)} {
			if !f.isTagged(nb) && cond(nb) {
				queue = append(queue, nb)
				f.setTag(nb)
			}
		}
	}

	for _, p := range queue {
		f.clearTag(p)
	}
}

// Wave exposes the flood fill publicly (e.g. for UCT's radius-limited move
// enumeration): it visits every position reachable from start for which
// cond holds, calling visit once per visited position, in BFS order.
func (f *Field) Wave(start Pos, cond func(Pos) bool, visit func(Pos)) {
	f.wave(start, func(pos Pos) bool {
		if cond(pos) {
			visit(pos)
			return true
		}
		return false
	})
}
