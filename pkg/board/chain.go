package board

// square returns the cross product (signed double-area contribution) of
// the edge from the origin to a followed by the edge from the origin to b,
// using board coordinates. Only the sign is ever consulted.
func (f *Field) square(a, b Pos) int {
	ax, ay := f.ToXY(a)
	bx, by := f.ToXY(b)
	return ax*by - ay*bx
}

// getFirstNextPos and getNextPos encode the deterministic 8-direction
// "rotate around center" schema used to walk a chain's boundary. Diagrams
// (o = center, x = incoming pos, * = result):
//
//	getFirstNextPos:
//	 * . .   x . *   . x x   . . .
//	 . o .   x o .   . o .   . o x
//	 x x .   . . .   . . *   * . x
func (f *Field) getFirstNextPos(center Pos, pos Pos) Pos {
	if pos < center {
		if pos == f.nw(center) || pos == center-1 {
			return f.ne(center)
		}
		return f.se(center)
	}
	if pos == center+1 || pos == f.se(center) {
		return f.sw(center)
	}
	return f.nw(center)
}

//	getNextPos:
//	 . . .   * . .   x * .   . x *   . . x   . . .   . . .   . . .
//	 * o .   x o .   . o .   . o .   . o *   . o x   . o .   . o .
//	 x . .   . . .   . . .   . . .   . . .   . . *   . * x   * x .
func (f *Field) getNextPos(center Pos, pos Pos) Pos {
	if pos < center {
		switch pos {
		case f.nw(center):
			return f.n(center)
		case f.n(center):
			return f.ne(center)
		case f.ne(center):
			return f.e(center)
		default:
			return f.nw(center)
		}
	}
	switch pos {
	case f.e(center):
		return f.se(center)
	case f.se(center):
		return f.s(center)
	case f.s(center):
		return f.sw(center)
	default:
		return f.w(center)
	}
}

// getInputPoints finds up to four (chain-candidate, surround-candidate)
// pairs around centerPos: one per side where a cell failing enableCond is
// adjacent to a diagonal or straight neighbor that satisfies it, forming a
// possible ring entry point.
func (f *Field) getInputPoints(center Pos, cond cellState) (chainPts, surPts [4]Pos, n int) {
	if f.isNotEnable(f.w(center), cond) {
		if f.isEnable(f.nw(center), cond) {
			chainPts[n], surPts[n] = f.nw(center), f.w(center)
			n++
		} else if f.isEnable(f.n(center), cond) {
			chainPts[n], surPts[n] = f.n(center), f.w(center)
			n++
		}
	}
	if f.isNotEnable(f.s(center), cond) {
		if f.isEnable(f.sw(center), cond) {
			chainPts[n], surPts[n] = f.sw(center), f.s(center)
			n++
		} else if f.isEnable(f.w(center), cond) {
			chainPts[n], surPts[n] = f.w(center), f.s(center)
			n++
		}
	}
	if f.isNotEnable(f.e(center), cond) {
		if f.isEnable(f.se(center), cond) {
			chainPts[n], surPts[n] = f.se(center), f.e(center)
			n++
		} else if f.isEnable(f.s(center), cond) {
			chainPts[n], surPts[n] = f.s(center), f.e(center)
			n++
		}
	}
	if f.isNotEnable(f.n(center), cond) {
		if f.isEnable(f.ne(center), cond) {
			chainPts[n], surPts[n] = f.ne(center), f.n(center)
			n++
		} else if f.isEnable(f.e(center), cond) {
			chainPts[n], surPts[n] = f.e(center), f.n(center)
			n++
		}
	}
	return
}

// buildChain walks the boundary of a potential ring starting at start,
// stepping through direction, keeping only cells satisfying cond. Revisits
// of an already-tagged cell truncate the chain back to that cell. The
// chain is accepted only when its signed double-area is negative (the
// orientation convention for an enclosing loop) and it has more than 2
// cells. All TAG bits are cleared before returning.
func (f *Field) buildChain(start Pos, cond cellState, direction Pos) (chain []Pos, ok bool) {
	chain = append(chain, start)
	pos := direction
	center := start
	area := f.square(center, pos)

	for {
		if f.isTagged(pos) {
			for chain[len(chain)-1] != pos {
				f.clearTag(chain[len(chain)-1])
				chain = chain[:len(chain)-1]
			}
		} else {
			f.setTag(pos)
			chain = append(chain, pos)
		}

		pos, center = center, pos
		pos = f.getFirstNextPos(center, pos)
		for f.isNotEnable(pos, cond) {
			pos = f.getNextPos(center, pos)
		}
		area += f.square(center, pos)

		if pos == start {
			break
		}
	}

	for _, p := range chain {
		f.clearTag(p)
	}
	return chain, area < 0 && len(chain) > 2
}

// findSurround floods the interior of chain from insidePoint, counting
// captured enemy stones and freed own stones, then either marks the chain
// BOUND and applies capture/free state to the interior, or (if nothing was
// captured, unless the surround condition forces it) marks the interior as
// an empty base.
func (f *Field) findSurround(chain []Pos, insidePoint Pos, player Player) {
	captured, freed := 0, 0
	var surPoints []Pos

	for _, p := range chain {
		f.setTag(p)
	}

	cond := cellState(player) | putBit | boundBit
	f.wave(insidePoint, func(pos Pos) bool {
		if f.isNotBound(pos, cond) {
			if f.IsPutted(pos) {
				if f.GetPlayer(pos) != player {
					captured++
				} else if f.IsCaptured(pos) {
					freed++
				}
			}
			surPoints = append(surPoints, pos)
			return true
		}
		return false
	})

	f.captureCount[player] += captured
	f.captureCount[player.Next()] -= freed

	if captured != 0 || f.surCond == SurroundAlways {
		for _, p := range chain {
			f.clearTag(p)
			f.pushChange(p)
			f.setBaseBound(p)
		}
		for _, p := range surPoints {
			f.pushChange(p)
			if f.IsInEmptyBase(p) {
				// A cell reclassified from a pending empty base into an
				// actual capture is no longer ambiguous; EMPTY_BASE and
				// PUT/SUR are mutually exclusive states.
				f.clearEmptyBase(p)
			}
			if f.IsPutted(p) {
				if f.GetPlayer(p) != player {
					f.capture(p)
				} else {
					f.free(p)
				}
			} else {
				f.capture(p)
			}
		}
	} else {
		for _, p := range chain {
			f.clearTag(p)
		}
		for _, p := range surPoints {
			f.pushChange(p)
			if !f.IsPutted(p) {
				f.setEmptyBase(p)
				f.cells[p] = f.cells[p]&^playerBit | cellState(player)
			}
		}
	}
}

// removeEmptyBase clears the EMPTY_BASE bit over the flood-fill region
// starting at start.
func (f *Field) removeEmptyBase(start Pos) {
	f.wave(start, func(pos Pos) bool {
		if f.IsInEmptyBase(pos) {
			f.pushChange(pos)
			f.clearEmptyBase(pos)
			return true
		}
		return false
	})
}

// intersectionState classifies a ring edge's crossing of the horizontal
// ray through the test point.
type intersectionState int

const (
	intersectionNone intersectionState = iota
	intersectionUp
	intersectionDown
	intersectionTarget
)

func (f *Field) getIntersectionState(pos, next Pos) intersectionState {
	ax, ay := f.ToXY(pos)
	bx, by := f.ToXY(next)
	if bx <= ax {
		switch by - ay {
		case 1:
			return intersectionUp
		case 0:
			return intersectionTarget
		case -1:
			return intersectionDown
		default:
			return intersectionNone
		}
	}
	return intersectionNone
}

// isPointInsideRing ray-casts horizontally through the ring polygon and
// reports whether pos lies inside it.
func (f *Field) isPointInsideRing(pos Pos, ring []Pos) bool {
	intersections := 0
	state := intersectionNone
	for _, p := range ring {
		switch f.getIntersectionState(pos, p) {
		case intersectionNone:
			state = intersectionNone
		case intersectionUp:
			if state == intersectionDown {
				intersections++
			}
			state = intersectionUp
		case intersectionDown:
			if state == intersectionUp {
				intersections++
			}
			state = intersectionDown
		case intersectionTarget:
		}
	}
	if state == intersectionUp || state == intersectionDown {
		i := 0
		beginState := f.getIntersectionState(pos, ring[i])
		for beginState == intersectionTarget {
			i++
			beginState = f.getIntersectionState(pos, ring[i])
		}
		if (state == intersectionUp && beginState == intersectionDown) ||
			(state == intersectionDown && beginState == intersectionUp) {
			intersections++
		}
	}
	return intersections%2 == 1
}

// checkClosure is run after every placement at start by player, detecting
// and resolving any rings the placement closes, including the empty-base
// rule: a placement inside a previously-traced empty base either completes
// the owner's claim (own base) or triggers a retrospective capture search
// (enemy base).
func (f *Field) checkClosure(start Pos, player Player) {
	if f.IsInEmptyBase(start) {
		// Resolved open question: walk left until a stone is found (or the
		// sentinel boundary is hit), rather than trusting a single-step
		// neighbor.
		pos := start - 1
		for !f.IsPutted(pos) && !f.isBad(pos) {
			pos--
		}

		if f.GetPlayer(pos) == f.GetPlayer(start) {
			f.pushChange(start)
			f.clearEmptyBase(start)
			return
		}

		if f.surCond != SurroundAlwaysEnemy {
			cond := cellState(player) | putBit
			chainPts, surPts, n := f.getInputPoints(start, cond)
			if n > 1 {
				rings := 0
				for i := 0; i < n; i++ {
					if chain, ok := f.buildChain(start, cond, chainPts[i]); ok {
						f.findSurround(chain, surPts[i], player)
						rings++
						if rings == n-1 {
							break
						}
					}
				}
				if f.IsBaseBound(start) {
					f.removeEmptyBase(start)
					return
				}
			}
		}

		pos++
		for {
			pos--
			enemyCond := cellState(player.Next()) | putBit
			for !f.isEnable(pos, enemyCond) {
				pos--
			}
			chainPts, surPts, n := f.getInputPoints(pos, enemyCond)
			for i := 0; i < n; i++ {
				if chain, ok := f.buildChain(pos, enemyCond, chainPts[i]); ok {
					if f.isPointInsideRing(start, chain) {
						f.findSurround(chain, surPts[i], player.Next())
						break
					}
				}
			}
			if f.IsCaptured(start) {
				break
			}
		}
		return
	}

	cond := cellState(player) | putBit
	chainPts, surPts, n := f.getInputPoints(start, cond)
	if n > 1 {
		rings := 0
		for i := 0; i < n; i++ {
			if chain, ok := f.buildChain(start, cond, chainPts[i]); ok {
				f.findSurround(chain, surPts[i], player)
				rings++
				if rings == n-1 {
					break
				}
			}
		}
	}
}
