package uct

import (
	"math"
	"math/rand"
)

// Selector scores a child for selection given its parent, returning a value
// where higher is more attractive. Unvisited children are never passed to a
// Selector -- they are always chosen first, with priority randomized across
// unvisited siblings to avoid always expanding in move-generation order.
type Selector func(parentVisits, wins, draws, visits int32, drawWeight, uctk float64) float64

// UCB1 is the standard upper confidence bound formula: win rate plus an
// exploration term shrinking as the child accumulates visits.
func UCB1(parentVisits, wins, draws, visits int32, drawWeight, uctk float64) float64 {
	n := float64(visits)
	winRate := (float64(wins) + float64(draws)*drawWeight) / n
	explore := uctk * math.Sqrt(2*math.Log(float64(parentVisits))/n)
	return winRate + explore
}

// UCB1Tuned refines UCB1's exploration term with an estimate of the child's
// outcome variance, capped at the 1/4 upper bound of a Bernoulli variable.
func UCB1Tuned(parentVisits, wins, draws, visits int32, drawWeight, uctk float64) float64 {
	n := float64(visits)
	winRate := (float64(wins) + float64(draws)*drawWeight) / n
	logTerm := math.Log(float64(parentVisits)) / n

	variance := (float64(wins) + float64(draws)*drawWeight*drawWeight) / n
	variance -= winRate * winRate
	variance += math.Sqrt(2 * logTerm)
	if variance > 0.25 {
		variance = 0.25
	}

	explore := uctk * math.Sqrt(variance*logTerm)
	return winRate + explore
}

// selectChild walks node's published children, preferring any unvisited
// child (randomized priority so ties don't always favor generation order)
// and otherwise the child with the highest Selector value. Returns nil if
// node has no children at all.
func selectChild(node *Node, selector Selector, drawWeight, uctk float64, rng *rand.Rand) *Node {
	var best *Node
	var bestValue float64

	for c := node.Child(); c != nil; c = c.Sibling() {
		var value float64
		if v := c.Visits(); v > 0 {
			value = selector(node.Visits(), c.Wins(), c.Draws(), v, drawWeight, uctk)
		} else {
			value = 10000 + float64(rng.Intn(1000))
		}
		if best == nil || value > bestValue {
			best, bestValue = c, value
		}
	}
	return best
}
