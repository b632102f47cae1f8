package uct

import "sync/atomic"

// KomiController adjusts a dynamic handicap during search: if the root's
// observed win rate for the player to move drifts outside [Low, High],
// komi is nudged toward the mover so neither extreme win rate wastes
// simulations confirming an already-settled verdict. Disabled (komi fixed
// at 0) when nil.
type KomiController struct {
	komi atomic.Int32

	// Interval is how many new root visits must accumulate between
	// adjustments.
	Interval int32
	// Low and High bound the win rate considered "settled enough" to leave
	// alone; outside that band komi shifts by one point toward balance.
	Low, High float64
	// MinVisits is how many root visits must exist before the first
	// adjustment is considered.
	MinVisits int32

	last atomic.Int32
}

// NewKomiController returns a controller with the given tuning parameters.
func NewKomiController(interval int32, low, high float64, minVisits int32) *KomiController {
	return &KomiController{Interval: interval, Low: low, High: high, MinVisits: minVisits}
}

// Komi returns the current handicap.
func (k *KomiController) Komi() int32 {
	if k == nil {
		return 0
	}
	return k.komi.Load()
}

// maybeAdjust inspects root's accumulated visits and, once Interval new
// visits have accrued past MinVisits, shifts komi by one point if the
// mover's win rate has drifted past Low or High. root.Wins/Draws tally
// outcomes for the opponent of root's own mover (the convention every node
// in the tree follows, see simulate.go), so the mover's own win rate is the
// complement.
func (k *KomiController) maybeAdjust(root *Node) {
	if k == nil {
		return
	}
	visits := root.Visits()
	if visits < k.MinVisits || visits-k.last.Load() < k.Interval {
		return
	}
	k.last.Store(visits)

	moverWins := float64(visits) - float64(root.Wins()) - float64(root.Draws())
	rate := moverWins / float64(visits)

	switch {
	case rate < k.Low:
		k.komi.Add(-1)
	case rate > k.High:
		k.komi.Add(1)
	}
}
