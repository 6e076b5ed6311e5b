package play

import (
	"fmt"

	"github.com/lox/cfreval/internal/abstraction"
	"github.com/lox/cfreval/internal/tree"
)

// play traverses one trajectory of the hand. Every seat advances through
// its own view of the betting tree in lockstep; the acting seat is sampled
// from B's strategy when it occupies bPos and from A's otherwise.
// contributions and folded are mutated along the trajectory and are reset
// by the duplicate driver between sub-hands.
func (p *Player) play(nodes []*tree.Node, bPos int, contributions []int, lastBetTo int,
	folded []bool, numRemaining, lastPlayerActing int, actionSequence, target string, lastSt int) error {
	if actionSequence == target {
		p.numTargetP1Outcomes++
	}
	p0 := nodes[0]
	if p0.Terminal() {
		p1Outcome, err := p.scoreTerminal(p0, contributions, folded, numRemaining)
		if err != nil {
			return err
		}
		if actionSequence == target {
			p.sumTargetP1Outcomes += p1Outcome
		}
		return nil
	}

	// The street, succ count, and default succ are the same on every
	// seat's node for symmetric strategies.
	st := p0.Street()
	numSuccs := p0.NumSuccs()
	dsi := p0.DefaultSuccIndex()

	// Find the next seat to act: the first non-folded seat at or after
	// either the street's opener or the previous actor's successor.
	var actualPA int
	if st > lastSt {
		actualPA = p.g.FirstToAct(st)
	} else {
		actualPA = lastPlayerActing + 1
	}
	for {
		if actualPA == p.numPlayers {
			actualPA = 0
		}
		if !folded[actualPA] {
			break
		}
		actualPA++
	}

	bd := p.boards[st]
	rawHCP := p.rawHCPs[actualPA][st]
	aOffset := p.strategyOffset(p.aBuckets, st, bd, rawHCP, numSuccs)
	bOffset := p.strategyOffset(p.bBuckets, st, bd, rawHCP, numSuccs)

	r := p.rng.NextDouble()

	// The actual seat acting decides whose strategy is queried; the
	// node's own player-acting value addresses the information set, which
	// can differ on reentrant trees.
	probs := make([]float64, numSuccs)
	nt := nodes[actualPA].NonterminalID()
	nodePA := nodes[actualPA].PlayerActing()
	if actualPA == bPos {
		p.bProbs.RMProbs(st, nodePA, nt, bOffset, numSuccs, dsi, probs)
	} else {
		p.aProbs.RMProbs(st, nodePA, nt, aOffset, numSuccs, dsi, probs)
	}

	s := numSuccs - 1
	cum := 0.0
	for i := 0; i < numSuccs-1; i++ {
		cum += probs[i]
		if r < cum {
			s = i
			break
		}
	}

	// Advance every seat along the semantically same action. Call and
	// fold indices exist on every tree; bet sizes are bridged by their
	// LastBetTo amount.
	succNodes := make([]*tree.Node, p.numPlayers)
	var action string
	switch {
	case s == nodes[actualPA].CallSuccIndex():
		for seat := 0; seat < p.numPlayers; seat++ {
			csi := nodes[seat].CallSuccIndex()
			succNodes[seat] = nodes[seat].IthSucc(csi)
			if seat == 0 {
				action = nodes[seat].ActionName(csi)
			}
		}
		contributions[actualPA] = lastBetTo
		return p.play(succNodes, bPos, contributions, lastBetTo, folded, numRemaining,
			actualPA, actionSequence+action, target, st)

	case s == nodes[actualPA].FoldSuccIndex():
		for seat := 0; seat < p.numPlayers; seat++ {
			fsi := nodes[seat].FoldSuccIndex()
			succNodes[seat] = nodes[seat].IthSucc(fsi)
			if seat == 0 {
				action = nodes[seat].ActionName(fsi)
			}
		}
		folded[actualPA] = true
		return p.play(succNodes, bPos, contributions, lastBetTo, folded, numRemaining-1,
			actualPA, actionSequence+action, target, st)

	default:
		newBetTo := nodes[actualPA].IthSucc(s).LastBetTo()
		for seat := 0; seat < p.numPlayers; seat++ {
			n := nodes[seat]
			ps := -1
			for i := 0; i < n.NumSuccs(); i++ {
				if i == n.CallSuccIndex() || i == n.FoldSuccIndex() {
					continue
				}
				if n.IthSucc(i).LastBetTo() == newBetTo {
					ps = i
					break
				}
			}
			if ps < 0 {
				p.log.Error().Int("seat", seat).Int("street", st).Int("bet_to", newBetTo).
					Str("action_sequence", actionSequence).Msg("no matching successor")
				return fmt.Errorf("%w: seat %d has no successor betting to %d on street %d",
					ErrTreeMismatch, seat, newBetTo, st)
			}
			succNodes[seat] = n.IthSucc(ps)
			if seat == 0 {
				action = n.ActionName(ps)
			}
		}
		contributions[actualPA] = newBetTo
		return p.play(succNodes, bPos, contributions, newBetTo, folded, numRemaining,
			actualPA, actionSequence+action, target, st)
	}
}

// scoreTerminal computes player 1's outcome at a terminal node.
func (p *Player) scoreTerminal(n *tree.Node, contributions []int, folded []bool, numRemaining int) (float64, error) {
	if numRemaining == 1 {
		// Two-player fold: the survivor collects the folder's chips.
		if folded[1] {
			return -float64(contributions[1]), nil
		}
		return float64(contributions[0]), nil
	}

	// Showdown.
	if p.numPlayers == 2 && (contributions[0] != contributions[1] || contributions[0] != n.LastBetTo()) {
		p.log.Error().Int("p0", contributions[0]).Int("p1", contributions[1]).
			Int("last_bet_to", n.LastBetTo()).Int("terminal_id", n.TerminalID()).
			Msg("contribution mismatch at showdown")
		return 0, fmt.Errorf("%w: %d/%d vs %d at terminal %d",
			ErrContributionMismatch, contributions[0], contributions[1], n.LastBetTo(), n.TerminalID())
	}

	bestHV := 0
	potSize := 0
	for seat := 0; seat < p.numPlayers; seat++ {
		potSize += contributions[seat]
		if !folded[seat] && p.hvs[seat] > bestHV {
			bestHV = p.hvs[seat]
		}
	}

	numWinners := 0
	winnerContributions := 0
	for seat := 0; seat < p.numPlayers; seat++ {
		if !folded[seat] && p.hvs[seat] == bestHV {
			p.winners[seat] = true
			numWinners++
			winnerContributions += contributions[seat]
		} else {
			p.winners[seat] = false
		}
	}

	// Two-player split: winners share the pot net of their own
	// contributions.
	if p.winners[1] {
		return float64(potSize-winnerContributions) / float64(numWinners), nil
	}
	return -float64(contributions[1]), nil
}

// strategyOffset computes the storage offset of the acting seat's holding
// under one strategy's card abstraction. Without an abstraction the river
// uses the strength-sorted pair index; earlier streets use the raw index.
func (p *Player) strategyOffset(b *abstraction.Buckets, st, bd, rawHCP, numSuccs int) int {
	numHoleCardPairs := p.g.NumHoleCardPairs(st)
	if b.None(st) {
		hcp := rawHCP
		if st == p.g.MaxStreet() {
			hcp = int(p.sortedHCPs[bd][rawHCP])
		}
		return bd*numHoleCardPairs*numSuccs + hcp*numSuccs
	}
	return b.Bucket(st, bd*numHoleCardPairs+rawHCP) * numSuccs
}

// playDuplicateHand plays the current deal once per seat, rotating which
// seat strategy B occupies.
func (p *Player) playDuplicateHand(target string) error {
	bigBlindP := p.precedingPlayer(p.g.FirstToAct(0))
	smallBlindP := p.precedingPlayer(bigBlindP)

	contributions := make([]int, p.numPlayers)
	folded := make([]bool, p.numPlayers)
	nodes := make([]*tree.Node, p.numPlayers)
	for bPos := 0; bPos < p.numPlayers; bPos++ {
		for seat := 0; seat < p.numPlayers; seat++ {
			folded[seat] = false
			switch seat {
			case smallBlindP:
				contributions[seat] = p.g.SmallBlind()
			case bigBlindP:
				contributions[seat] = p.g.BigBlind()
			default:
				contributions[seat] = 0
			}
			if seat == bPos {
				nodes[seat] = p.bTrees[seat].Root()
			} else {
				nodes[seat] = p.aTrees[seat].Root()
			}
		}
		err := p.play(nodes, bPos, contributions, p.g.BigBlind(), folded, p.numPlayers,
			noPlayerActing, "", target, -1)
		if err != nil {
			return err
		}
	}
	return nil
}

func (p *Player) precedingPlayer(seat int) int {
	if seat == 0 {
		return p.numPlayers - 1
	}
	return seat - 1
}
