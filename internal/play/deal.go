package play

import (
	"fmt"

	"github.com/lox/cfreval/internal/game"
)

// dealCards fills cards with distinct draws from the deck. Rejection on
// collision keeps the draw order deterministic for a given PRNG state.
func (p *Player) dealCards(cards []game.Card) {
	deckSize := float64(int(p.g.MaxCard()) + 1)
	for i := range cards {
	draw:
		for {
			c := game.Card(deckSize * p.rng.NextDouble())
			for j := 0; j < i; j++ {
				if cards[j] == c {
					continue draw
				}
			}
			cards[i] = c
			break
		}
	}
}

// setHCPsAndBoards records every seat's raw hole-card-pair index per street.
// Street 0 indexes the hole cards as dealt; later streets canonicalize the
// board and hole cards for each seat and look up the per-street board index.
func (p *Player) setHCPsAndBoards(holeCards [][]game.Card, rawBoard []game.Card) error {
	maxStreet := p.g.MaxStreet()
	for st := 0; st <= maxStreet; st++ {
		if st == 0 {
			for seat := 0; seat < p.numPlayers; seat++ {
				p.rawHCPs[seat][0] = p.g.HCPIndex(0, holeCards[seat])
			}
			continue
		}
		numBoardCards := p.g.NumBoardCards(st)
		for seat := 0; seat < p.numPlayers; seat++ {
			canonBoard, canonHole := p.g.CanonicalizeCards(rawBoard[:numBoardCards], holeCards[seat], st)
			// The canonical board is seat-independent.
			if seat == 0 {
				bd, err := p.bt.LookupBoard(canonBoard, st)
				if err != nil {
					return fmt.Errorf("street %d: %w", st, err)
				}
				p.boards[st] = bd
			}
			buffer := make([]game.Card, 0, 2+numBoardCards)
			buffer = append(buffer, canonHole...)
			buffer = append(buffer, canonBoard...)
			p.rawHCPs[seat][st] = p.g.HCPIndex(st, buffer)
		}
	}
	return nil
}

// Go runs numDuplicateHands deals, each played once per seat with B
// rotating, and reports the average player-1 outcome and reach frequency of
// the target action sequence. Nothing is printed if the target is never
// visited.
func (p *Player) Go(numDuplicateHands int64, target string) error {
	p.sumTargetP1Outcomes = 0
	p.numTargetP1Outcomes = 0

	maxStreet := p.g.MaxStreet()
	numBoardCards := p.g.NumBoardCards(maxStreet)
	cards := make([]game.Card, 2*p.numPlayers+numBoardCards)
	handCards := make([]game.Card, 2+numBoardCards)
	holeCards := make([][]game.Card, p.numPlayers)
	for seat := range holeCards {
		holeCards[seat] = make([]game.Card, 2)
	}

	for h := int64(0); h < numDuplicateHands; h++ {
		p.dealCards(cards)
		for seat := 0; seat < p.numPlayers; seat++ {
			game.SortCards(cards[2*seat : 2*seat+2])
		}
		num := 2 * p.numPlayers
		for st := 1; st <= maxStreet; st++ {
			numStreetCards := p.g.NumCardsForStreet(st)
			game.SortCards(cards[num : num+numStreetCards])
			num += numStreetCards
		}

		copy(handCards[2:], cards[2*p.numPlayers:])
		for seat := 0; seat < p.numPlayers; seat++ {
			handCards[0] = cards[2*seat]
			handCards[1] = cards[2*seat+1]
			p.hvs[seat] = p.hv.Val(handCards)
			holeCards[seat][0] = cards[2*seat]
			holeCards[seat][1] = cards[2*seat+1]
		}

		if err := p.setHCPsAndBoards(holeCards, cards[2*p.numPlayers:]); err != nil {
			return err
		}
		if err := p.playDuplicateHand(target); err != nil {
			return err
		}
	}

	if p.numTargetP1Outcomes > 0 {
		avg := p.sumTargetP1Outcomes / float64(p.numTargetP1Outcomes)
		fmt.Fprintf(p.out, "Avg P1 target outcome: %f  (%d)\n", avg, p.numTargetP1Outcomes)
		fmt.Fprintf(p.out, "P1 target reach: %f  (%d/%d)\n",
			float64(p.numTargetP1Outcomes)/(2.0*float64(numDuplicateHands)),
			p.numTargetP1Outcomes, numDuplicateHands)
	}
	return nil
}
