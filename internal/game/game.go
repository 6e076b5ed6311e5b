// Package game holds the immutable description of the game under evaluation:
// deck composition, street structure, blinds, and the card encoding with its
// suit-isomorphism canonicalization.
package game

import "fmt"

// Game is the validated, immutable view of a Config. It is constructed once
// at startup and shared by reference everywhere.
type Game struct {
	cfg Config
	// numBoardCards[st] is the cumulative board size at street st.
	numBoardCards []int
}

// New builds a Game from a validated configuration.
func New(cfg Config) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g := &Game{cfg: cfg}
	g.numBoardCards = make([]int, cfg.MaxStreet+1)
	total := 0
	for st := 1; st <= cfg.MaxStreet; st++ {
		total += cfg.NumCardsForStreet[st]
		g.numBoardCards[st] = total
	}
	return g, nil
}

func (g *Game) GameName() string { return g.cfg.GameName }
func (g *Game) NumPlayers() int  { return g.cfg.NumPlayers }
func (g *Game) NumRanks() int    { return g.cfg.NumRanks }
func (g *Game) NumSuits() int    { return g.cfg.NumSuits }
func (g *Game) MaxStreet() int   { return g.cfg.MaxStreet }
func (g *Game) SmallBlind() int  { return g.cfg.SmallBlind }
func (g *Game) BigBlind() int    { return g.cfg.BigBlind }
func (g *Game) StackSize() int   { return g.cfg.StackSize }

// FirstToAct returns the seat that opens the betting on street st.
func (g *Game) FirstToAct(st int) int { return g.cfg.FirstToAct[st] }

// NumCardsForStreet returns the cards dealt on street st; index 0 is the
// hole cards.
func (g *Game) NumCardsForStreet(st int) int { return g.cfg.NumCardsForStreet[st] }

// NumBoardCards returns the cumulative board size at street st.
func (g *Game) NumBoardCards(st int) int { return g.numBoardCards[st] }

// NumHoleCardPairs returns the number of distinct hole-card pairs drawable
// from the deck once the street-st board is removed.
func (g *Game) NumHoleCardPairs(st int) int {
	n := g.cfg.NumRanks*g.cfg.NumSuits - g.numBoardCards[st]
	return n * (n - 1) / 2
}

func (g *Game) String() string {
	return fmt.Sprintf("%s (%d players, %d ranks, %d suits, %d streets)",
		g.cfg.GameName, g.cfg.NumPlayers, g.cfg.NumRanks, g.cfg.NumSuits, g.cfg.MaxStreet+1)
}
