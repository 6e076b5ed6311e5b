package game

import (
	"sort"
	"strings"
)

// Card identifies a specific card as an integer in [0, MaxCard]. Higher
// ranks encode to higher values, so sorting cards sorts by rank first.
type Card int

const (
	rankGlyphs = "23456789TJQKA"
	suitGlyphs = "cdhs"
)

// MakeCard encodes a (rank, suit) pair. Rank 0 is the lowest rank in play.
func (g *Game) MakeCard(rank, suit int) Card {
	return Card(rank*g.cfg.NumSuits + suit)
}

// Rank decodes the rank of c, in [0, NumRanks).
func (g *Game) Rank(c Card) int { return int(c) / g.cfg.NumSuits }

// Suit decodes the suit of c, in [0, NumSuits).
func (g *Game) Suit(c Card) int { return int(c) % g.cfg.NumSuits }

// MaxCard returns the highest card identifier in the deck.
func (g *Game) MaxCard() Card {
	return Card(g.cfg.NumRanks*g.cfg.NumSuits - 1)
}

// CardName renders c with ranks aligned to the top of a standard deck, so a
// 6-rank deck runs 9..A.
func (g *Game) CardName(c Card) string {
	rankOffset := len(rankGlyphs) - g.cfg.NumRanks
	var b strings.Builder
	b.WriteByte(rankGlyphs[rankOffset+g.Rank(c)])
	b.WriteByte(suitGlyphs[g.Suit(c)])
	return b.String()
}

// CardNames renders a card slice as a space-separated list.
func (g *Game) CardNames(cards []Card) string {
	names := make([]string, len(cards))
	for i, c := range cards {
		names[i] = g.CardName(c)
	}
	return strings.Join(names, " ")
}

// SortCards orders cards in place, highest first.
func SortCards(cards []Card) {
	sort.Slice(cards, func(i, j int) bool { return cards[i] > cards[j] })
}
