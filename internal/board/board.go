// Package board enumerates the canonical boards of every street and provides
// the lookup from a canonical board to its compact per-street index.
package board

import (
	"fmt"

	"github.com/lox/cfreval/internal/game"
)

// Tree holds the canonical boards for each street. It is built once at
// startup and immutable afterwards.
type Tree struct {
	g      *game.Game
	boards [][][]game.Card
	lookup []map[uint64]int
}

// New enumerates canonical boards street by street: every canonical board of
// street st-1 is extended with every descending combination of remaining
// cards, canonicalized, and deduplicated.
func New(g *game.Game) (*Tree, error) {
	maxStreet := g.MaxStreet()
	t := &Tree{
		g:      g,
		boards: make([][][]game.Card, maxStreet+1),
		lookup: make([]map[uint64]int, maxStreet+1),
	}

	// Street 0 has the single empty board.
	t.boards[0] = [][]game.Card{{}}
	t.lookup[0] = map[uint64]int{t.key(nil): 0}

	for st := 1; st <= maxStreet; st++ {
		t.lookup[st] = make(map[uint64]int)
		segLen := g.NumCardsForStreet(st)
		for _, prev := range t.boards[st-1] {
			used := make(map[game.Card]bool, len(prev))
			for _, c := range prev {
				used[c] = true
			}
			segment := make([]game.Card, segLen)
			t.extend(st, prev, used, segment, 0, g.MaxCard())
		}
		if len(t.boards[st]) == 0 {
			return nil, fmt.Errorf("no boards enumerated for street %d", st)
		}
	}
	return t, nil
}

// extend fills segment[idx:] with descending card choices below limit.
func (t *Tree) extend(st int, prev []game.Card, used map[game.Card]bool, segment []game.Card, idx int, limit game.Card) {
	if idx == len(segment) {
		full := make([]game.Card, 0, len(prev)+len(segment))
		full = append(full, prev...)
		full = append(full, segment...)
		canon, _ := t.g.CanonicalizeCards(full, nil, st)
		k := t.key(canon)
		if _, ok := t.lookup[st][k]; !ok {
			t.lookup[st][k] = len(t.boards[st])
			t.boards[st] = append(t.boards[st], canon)
		}
		return
	}
	for c := limit; c >= 0; c-- {
		if used[c] {
			continue
		}
		segment[idx] = c
		t.extend(st, prev, used, segment, idx+1, c-1)
	}
}

// NumBoards returns the number of canonical boards on street st.
func (t *Tree) NumBoards(st int) int { return len(t.boards[st]) }

// Board returns the canonical board bd of street st. Callers must not
// modify the returned slice.
func (t *Tree) Board(st, bd int) []game.Card { return t.boards[st][bd] }

// LookupBoard resolves a canonical board to its street-st index.
func (t *Tree) LookupBoard(board []game.Card, st int) (int, error) {
	bd, ok := t.lookup[st][t.key(board)]
	if !ok {
		return 0, fmt.Errorf("board %s not canonical on street %d", t.g.CardNames(board), st)
	}
	return bd, nil
}

func (t *Tree) key(board []game.Card) uint64 {
	base := uint64(t.g.MaxCard()) + 2
	k := uint64(0)
	for _, c := range board {
		k = k*base + uint64(c) + 1
	}
	return k
}
