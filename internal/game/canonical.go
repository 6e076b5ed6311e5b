package game

import "sort"

// CanonicalizeCards maps a raw board and hole-card pair onto their canonical
// representatives under suit isomorphism. Suits are relabeled in order of a
// deterministic signature: first the (rank, street segment) pairs each suit
// holds on the board, then the ranks it holds in the hole cards. Cards within
// a segment are an unordered set, so the signature depends only on which
// segment a card sits in; two raw hands that differ by a suit permutation
// always canonicalize to the same (board, hole) pair, and the canonical board
// is a function of the board alone.
//
// board must hold the street-st board with each street segment sorted
// highest first; hole may be nil when only the board is wanted. The returned
// slices are freshly allocated with segments and hole re-sorted.
func (g *Game) CanonicalizeCards(board, hole []Card, st int) ([]Card, []Card) {
	numSuits := g.cfg.NumSuits

	boardSigs := make([][]int, numSuits)
	holeSigs := make([][]int, numSuits)
	pos := 0
	for seg := 1; seg <= st; seg++ {
		for i := 0; i < g.cfg.NumCardsForStreet[seg]; i++ {
			c := board[pos]
			s := g.Suit(c)
			// A suit holds each rank at most once, so (rank, segment)
			// elements are unique per suit.
			boardSigs[s] = append(boardSigs[s], g.Rank(c)*16+seg)
			pos++
		}
	}
	for _, c := range hole {
		s := g.Suit(c)
		holeSigs[s] = append(holeSigs[s], g.Rank(c))
	}
	for s := 0; s < numSuits; s++ {
		sort.Sort(sort.Reverse(sort.IntSlice(boardSigs[s])))
		sort.Sort(sort.Reverse(sort.IntSlice(holeSigs[s])))
	}

	order := make([]int, numSuits)
	for s := range order {
		order[s] = s
	}
	sort.SliceStable(order, func(i, j int) bool {
		si, sj := order[i], order[j]
		if c := compareSigs(boardSigs[si], boardSigs[sj]); c != 0 {
			return c > 0
		}
		if c := compareSigs(holeSigs[si], holeSigs[sj]); c != 0 {
			return c > 0
		}
		return si < sj
	})

	suitMap := make([]int, numSuits)
	for newSuit, oldSuit := range order {
		suitMap[oldSuit] = newSuit
	}

	canonBoard := make([]Card, len(board))
	for i, c := range board {
		canonBoard[i] = g.MakeCard(g.Rank(c), suitMap[g.Suit(c)])
	}
	// Relabeling can reorder cards within a street segment.
	seg := 0
	for s := 1; s <= st; s++ {
		n := g.cfg.NumCardsForStreet[s]
		SortCards(canonBoard[seg : seg+n])
		seg += n
	}

	var canonHole []Card
	if hole != nil {
		canonHole = make([]Card, len(hole))
		for i, c := range hole {
			canonHole[i] = g.MakeCard(g.Rank(c), suitMap[g.Suit(c)])
		}
		SortCards(canonHole)
	}
	return canonBoard, canonHole
}

// compareSigs orders signatures: more elements first, then element-wise
// descending.
func compareSigs(a, b []int) int {
	if len(a) != len(b) {
		if len(a) > len(b) {
			return 1
		}
		return -1
	}
	for i := range a {
		if a[i] != b[i] {
			if a[i] > b[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}

// HCPIndex maps a 7-card buffer laid out as hole pair (highest first)
// followed by the street-st board to a hole-card-pair index in
// [0, NumHoleCardPairs(st)). The index is the triangular pair encoding over
// the deck with the board cards removed.
func (g *Game) HCPIndex(st int, cards []Card) int {
	nb := g.numBoardCards[st]
	board := cards[2 : 2+nb]
	hi := deckPosition(cards[0], board)
	lo := deckPosition(cards[1], board)
	return hi*(hi-1)/2 + lo
}

// deckPosition ranks c among the cards not on the board.
func deckPosition(c Card, board []Card) int {
	pos := int(c)
	for _, b := range board {
		if b < c {
			pos--
		}
	}
	return pos
}
