package handval

import (
	"testing"

	"github.com/lox/cfreval/internal/game"
)

func holdemOracle(t *testing.T) (*game.Game, *Oracle) {
	t.Helper()
	g, err := game.New(game.Config{
		GameName:          "holdem",
		NumPlayers:        2,
		NumRanks:          13,
		NumSuits:          4,
		MaxStreet:         3,
		SmallBlind:        50,
		BigBlind:          100,
		StackSize:         20000,
		FirstToAct:        []int{0, 1, 1, 1},
		NumCardsForStreet: []int{2, 3, 1, 1},
	})
	if err != nil {
		t.Fatal(err)
	}
	return g, New(g)
}

// hand builds cards from (rank, suit) pairs. Ranks are 0-based, so 12 is
// the ace.
func hand(g *game.Game, rs ...[2]int) []game.Card {
	cards := make([]game.Card, len(rs))
	for i, p := range rs {
		cards[i] = g.MakeCard(p[0], p[1])
	}
	return cards
}

func TestHandOrdering(t *testing.T) {
	g, o := holdemOracle(t)

	hands := []struct {
		name  string
		cards []game.Card
	}{
		{"high card", hand(g, [2]int{12, 0}, [2]int{10, 1}, [2]int{7, 2}, [2]int{5, 3}, [2]int{3, 0}, [2]int{1, 1}, [2]int{0, 2})},
		{"pair", hand(g, [2]int{12, 0}, [2]int{12, 1}, [2]int{7, 2}, [2]int{5, 3}, [2]int{3, 0}, [2]int{1, 1}, [2]int{0, 2})},
		{"two pair", hand(g, [2]int{12, 0}, [2]int{12, 1}, [2]int{7, 2}, [2]int{7, 3}, [2]int{3, 0}, [2]int{1, 1}, [2]int{0, 2})},
		{"trips", hand(g, [2]int{12, 0}, [2]int{12, 1}, [2]int{12, 2}, [2]int{7, 3}, [2]int{3, 0}, [2]int{1, 1}, [2]int{0, 2})},
		{"straight", hand(g, [2]int{8, 0}, [2]int{7, 1}, [2]int{6, 2}, [2]int{5, 3}, [2]int{4, 0}, [2]int{1, 1}, [2]int{0, 2})},
		{"flush", hand(g, [2]int{12, 0}, [2]int{10, 0}, [2]int{7, 0}, [2]int{5, 0}, [2]int{3, 0}, [2]int{1, 1}, [2]int{0, 2})},
		{"full house", hand(g, [2]int{12, 0}, [2]int{12, 1}, [2]int{12, 2}, [2]int{7, 3}, [2]int{7, 0}, [2]int{1, 1}, [2]int{0, 2})},
		{"quads", hand(g, [2]int{12, 0}, [2]int{12, 1}, [2]int{12, 2}, [2]int{12, 3}, [2]int{3, 0}, [2]int{1, 1}, [2]int{0, 2})},
		{"straight flush", hand(g, [2]int{8, 0}, [2]int{7, 0}, [2]int{6, 0}, [2]int{5, 0}, [2]int{4, 0}, [2]int{1, 1}, [2]int{0, 2})},
	}

	prev := -1
	for _, h := range hands {
		v := o.Val(h.cards)
		if v <= prev {
			t.Fatalf("%s (%d) does not outrank previous hand (%d)", h.name, v, prev)
		}
		prev = v
	}
}

func TestKickersBreakTies(t *testing.T) {
	g, o := holdemOracle(t)

	// Same pair of aces, ace-king kicker vs ace-queen kicker.
	better := o.Val(hand(g, [2]int{12, 0}, [2]int{12, 1}, [2]int{11, 2}, [2]int{5, 3}, [2]int{3, 0}, [2]int{1, 1}, [2]int{0, 2}))
	worse := o.Val(hand(g, [2]int{12, 0}, [2]int{12, 1}, [2]int{10, 2}, [2]int{5, 3}, [2]int{3, 0}, [2]int{1, 1}, [2]int{0, 2}))
	if better <= worse {
		t.Fatalf("king kicker (%d) should beat queen kicker (%d)", better, worse)
	}
}

func TestEquivalentHandsTie(t *testing.T) {
	g, o := holdemOracle(t)

	a := o.Val(hand(g, [2]int{12, 0}, [2]int{12, 1}, [2]int{7, 2}, [2]int{5, 3}, [2]int{3, 0}, [2]int{1, 1}, [2]int{0, 2}))
	b := o.Val(hand(g, [2]int{12, 2}, [2]int{12, 3}, [2]int{7, 0}, [2]int{5, 1}, [2]int{3, 2}, [2]int{1, 3}, [2]int{0, 0}))
	if a != b {
		t.Fatalf("suit-isomorphic hands valued %d vs %d", a, b)
	}
}

func TestWheelStraight(t *testing.T) {
	g, o := holdemOracle(t)

	// A-2-3-4-5 plays as a five-high straight.
	wheel := o.Val(hand(g, [2]int{12, 0}, [2]int{0, 1}, [2]int{1, 2}, [2]int{2, 3}, [2]int{3, 0}, [2]int{7, 1}, [2]int{9, 2}))
	sixHigh := o.Val(hand(g, [2]int{0, 1}, [2]int{1, 2}, [2]int{2, 3}, [2]int{3, 0}, [2]int{4, 1}, [2]int{7, 1}, [2]int{9, 2}))
	if wheel>>24 != straight {
		t.Fatalf("wheel classified as %d", wheel>>24)
	}
	if wheel >= sixHigh {
		t.Fatalf("wheel (%d) should lose to six-high straight (%d)", wheel, sixHigh)
	}
}

func TestBestFiveOfSeven(t *testing.T) {
	g, o := holdemOracle(t)

	// Three pairs: the best two plus the best kicker must win out over
	// any reading with the third pair.
	v := o.Val(hand(g, [2]int{12, 0}, [2]int{12, 1}, [2]int{10, 2}, [2]int{10, 3}, [2]int{3, 0}, [2]int{3, 1}, [2]int{11, 2}))
	if v>>24 != twoPair {
		t.Fatalf("three-pair hand classified as %d", v>>24)
	}
	withKingKicker := o.Val(hand(g, [2]int{12, 0}, [2]int{12, 1}, [2]int{10, 2}, [2]int{10, 3}, [2]int{11, 2}, [2]int{1, 0}, [2]int{0, 1}))
	if v != withKingKicker {
		t.Fatalf("three-pair hand (%d) should equal aces up with king kicker (%d)", v, withKingKicker)
	}
}

func TestFullHouseFromTwoTrips(t *testing.T) {
	g, o := holdemOracle(t)
	v := o.Val(hand(g, [2]int{12, 0}, [2]int{12, 1}, [2]int{12, 2}, [2]int{10, 0}, [2]int{10, 1}, [2]int{10, 2}, [2]int{0, 3}))
	if v>>24 != fullHouse {
		t.Fatalf("double trips classified as %d", v>>24)
	}
	explicit := o.Val(hand(g, [2]int{12, 0}, [2]int{12, 1}, [2]int{12, 2}, [2]int{10, 0}, [2]int{10, 1}, [2]int{3, 2}, [2]int{0, 3}))
	if v != explicit {
		t.Fatalf("aces full of tens mismatch: %d vs %d", v, explicit)
	}
}

func TestPartialBoardHands(t *testing.T) {
	g, o := holdemOracle(t)

	// Three cards only: groups rank, no straights or flushes.
	pairUp := o.Val(hand(g, [2]int{12, 0}, [2]int{12, 1}, [2]int{3, 2}))
	suited := o.Val(hand(g, [2]int{12, 0}, [2]int{11, 0}, [2]int{10, 0}))
	if pairUp <= suited {
		t.Fatalf("pair (%d) should beat three suited cards (%d)", pairUp, suited)
	}
	if suited>>24 != highCard {
		t.Fatalf("three suited cards classified as %d", suited>>24)
	}
}

func TestReducedDeckStraight(t *testing.T) {
	g, err := game.New(game.Config{
		GameName:          "short",
		NumPlayers:        2,
		NumRanks:          6,
		NumSuits:          4,
		MaxStreet:         1,
		SmallBlind:        1,
		BigBlind:          2,
		StackSize:         8,
		FirstToAct:        []int{0, 1},
		NumCardsForStreet: []int{2, 3},
	})
	if err != nil {
		t.Fatal(err)
	}
	o := New(g)

	top := o.Val(hand(g, [2]int{5, 0}, [2]int{4, 1}, [2]int{3, 2}, [2]int{2, 3}, [2]int{1, 0}))
	if top>>24 != straight {
		t.Fatalf("reduced-deck straight classified as %d", top>>24)
	}

	// Top rank plays low: A-9-T-J-Q in a six-rank deck.
	low := o.Val(hand(g, [2]int{5, 0}, [2]int{0, 1}, [2]int{1, 2}, [2]int{2, 3}, [2]int{3, 0}))
	if low>>24 != straight {
		t.Fatalf("reduced-deck wheel classified as %d", low>>24)
	}
	if low >= top {
		t.Fatalf("wheel (%d) should lose to top straight (%d)", low, top)
	}
}
