package tree

import (
	"testing"

	"github.com/lox/cfreval/internal/abstraction"
	"github.com/lox/cfreval/internal/game"
)

func tinyGame(t *testing.T) *game.Game {
	t.Helper()
	g, err := game.New(game.Config{
		GameName:          "tiny",
		NumPlayers:        2,
		NumRanks:          6,
		NumSuits:          2,
		MaxStreet:         1,
		SmallBlind:        1,
		BigBlind:          2,
		StackSize:         8,
		FirstToAct:        []int{0, 1},
		NumCardsForStreet: []int{2, 1},
	})
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func potBetting() *abstraction.BettingAbstraction {
	return &abstraction.BettingAbstraction{
		Name:             "pot",
		BetSizes:         []float64{1.0},
		MaxBetsPerStreet: 2,
	}
}

func TestRootStructure(t *testing.T) {
	g := tinyGame(t)
	bt, err := Build(g, potBetting())
	if err != nil {
		t.Fatal(err)
	}

	root := bt.Root()
	if root.Terminal() {
		t.Fatal("root is terminal")
	}
	if root.Street() != 0 || root.PlayerActing() != g.FirstToAct(0) {
		t.Fatalf("root street %d player %d", root.Street(), root.PlayerActing())
	}
	if root.LastBetTo() != g.BigBlind() {
		t.Fatalf("root last bet to = %d, want %d", root.LastBetTo(), g.BigBlind())
	}

	// The opener faces the big blind: check/call, fold, and a pot bet.
	if root.NumSuccs() != 3 {
		t.Fatalf("root succs = %d, want 3", root.NumSuccs())
	}
	if root.CallSuccIndex() != 0 || root.ActionName(0) != "c" {
		t.Fatalf("call succ %d name %q", root.CallSuccIndex(), root.ActionName(0))
	}
	if root.FoldSuccIndex() != 1 || root.ActionName(1) != "f" {
		t.Fatalf("fold succ %d name %q", root.FoldSuccIndex(), root.ActionName(1))
	}
	if root.ActionName(2) != "b6" {
		t.Fatalf("bet action = %q, want b6", root.ActionName(2))
	}
	if root.DefaultSuccIndex() != root.CallSuccIndex() {
		t.Fatal("default succ is not call")
	}
}

func TestBigBlindOption(t *testing.T) {
	g := tinyGame(t)
	bt, err := Build(g, potBetting())
	if err != nil {
		t.Fatal(err)
	}

	// A limp leaves the big blind an option, not a closed street.
	option := bt.Root().IthSucc(bt.Root().CallSuccIndex())
	if option.Terminal() || option.Street() != 0 {
		t.Fatalf("limp leads to street %d terminal=%v", option.Street(), option.Terminal())
	}
	if option.PlayerActing() != 1 {
		t.Fatalf("option seat = %d, want 1", option.PlayerActing())
	}
	if option.FoldSuccIndex() != -1 {
		t.Fatal("big blind option should not offer fold")
	}

	// Checking the option opens the next street.
	next := option.IthSucc(option.CallSuccIndex())
	if next.Street() != 1 || next.PlayerActing() != g.FirstToAct(1) {
		t.Fatalf("next street node: street %d player %d", next.Street(), next.PlayerActing())
	}
}

func TestCheckDownReachesShowdown(t *testing.T) {
	g := tinyGame(t)
	bt, err := Build(g, potBetting())
	if err != nil {
		t.Fatal(err)
	}

	n := bt.Root()
	for !n.Terminal() {
		n = n.IthSucc(n.CallSuccIndex())
	}
	if n.Street() != g.MaxStreet() {
		t.Fatalf("showdown on street %d", n.Street())
	}
	if n.LastBetTo() != g.BigBlind() {
		t.Fatalf("check-down showdown last bet to = %d, want %d", n.LastBetTo(), g.BigBlind())
	}
}

func TestAllInCapsBetting(t *testing.T) {
	g := tinyGame(t)
	bt, err := Build(g, potBetting())
	if err != nil {
		t.Fatal(err)
	}

	// Raising the pot bet reaches the stack; later streets offer only a
	// check.
	bet := bt.Root().IthSucc(2)
	if bet.LastBetTo() != 6 {
		t.Fatalf("bet to = %d, want 6", bet.LastBetTo())
	}
	var raise *Node
	for i := 0; i < bet.NumSuccs(); i++ {
		if i == bet.CallSuccIndex() || i == bet.FoldSuccIndex() {
			continue
		}
		raise = bet.IthSucc(i)
	}
	if raise == nil || raise.LastBetTo() != g.StackSize() {
		t.Fatalf("raise should be all-in at %d", g.StackSize())
	}

	allInCall := raise.IthSucc(raise.CallSuccIndex())
	if allInCall.Terminal() || allInCall.Street() != 1 {
		t.Fatal("all-in call should open the last street")
	}
	if allInCall.NumSuccs() != 1 {
		t.Fatalf("all-in street offers %d actions, want check only", allInCall.NumSuccs())
	}
}

func TestBetSizeUniqueness(t *testing.T) {
	g := tinyGame(t)
	bt, err := Build(g, &abstraction.BettingAbstraction{
		Name:             "wide",
		BetSizes:         []float64{0.5, 1.0, 2.0},
		MaxBetsPerStreet: 3,
	})
	if err != nil {
		t.Fatal(err)
	}
	walk(t, bt.Root(), func(n *Node) {
		seen := make(map[int]bool)
		for i := 0; i < n.NumSuccs(); i++ {
			if i == n.CallSuccIndex() || i == n.FoldSuccIndex() {
				continue
			}
			betTo := n.IthSucc(i).LastBetTo()
			if betTo <= n.LastBetTo() {
				t.Fatalf("bet to %d does not raise %d", betTo, n.LastBetTo())
			}
			if seen[betTo] {
				t.Fatalf("duplicate bet size %d on one node", betTo)
			}
			seen[betTo] = true
		}
	})
}

func TestNonterminalIDsDense(t *testing.T) {
	g := tinyGame(t)
	bt, err := Build(g, potBetting())
	if err != nil {
		t.Fatal(err)
	}

	counts := map[[2]int]map[int]bool{}
	walk(t, bt.Root(), func(n *Node) {
		key := [2]int{n.Street(), n.PlayerActing()}
		if counts[key] == nil {
			counts[key] = make(map[int]bool)
		}
		if counts[key][n.NonterminalID()] {
			t.Fatalf("duplicate nonterminal id %d at street %d player %d", n.NonterminalID(), n.Street(), n.PlayerActing())
		}
		counts[key][n.NonterminalID()] = true
	})
	for st := 0; st <= g.MaxStreet(); st++ {
		for pa := 0; pa < g.NumPlayers(); pa++ {
			ids := counts[[2]int{st, pa}]
			if len(ids) != bt.NumNonterminals(st, pa) {
				t.Fatalf("street %d player %d: %d ids vs %d nonterminals", st, pa, len(ids), bt.NumNonterminals(st, pa))
			}
			for id := range ids {
				if id < 0 || id >= len(ids) {
					t.Fatalf("street %d player %d: id %d not dense", st, pa, id)
				}
			}
		}
	}
}

func TestIdenticalBuildsMatch(t *testing.T) {
	g := tinyGame(t)
	a, err := Build(g, potBetting())
	if err != nil {
		t.Fatal(err)
	}
	b, err := Build(g, potBetting())
	if err != nil {
		t.Fatal(err)
	}
	compare(t, a.Root(), b.Root())
}

func TestAsymmetricRejected(t *testing.T) {
	g := tinyGame(t)
	ba := potBetting()
	ba.Asymmetric = true
	if _, err := Build(g, ba); err == nil {
		t.Fatal("expected asymmetric abstraction to be rejected")
	}
}

func walk(t *testing.T, n *Node, visit func(*Node)) {
	t.Helper()
	if n.Terminal() {
		return
	}
	visit(n)
	for i := 0; i < n.NumSuccs(); i++ {
		walk(t, n.IthSucc(i), visit)
	}
}

func compare(t *testing.T, a, b *Node) {
	t.Helper()
	if a.Terminal() != b.Terminal() || a.Street() != b.Street() ||
		a.LastBetTo() != b.LastBetTo() || a.NumSuccs() != b.NumSuccs() ||
		a.NonterminalID() != b.NonterminalID() || a.PlayerActing() != b.PlayerActing() ||
		a.CallSuccIndex() != b.CallSuccIndex() || a.FoldSuccIndex() != b.FoldSuccIndex() {
		t.Fatalf("structural mismatch: %+v vs %+v", a, b)
	}
	for i := 0; i < a.NumSuccs(); i++ {
		if a.ActionName(i) != b.ActionName(i) {
			t.Fatalf("action name mismatch %q vs %q", a.ActionName(i), b.ActionName(i))
		}
		compare(t, a.IthSucc(i), b.IthSucc(i))
	}
}
