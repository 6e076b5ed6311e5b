package tree

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/lox/cfreval/internal/abstraction"
	"github.com/lox/cfreval/internal/game"
)

// BettingTree is the betting structure one strategy is defined over. Two
// strategies built from the same game and betting abstraction get
// structurally identical trees with matching nonterminal ids.
type BettingTree struct {
	root  *Node
	numNT [][]int
}

// Root returns the root node (the first preflop decision).
func (t *BettingTree) Root() *Node { return t.root }

// NumNonterminals returns the nonterminal count for (street, playerActing).
func (t *BettingTree) NumNonterminals(st, pa int) int { return t.numNT[st][pa] }

type builder struct {
	g            *game.Game
	ba           *abstraction.BettingAbstraction
	numNT        [][]int
	numTerminals int
}

// Build constructs the heads-up betting tree for g under the abstraction's
// bet sizing. Check/call is always successor 0 and fold, when legal,
// successor 1, so the default successor is stable across the tree.
func Build(g *game.Game, ba *abstraction.BettingAbstraction) (*BettingTree, error) {
	if g.NumPlayers() != 2 {
		return nil, fmt.Errorf("betting tree construction supports two players, game has %d", g.NumPlayers())
	}
	if ba.Asymmetric {
		return nil, fmt.Errorf("asymmetric betting abstraction %s not supported", ba.Name)
	}

	b := &builder{g: g, ba: ba}
	b.numNT = make([][]int, g.MaxStreet()+1)
	for st := range b.numNT {
		b.numNT[st] = make([]int, g.NumPlayers())
	}

	// Preflop: the small blind opens facing the big blind and its call
	// leaves the big blind with the option.
	root := b.decision(0, g.FirstToAct(0), g.BigBlind(), 0, true, false)
	return &BettingTree{root: root, numNT: b.numNT}, nil
}

// decision builds the node where pa acts. facing means pa's contribution is
// below lastBetTo (fold is legal); closes means pa's check or call ends the
// street.
func (b *builder) decision(st, pa, lastBetTo, numBets int, facing, closes bool) *Node {
	n := &Node{
		street:        st,
		playerActing:  pa,
		lastBetTo:     lastBetTo,
		nonterminalID: b.numNT[st][pa],
		terminalID:    -1,
		callSucc:      0,
		foldSucc:      -1,
	}
	b.numNT[st][pa]++

	other := 1 - pa

	// Check/call.
	var callSucc *Node
	if closes {
		if st == b.g.MaxStreet() {
			callSucc = b.terminal(st, lastBetTo)
		} else {
			next := st + 1
			callSucc = b.decision(next, b.g.FirstToAct(next), lastBetTo, 0, false, false)
		}
	} else {
		callSucc = b.decision(st, other, lastBetTo, numBets, false, true)
	}
	n.succs = append(n.succs, callSucc)
	n.actionNames = append(n.actionNames, "c")

	// Fold.
	if facing {
		n.foldSucc = len(n.succs)
		n.succs = append(n.succs, b.terminal(st, lastBetTo))
		n.actionNames = append(n.actionNames, "f")
	}

	// Bets and raises.
	for _, betTo := range b.betSizes(lastBetTo, numBets) {
		succ := b.decision(st, other, betTo, numBets+1, true, true)
		n.succs = append(n.succs, succ)
		n.actionNames = append(n.actionNames, "b"+strconv.Itoa(betTo))
	}
	return n
}

func (b *builder) terminal(st, lastBetTo int) *Node {
	n := &Node{
		terminal:      true,
		street:        st,
		playerActing:  -1,
		lastBetTo:     lastBetTo,
		nonterminalID: -1,
		terminalID:    b.numTerminals,
		callSucc:      -1,
		foldSucc:      -1,
	}
	b.numTerminals++
	return n
}

// betSizes lists the distinct bet-to amounts available over lastBetTo,
// ascending. Pot fractions are taken against the matched pot, raises are at
// least a big blind, and anything at or beyond the stack becomes the single
// all-in size.
func (b *builder) betSizes(lastBetTo, numBets int) []int {
	if numBets >= b.ba.MaxBetsPerStreet || len(b.ba.BetSizes) == 0 {
		return nil
	}
	stack := b.g.StackSize()
	if lastBetTo >= stack {
		return nil
	}
	pot := 2 * lastBetTo
	seen := make(map[int]bool, len(b.ba.BetSizes))
	sizes := make([]int, 0, len(b.ba.BetSizes))
	for _, f := range b.ba.BetSizes {
		raise := int(math.Round(f * float64(pot)))
		if raise < b.g.BigBlind() {
			raise = b.g.BigBlind()
		}
		betTo := lastBetTo + raise
		if betTo > stack {
			betTo = stack
		}
		if seen[betTo] {
			continue
		}
		seen[betTo] = true
		sizes = append(sizes, betTo)
	}
	sort.Ints(sizes)
	return sizes
}
