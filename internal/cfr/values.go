// Package cfr holds the stored regrets of a trained strategy and derives
// action probabilities from them by regret matching.
package cfr

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lox/cfreval/internal/abstraction"
	"github.com/lox/cfreval/internal/board"
	"github.com/lox/cfreval/internal/game"
	"github.com/lox/cfreval/internal/tree"
)

// Values indexes stored regrets by (street, player acting, nonterminal id,
// offset). Per nonterminal the storage holds one regret row per holding —
// buckets when the street is abstracted, board x hole-card pair otherwise.
// Values are read-only during evaluation.
type Values struct {
	g       *game.Game
	bt      *board.Tree
	buckets *abstraction.Buckets
	regrets [][][]float64
	base    [][][]int
	sizes   [][]int
}

// NewValues sizes the storage for a strategy over t. Reading the regrets is
// a separate step so tests and tools can fill storage directly.
func NewValues(g *game.Game, bt *board.Tree, buckets *abstraction.Buckets, t *tree.BettingTree) (*Values, error) {
	maxStreet := g.MaxStreet()
	numPlayers := g.NumPlayers()

	numSuccs := make([][]map[int]int, maxStreet+1)
	for st := range numSuccs {
		numSuccs[st] = make([]map[int]int, numPlayers)
		for pa := range numSuccs[st] {
			numSuccs[st][pa] = make(map[int]int)
		}
	}
	if err := collectSuccs(t.Root(), numSuccs); err != nil {
		return nil, err
	}

	v := &Values{
		g:       g,
		bt:      bt,
		buckets: buckets,
		regrets: make([][][]float64, maxStreet+1),
		base:    make([][][]int, maxStreet+1),
		sizes:   make([][]int, maxStreet+1),
	}
	for st := 0; st <= maxStreet; st++ {
		v.regrets[st] = make([][]float64, numPlayers)
		v.base[st] = make([][]int, numPlayers)
		v.sizes[st] = make([]int, numPlayers)
		holdings := v.numHoldings(st)
		for pa := 0; pa < numPlayers; pa++ {
			n := t.NumNonterminals(st, pa)
			if len(numSuccs[st][pa]) != n {
				return nil, fmt.Errorf("street %d player %d: tree has %d nonterminals, walk found %d",
					st, pa, n, len(numSuccs[st][pa]))
			}
			bases := make([]int, n)
			total := 0
			for nt := 0; nt < n; nt++ {
				k, ok := numSuccs[st][pa][nt]
				if !ok {
					return nil, fmt.Errorf("street %d player %d: nonterminal id %d missing", st, pa, nt)
				}
				bases[nt] = total
				total += holdings * k
			}
			v.base[st][pa] = bases
			v.sizes[st][pa] = total
		}
	}
	return v, nil
}

func collectSuccs(n *tree.Node, numSuccs [][]map[int]int) error {
	if n.Terminal() {
		return nil
	}
	st, pa, nt := n.Street(), n.PlayerActing(), n.NonterminalID()
	if prev, ok := numSuccs[st][pa][nt]; ok && prev != n.NumSuccs() {
		return fmt.Errorf("street %d player %d nonterminal %d: succ count %d vs %d",
			st, pa, nt, prev, n.NumSuccs())
	}
	numSuccs[st][pa][nt] = n.NumSuccs()
	for i := 0; i < n.NumSuccs(); i++ {
		if err := collectSuccs(n.IthSucc(i), numSuccs); err != nil {
			return err
		}
	}
	return nil
}

func (v *Values) numHoldings(st int) int {
	if v.buckets.None(st) {
		return v.bt.NumBoards(st) * v.g.NumHoleCardPairs(st)
	}
	return v.buckets.NumBuckets(st)
}

// StrategyDir names the directory a strategy snapshot lives in.
func StrategyDir(base string, g *game.Game, cardAbsName, bettingAbsName, cfrConfigName string) string {
	return filepath.Join(base, fmt.Sprintf("%s.%d.%s.%d.%d.%d.%s.%s",
		g.GameName(), g.NumPlayers(), cardAbsName, g.NumRanks(), g.NumSuits(),
		g.MaxStreet(), bettingAbsName, cfrConfigName))
}

// Read loads the regrets of snapshot it from dir. Each (street, player
// acting) pair has one file of little-endian float64 named
// <disc>.<it>.<street>.p<playerActing>.
func (v *Values) Read(dir string, it int, disc string) error {
	for st := range v.regrets {
		for pa := range v.regrets[st] {
			path := filepath.Join(dir, fmt.Sprintf("%s.%d.%d.p%d", disc, it, st, pa))
			data, err := readFloats(path, v.sizes[st][pa])
			if err != nil {
				return fmt.Errorf("strategy street %d player %d: %w", st, pa, err)
			}
			v.regrets[st][pa] = data
		}
	}
	return nil
}

func readFloats(path string, want int) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.Size() != int64(want)*8 {
		return nil, fmt.Errorf("%s holds %d bytes, want %d", path, info.Size(), want*8)
	}
	data := make([]float64, want)
	if err := binary.Read(bufio.NewReader(f), binary.LittleEndian, data); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// SetRegrets installs the regret row for (street, player acting) directly.
func (v *Values) SetRegrets(st, pa int, data []float64) error {
	if len(data) != v.sizes[st][pa] {
		return fmt.Errorf("street %d player %d: got %d regrets, want %d", st, pa, len(data), v.sizes[st][pa])
	}
	v.regrets[st][pa] = data
	return nil
}

// Size returns the regret count for (street, player acting).
func (v *Values) Size(st, pa int) int { return v.sizes[st][pa] }

// RMProbs fills probs with the regret-matched distribution for the row at
// offset under nonterminal nt: positive regrets normalized to 1, or all
// mass on dsi when no regret is positive.
func (v *Values) RMProbs(st, pa, nt, offset, numSuccs, dsi int, probs []float64) {
	row := v.regrets[st][pa][v.base[st][pa][nt]+offset:][:numSuccs]
	sum := 0.0
	for _, r := range row {
		if r > 0 {
			sum += r
		}
	}
	if sum <= 0 {
		for i := range probs[:numSuccs] {
			probs[i] = 0
		}
		probs[dsi] = 1
		return
	}
	for i, r := range row {
		if r > 0 {
			probs[i] = r / sum
		} else {
			probs[i] = 0
		}
	}
}
