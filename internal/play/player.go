// Package play implements the Monte Carlo duplicate-hand evaluator: deal a
// hand, play it once per seat with strategy B rotating through the seats,
// and accumulate player 1's outcome at a target action sequence.
package play

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/lox/cfreval/internal/abstraction"
	"github.com/lox/cfreval/internal/board"
	"github.com/lox/cfreval/internal/cfr"
	"github.com/lox/cfreval/internal/game"
	"github.com/lox/cfreval/internal/handval"
	"github.com/lox/cfreval/internal/rand48"
	"github.com/lox/cfreval/internal/tree"
)

// noPlayerActing is the lastPlayerActing value at hand start, before any
// seat has acted.
const noPlayerActing = -1

// Strategy bundles the loaded artifacts of one trained strategy.
type Strategy struct {
	Buckets *abstraction.Buckets
	Tree    *tree.BettingTree
	Probs   *cfr.Values
}

// Player drives duplicate-hand evaluation of strategy B against strategy A.
// It owns the PRNG; everything else it holds is immutable shared state.
type Player struct {
	g          *game.Game
	bt         *board.Tree
	hv         *handval.Oracle
	aBuckets   *abstraction.Buckets
	bBuckets   *abstraction.Buckets
	aTrees     []*tree.BettingTree
	bTrees     []*tree.BettingTree
	aProbs     *cfr.Values
	bProbs     *cfr.Values
	numPlayers int

	// Per-deal state, reused across hands.
	boards  []int
	rawHCPs [][]int
	hvs     []int
	winners []bool

	// sortedHCPs[bd] maps a raw river hole-card-pair index to its
	// hand-strength rank on board bd. Nil when both strategies bucket
	// the river.
	sortedHCPs [][]uint16

	rng   *rand48.Rand
	clock quartz.Clock
	seed  int64
	log   zerolog.Logger
	out   io.Writer

	sumTargetP1Outcomes float64
	numTargetP1Outcomes int64
}

// Option configures a Player.
type Option func(*Player)

// WithSeed pins the PRNG seed; zero keeps the wall-clock default.
func WithSeed(seed int64) Option {
	return func(p *Player) { p.seed = seed }
}

// WithClock substitutes the clock used for the default seed.
func WithClock(c quartz.Clock) Option {
	return func(p *Player) { p.clock = c }
}

// WithLogger routes diagnostics to l.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Player) { p.log = l }
}

// WithOutput redirects the result report, which defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(p *Player) { p.out = w }
}

// NewPlayer wires the evaluator. The per-seat tree slices anticipate
// asymmetric strategies; today every seat of a side shares one tree.
func NewPlayer(g *game.Game, bt *board.Tree, hv *handval.Oracle, a, b Strategy, opts ...Option) (*Player, error) {
	if g.NumPlayers() > 2 {
		return nil, fmt.Errorf("%w: showdown pot accounting assumes two players, game has %d",
			ErrUnsupported, g.NumPlayers())
	}

	numPlayers := g.NumPlayers()
	p := &Player{
		g:          g,
		bt:         bt,
		hv:         hv,
		aBuckets:   a.Buckets,
		bBuckets:   b.Buckets,
		aProbs:     a.Probs,
		bProbs:     b.Probs,
		numPlayers: numPlayers,
		boards:     make([]int, g.MaxStreet()+1),
		rawHCPs:    make([][]int, numPlayers),
		hvs:        make([]int, numPlayers),
		winners:    make([]bool, numPlayers),
		clock:      quartz.NewReal(),
		log:        zerolog.Nop(),
		out:        os.Stdout,
	}
	for seat := 0; seat < numPlayers; seat++ {
		p.rawHCPs[seat] = make([]int, g.MaxStreet()+1)
	}
	p.aTrees = make([]*tree.BettingTree, numPlayers)
	p.bTrees = make([]*tree.BettingTree, numPlayers)
	for seat := 0; seat < numPlayers; seat++ {
		p.aTrees[seat] = a.Tree
		p.bTrees[seat] = b.Tree
	}
	for _, opt := range opts {
		opt(p)
	}

	maxStreet := g.MaxStreet()
	if a.Buckets.None(maxStreet) || b.Buckets.None(maxStreet) {
		if err := p.createSortedHCPs(); err != nil {
			return nil, fmt.Errorf("sorted hole-card pairs: %w", err)
		}
		p.log.Debug().Int("boards", bt.NumBoards(maxStreet)).Msg("created sorted hole-card pairs")
	} else {
		p.log.Debug().Msg("not creating sorted hole-card pairs")
	}

	seed := p.seed
	if seed == 0 {
		seed = p.clock.Now().Unix()
	}
	p.rng = rand48.New(seed)
	p.log.Debug().Int64("seed", seed).Msg("seeded")
	return p, nil
}

// createSortedHCPs builds, for every board of the last street, the
// permutation from raw hole-card-pair index to hand-strength rank. Boards
// are independent, so the work fans out; evaluation itself stays
// single-threaded.
func (p *Player) createSortedHCPs() error {
	maxStreet := p.g.MaxStreet()
	numBoards := p.bt.NumBoards(maxStreet)
	p.sortedHCPs = make([][]uint16, numBoards)

	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for bd := 0; bd < numBoards; bd++ {
		eg.Go(func() error {
			p.sortedHCPs[bd] = p.sortHolePairs(bd)
			return nil
		})
	}
	return eg.Wait()
}

func (p *Player) sortHolePairs(bd int) []uint16 {
	maxStreet := p.g.MaxStreet()
	boardCards := p.bt.Board(maxStreet, bd)
	onBoard := make(map[game.Card]bool, len(boardCards))
	for _, c := range boardCards {
		onBoard[c] = true
	}

	type holePair struct {
		rawHCP int
		val    int
	}
	pairs := make([]holePair, 0, p.g.NumHoleCardPairs(maxStreet))
	buffer := make([]game.Card, 2+len(boardCards))
	copy(buffer[2:], boardCards)
	for hi := game.Card(1); hi <= p.g.MaxCard(); hi++ {
		if onBoard[hi] {
			continue
		}
		for lo := game.Card(0); lo < hi; lo++ {
			if onBoard[lo] {
				continue
			}
			buffer[0], buffer[1] = hi, lo
			pairs = append(pairs, holePair{
				rawHCP: p.g.HCPIndex(maxStreet, buffer),
				val:    p.hv.Val(buffer),
			})
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].val != pairs[j].val {
			return pairs[i].val < pairs[j].val
		}
		return pairs[i].rawHCP < pairs[j].rawHCP
	})

	sorted := make([]uint16, len(pairs))
	for rank, pr := range pairs {
		sorted[pr.rawHCP] = uint16(rank)
	}
	return sorted
}
