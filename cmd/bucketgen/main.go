// Command bucketgen writes the bucket files the evaluator loads for
// abstracted streets. Holdings are bucketed by hand-strength quantile
// against their board.
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/cfreval/internal/abstraction"
	"github.com/lox/cfreval/internal/board"
	"github.com/lox/cfreval/internal/game"
	"github.com/lox/cfreval/internal/handval"
)

var cli struct {
	Debug      bool   `help:"enable debug logging"`
	StaticBase string `help:"base directory for bucket files" env:"CFREVAL_STATIC_BASE" default:"."`

	GameParams string `arg:"" help:"game parameter file"`
	Bucketing  string `arg:"" help:"name of the bucketing to generate"`
	Street     int    `arg:"" help:"street to bucket"`
	NumBuckets int    `arg:"" help:"number of buckets"`
}

func main() {
	kong.Parse(&cli,
		kong.Name("bucketgen"),
		kong.Description("Generate hand-strength bucket files"),
		kong.UsageOnError(),
	)

	opts := log.Options{Level: log.InfoLevel, ReportTimestamp: true}
	if cli.Debug {
		opts.Level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, opts)

	if err := run(logger); err != nil {
		logger.Fatal("bucket generation failed", "err", err)
	}
}

func run(logger *log.Logger) error {
	cfg, err := game.LoadConfig(cli.GameParams)
	if err != nil {
		return err
	}
	g, err := game.New(*cfg)
	if err != nil {
		return err
	}
	if cli.Street < 0 || cli.Street > g.MaxStreet() {
		return fmt.Errorf("street %d out of range [0, %d]", cli.Street, g.MaxStreet())
	}
	if cli.NumBuckets < 1 {
		return fmt.Errorf("num buckets must be >= 1")
	}

	bt, err := board.New(g)
	if err != nil {
		return fmt.Errorf("board tree: %w", err)
	}
	hv := handval.New(g)

	st := cli.Street
	numBoards := bt.NumBoards(st)
	numHoleCardPairs := g.NumHoleCardPairs(st)
	logger.Info("bucketing street", "street", st, "boards", numBoards,
		"hole_card_pairs", numHoleCardPairs, "buckets", cli.NumBuckets)

	type holding struct {
		composite int
		val       int
	}
	holdings := make([]holding, 0, numBoards*numHoleCardPairs)
	for bd := 0; bd < numBoards; bd++ {
		boardCards := bt.Board(st, bd)
		onBoard := make(map[game.Card]bool, len(boardCards))
		for _, c := range boardCards {
			onBoard[c] = true
		}
		buffer := make([]game.Card, 2+len(boardCards))
		copy(buffer[2:], boardCards)
		for hi := game.Card(1); hi <= g.MaxCard(); hi++ {
			if onBoard[hi] {
				continue
			}
			for lo := game.Card(0); lo < hi; lo++ {
				if onBoard[lo] {
					continue
				}
				buffer[0], buffer[1] = hi, lo
				holdings = append(holdings, holding{
					composite: bd*numHoleCardPairs + g.HCPIndex(st, buffer),
					val:       hv.Val(buffer),
				})
			}
		}
	}

	sort.Slice(holdings, func(i, j int) bool {
		if holdings[i].val != holdings[j].val {
			return holdings[i].val < holdings[j].val
		}
		return holdings[i].composite < holdings[j].composite
	})

	data := make([]uint32, numBoards*numHoleCardPairs)
	for rank, h := range holdings {
		data[h.composite] = uint32(rank * cli.NumBuckets / len(holdings))
	}

	path := abstraction.BucketPath(g, cli.StaticBase, cli.Bucketing, st)
	if err := abstraction.WriteBucketFile(path, cli.NumBuckets, data); err != nil {
		return err
	}
	logger.Info("bucket file written", "path", path, "holdings", len(holdings))
	return nil
}
