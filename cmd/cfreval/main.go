// Command cfreval estimates, by duplicate-hand Monte Carlo simulation, the
// expected value to player 1 of reaching a target action sequence under the
// joint play of two stored CFR strategies.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lox/cfreval/internal/abstraction"
	"github.com/lox/cfreval/internal/board"
	"github.com/lox/cfreval/internal/cfr"
	"github.com/lox/cfreval/internal/game"
	"github.com/lox/cfreval/internal/handval"
	"github.com/lox/cfreval/internal/play"
	"github.com/lox/cfreval/internal/tree"
)

var cli struct {
	Debug      bool   `help:"enable debug logging"`
	Seed       int64  `help:"random seed; 0 uses the wall clock" default:"0"`
	CFRBase    string `help:"base directory for stored strategies" env:"CFREVAL_CFR_BASE" default:"."`
	StaticBase string `help:"base directory for bucket files" env:"CFREVAL_STATIC_BASE" default:"."`

	GameParams        string `arg:"" help:"game parameter file"`
	ACardParams       string `arg:"" help:"A card abstraction parameter file"`
	BCardParams       string `arg:"" help:"B card abstraction parameter file"`
	ABettingParams    string `arg:"" help:"A betting abstraction parameter file"`
	BBettingParams    string `arg:"" help:"B betting abstraction parameter file"`
	ACFRParams        string `arg:"" help:"A CFR configuration file"`
	BCFRParams        string `arg:"" help:"B CFR configuration file"`
	AIt               int    `arg:"" help:"A strategy iteration"`
	BIt               int    `arg:"" help:"B strategy iteration"`
	NumDuplicateHands int64  `arg:"" help:"number of duplicate hands to play"`
	ActionSequence    string `arg:"" help:"target action sequence; the empty string targets the root"`
}

func main() {
	kong.Parse(&cli,
		kong.Name("cfreval"),
		kong.Description("Duplicate-hand Monte Carlo evaluation of stored CFR strategies"),
		kong.UsageOnError(),
	)

	setupLogger(cli.Debug)

	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("evaluation failed")
	}
}

func setupLogger(debug bool) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level)
}

func run() error {
	if cli.NumDuplicateHands < 0 {
		return fmt.Errorf("num duplicate hands cannot be negative (got %d)", cli.NumDuplicateHands)
	}

	cfg, err := game.LoadConfig(cli.GameParams)
	if err != nil {
		return err
	}
	g, err := game.New(*cfg)
	if err != nil {
		return err
	}
	log.Info().Str("game", g.String()).Msg("game loaded")

	bt, err := board.New(g)
	if err != nil {
		return fmt.Errorf("board tree: %w", err)
	}
	log.Debug().Int("river_boards", bt.NumBoards(g.MaxStreet())).Msg("board tree created")
	hv := handval.New(g)

	aStrategy, aName, err := loadStrategy(g, bt, cli.ACardParams, cli.ABettingParams, cli.ACFRParams, cli.AIt, nil, "")
	if err != nil {
		return fmt.Errorf("strategy A: %w", err)
	}
	bStrategy, _, err := loadStrategy(g, bt, cli.BCardParams, cli.BBettingParams, cli.BCFRParams, cli.BIt, aStrategy.Buckets, aName)
	if err != nil {
		return fmt.Errorf("strategy B: %w", err)
	}

	player, err := play.NewPlayer(g, bt, hv, *aStrategy, *bStrategy,
		play.WithSeed(cli.Seed),
		play.WithLogger(log.Logger),
	)
	if err != nil {
		return err
	}
	return player.Go(cli.NumDuplicateHands, cli.ActionSequence)
}

// loadStrategy loads one side's parameter files and stored regrets. When
// the card abstraction names match, the already-loaded bucket maps are
// shared rather than read twice.
func loadStrategy(g *game.Game, bt *board.Tree, cardParams, bettingParams, cfrParams string,
	it int, sharedBuckets *abstraction.Buckets, sharedName string) (*play.Strategy, string, error) {
	ca, err := abstraction.LoadCardAbstraction(cardParams, g)
	if err != nil {
		return nil, "", err
	}
	buckets := sharedBuckets
	if buckets == nil || ca.Name != sharedName {
		buckets, err = abstraction.LoadBuckets(g, ca, cli.StaticBase)
		if err != nil {
			return nil, "", err
		}
	} else {
		log.Debug().Str("card_abstraction", ca.Name).Msg("sharing bucket maps")
	}

	ba, err := abstraction.LoadBettingAbstraction(bettingParams)
	if err != nil {
		return nil, "", err
	}
	cc, err := abstraction.LoadCFRConfig(cfrParams)
	if err != nil {
		return nil, "", err
	}

	bettingTree, err := tree.Build(g, ba)
	if err != nil {
		return nil, "", err
	}
	probs, err := cfr.NewValues(g, bt, buckets, bettingTree)
	if err != nil {
		return nil, "", err
	}

	dir := cfr.StrategyDir(cli.CFRBase, g, ca.Name, ba.Name, cc.Name)
	log.Info().Str("dir", dir).Int("it", it).Msg("reading strategy")
	if err := probs.Read(dir, it, "x"); err != nil {
		return nil, "", err
	}

	return &play.Strategy{Buckets: buckets, Tree: bettingTree, Probs: probs}, ca.Name, nil
}
