package game

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config describes the game being played: deck composition, street
// structure, and blinds. It is decoded from an HCL parameter file.
type Config struct {
	GameName          string `hcl:"game_name"`
	NumPlayers        int    `hcl:"num_players"`
	NumRanks          int    `hcl:"num_ranks"`
	NumSuits          int    `hcl:"num_suits"`
	MaxStreet         int    `hcl:"max_street"`
	SmallBlind        int    `hcl:"small_blind"`
	BigBlind          int    `hcl:"big_blind"`
	StackSize         int    `hcl:"stack_size"`
	FirstToAct        []int  `hcl:"first_to_act"`
	NumCardsForStreet []int  `hcl:"num_cards_for_street"`
}

// LoadConfig reads and decodes a game parameter file.
func LoadConfig(filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse game params %s: %s", filename, diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("decode game params %s: %s", filename, diags.Error())
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("game params %s: %w", filename, err)
	}
	return &cfg, nil
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if c.GameName == "" {
		return fmt.Errorf("game name is required")
	}
	if c.NumPlayers < 2 {
		return fmt.Errorf("num players must be >= 2")
	}
	if c.NumRanks < 1 || c.NumRanks > 13 {
		return fmt.Errorf("num ranks must be in [1, 13]")
	}
	if c.NumSuits < 1 || c.NumSuits > 4 {
		return fmt.Errorf("num suits must be in [1, 4]")
	}
	if c.MaxStreet < 0 {
		return fmt.Errorf("max street cannot be negative")
	}
	if len(c.FirstToAct) != c.MaxStreet+1 {
		return fmt.Errorf("first_to_act needs %d entries, got %d", c.MaxStreet+1, len(c.FirstToAct))
	}
	for st, p := range c.FirstToAct {
		if p < 0 || p >= c.NumPlayers {
			return fmt.Errorf("first_to_act[%d] out of range: %d", st, p)
		}
	}
	if len(c.NumCardsForStreet) != c.MaxStreet+1 {
		return fmt.Errorf("num_cards_for_street needs %d entries, got %d", c.MaxStreet+1, len(c.NumCardsForStreet))
	}
	if c.NumCardsForStreet[0] != 2 {
		return fmt.Errorf("exactly two hole cards are supported, got %d", c.NumCardsForStreet[0])
	}
	for st := 1; st <= c.MaxStreet; st++ {
		if c.NumCardsForStreet[st] < 1 {
			return fmt.Errorf("num_cards_for_street[%d] must be >= 1", st)
		}
	}
	if c.SmallBlind <= 0 {
		return fmt.Errorf("small blind must be > 0")
	}
	if c.BigBlind <= c.SmallBlind {
		return fmt.Errorf("big blind must be greater than small blind")
	}
	if c.StackSize <= c.BigBlind {
		return fmt.Errorf("stack size must be greater than big blind")
	}
	deckSize := c.NumRanks * c.NumSuits
	needed := 2*c.NumPlayers + c.totalBoardCards()
	if deckSize < needed {
		return fmt.Errorf("deck of %d cards cannot cover %d dealt cards", deckSize, needed)
	}
	return nil
}

func (c *Config) totalBoardCards() int {
	n := 0
	for st := 1; st <= c.MaxStreet; st++ {
		n += c.NumCardsForStreet[st]
	}
	return n
}
