package abstraction

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// BettingAbstraction limits the bet sizes the betting tree exposes. Sizes
// are pot fractions; every decision additionally gets check/call, and fold
// when the acting seat faces a bet.
type BettingAbstraction struct {
	Name             string    `hcl:"name"`
	Asymmetric       bool      `hcl:"asymmetric,optional"`
	BetSizes         []float64 `hcl:"bet_sizes"`
	MaxBetsPerStreet int       `hcl:"max_bets_per_street"`
}

// LoadBettingAbstraction reads and decodes a betting abstraction file.
func LoadBettingAbstraction(filename string) (*BettingAbstraction, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse betting params %s: %s", filename, diags.Error())
	}

	var ba BettingAbstraction
	diags = gohcl.DecodeBody(file.Body, nil, &ba)
	if diags.HasErrors() {
		return nil, fmt.Errorf("decode betting params %s: %s", filename, diags.Error())
	}
	if err := ba.Validate(); err != nil {
		return nil, fmt.Errorf("betting params %s: %w", filename, err)
	}
	return &ba, nil
}

// Validate checks the abstraction is well formed.
func (ba *BettingAbstraction) Validate() error {
	if ba.Name == "" {
		return fmt.Errorf("betting abstraction name is required")
	}
	last := 0.0
	for i, f := range ba.BetSizes {
		if f <= 0 {
			return fmt.Errorf("bet_sizes[%d] must be > 0", i)
		}
		if f <= last {
			return fmt.Errorf("bet_sizes[%d] must be strictly increasing", i)
		}
		last = f
	}
	if ba.MaxBetsPerStreet < 0 {
		return fmt.Errorf("max_bets_per_street cannot be negative")
	}
	if len(ba.BetSizes) > 0 && ba.MaxBetsPerStreet == 0 {
		return fmt.Errorf("max_bets_per_street must be > 0 when bet sizes are given")
	}
	return nil
}
