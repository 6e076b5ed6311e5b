// Package abstraction holds the card- and betting-abstraction parameter
// types and the bucket maps built from them. All types are immutable after
// loading.
package abstraction

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/cfreval/internal/game"
)

// BucketingNone marks a street with no card abstraction.
const BucketingNone = "none"

// CardAbstraction names the per-street bucketing a strategy was trained
// with. A bucketing is either "none" or the name of a generated bucket file.
type CardAbstraction struct {
	Name       string   `hcl:"name"`
	Bucketings []string `hcl:"bucketings"`
}

// LoadCardAbstraction reads and decodes a card abstraction parameter file.
func LoadCardAbstraction(filename string, g *game.Game) (*CardAbstraction, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse card params %s: %s", filename, diags.Error())
	}

	var ca CardAbstraction
	diags = gohcl.DecodeBody(file.Body, nil, &ca)
	if diags.HasErrors() {
		return nil, fmt.Errorf("decode card params %s: %s", filename, diags.Error())
	}
	if err := ca.Validate(g); err != nil {
		return nil, fmt.Errorf("card params %s: %w", filename, err)
	}
	return &ca, nil
}

// Validate checks the abstraction against the game's street structure.
func (ca *CardAbstraction) Validate(g *game.Game) error {
	if ca.Name == "" {
		return fmt.Errorf("card abstraction name is required")
	}
	if len(ca.Bucketings) != g.MaxStreet()+1 {
		return fmt.Errorf("bucketings needs %d entries, got %d", g.MaxStreet()+1, len(ca.Bucketings))
	}
	for st, b := range ca.Bucketings {
		if b == "" {
			return fmt.Errorf("bucketings[%d] is empty", st)
		}
	}
	return nil
}
