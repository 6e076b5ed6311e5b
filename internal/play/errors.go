package play

import "errors"

var (
	// ErrTreeMismatch is returned when a bet size sampled on the acting
	// seat's tree has no matching successor on another seat's tree.
	ErrTreeMismatch = errors.New("no matching successor for bet size")

	// ErrContributionMismatch is returned when a two-player showdown is
	// reached with contributions that disagree with the terminal node.
	ErrContributionMismatch = errors.New("showdown contributions do not match terminal bet level")

	// ErrUnsupported is returned for configurations the evaluator's pot
	// accounting cannot handle.
	ErrUnsupported = errors.New("unsupported configuration")
)
