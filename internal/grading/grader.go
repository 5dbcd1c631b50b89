// Package grading converts written answers into scores with partial credit.
//
// A similarity ratio in [0,1] maps onto points through a two-threshold ramp:
// at or above the full threshold the answer earns full credit, between the
// partial and full thresholds credit grows linearly, below the partial
// threshold it earns nothing. Strict equality would punish trivial typos
// and a single cutoff would reward guesses; the ramp sits between the two.
package grading

import "math"

// Default acceptance thresholds and fuzzy toggle.
const (
	DefaultAcceptFullAt    = 0.85
	DefaultAcceptPartialAt = 0.60
)

// Grader scores written answers. The zero value is not usable; construct
// with New.
type Grader struct {
	fullAt       float64
	partialAt    float64
	fuzzyDefault bool
}

type Option func(*Grader)

// WithThresholds overrides the full/partial acceptance ratios.
func WithThresholds(fullAt, partialAt float64) Option {
	return func(g *Grader) {
		g.fullAt = fullAt
		g.partialAt = partialAt
	}
}

// WithFuzzyDefault sets whether questions without an explicit flag use
// fuzzy acceptance.
func WithFuzzyDefault(b bool) Option {
	return func(g *Grader) { g.fuzzyDefault = b }
}

func New(opts ...Option) *Grader {
	g := &Grader{
		fullAt:       DefaultAcceptFullAt,
		partialAt:    DefaultAcceptPartialAt,
		fuzzyDefault: true,
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// FullAt exposes the full-credit threshold (the session summary classifies
// per-question outcomes with it).
func (g *Grader) FullAt() float64 { return g.fullAt }

// PartialAt exposes the partial-credit threshold.
func (g *Grader) PartialAt() float64 { return g.partialAt }

// unitCredit maps a similarity ratio to credit in [0,1] via the ramp.
func (g *Grader) unitCredit(ratio float64) float64 {
	if ratio >= g.fullAt {
		return 1
	}
	if ratio >= g.partialAt {
		return (ratio - g.partialAt) / (g.fullAt - g.partialAt)
	}
	return 0
}

// round2 rounds to two decimal places for score reporting.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
