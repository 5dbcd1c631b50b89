// Package assemble builds a ready-to-serve test from the question bank:
// it draws ids from the rotation bags, arranges multiple-choice options
// around a drawn slot, partitions list questions into revealed and hidden
// items, and shuffles the final order. Given the same seed and the same
// bag state the output is identical on every run.
package assemble

import (
	"github.com/quizforge/quizforge/internal/bank"
)

// Mode selects how question ids are sourced.
type Mode string

const (
	// ModeNormal draws from the rotation bags and persists the remainder.
	ModeNormal Mode = "normal"
	// ModePracticeWrong prioritizes questions missed in a previous run and
	// tops up from the bags without persisting, leaving the main rotation
	// untouched.
	ModePracticeWrong Mode = "practice_wrong"
)

// RevealMode controls how many list items are pre-shown as a hint.
type RevealMode string

const (
	RevealNone  RevealMode = "none"  // show nothing
	RevealOne   RevealMode = "one"   // show exactly one random item
	RevealRatio RevealMode = "ratio" // show per-question ratio of items, at least one
)

// Config carries the assembly tunables.
type Config struct {
	MCQPerTest         int
	WrittenPerTest     int
	RevealMode         RevealMode
	RevealRatioDefault float64 // used when a question has no show ratio
}

// DefaultConfig mirrors the production test shape: 25 MCQ + 10 written,
// one list item revealed.
func DefaultConfig() Config {
	return Config{
		MCQPerTest:         25,
		WrittenPerTest:     10,
		RevealMode:         RevealOne,
		RevealRatioDefault: 0.25,
	}
}

// TestItem is one assembled question instance plus its response state. The
// engine creates it; the surrounding session mutates only the response
// fields (Selected, Text, Blanks).
type TestItem struct {
	Question bank.Question

	// Multiple choice: the served option order and the 1-based slot the
	// correct option occupies within it.
	Options  []bank.Option
	Slot     int
	Selected string

	// Written single.
	Text string

	// Written list: revealed items, hidden items in authored order, and
	// one answer blank per hidden item.
	Shown  []bank.ListItem
	Hidden []bank.ListItem
	Blanks []string
}
