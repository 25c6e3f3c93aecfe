// Package verdict judges an accusation against the gathered clues.
package verdict

import (
	"github.com/tatianab/detective-quest/internal/clues"
	"github.com/tatianab/detective-quest/internal/suspects"
)

// Threshold is the number of clue occurrences an accusation needs.
const Threshold = 2

// Outcome of an accusation.
type Outcome int

const (
	OutcomeNoAccusation Outcome = iota
	OutcomeSupported
	OutcomeUnsupported
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSupported:
		return "supported"
	case OutcomeUnsupported:
		return "unsupported"
	}
	return "no accusation"
}

// Result is a judged accusation.
type Result struct {
	Accused string
	Count   int
	Outcome Outcome
}

// Evaluate sums the counters of every gathered clue whose suspect is
// exactly accused.
func Evaluate(ledger *clues.Ledger, index *suspects.Index, accused string) int {
	total := 0
	next := ledger.InOrder()
	for rec, ok := next(); ok; rec, ok = next() {
		if s, found := index.Lookup(rec.Text); found && s == accused {
			total += rec.Count
		}
	}
	return total
}

// Judge evaluates accused against Threshold. An empty name is no accusation
// and is not evaluated.
func Judge(ledger *clues.Ledger, index *suspects.Index, accused string) Result {
	if accused == "" {
		return Result{Outcome: OutcomeNoAccusation}
	}
	r := Result{Accused: accused, Count: Evaluate(ledger, index, accused)}
	if r.Count >= Threshold {
		r.Outcome = OutcomeSupported
	} else {
		r.Outcome = OutcomeUnsupported
	}
	return r
}
