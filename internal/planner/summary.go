package planner

import (
	"fmt"

	"github.com/mmcdole/malplan/internal/domain"
	"github.com/mmcdole/malplan/internal/triage"
)

// Summary counts what a run did
type Summary struct {
	FromCache   bool
	Added       int
	NotFound    int
	NotFinished int
	Remaining   int
}

// Summarize counts the decisions st recorded on top of plan's ledger
func Summarize(plan Plan, st triage.State) Summary {
	sum := Summary{
		FromCache: plan.FromCache,
		Remaining: len(st.Remaining),
	}
	for _, d := range st.Added(len(plan.Ledger)) {
		switch d.How {
		case domain.DecisionAdded:
			sum.Added++
		case domain.DecisionNotFound:
			sum.NotFound++
		case domain.DecisionNotFinished:
			sum.NotFinished++
		}
	}
	return sum
}

// Decided is the number of decisions recorded this run
func (s Summary) Decided() int {
	return s.Added + s.NotFound + s.NotFinished
}

func (s Summary) String() string {
	return fmt.Sprintf("%d added, %d not found, %d not finished, %d left for later",
		s.Added, s.NotFound, s.NotFinished, s.Remaining)
}
