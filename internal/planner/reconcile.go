package planner

import (
	"cmp"
	"slices"

	"github.com/mmcdole/malplan/internal/domain"
)

// Reconcile merges a freshly fetched list with the ledger.
//
// Decisions of kind whose item no longer appears upstream are dropped from
// the ledger; decisions of other kinds are kept as they are. The working list
// holds the finished items without a decision, ordered by amount in the
// requested direction. Duplicate ids are not collapsed.
func Reconcile(
	fresh []domain.TrackedItem,
	ledger []domain.HandledDecision,
	kind domain.ListKind,
	sort domain.SortDirection,
) (working []domain.TrackedItem, pruned []domain.HandledDecision) {
	present := make(map[uint32]struct{}, len(fresh))
	for _, item := range fresh {
		present[item.ID] = struct{}{}
	}

	pruned = make([]domain.HandledDecision, 0, len(ledger))
	handled := make(map[uint32]struct{})
	for _, d := range ledger {
		if d.Kind != kind {
			pruned = append(pruned, d)
			continue
		}
		if _, ok := present[d.ItemID]; !ok {
			continue
		}
		pruned = append(pruned, d)
		handled[d.ItemID] = struct{}{}
	}

	working = make([]domain.TrackedItem, 0, len(fresh))
	for _, item := range fresh {
		if !item.IsFinished() {
			continue
		}
		if _, ok := handled[item.ID]; ok {
			continue
		}
		working = append(working, item)
	}

	sign := sort.Sign()
	slices.SortStableFunc(working, func(a, b domain.TrackedItem) int {
		return cmp.Compare(a.Amount*sign, b.Amount*sign)
	})

	return working, pruned
}
