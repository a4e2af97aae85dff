// Package triage implements the per-item review loop: every item is shown
// once and the user either records a decision, skips it, or quits.
package triage

import (
	"slices"

	"github.com/mmcdole/malplan/internal/domain"
)

// State is the accumulator threaded through every Step.
// Ledger starts with the prior decisions and only grows; Remaining collects
// items left for a later run; once Quitting is set no further item is prompted.
type State struct {
	Ledger    []domain.HandledDecision
	Remaining []domain.TrackedItem
	Quitting  bool
}

// NewState starts a triage over an existing ledger
func NewState(ledger []domain.HandledDecision) State {
	return State{
		Ledger:    slices.Clip(ledger),
		Remaining: []domain.TrackedItem{},
	}
}

// Outcome describes what a Step did with the item
type Outcome int

const (
	OutcomeRecorded Outcome = iota // decision appended to the ledger
	OutcomeSkipped                 // item kept for later
	OutcomeQuit                    // item kept for later, quitting from now on
	OutcomeDeferred                // item kept for later without prompting
	OutcomeOpen                    // same item again, page requested
	OutcomeHelp                    // same item again, help requested
	OutcomeUnknown                 // same item again, input not recognized
)

// Advances reports whether the loop moves on to the next item
func (o Outcome) Advances() bool {
	return o != OutcomeOpen && o != OutcomeHelp && o != OutcomeUnknown
}

// Step applies one action to item. It never mutates st.
func Step(st State, item domain.TrackedItem, action Action) (State, Outcome) {
	if st.Quitting {
		return st.keep(item), OutcomeDeferred
	}

	switch action {
	case ActionObtained:
		return st.record(item.Handle(domain.DecisionAdded)), OutcomeRecorded
	case ActionNotFound:
		return st.record(item.Handle(domain.DecisionNotFound)), OutcomeRecorded
	case ActionNotFinished:
		return st.record(item.Handle(domain.DecisionNotFinished)), OutcomeRecorded
	case ActionSkip:
		return st.keep(item), OutcomeSkipped
	case ActionQuit:
		next := st.keep(item)
		next.Quitting = true
		return next, OutcomeQuit
	case ActionOpen:
		return st, OutcomeOpen
	case ActionHelp:
		return st, OutcomeHelp
	default:
		return st, OutcomeUnknown
	}
}

// Defer keeps item for a later run without consulting the user
func (st State) Defer(item domain.TrackedItem) State {
	return st.keep(item)
}

// Added returns the decisions recorded on top of the first n ledger entries
func (st State) Added(n int) []domain.HandledDecision {
	if n >= len(st.Ledger) {
		return nil
	}
	return st.Ledger[n:]
}

// appending to a clipped slice always copies, so earlier states stay intact
func (st State) record(d domain.HandledDecision) State {
	st.Ledger = append(slices.Clip(st.Ledger), d)
	return st
}

func (st State) keep(item domain.TrackedItem) State {
	st.Remaining = append(slices.Clip(st.Remaining), item)
	return st
}
