// Package planner decides which list items need a decision this run and
// persists the outcome of the triage.
package planner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmcdole/malplan/internal/domain"
	"github.com/mmcdole/malplan/internal/search"
	"github.com/mmcdole/malplan/internal/triage"
)

// Triager presents one item and returns the state after the user's answer
type Triager interface {
	SetTotal(total int)
	Triage(st triage.State, item domain.TrackedItem) (triage.State, error)
}

// Options selects what a run operates on
type Options struct {
	User    string
	Kind    domain.ListKind
	Sort    domain.SortDirection
	NoCache bool
	Filter  string // fuzzy title query; empty presents every item
}

// Plan is the working list of a run together with the ledger it starts from
type Plan struct {
	Items     []domain.TrackedItem
	Ledger    []domain.HandledDecision
	FromCache bool
	FetchedAt time.Time
}

// Service orchestrates cache, provider, ledger and triage for one list.
type Service struct {
	provider domain.ListProvider
	cache    domain.SnapshotRepository
	ledger   domain.LedgerRepository
	triager  Triager
	logger   *slog.Logger
	now      func() time.Time
}

// NewService creates a new planner service
func NewService(
	provider domain.ListProvider,
	cache domain.SnapshotRepository,
	ledger domain.LedgerRepository,
	triager Triager,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		provider: provider,
		cache:    cache,
		ledger:   ledger,
		triager:  triager,
		logger:   logger,
		now:      time.Now,
	}
}

// Run loads the working list, triages it and persists the result
func (s *Service) Run(ctx context.Context, opts Options, onProgress domain.ProgressFunc) (Summary, error) {
	plan, err := s.Load(ctx, opts, onProgress)
	if err != nil {
		return Summary{}, err
	}
	return s.Finish(opts, plan)
}

// Load returns the items to triage. A fresh snapshot owned by opts.User is
// reused as is; otherwise the full list is fetched and reconciled.
func (s *Service) Load(ctx context.Context, opts Options, onProgress domain.ProgressFunc) (Plan, error) {
	now := s.now()
	ledger := s.ledger.ReadAll()

	// 1. Freshness check
	if opts.NoCache {
		s.logger.Debug("cache bypassed", "kind", opts.Kind)
	} else if snapshot, ok := s.cache.Read(opts.Kind); ok {
		if IsFresh(snapshot, opts.User, now) {
			s.logger.Debug("cache fresh", "kind", opts.Kind, "count", len(snapshot.Items),
				"age", snapshot.FetchedAt.Since(now))
			items := snapshot.Items
			if items == nil {
				items = []domain.TrackedItem{}
			}
			return Plan{
				Items:     items,
				Ledger:    ledger,
				FromCache: true,
				FetchedAt: snapshot.FetchedAt.Time,
			}, nil
		}
		s.logger.Debug("cache stale", "kind", opts.Kind, "owner", snapshot.User, "fetchedAt", snapshot.FetchedAt.Time)
	}

	// 2. Fetch and reconcile
	fresh, err := s.provider.FetchAll(ctx, opts.User, onProgress)
	if err != nil {
		s.logger.Error("failed to fetch list", "error", err, "user", opts.User, "kind", opts.Kind)
		return Plan{}, fmt.Errorf("failed to fetch %s list of %s: %w", opts.Kind.Prefix(), opts.User, err)
	}

	working, pruned := Reconcile(fresh, ledger, opts.Kind, opts.Sort)
	s.logger.Info("reconciled list",
		"fetched", len(fresh),
		"working", len(working),
		"pruned", len(ledger)-len(pruned))

	return Plan{
		Items:     working,
		Ledger:    pruned,
		FetchedAt: now,
	}, nil
}

// Finish triages plan and persists the ledger and the remaining items
func (s *Service) Finish(opts Options, plan Plan) (Summary, error) {
	st, err := s.Triage(plan, search.NewTitleFilter(opts.Filter))
	if err != nil {
		return Summary{}, err
	}
	if err := s.Persist(opts, plan, st); err != nil {
		return Summary{}, err
	}
	return Summarize(plan, st), nil
}

// Triage runs the triager over plan. Items rejected by filter are kept for
// a later run without prompting.
func (s *Service) Triage(plan Plan, filter *search.TitleFilter) (triage.State, error) {
	total := 0
	for _, item := range plan.Items {
		if filter.Match(item.Title) {
			total++
		}
	}
	s.triager.SetTotal(total)

	st := triage.NewState(plan.Ledger)
	for _, item := range plan.Items {
		if !filter.Match(item.Title) {
			st = st.Defer(item)
			continue
		}
		var err error
		st, err = s.triager.Triage(st, item)
		if err != nil {
			return triage.State{}, err
		}
	}
	return st, nil
}

// Persist overwrites the ledger and the snapshot for opts.Kind.
// The snapshot keeps only the remaining items so handled ones never come back from cache.
func (s *Service) Persist(opts Options, plan Plan, st triage.State) error {
	if err := s.ledger.WriteAll(st.Ledger); err != nil {
		s.logger.Error("failed to save ledger", "error", err)
		return fmt.Errorf("failed to save handled decisions: %w", err)
	}

	snapshot := domain.CacheSnapshot{
		FetchedAt: domain.EpochTime{Time: plan.FetchedAt},
		User:      opts.User,
		Items:     st.Remaining,
	}
	if err := s.cache.Write(opts.Kind, snapshot); err != nil {
		s.logger.Error("failed to save snapshot", "error", err, "kind", opts.Kind)
		return fmt.Errorf("failed to save %s cache: %w", opts.Kind.Prefix(), err)
	}

	s.logger.Debug("persisted run", "decisions", len(st.Ledger), "remaining", len(st.Remaining))
	return nil
}
