package planner

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/mmcdole/malplan/internal/domain"
	"github.com/mmcdole/malplan/internal/store"
	"github.com/mmcdole/malplan/internal/triage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var alice = Options{User: "alice", Kind: domain.ListManga, Sort: domain.SortDesc}

func cachedSnapshot(user string, age time.Duration, items ...domain.TrackedItem) domain.CacheSnapshot {
	return domain.CacheSnapshot{
		FetchedAt: domain.EpochTime{Time: testNow.Add(-age)},
		User:      user,
		Items:     items,
	}
}

func TestRunFreshCacheSkipsProvider(t *testing.T) {
	// cached lists are used verbatim: no re-filtering or re-sorting
	unfinished := item(3, 99)
	unfinished.PublishingStatus = 1
	cached := []domain.TrackedItem{item(1, 1), unfinished, item(2, 50)}

	f := newFixture(item(8, 8))
	f.cache.snapshots[domain.ListManga] = cachedSnapshot("alice", 48*time.Hour, cached...)
	tr := &recordingTriager{action: triage.ActionSkip}

	sum, err := f.service(tr).Run(context.Background(), alice, nil)

	require.NoError(t, err)
	assert.Zero(t, f.provider.calls)
	assert.True(t, sum.FromCache)
	assert.Equal(t, cached, tr.seen)

	written := f.cache.snapshots[domain.ListManga]
	assert.Equal(t, cached, written.Items)
	assert.True(t, written.FetchedAt.Equal(testNow.Add(-48*time.Hour)), "fetch time of the snapshot is kept")
}

func TestRunRefetchesWhenCacheUnusable(t *testing.T) {
	tests := []struct {
		name     string
		snapshot *domain.CacheSnapshot
		opts     Options
	}{
		{"no snapshot", nil, alice},
		{"other user", ptr(cachedSnapshot("bob", 0)), alice},
		{"stale", ptr(cachedSnapshot("alice", MaxCacheAge+time.Minute)), alice},
		{"from the future", ptr(cachedSnapshot("alice", -time.Hour)), alice},
		{"cache bypassed", ptr(cachedSnapshot("alice", 0)), Options{User: "alice", Kind: domain.ListManga, NoCache: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(item(1, 10))
			if tt.snapshot != nil {
				f.cache.snapshots[domain.ListManga] = *tt.snapshot
			}

			sum, err := f.service(&recordingTriager{action: triage.ActionSkip}).Run(context.Background(), tt.opts, nil)

			require.NoError(t, err)
			assert.Equal(t, 1, f.provider.calls)
			assert.False(t, sum.FromCache)

			written := f.cache.snapshots[domain.ListManga]
			assert.Equal(t, "alice", written.User)
			assert.True(t, written.FetchedAt.Equal(testNow))
			assert.Equal(t, []uint32{1}, ids(written.Items))
		})
	}
}

func TestRunEmptyRemoteList(t *testing.T) {
	f := newFixture()
	f.ledger.decisions = []domain.HandledDecision{
		decision(1, domain.ListManga, domain.DecisionAdded),
		decision(2, domain.ListManga, domain.DecisionNotFound),
		decision(1, domain.ListAnime, domain.DecisionAdded),
	}
	tr := &recordingTriager{action: triage.ActionObtained}

	sum, err := f.service(tr).Run(context.Background(), alice, nil)

	require.NoError(t, err)
	assert.Empty(t, tr.seen)
	assert.Equal(t, []domain.HandledDecision{decision(1, domain.ListAnime, domain.DecisionAdded)}, f.ledger.decisions)

	written, ok := f.cache.snapshots[domain.ListManga]
	require.True(t, ok)
	assert.NotNil(t, written.Items)
	assert.Empty(t, written.Items)
	assert.Equal(t, Summary{}, sum)
}

func TestRunRecordsDecisionAndExcludesItNextRun(t *testing.T) {
	dir := t.TempDir()
	kv, err := store.Open(store.BackendJSON, dir)
	require.NoError(t, err)
	cache, ledger := store.NewCacheStore(kv, nil), store.NewLedger(kv, nil)

	provider := &fakeProvider{items: []domain.TrackedItem{item(7, 10)}}
	session, _ := sessionTriager("d")
	svc := NewService(provider, cache, ledger, session, nil)
	svc.now = func() time.Time { return testNow }

	sum, err := svc.Run(context.Background(), alice, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Added)
	assert.Equal(t, []domain.HandledDecision{decision(7, domain.ListManga, domain.DecisionAdded)}, ledger.ReadAll())

	snapshot, ok := cache.Read(domain.ListManga)
	require.True(t, ok)
	assert.Empty(t, snapshot.Items)

	// the next run is served from cache and has nothing left to ask
	next := &recordingTriager{action: triage.ActionObtained}
	svc = NewService(provider, cache, ledger, next, nil)
	svc.now = func() time.Time { return testNow.Add(time.Hour) }

	_, err = svc.Run(context.Background(), alice, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, provider.calls)
	assert.Empty(t, next.seen)

	// a forced refetch still excludes it through the ledger
	_, err = svc.Run(context.Background(), Options{User: "alice", Kind: domain.ListManga, NoCache: true}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, provider.calls)
	assert.Empty(t, next.seen)
}

func TestRunRepromptedItemStaysRemaining(t *testing.T) {
	f := newFixture(item(7, 10))
	session, _ := sessionTriager("xhs")

	sum, err := f.service(session).Run(context.Background(), alice, nil)

	require.NoError(t, err)
	assert.Empty(t, f.ledger.decisions)
	assert.Equal(t, []uint32{7}, ids(f.cache.snapshots[domain.ListManga].Items))
	assert.Equal(t, 1, sum.Remaining)
	assert.Zero(t, sum.Decided())
}

func TestRunPresentsInSortOrder(t *testing.T) {
	f := newFixture(titled(1, 5, "A"), titled(2, 20, "B"))
	tr := &recordingTriager{action: triage.ActionSkip}

	_, err := f.service(tr).Run(context.Background(), alice, nil)

	require.NoError(t, err)
	assert.Equal(t, []uint32{2, 1}, ids(tr.seen))
	assert.Equal(t, 2, tr.total)
}

func TestRunQuitKeepsTheRest(t *testing.T) {
	f := newFixture(item(1, 30), item(2, 20), item(3, 10))
	session, _ := sessionTriager("nq")

	sum, err := f.service(session).Run(context.Background(), alice, nil)

	require.NoError(t, err)
	assert.Equal(t, []domain.HandledDecision{decision(1, domain.ListManga, domain.DecisionNotFinished)}, f.ledger.decisions)
	assert.Equal(t, []uint32{2, 3}, ids(f.cache.snapshots[domain.ListManga].Items))
	assert.Equal(t, Summary{NotFinished: 1, Remaining: 2}, sum)
}

func TestRunFilterDefersNonMatching(t *testing.T) {
	f := newFixture(titled(1, 30, "Berserk"), titled(2, 20, "Monster"), titled(3, 10, "Pluto"))
	tr := &recordingTriager{action: triage.ActionObtained}
	opts := alice
	opts.Filter = "mons"

	sum, err := f.service(tr).Run(context.Background(), opts, nil)

	require.NoError(t, err)
	assert.Equal(t, []uint32{2}, ids(tr.seen))
	assert.Equal(t, 1, tr.total)
	assert.Equal(t, []uint32{1, 3}, ids(f.cache.snapshots[domain.ListManga].Items), "unmatched items keep their order")
	assert.Equal(t, Summary{Added: 1, Remaining: 2}, sum)
}

func TestRunProviderErrorWritesNothing(t *testing.T) {
	f := newFixture()
	f.provider.err = &domain.ProviderError{Kind: domain.ErrNetwork, Offset: 300, Err: errBoom}

	_, err := f.service(&recordingTriager{}).Run(context.Background(), alice, nil)

	assert.ErrorIs(t, err, domain.ErrNetwork)
	assert.Zero(t, f.ledger.writes)
	assert.Zero(t, f.cache.writes)
}

func TestRunTriageErrorWritesNothing(t *testing.T) {
	f := newFixture(item(1, 1), item(2, 2))
	session, _ := sessionTriager("d")

	_, err := f.service(session).Run(context.Background(), alice, nil)

	assert.Error(t, err)
	assert.Zero(t, f.ledger.writes)
	assert.Zero(t, f.cache.writes)
}

func TestRunLedgerWriteErrorIsFatal(t *testing.T) {
	f := newFixture(item(1, 1))
	f.ledger.writeErr = &domain.FileError{Op: domain.FileOpWrite, Path: "handled.json", Err: errBoom}

	_, err := f.service(&recordingTriager{action: triage.ActionObtained}).Run(context.Background(), alice, nil)

	var ferr *domain.FileError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, domain.FileOpWrite, ferr.Op)
	assert.Zero(t, f.cache.writes)
}

func TestRunCacheWriteErrorIsFatal(t *testing.T) {
	f := newFixture(item(1, 1))
	f.cache.writeErr = errBoom

	_, err := f.service(&recordingTriager{action: triage.ActionSkip}).Run(context.Background(), alice, nil)

	assert.ErrorIs(t, err, errBoom)
}

func TestLoadReportsProgress(t *testing.T) {
	f := newFixture(item(1, 1), item(2, 2))
	var progress []int

	plan, err := f.service(nil).Load(context.Background(), alice, func(n int) { progress = append(progress, n) })

	require.NoError(t, err)
	assert.Equal(t, []int{2}, progress)
	assert.Equal(t, []uint32{2, 1}, ids(plan.Items))
	assert.True(t, plan.FetchedAt.Equal(testNow))
}

func TestSummarize(t *testing.T) {
	plan := Plan{
		FromCache: true,
		Ledger:    []domain.HandledDecision{decision(1, domain.ListManga, domain.DecisionAdded)},
	}
	st := triage.NewState(plan.Ledger)
	st, _ = triage.Step(st, item(2, 1), triage.ActionObtained)
	st, _ = triage.Step(st, item(3, 1), triage.ActionNotFound)
	st, _ = triage.Step(st, item(4, 1), triage.ActionSkip)

	sum := Summarize(plan, st)

	want := Summary{FromCache: true, Added: 1, NotFound: 1, Remaining: 1}
	if diff := cmp.Diff(want, sum); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "1 added, 1 not found, 0 not finished, 1 left for later", sum.String())
}

func ptr[T any](v T) *T { return &v }
