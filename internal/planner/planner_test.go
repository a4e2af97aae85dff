package planner

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/mmcdole/malplan/internal/domain"
	"github.com/mmcdole/malplan/internal/triage"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func item(id uint32, amount int) domain.TrackedItem {
	return domain.TrackedItem{
		Kind:             domain.ListManga,
		ID:               id,
		Amount:           amount,
		Title:            "Item",
		PublishingStatus: domain.PublishingFinished,
		Subtype:          domain.SubtypeManga,
	}
}

func titled(id uint32, amount int, title string) domain.TrackedItem {
	i := item(id, amount)
	i.Title = title
	return i
}

func decision(id uint32, kind domain.ListKind, how domain.Decision) domain.HandledDecision {
	return domain.HandledDecision{ItemID: id, Kind: kind, How: how}
}

type fakeProvider struct {
	items []domain.TrackedItem
	err   error
	calls int
}

func (p *fakeProvider) FetchAll(_ context.Context, _ string, onProgress domain.ProgressFunc) ([]domain.TrackedItem, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	if onProgress != nil && len(p.items) > 0 {
		onProgress(len(p.items))
	}
	return p.items, nil
}

type memCache struct {
	snapshots map[domain.ListKind]domain.CacheSnapshot
	writeErr  error
	writes    int
}

func newMemCache() *memCache {
	return &memCache{snapshots: map[domain.ListKind]domain.CacheSnapshot{}}
}

func (c *memCache) Read(kind domain.ListKind) (domain.CacheSnapshot, bool) {
	s, ok := c.snapshots[kind]
	return s, ok
}

func (c *memCache) Write(kind domain.ListKind, s domain.CacheSnapshot) error {
	if c.writeErr != nil {
		return c.writeErr
	}
	c.writes++
	c.snapshots[kind] = s
	return nil
}

type memLedger struct {
	decisions []domain.HandledDecision
	writeErr  error
	writes    int
}

func (l *memLedger) ReadAll() []domain.HandledDecision {
	return append([]domain.HandledDecision{}, l.decisions...)
}

func (l *memLedger) WriteAll(d []domain.HandledDecision) error {
	if l.writeErr != nil {
		return l.writeErr
	}
	l.writes++
	l.decisions = append([]domain.HandledDecision{}, d...)
	return nil
}

// recordingTriager answers every item with the same action and remembers what it saw
type recordingTriager struct {
	action triage.Action
	seen   []domain.TrackedItem
	total  int
	err    error
}

func (r *recordingTriager) SetTotal(total int) { r.total = total }

func (r *recordingTriager) Triage(st triage.State, it domain.TrackedItem) (triage.State, error) {
	if r.err != nil {
		return triage.State{}, r.err
	}
	if !st.Quitting {
		r.seen = append(r.seen, it)
	}
	next, _ := triage.Step(st, it, r.action)
	return next, nil
}

type fixture struct {
	provider *fakeProvider
	cache    *memCache
	ledger   *memLedger
}

func newFixture(fresh ...domain.TrackedItem) *fixture {
	return &fixture{
		provider: &fakeProvider{items: fresh},
		cache:    newMemCache(),
		ledger:   &memLedger{},
	}
}

func (f *fixture) service(t Triager) *Service {
	svc := NewService(f.provider, f.cache, f.ledger, t, nil)
	svc.now = func() time.Time { return testNow }
	return svc
}

// sessionTriager drives the interactive session with canned keystrokes
func sessionTriager(input string) (*triage.Session, *bytes.Buffer) {
	var out bytes.Buffer
	return triage.NewSession(strings.NewReader(input), &out, nil), &out
}

var errBoom = errors.New("boom")
