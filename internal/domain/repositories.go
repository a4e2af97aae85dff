package domain

// SnapshotRepository persists one CacheSnapshot per ListKind.
// Read reports false on any miss, including unreadable snapshots.
type SnapshotRepository interface {
	Read(kind ListKind) (CacheSnapshot, bool)
	Write(kind ListKind, snapshot CacheSnapshot) error
}

// LedgerRepository persists the full set of handled decisions.
// ReadAll never fails; an absent or unreadable ledger is empty.
type LedgerRepository interface {
	ReadAll() []HandledDecision
	WriteAll(decisions []HandledDecision) error
}
