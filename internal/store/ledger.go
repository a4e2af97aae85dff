package store

import (
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/mmcdole/malplan/internal/domain"
)

// Ledger implements domain.LedgerRepository on a KV backend.
// The whole ledger is one document shared by every list kind.
type Ledger struct {
	kv     domain.KVStore
	logger *slog.Logger
}

// NewLedger creates a ledger store
func NewLedger(kv domain.KVStore, logger *slog.Logger) *Ledger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ledger{kv: kv, logger: logger}
}

// ReadAll returns every recorded decision, or an empty ledger when none can be read
func (l *Ledger) ReadAll() []domain.HandledDecision {
	data, err := l.kv.Get(ledgerKey)
	if errors.Is(err, domain.ErrKeyNotFound) {
		return []domain.HandledDecision{}
	}
	if err != nil {
		l.logger.Warn("failed to read ledger", "error", err)
		return []domain.HandledDecision{}
	}

	var decisions []domain.HandledDecision
	if err := json.Unmarshal(data, &decisions); err != nil {
		l.logger.Warn("failed to decode ledger", "error", err)
		return []domain.HandledDecision{}
	}
	if decisions == nil {
		decisions = []domain.HandledDecision{}
	}
	return decisions
}

// WriteAll overwrites the ledger with decisions
func (l *Ledger) WriteAll(decisions []domain.HandledDecision) error {
	if decisions == nil {
		decisions = []domain.HandledDecision{}
	}

	data, err := json.Marshal(decisions)
	if err != nil {
		return &domain.FileError{Op: domain.FileOpEncode, Path: ledgerKey, Err: err}
	}
	if err := l.kv.Put(ledgerKey, data); err != nil {
		return err
	}

	l.logger.Debug("wrote ledger", "count", len(decisions))
	return nil
}
