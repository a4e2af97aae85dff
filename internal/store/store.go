package store

import (
	"fmt"

	"github.com/mmcdole/malplan/internal/domain"
)

// Document keys. The JSON backend appends ".json" to form the file name.
const (
	cacheKeySuffix = "_cache"
	ledgerKey      = "handled"
)

// Backend selects how the cache and ledger are persisted
type Backend string

const (
	BackendJSON Backend = "json" // one JSON file per document
	BackendBolt Backend = "bolt" // single bbolt database
)

// Open returns the KV backend selected by the configuration
func Open(backend Backend, dir string) (domain.KVStore, error) {
	switch backend {
	case BackendJSON, "":
		return NewFileKV(dir), nil
	case BackendBolt:
		return NewBoltKV(dir)
	default:
		return nil, fmt.Errorf("unknown store backend: %s", backend)
	}
}

// cacheKey namespaces a snapshot by list kind: "manga_cache"
func cacheKey(kind domain.ListKind) string {
	return kind.Prefix() + cacheKeySuffix
}
