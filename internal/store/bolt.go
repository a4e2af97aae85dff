package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mmcdole/malplan/internal/domain"
	bolt "go.etcd.io/bbolt"
)

const boltFile = "malplan.db"

// bucketDocuments holds every document, keyed like the JSON backend's file names
var bucketDocuments = []byte("documents")

// BoltKV implements domain.KVStore on a single BoltDB file.
type BoltKV struct {
	db   *bolt.DB
	path string
}

// NewBoltKV opens (creating if needed) the database in dir
func NewBoltKV(dir string) (*BoltKV, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, &domain.FileError{Op: domain.FileOpOpen, Path: dir, Err: err}
	}

	dbPath := filepath.Join(dir, boltFile)
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, &domain.FileError{Op: domain.FileOpOpen, Path: dbPath, Err: fmt.Errorf("failed to open bolt db: %w", err)}
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketDocuments)
		return err
	})
	if err != nil {
		db.Close()
		return nil, &domain.FileError{Op: domain.FileOpOpen, Path: dbPath, Err: err}
	}

	return &BoltKV{db: db, path: dbPath}, nil
}

func (s *BoltKV) Get(key string) ([]byte, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketDocuments)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			// v is only valid inside the transaction
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		return nil, &domain.FileError{Op: domain.FileOpRead, Path: s.path + "#" + key, Err: err}
	}
	if data == nil {
		return nil, domain.ErrKeyNotFound
	}
	return data, nil
}

func (s *BoltKV) Put(key string, value []byte) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketDocuments).Put([]byte(key), value)
	})
	if err != nil {
		return &domain.FileError{Op: domain.FileOpWrite, Path: s.path + "#" + key, Err: err}
	}
	return nil
}

func (s *BoltKV) Close() error {
	return s.db.Close()
}
