package repositories

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"atelier/app/models"

	"github.com/dgraph-io/badger/v4"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDigestMismatch = errors.New("stored document does not match its digest")
)

// Ledger numbers accepted orders and indexes the files they were written to.
// The order files stay the source of truth; the ledger can be rebuilt from a
// backup or started empty.
type Ledger struct {
	db       *badger.DB
	mutex    sync.RWMutex
	dbPath   string
	inMemory bool
}

// OpenLedger opens the ledger stored at path. An empty path opens an
// in-memory ledger, used by tests.
func OpenLedger(path string) (*Ledger, error) {
	opts := badger.DefaultOptions(path).
		WithLogger(nil).
		WithNumVersionsToKeep(1)

	inMemory := path == ""
	if inMemory {
		opts = opts.WithInMemory(true)
	} else if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create ledger directory: %w", err)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}
	return &Ledger{
		db:       db,
		dbPath:   path,
		inMemory: inMemory,
	}, nil
}

// Path returns the directory of the ledger, empty when in memory.
func (l *Ledger) Path() string {
	return l.dbPath
}

func (l *Ledger) Close() error {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return l.db.Close()
}

// NextSequence allocates the next order number. Numbers are never reused.
// Allocation holds the write lock so concurrent orders never race on the
// sequence key.
func (l *Ledger) NextSequence() (uint64, error) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	var id uint64
	err := l.db.Update(func(txn *badger.Txn) error {
		next, err := getNextID(txn, OrderSeqKey)
		if err != nil {
			return err
		}
		id = next
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Put stores a ledger entry.
func (l *Ledger) Put(record *models.OrderRecord) error {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	data, err := marshalEntity(record)
	if err != nil {
		return err
	}
	return l.db.Update(func(txn *badger.Txn) error {
		return txn.Set(orderKey(record.Sequence), data)
	})
}

// Get returns the ledger entry for an order number.
func (l *Ledger) Get(seq uint64) (*models.OrderRecord, error) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	var record models.OrderRecord
	err := l.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(orderKey(seq))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &record)
		})
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// List returns every ledger entry in order number order.
func (l *Ledger) List() ([]*models.OrderRecord, error) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	records := []*models.OrderRecord{}
	err := l.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(OrderKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var record models.OrderRecord
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &record)
			})
			if err != nil {
				return err
			}
			records = append(records, &record)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Backup writes a full backup of the ledger to w.
func (l *Ledger) Backup(w io.Writer) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if _, err := l.db.Backup(w, 0); err != nil {
		return fmt.Errorf("failed to backup ledger: %w", err)
	}
	return nil
}

// Restore loads a backup produced by Backup.
func (l *Ledger) Restore(r io.Reader) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if err := l.db.Load(r, 16); err != nil {
		return fmt.Errorf("failed to restore ledger: %w", err)
	}
	return nil
}

// Clear removes every entry, including the sequence.
func (l *Ledger) Clear() error {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return l.db.DropAll()
}
