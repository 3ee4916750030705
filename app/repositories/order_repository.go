package repositories

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"atelier/app/models"

	"golang.org/x/crypto/blake2b"
)

// OrderTimeLayout is the timestamp embedded in order file names.
const OrderTimeLayout = "20060102-150405"

// FileOrderRepository writes one JSON file per accepted order and records
// it in the ledger. Files are created exclusively and never rewritten.
type FileOrderRepository struct {
	dir    string
	ledger *Ledger
	now    func() time.Time
}

// NewFileOrderRepository creates a FileOrderRepository writing into dir
func NewFileOrderRepository(dir string, ledger *Ledger) *FileOrderRepository {
	return &FileOrderRepository{
		dir:    dir,
		ledger: ledger,
		now:    time.Now,
	}
}

// OrderFileName returns the file name for an order received at t.
func OrderFileName(t time.Time, seq uint64) string {
	return fmt.Sprintf("order-%s-%06d.json", t.Format(OrderTimeLayout), seq)
}

// Create persists the document exactly as submitted, keys in their original order
func (r *FileOrderRepository) Create(doc json.RawMessage) (*models.OrderRecord, error) {
	data, err := encodeDocument(doc)
	if err != nil {
		return nil, err
	}

	seq, err := r.ledger.NextSequence()
	if err != nil {
		return nil, fmt.Errorf("failed to allocate order number: %w", err)
	}

	receivedAt := r.now()
	name := OrderFileName(receivedAt, seq)

	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create orders directory: %w", err)
	}
	if err := writeExclusive(filepath.Join(r.dir, name), data); err != nil {
		return nil, err
	}

	digest := blake2b.Sum256(data)
	record := &models.OrderRecord{
		Sequence:   seq,
		FileName:   name,
		ReceivedAt: receivedAt.UTC(),
		Digest:     hex.EncodeToString(digest[:]),
	}

	// The file is already durable; a missing index entry must not lose the order.
	if err := r.ledger.Put(record); err != nil {
		log.Printf("order %s written but not indexed: %v", name, err)
	}
	return record, nil
}

// List returns the ledger entries of every accepted order
func (r *FileOrderRepository) List() ([]*models.OrderRecord, error) {
	return r.ledger.List()
}

// Read returns the stored document of an order and checks it against the
// digest recorded when it was accepted.
func (r *FileOrderRepository) Read(seq uint64) ([]byte, error) {
	record, err := r.ledger.Get(seq)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(r.dir, record.FileName))
	if err != nil {
		return nil, fmt.Errorf("failed to read order %d: %w", seq, err)
	}

	digest := blake2b.Sum256(data)
	if hex.EncodeToString(digest[:]) != record.Digest {
		return data, fmt.Errorf("order %d: %w", seq, ErrDigestMismatch)
	}
	return data, nil
}

func writeExclusive(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("failed to create order file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("failed to write order file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("failed to sync order file: %w", err)
	}
	return f.Close()
}
