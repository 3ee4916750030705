package repositories

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/dgraph-io/badger/v4"
)

const (
	// Key prefix for ledger entries
	OrderKeyPrefix = "order:"

	// Sequence key for order numbers
	OrderSeqKey = "seq:order"
)

// getNextID gets the next available ID for a given sequence key
func getNextID(txn *badger.Txn, seqKey string) (uint64, error) {
	var id uint64
	item, err := txn.Get([]byte(seqKey))
	if err == badger.ErrKeyNotFound {
		id = 1
	} else if err != nil {
		return 0, fmt.Errorf("failed to get sequence: %w", err)
	} else {
		err = item.Value(func(val []byte) error {
			current, err := strconv.ParseUint(string(val), 10, 64)
			if err != nil {
				return fmt.Errorf("failed to parse sequence: %w", err)
			}
			id = current + 1
			return nil
		})
		if err != nil {
			return 0, err
		}
	}

	// Update the sequence
	if err := txn.Set([]byte(seqKey), []byte(strconv.FormatUint(id, 10))); err != nil {
		return 0, fmt.Errorf("failed to update sequence: %w", err)
	}

	return id, nil
}

// orderKey returns the ledger key for an order sequence number
func orderKey(seq uint64) []byte {
	return []byte(fmt.Sprintf("%s%010d", OrderKeyPrefix, seq))
}

// marshalEntity marshals an entity to JSON
func marshalEntity(v interface{}) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %w", err)
	}
	return data, nil
}

// unmarshalEntity unmarshals JSON data into an entity
func unmarshalEntity(data []byte, v interface{}) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal entity: %w", err)
	}
	return nil
}

// encodeDocument re-indents a JSON document so it can be read by people.
// Key order, number literals and string contents are kept as they are.
func encodeDocument(doc []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(doc), "", "  "); err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return buf.Bytes(), nil
}
