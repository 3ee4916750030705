package repositories

import (
	"bytes"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"atelier/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLedger(t *testing.T) *Ledger {
	ledger, err := OpenLedger("")
	require.NoError(t, err)
	t.Cleanup(func() { ledger.Close() })
	return ledger
}

func TestLedger(t *testing.T) {
	ledger := newTestLedger(t)

	t.Run("sequence starts at one and increases", func(t *testing.T) {
		first, err := ledger.NextSequence()
		require.NoError(t, err)
		second, err := ledger.NextSequence()
		require.NoError(t, err)
		assert.Equal(t, uint64(1), first)
		assert.Equal(t, uint64(2), second)
	})

	t.Run("put and get", func(t *testing.T) {
		record := &models.OrderRecord{
			Sequence:   1,
			FileName:   "order-20250901-120000-000001.json",
			ReceivedAt: time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC),
			Digest:     "deadbeef",
		}
		require.NoError(t, ledger.Put(record))

		got, err := ledger.Get(1)
		require.NoError(t, err)
		assert.Equal(t, record.FileName, got.FileName)
		assert.True(t, record.ReceivedAt.Equal(got.ReceivedAt))
	})

	t.Run("get missing", func(t *testing.T) {
		_, err := ledger.Get(999)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("list is ordered by sequence", func(t *testing.T) {
		for _, seq := range []uint64{12, 2, 10} {
			require.NoError(t, ledger.Put(&models.OrderRecord{Sequence: seq}))
		}

		records, err := ledger.List()
		require.NoError(t, err)
		var seqs []uint64
		for _, r := range records {
			seqs = append(seqs, r.Sequence)
		}
		assert.Equal(t, []uint64{1, 2, 10, 12}, seqs)
	})

	t.Run("clear", func(t *testing.T) {
		require.NoError(t, ledger.Clear())
		records, err := ledger.List()
		require.NoError(t, err)
		assert.Empty(t, records)

		seq, err := ledger.NextSequence()
		require.NoError(t, err)
		assert.Equal(t, uint64(1), seq)
	})
}

func TestLedgerConcurrentSequences(t *testing.T) {
	ledger, err := OpenLedger(filepath.Join(t.TempDir(), "ledger"))
	require.NoError(t, err)
	t.Cleanup(func() { ledger.Close() })

	const workers = 200
	var wg sync.WaitGroup
	var mu sync.Mutex
	seen := make(map[uint64]bool)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seq, err := ledger.NextSequence()
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			seen[seq] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	require.Len(t, seen, workers)
	for seq := uint64(1); seq <= workers; seq++ {
		assert.True(t, seen[seq], "sequence %d was not allocated", seq)
	}
}

func TestLedgerBackupRestore(t *testing.T) {
	source := newTestLedger(t)
	_, err := source.NextSequence()
	require.NoError(t, err)
	require.NoError(t, source.Put(&models.OrderRecord{Sequence: 1, FileName: "a.json"}))

	var buf bytes.Buffer
	require.NoError(t, source.Backup(&buf))

	target := newTestLedger(t)
	require.NoError(t, target.Restore(&buf))

	got, err := target.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "a.json", got.FileName)

	next, err := target.NextSequence()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), next)
}

func TestOpenLedgerOnDisk(t *testing.T) {
	dir := t.TempDir() + "/ledger"
	ledger, err := OpenLedger(dir)
	require.NoError(t, err)
	_, err = ledger.NextSequence()
	require.NoError(t, err)
	require.NoError(t, ledger.Close())

	reopened, err := OpenLedger(dir)
	require.NoError(t, err)
	defer reopened.Close()

	seq, err := reopened.NextSequence()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), seq)
	assert.Equal(t, dir, reopened.Path())
}
