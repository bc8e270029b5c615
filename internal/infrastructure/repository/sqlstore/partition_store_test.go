package sqlstore

import (
	"context"
	"errors"
	"testing"
	"time"

	qb "github.com/riskibarqy/weekendbets/internal/platform/querybuilder"
	"github.com/stretchr/testify/require"
)

func newSQLiteStore(t *testing.T) *PartitionStore {
	t.Helper()

	db, err := OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return NewPartitionStore(db, qb.SQLite)
}

func TestPartitionStore_SQLiteRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newSQLiteStore(t)

	_, ok, err := store.Get(ctx, "json/fixtures/fixtures_2024-08-17.json")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.Put(ctx, "json/fixtures/fixtures_2024-08-17.json", []byte(`{"response":[]}`)))
	blob, ok, err := store.Get(ctx, "json/fixtures/fixtures_2024-08-17.json")
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `{"response":[]}`, string(blob))
}

func TestPartitionStore_SQLitePutReplaces(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newSQLiteStore(t)
	store.now = func() time.Time { return time.Date(2024, 8, 17, 6, 0, 0, 0, time.UTC) }

	require.NoError(t, store.Put(ctx, "k", []byte("one")))
	require.NoError(t, store.Put(ctx, "k", []byte("two")))

	blob, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "two", string(blob))

	var count int
	require.NoError(t, store.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM partition_blobs"))
	require.Equal(t, 1, count)
}

func TestPartitionStore_SQLiteEmptyBlob(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newSQLiteStore(t)

	require.NoError(t, store.Put(ctx, "empty", nil))
	blob, ok, err := store.Get(ctx, "empty")
	require.NoError(t, err)
	require.True(t, ok)
	require.Empty(t, blob)
}

func TestIsBindParameterMismatch(t *testing.T) {
	t.Run("matches bind mismatch error", func(t *testing.T) {
		err := errors.New("pq: bind message supplies 2 parameters, but prepared statement \"\" requires 1 (08P01)")
		if !isBindParameterMismatch(err) {
			t.Fatalf("expected true for bind mismatch error")
		}
	})

	t.Run("ignores unrelated error", func(t *testing.T) {
		err := errors.New("pq: relation partition_blobs does not exist")
		if isBindParameterMismatch(err) {
			t.Fatalf("expected false for unrelated error")
		}
	})
}

func TestIsUnnamedPreparedStatementMissing(t *testing.T) {
	t.Run("matches statement missing message", func(t *testing.T) {
		err := errors.New("pq: unnamed prepared statement does not exist (26000)")
		if !isUnnamedPreparedStatementMissing(err) {
			t.Fatalf("expected true for statement missing error")
		}
	})

	t.Run("ignores unrelated error", func(t *testing.T) {
		if isUnnamedPreparedStatementMissing(errors.New("pq: relation partition_blobs does not exist")) {
			t.Fatalf("expected false for unrelated error")
		}
	})
}

func TestQuoteLiteral(t *testing.T) {
	got := quoteLiteral("o'hara")
	if got != "'o''hara'" {
		t.Fatalf("unexpected quoted literal: %s", got)
	}
}
