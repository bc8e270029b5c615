package querybuilder

import (
	"testing"
	"time"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("team_id", "rank").
		From("standing_snapshots").
		Where(Eq("season", "2024"), Eq("as_of", "2024-08-15"), IsNull("deleted_at")).
		OrderBy("team_id").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT team_id, rank FROM standing_snapshots WHERE season = $1 AND as_of = $2 AND deleted_at IS NULL ORDER BY team_id LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "2024" || args[1] != "2024-08-15" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_SQLiteDialect(t *testing.T) {
	query, args, err := Select("blob").
		Using(SQLite).
		From("partition_blobs").
		Where(Eq("blob_key", "k1"), In("namespace", []any{"odds", "fixtures"}), Expr("length(blob) > ?", 0)).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT blob FROM partition_blobs WHERE blob_key = ? AND namespace IN (?, ?) AND length(blob) > ?"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("partition_blobs").
		Columns("blob_key", "blob").
		Values("k1", []byte("[]")).
		Suffix("ON CONFLICT (blob_key) DO UPDATE SET blob = EXCLUDED.blob").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO partition_blobs (blob_key, blob) VALUES ($1, $2) ON CONFLICT (blob_key) DO UPDATE SET blob = EXCLUDED.blob"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "k1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModel(t *testing.T) {
	type row struct {
		Key       string    `db:"blob_key"`
		Hash      string    `db:"blob_hash"`
		UpdatedAt time.Time `db:"updated_at"`
		ignored   string
		Skip      string `db:"-"`
	}

	now := time.Date(2024, 8, 17, 6, 0, 0, 0, time.UTC)
	query, args, err := InsertModel(SQLite, "partition_blobs", row{Key: "k1", Hash: "h", UpdatedAt: now, ignored: "x"}, nil)
	if err != nil {
		t.Fatalf("build insert model query: %v", err)
	}

	wantQuery := "INSERT INTO partition_blobs (blob_key, blob_hash, updated_at) VALUES (?, ?, ?)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[2] != now {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := InsertModel(Postgres, "partition_blobs", nil, nil); err == nil {
		t.Fatalf("expected error for nil model")
	}
}

func TestInsertModels_Upsert(t *testing.T) {
	type row struct {
		Key     string `db:"blob_key"`
		Payload []byte `db:"payload"`
	}

	query, args, err := InsertModels(Postgres, "partition_blobs", []row{
		{Key: "a", Payload: []byte("1")},
		{Key: "b", Payload: []byte("2")},
	}, &OnConflict{Target: []string{"blob_key"}, Touch: []string{"updated_at"}})
	if err != nil {
		t.Fatalf("build insert models query: %v", err)
	}

	wantQuery := "INSERT INTO partition_blobs (blob_key, payload) VALUES ($1, $2), ($3, $4) ON CONFLICT (blob_key) DO UPDATE SET payload = EXCLUDED.payload, updated_at = CURRENT_TIMESTAMP"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[2] != "b" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestOnConflict_DoNothing(t *testing.T) {
	type set struct {
		Season string `db:"season"`
		AsOf   string `db:"as_of"`
	}

	query, _, err := InsertModel(SQLite, "standing_snapshot_sets", set{Season: "2024", AsOf: "2024-08-15"}, &OnConflict{Target: []string{"season", "as_of"}})
	if err != nil {
		t.Fatalf("build insert model query: %v", err)
	}
	wantQuery := "INSERT INTO standing_snapshot_sets (season, as_of) VALUES (?, ?) ON CONFLICT (season, as_of) DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}

	if _, _, err := InsertModel(SQLite, "standing_snapshot_sets", set{}, &OnConflict{Target: []string{"league"}}); err == nil {
		t.Fatalf("expected error for unknown conflict target")
	}
	if _, _, err := InsertModels[set](SQLite, "standing_snapshot_sets", nil, nil); err == nil {
		t.Fatalf("expected error for empty batch")
	}
}

func TestChunk(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	chunks := Chunk(items, 2, 4)
	if len(chunks) != 3 || len(chunks[0]) != 2 || len(chunks[2]) != 1 {
		t.Fatalf("unexpected chunks: %v", chunks)
	}
	if got := Chunk(items, 10, 4); len(got) != 1 {
		t.Fatalf("expected single chunk when limit is below width, got %v", got)
	}
	if got := Chunk[int](nil, 2, 4); got != nil {
		t.Fatalf("expected nil chunks, got %v", got)
	}
}
