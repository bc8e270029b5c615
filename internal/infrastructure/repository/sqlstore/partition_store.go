package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	qb "github.com/riskibarqy/weekendbets/internal/platform/querybuilder"
)

const partitionTable = "partition_blobs"

// PartitionStore keeps blobs in the partition_blobs table of Postgres or SQLite.
type PartitionStore struct {
	db      *sqlx.DB
	dialect qb.Dialect
	now     func() time.Time
}

func NewPartitionStore(db *sqlx.DB, dialect qb.Dialect) *PartitionStore {
	return &PartitionStore{db: db, dialect: dialect, now: time.Now}
}

func (s *PartitionStore) Put(ctx context.Context, key string, blob []byte) error {
	if key == "" {
		return fmt.Errorf("blob key is required")
	}
	if blob == nil {
		blob = []byte{}
	}

	query, args, err := qb.InsertModel(s.dialect, partitionTable, partitionBlobInsertModel{
		Key:       key,
		Payload:   blob,
		UpdatedAt: s.now().UTC(),
	}, &qb.OnConflict{Target: []string{"blob_key"}})
	if err != nil {
		return fmt.Errorf("build upsert partition blob query: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert partition blob key=%s: %w", key, err)
	}
	return nil
}

func (s *PartitionStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query, args, err := qb.Select("payload").
		Using(s.dialect).
		From(partitionTable).
		Where(qb.Eq("blob_key", key)).
		ToSQL()
	if err != nil {
		return nil, false, fmt.Errorf("build get partition blob query: %w", err)
	}

	var payload []byte
	err = s.db.GetContext(ctx, &payload, query, args...)
	if err != nil && s.dialect == qb.Postgres && (isBindParameterMismatch(err) || isUnnamedPreparedStatementMissing(err)) {
		// pgbouncer in transaction mode can drop the unnamed statement; retry unprepared.
		err = s.db.GetContext(ctx, &payload, "SELECT payload FROM "+partitionTable+" WHERE blob_key = "+quoteLiteral(key))
	}
	if err != nil {
		if isNotFound(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get partition blob key=%s: %w", key, err)
	}
	if payload == nil {
		payload = []byte{}
	}
	return payload, true, nil
}

type partitionBlobInsertModel struct {
	Key       string    `db:"blob_key"`
	Payload   []byte    `db:"payload"`
	UpdatedAt time.Time `db:"updated_at"`
}
