package graphdb

import (
	"context"
	"fmt"
)

// purgeTables lists edge tables before node tables so foreign keys never
// block a delete mid-purge.
var purgeTables = []string{
	"authored",
	"member_of",
	"reported_by",
	"authors",
	"collaborations",
	"circulars",
}

// PurgeBatch removes every node and edge written by one ingestion batch.
func (s *Store) PurgeBatch(ctx context.Context, batchID string) (int64, error) {
	return s.purge(ctx, "batch_id = ?", batchID)
}

// PurgeCreated removes every node and edge carrying the given creator
// tag, across all batches.
func (s *Store) PurgeCreated(ctx context.Context, createBy string) (int64, error) {
	return s.purge(ctx, "create_by = ?", createBy)
}

func (s *Store) purge(ctx context.Context, where string, arg any) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var total int64
	for _, table := range purgeTables {
		res, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE %s", table, where), arg)
		if err != nil {
			return 0, fmt.Errorf("purging %s: %w", table, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("counting purged rows in %s: %w", table, err)
		}
		total += n
	}
	return total, tx.Commit()
}
