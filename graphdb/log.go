package graphdb

import (
	"context"
	"fmt"
)

// QueryLog is one answered (or refused) question in the audit log.
type QueryLog struct {
	Question string
	Query    string
	Answer   string
	Retries  int
	RowCount int
}

// LogQuery appends one entry to the question audit log. Logging is
// best-effort from the caller's perspective but still reports its error
// so callers can decide to warn.
func (s *Store) LogQuery(ctx context.Context, entry QueryLog) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO query_log (question, query, answer, retries, row_count)
		VALUES (?, ?, ?, ?, ?)`,
		entry.Question, entry.Query, entry.Answer, entry.Retries, entry.RowCount)
	if err != nil {
		return fmt.Errorf("writing query log: %w", err)
	}
	return nil
}
