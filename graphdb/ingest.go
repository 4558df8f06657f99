package graphdb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// CreatedBy tags every row this package writes, so rows from other tools
// sharing the database can be told apart.
const CreatedBy = "gcnkit"

// Record is the persisted extraction layout consumed by ingestion.
type Record struct {
	RawText string         `json:"raw_text"`
	Fields  map[string]any `json:"extracted_dset"`
}

// Statement is one parameterised write in an ingestion plan.
type Statement struct {
	Text   string
	Params map[string]any
}

// AuthorRef is one author entry in a record's authorship field.
type AuthorRef struct {
	Name        string
	Affiliation string
}

func stringField(fields map[string]any, key string) string {
	v, ok := fields[key]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

// authorRefs normalises the authors field, which arrives either as typed
// entries or as the generic maps json.Unmarshal produces.
func authorRefs(fields map[string]any) []AuthorRef {
	raw, ok := fields["authors"].([]any)
	if !ok {
		return nil
	}
	var refs []AuthorRef
	for _, entry := range raw {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		name, _ := m["author"].(string)
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		aff, _ := m["affiliation"].(string)
		refs = append(refs, AuthorRef{Name: name, Affiliation: strings.TrimSpace(aff)})
	}
	return refs
}

// PlanIngest turns one extraction record into the ordered writes that
// graft it onto the graph: the circular node, then author and
// collaboration nodes, then the edges between them. Node inserts use
// INSERT OR IGNORE so re-ingesting shared authors or collaborations is
// harmless. A record without a circular identifier cannot be grafted and
// is rejected.
func PlanIngest(rec Record, batchID string, now time.Time) ([]Statement, error) {
	circularID := stringField(rec.Fields, "circularId")
	if circularID == "" {
		return nil, fmt.Errorf("graphdb: record has no circularId")
	}

	prov := map[string]any{
		"create_by":  CreatedBy,
		"created_at": now.UTC().Format(time.RFC3339),
		"batch_id":   batchID,
	}
	withProv := func(params map[string]any) map[string]any {
		for k, v := range prov {
			params[k] = v
		}
		return params
	}

	plan := []Statement{{
		Text: `INSERT OR REPLACE INTO circulars
			(circular_id, subject, created_on, submitter, email, intent, raw_text, create_by, created_at, batch_id)
			VALUES (:circular_id, :subject, :created_on, :submitter, :email, :intent, :raw_text, :create_by, :created_at, :batch_id)`,
		Params: withProv(map[string]any{
			"circular_id": circularID,
			"subject":     stringField(rec.Fields, "subject"),
			"created_on":  stringField(rec.Fields, "createdOn"),
			"submitter":   stringField(rec.Fields, "submitter"),
			"email":       stringField(rec.Fields, "email"),
			"intent":      stringField(rec.Fields, "intent"),
			"raw_text":    rec.RawText,
		}),
	}}

	// The authorship extractor reports "null" when no collaboration was
	// named; that sentinel means no collaboration node.
	collaboration := stringField(rec.Fields, "collaboration")
	hasCollab := collaboration != "" && collaboration != "null"
	if hasCollab {
		plan = append(plan,
			Statement{
				Text: `INSERT OR IGNORE INTO collaborations (name, create_by, created_at, batch_id)
					VALUES (:name, :create_by, :created_at, :batch_id)`,
				Params: withProv(map[string]any{"name": collaboration}),
			},
			Statement{
				Text: `INSERT OR IGNORE INTO reported_by (circular_id, collaboration_id, create_by, created_at, batch_id)
					SELECT :circular_id, id, :create_by, :created_at, :batch_id
					FROM collaborations WHERE name = :name`,
				Params: withProv(map[string]any{
					"circular_id": circularID,
					"name":        collaboration,
				}),
			},
		)
	}

	for _, ref := range authorRefs(rec.Fields) {
		plan = append(plan,
			Statement{
				Text: `INSERT OR IGNORE INTO authors (name, affiliation, create_by, created_at, batch_id)
					VALUES (:name, :affiliation, :create_by, :created_at, :batch_id)`,
				Params: withProv(map[string]any{
					"name":        ref.Name,
					"affiliation": ref.Affiliation,
				}),
			},
			Statement{
				Text: `INSERT OR IGNORE INTO authored (author_id, circular_id, create_by, created_at, batch_id)
					SELECT id, :circular_id, :create_by, :created_at, :batch_id
					FROM authors WHERE name = :name AND affiliation = :affiliation`,
				Params: withProv(map[string]any{
					"circular_id": circularID,
					"name":        ref.Name,
					"affiliation": ref.Affiliation,
				}),
			},
		)
		if hasCollab {
			plan = append(plan, Statement{
				Text: `INSERT OR IGNORE INTO member_of (author_id, collaboration_id, create_by, created_at, batch_id)
					SELECT a.id, c.id, :create_by, :created_at, :batch_id
					FROM authors a, collaborations c
					WHERE a.name = :name AND a.affiliation = :affiliation AND c.name = :collab`,
				Params: withProv(map[string]any{
					"name":        ref.Name,
					"affiliation": ref.Affiliation,
					"collab":      collaboration,
				}),
			})
		}
	}
	return plan, nil
}

// Ingest plans and executes one record in a single transaction. Either
// every node and edge lands or none do.
func (s *Store) Ingest(ctx context.Context, rec Record, batchID string) error {
	plan, err := PlanIngest(rec, batchID, time.Now())
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range plan {
		args := make([]any, 0, len(stmt.Params))
		for name, value := range stmt.Params {
			args = append(args, sql.Named(name, value))
		}
		if _, err := tx.ExecContext(ctx, stmt.Text, args...); err != nil {
			return fmt.Errorf("executing ingest statement: %w", err)
		}
	}
	return tx.Commit()
}
