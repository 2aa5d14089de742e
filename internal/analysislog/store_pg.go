package analysislog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// PGStore implements Sink using Postgres.
type PGStore struct {
	DB *sql.DB
}

// Insert writes one analysis_logs row.
func (s *PGStore) Insert(ctx context.Context, rec Record) error {
	const query = `
INSERT INTO analysis_logs (
	query, documents, recommendation, tokens_actor, tokens_critic, tokens_total,
	provider, model, ip_address, user_agent, session_id, language, created_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	documents, err := json.Marshal(rec.Documents)
	if err != nil {
		return fmt.Errorf("marshal documents: %w", err)
	}
	userAgent, err := json.Marshal(rec.UserAgent)
	if err != nil {
		return fmt.Errorf("marshal user agent: %w", err)
	}

	_, err = s.DB.ExecContext(ctx, query,
		rec.Query,
		documents,
		rec.Recommendation,
		rec.TokensActor,
		rec.TokensCritic,
		rec.TokensTotal,
		rec.Provider,
		rec.Model,
		rec.IP,
		userAgent,
		rec.SessionID,
		rec.Language,
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert analysis log: %w", err)
	}
	return nil
}

var _ Sink = (*PGStore)(nil)
