package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditRepo appends bot events to the audit trail. A nil pool turns every
// write into a no-op so the bot keeps running without postgres.
type AuditRepo struct {
	pool *pgxpool.Pool
}

type AuditRecord struct {
	Name       string
	UserID     int64
	OccurredAt time.Time
	Details    map[string]any
}

func NewAuditRepo(pool *pgxpool.Pool) *AuditRepo {
	return &AuditRepo{pool: pool}
}

func (r *AuditRepo) Insert(ctx context.Context, record AuditRecord) error {
	if r.pool == nil {
		return nil
	}

	details, err := json.Marshal(record.Details)
	if err != nil {
		return fmt.Errorf("marshal audit details: %w", err)
	}

	var uid any
	if record.UserID > 0 {
		uid = record.UserID
	}

	occurredAt := record.OccurredAt.UTC()
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	const query = `
INSERT INTO bot_audit_log (
	id,
	user_id,
	name,
	details,
	occurred_at,
	created_at
) VALUES (
	$1,
	$2,
	$3,
	$4::jsonb,
	$5,
	NOW()
)
`

	if _, err := r.pool.Exec(ctx, query, uuid.NewString(), uid, record.Name, string(details), occurredAt); err != nil {
		return fmt.Errorf("insert audit record %q: %w", record.Name, err)
	}

	return nil
}
