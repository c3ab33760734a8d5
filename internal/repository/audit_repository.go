package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/nmt-console/internal/domain"
)

// AuditRepository stores session audit entries.
type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditEntry) error
	ListByUser(ctx context.Context, userID string, limit int) ([]domain.AuditEntry, error)
}

type auditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository builds repository.
func NewAuditRepository(pool *pgxpool.Pool) AuditRepository {
	return &auditRepository{pool: pool}
}

func (r *auditRepository) Create(ctx context.Context, entry *domain.AuditEntry) error {
	const query = `
        INSERT INTO console_audit (id, action, user_id, username, role, remote_addr, detail, occurred_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`
	_, err := r.pool.Exec(ctx, query,
		entry.ID,
		entry.Action,
		entry.UserID,
		entry.Username,
		entry.Role,
		entry.RemoteAddr,
		entry.Detail,
		entry.OccurredAt,
	)
	return err
}

func (r *auditRepository) ListByUser(ctx context.Context, userID string, limit int) ([]domain.AuditEntry, error) {
	const query = `
        SELECT id::text, action, user_id, username, role, remote_addr, detail, occurred_at
        FROM console_audit WHERE ($1 = '' OR user_id=$1)
        ORDER BY occurred_at DESC LIMIT $2`
	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.AuditEntry
	for rows.Next() {
		var entry domain.AuditEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.Action,
			&entry.UserID,
			&entry.Username,
			&entry.Role,
			&entry.RemoteAddr,
			&entry.Detail,
			&entry.OccurredAt,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
