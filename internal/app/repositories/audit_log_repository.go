package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/internlink/internlink/internal/app/models"
	"github.com/internlink/internlink/internal/db"
)

// AuditLogRepository handles the append-only audit log
type AuditLogRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewAuditLogRepository creates a new AuditLogRepository
func NewAuditLogRepository(db db.Querier) *AuditLogRepository {
	return &AuditLogRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create appends one audit entry
func (r *AuditLogRepository) Create(ctx context.Context, entry *models.AuditLogEntry) error {
	oldValues, err := marshalValues(entry.OldValues)
	if err != nil {
		return err
	}
	newValues, err := marshalValues(entry.NewValues)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO audit_logs (admin_id, action_type, target_type, target_id, old_values, new_values, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`

	err = r.db.QueryRow(ctx, query,
		entry.AdminID, entry.ActionType, entry.TargetType, entry.TargetID, oldValues, newValues,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating audit log entry: %w", err)
	}

	return nil
}

func marshalValues(values map[string]interface{}) ([]byte, error) {
	if values == nil {
		return nil, nil
	}
	data, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("error encoding audit values: %w", err)
	}
	return data, nil
}

// GetAll retrieves audit entries newest first, optionally narrowed to one
// admin or action type, with the total row count for pagination
func (r *AuditLogRepository) GetAll(ctx context.Context, adminID *int64, actionType *string, page, pageSize int) ([]*models.AuditLogEntry, int64, error) {
	query := r.sb.Select("id", "admin_id", "action_type", "target_type", "target_id",
		"old_values", "new_values", "created_at").
		Column("COUNT(*) OVER()").
		From("audit_logs")

	if adminID != nil {
		query = query.Where(squirrel.Eq{"admin_id": *adminID})
	}
	if actionType != nil && *actionType != "" {
		query = query.Where(squirrel.Eq{"action_type": *actionType})
	}

	offset := (page - 1) * pageSize
	query = query.OrderBy("created_at DESC").
		Limit(uint64(pageSize)).
		Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var entries []*models.AuditLogEntry
	var total int64
	for rows.Next() {
		var entry models.AuditLogEntry
		var oldValues, newValues []byte
		err := rows.Scan(
			&entry.ID, &entry.AdminID, &entry.ActionType, &entry.TargetType,
			&entry.TargetID, &oldValues, &newValues, &entry.CreatedAt, &total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		if len(oldValues) > 0 {
			if err := json.Unmarshal(oldValues, &entry.OldValues); err != nil {
				return nil, 0, fmt.Errorf("error decoding audit values: %w", err)
			}
		}
		if len(newValues) > 0 {
			if err := json.Unmarshal(newValues, &entry.NewValues); err != nil {
				return nil, 0, fmt.Errorf("error decoding audit values: %w", err)
			}
		}
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	return entries, total, nil
}
