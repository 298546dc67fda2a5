package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/motomotoph/mc1lovecamerabot/internal/model"
)

// RequestRepository журнал заявок в PostgreSQL
type RequestRepository struct {
	pool *pgxpool.Pool
}

func NewRequestRepository(pool *pgxpool.Pool) *RequestRepository {
	return &RequestRepository{pool: pool}
}

// Append сохраняет строку заявки в порядке model.RecordColumns
func (r *RequestRepository) Append(ctx context.Context, row []string) error {
	if len(row) != len(model.RecordColumns) {
		return fmt.Errorf("%w: got %d, want %d", ErrRowWidth, len(row), len(model.RecordColumns))
	}

	query := `
		INSERT INTO booking_requests (
			application_number, created_at, requester_name, purpose_or_unit,
			equipment_list, schedule, requester_handle, requester_profile_link
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	args := make([]interface{}, len(row))
	for i, v := range row {
		args[i] = v
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert booking request: %w", err)
	}
	return nil
}

// ListRows возвращает все заявки в порядке добавления
func (r *RequestRepository) ListRows(ctx context.Context) ([][]string, error) {
	query := `
		SELECT application_number, created_at, requester_name, purpose_or_unit,
		       equipment_list, schedule, requester_handle, requester_profile_link
		FROM booking_requests
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query booking requests: %w", err)
	}
	defer rows.Close()

	var result [][]string
	for rows.Next() {
		row := make([]string, len(model.RecordColumns))
		dest := make([]interface{}, len(row))
		for i := range row {
			dest[i] = &row[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan booking request: %w", err)
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate booking requests: %w", err)
	}

	return result, nil
}
