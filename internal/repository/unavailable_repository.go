package repository

import (
	"context"
	"fmt"
)

// UnavailableRepository журнал-заглушка: бот работает без сохранения заявок
type UnavailableRepository struct {
	reason string
}

// NewUnavailableRepository создаёт заглушку с причиной недоступности
func NewUnavailableRepository(reason string) *UnavailableRepository {
	return &UnavailableRepository{reason: reason}
}

func (r *UnavailableRepository) Append(ctx context.Context, row []string) error {
	return fmt.Errorf("%w: %s", ErrStoreUnavailable, r.reason)
}

func (r *UnavailableRepository) ListRows(ctx context.Context) ([][]string, error) {
	return nil, fmt.Errorf("%w: %s", ErrStoreUnavailable, r.reason)
}
