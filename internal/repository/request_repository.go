package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/egorkkov/tutor_booking/internal/model"
	"github.com/egorkkov/tutor_booking/internal/repository/base"
)

// RequestRepository — очередь заявок на подбор. Только добавление,
// без дедупликации: повторные заявки сознательно принимаются как отдельные.
type RequestRepository struct {
	*base.Repository
}

func NewRequestRepository(pool *pgxpool.Pool) *RequestRepository {
	return &RequestRepository{Repository: base.NewRepository(pool)}
}

// Create сохраняет заявку вместе с её целью в одной транзакции
func (r *RequestRepository) Create(ctx context.Context, request *model.SearchRequest, goal *model.Goal) error {
	tx, err := r.Pool().Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO search_requests (id, hours_bucket, client_name, client_phone)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	err = tx.QueryRow(
		ctx, query,
		request.ID,
		request.HoursBucket,
		request.ClientName,
		request.ClientPhone,
	).Scan(&request.CreatedAt)
	if err != nil {
		return fmt.Errorf("create search request: %w", err)
	}

	goalQuery := `
		INSERT INTO goals (label, teacher_id, search_request_id)
		VALUES ($1, NULL, $2)
		RETURNING id, created_at
	`

	err = tx.QueryRow(ctx, goalQuery, goal.Label, request.ID).
		Scan(&goal.ID, &goal.CreatedAt)
	if err != nil {
		return fmt.Errorf("create request goal: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
