package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/egorkkov/tutor_booking/internal/model"
	"github.com/egorkkov/tutor_booking/internal/repository/base"
)

type GoalRepository struct {
	*base.Repository
}

func NewGoalRepository(pool *pgxpool.Pool) *GoalRepository {
	return &GoalRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт цель. Владелец строго один: преподаватель либо заявка,
// CHECK в БД дублирует это правило.
func (r *GoalRepository) Create(ctx context.Context, goal *model.Goal) error {
	var teacherID *int64
	var requestID *uuid.UUID

	switch goal.Owner.Kind {
	case model.GoalOwnerTeacher:
		teacherID = &goal.Owner.TeacherID
	case model.GoalOwnerSearchRequest:
		requestID = &goal.Owner.RequestID
	default:
		return fmt.Errorf("goal owner kind %q: %w", goal.Owner.Kind, model.ErrInvalidInput)
	}

	query := `
		INSERT INTO goals (label, teacher_id, search_request_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.QueryRow(ctx, query, goal.Label, teacherID, requestID).
		Scan(&goal.ID, &goal.CreatedAt)
	if err != nil {
		return fmt.Errorf("create goal: %w", err)
	}

	return nil
}

// ListAll получает все цели в порядке создания — сырьё для проекций индекса
func (r *GoalRepository) ListAll(ctx context.Context) ([]*model.Goal, error) {
	query := `
		SELECT id, label, teacher_id, search_request_id, created_at
		FROM goals
		ORDER BY id
	`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	var goals []*model.Goal
	for rows.Next() {
		var goal model.Goal
		var teacherID *int64
		var requestID *uuid.UUID

		err := rows.Scan(&goal.ID, &goal.Label, &teacherID, &requestID, &goal.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}

		switch {
		case teacherID != nil:
			goal.Owner = model.TeacherRef(*teacherID)
		case requestID != nil:
			goal.Owner = model.SearchRequestRef(*requestID)
		}

		goals = append(goals, &goal)
	}

	return goals, nil
}

// ListLabelsByTeacher получает метки целей преподавателя в порядке создания
func (r *GoalRepository) ListLabelsByTeacher(ctx context.Context, teacherID int64) ([]string, error) {
	query := `
		SELECT label
		FROM goals
		WHERE teacher_id = $1
		ORDER BY id
	`

	rows, err := r.Query(ctx, query, teacherID)
	if err != nil {
		return nil, fmt.Errorf("list goal labels by teacher: %w", err)
	}
	defer rows.Close()

	var labels []string
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, fmt.Errorf("scan goal label: %w", err)
		}
		labels = append(labels, label)
	}

	return labels, nil
}
