package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/egorkkov/tutor_booking/internal/model"
	"github.com/egorkkov/tutor_booking/internal/repository/base"
)

type TeacherRepository struct {
	*base.Repository
}

func NewTeacherRepository(pool *pgxpool.Pool) *TeacherRepository {
	return &TeacherRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт нового преподавателя (используется только при импорте каталога)
func (r *TeacherRepository) Create(ctx context.Context, teacher *model.Teacher) error {
	query := `
		INSERT INTO teachers (name, about, rating, price, lesson_time)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.QueryRow(
		ctx, query,
		teacher.Name,
		teacher.About,
		teacher.Rating,
		teacher.Price,
		teacher.LessonTime,
	).Scan(&teacher.ID, &teacher.CreatedAt)

	if err != nil {
		return fmt.Errorf("create teacher: %w", err)
	}

	return nil
}

// GetByID получает преподавателя по ID
func (r *TeacherRepository) GetByID(ctx context.Context, id int64) (*model.Teacher, error) {
	query := `
		SELECT id, name, about, rating, price, lesson_time, created_at
		FROM teachers
		WHERE id = $1
	`

	var teacher model.Teacher
	err := r.QueryRow(ctx, query, id).Scan(
		&teacher.ID,
		&teacher.Name,
		&teacher.About,
		&teacher.Rating,
		&teacher.Price,
		&teacher.LessonTime,
		&teacher.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get teacher by id: %w", err)
	}

	return &teacher, nil
}

// Exists проверяет существование преподавателя
func (r *TeacherRepository) Exists(ctx context.Context, id int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM teachers WHERE id = $1)`

	var exists bool
	if err := r.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check teacher exists: %w", err)
	}

	return exists, nil
}

// ListByRating получает всех преподавателей, отсортированных по рейтингу
func (r *TeacherRepository) ListByRating(ctx context.Context) ([]*model.Teacher, error) {
	query := `
		SELECT id, name, about, rating, price, lesson_time, created_at
		FROM teachers
		ORDER BY rating DESC, id
	`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list teachers by rating: %w", err)
	}
	defer rows.Close()

	return scanTeachers(rows)
}

// ListByIDs получает преподавателей по списку ID, сортировка по рейтингу
func (r *TeacherRepository) ListByIDs(ctx context.Context, ids []int64) ([]*model.Teacher, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, name, about, rating, price, lesson_time, created_at
		FROM teachers
		WHERE id = ANY($1)
		ORDER BY rating DESC, id
	`

	rows, err := r.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("list teachers by ids: %w", err)
	}
	defer rows.Close()

	return scanTeachers(rows)
}

// Count возвращает количество преподавателей в каталоге
func (r *TeacherRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.QueryRow(ctx, `SELECT COUNT(*) FROM teachers`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count teachers: %w", err)
	}
	return count, nil
}

func scanTeachers(rows pgx.Rows) ([]*model.Teacher, error) {
	var teachers []*model.Teacher
	for rows.Next() {
		var teacher model.Teacher
		err := rows.Scan(
			&teacher.ID,
			&teacher.Name,
			&teacher.About,
			&teacher.Rating,
			&teacher.Price,
			&teacher.LessonTime,
			&teacher.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan teacher: %w", err)
		}
		teachers = append(teachers, &teacher)
	}

	return teachers, nil
}
