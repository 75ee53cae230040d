package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/egorkkov/tutor_booking/internal/model"
	"github.com/egorkkov/tutor_booking/internal/repository/base"
)

// SlotRepository владеет слотами расписания и их статусом.
// TransitionToBooked — единственный мутатор статуса free→booked.
type SlotRepository struct {
	*base.Repository
}

func NewSlotRepository(pool *pgxpool.Pool) *SlotRepository {
	return &SlotRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт новый слот (импорт каталога или администрирование)
func (r *SlotRepository) Create(ctx context.Context, slot *model.Slot) error {
	query := `
		INSERT INTO slots (teacher_id, day, time_label, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.QueryRow(
		ctx, query,
		slot.TeacherID,
		slot.Day,
		slot.Time,
		slot.Status,
	).Scan(&slot.ID, &slot.CreatedAt)

	if err != nil {
		return fmt.Errorf("create slot: %w", err)
	}

	return nil
}

// GetByID получает слот по ID
func (r *SlotRepository) GetByID(ctx context.Context, id int64) (*model.Slot, error) {
	query := `
		SELECT id, teacher_id, day, time_label, status, created_at
		FROM slots
		WHERE id = $1
	`

	var slot model.Slot
	err := r.QueryRow(ctx, query, id).Scan(
		&slot.ID,
		&slot.TeacherID,
		&slot.Day,
		&slot.Time,
		&slot.Status,
		&slot.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get slot by id: %w", err)
	}

	return &slot, nil
}

// FindByTeacherDayTime находит слот преподавателя по меткам дня и времени
func (r *SlotRepository) FindByTeacherDayTime(ctx context.Context, teacherID int64, day, timeLabel string) (*model.Slot, error) {
	query := `
		SELECT id, teacher_id, day, time_label, status, created_at
		FROM slots
		WHERE teacher_id = $1 AND day = $2 AND time_label = $3
	`

	var slot model.Slot
	err := r.QueryRow(ctx, query, teacherID, day, timeLabel).Scan(
		&slot.ID,
		&slot.TeacherID,
		&slot.Day,
		&slot.Time,
		&slot.Status,
		&slot.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find slot: %w", err)
	}

	return &slot, nil
}

// ListFreeByTeacher получает свободные слоты преподавателя в порядке создания
func (r *SlotRepository) ListFreeByTeacher(ctx context.Context, teacherID int64) ([]*model.Slot, error) {
	query := `
		SELECT id, teacher_id, day, time_label, status, created_at
		FROM slots
		WHERE teacher_id = $1 AND status = 'free'
		ORDER BY id
	`

	rows, err := r.Query(ctx, query, teacherID)
	if err != nil {
		return nil, fmt.Errorf("list free slots: %w", err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// ListByTeacher получает все слоты преподавателя в порядке создания
func (r *SlotRepository) ListByTeacher(ctx context.Context, teacherID int64) ([]*model.Slot, error) {
	query := `
		SELECT id, teacher_id, day, time_label, status, created_at
		FROM slots
		WHERE teacher_id = $1
		ORDER BY id
	`

	rows, err := r.Query(ctx, query, teacherID)
	if err != nil {
		return nil, fmt.Errorf("list slots by teacher: %w", err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// SnapshotAll получает все слоты каталога — источник для перестройки зеркала
func (r *SlotRepository) SnapshotAll(ctx context.Context) ([]*model.Slot, error) {
	query := `
		SELECT id, teacher_id, day, time_label, status, created_at
		FROM slots
		ORDER BY teacher_id, id
	`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("snapshot slots: %w", err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// TransitionToBooked переводит слот free→booked.
// Возвращает model.ErrAlreadyBooked если слот занят и model.ErrNotFound
// если слота нет. Единственная точка истины о статусе слота.
func (r *SlotRepository) TransitionToBooked(ctx context.Context, slotID int64) error {
	query := `
		UPDATE slots
		SET status = 'booked'
		WHERE id = $1 AND status = 'free'
	`

	affected, err := r.ExecAffected(ctx, query, slotID)
	if err != nil {
		return fmt.Errorf("transition slot to booked: %w", err)
	}

	if affected == 0 {
		// Различаем "занят" и "не существует"
		exists := false
		err := r.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM slots WHERE id = $1)`, slotID).Scan(&exists)
		if err != nil {
			return fmt.Errorf("check slot exists: %w", err)
		}
		if exists {
			return model.ErrAlreadyBooked
		}
		return model.ErrNotFound
	}

	return nil
}

// Release возвращает слот booked→free. Только компенсация несостоявшейся
// записи в журнал, обычный путь бронирования его не вызывает.
func (r *SlotRepository) Release(ctx context.Context, slotID int64) error {
	query := `
		UPDATE slots
		SET status = 'free'
		WHERE id = $1 AND status = 'booked'
	`

	affected, err := r.ExecAffected(ctx, query, slotID)
	if err != nil {
		return fmt.Errorf("release slot: %w", err)
	}

	if affected == 0 {
		return model.ErrNotFound
	}

	return nil
}

func scanSlots(rows pgx.Rows) ([]*model.Slot, error) {
	var slots []*model.Slot
	for rows.Next() {
		var slot model.Slot
		err := rows.Scan(
			&slot.ID,
			&slot.TeacherID,
			&slot.Day,
			&slot.Time,
			&slot.Status,
			&slot.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		slots = append(slots, &slot)
	}

	return slots, nil
}
