package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/egorkkov/tutor_booking/internal/model"
	"github.com/egorkkov/tutor_booking/internal/repository/base"
)

// BookingRepository хранит каталожную сторону бронирований.
// Системой записи остаётся журнал (internal/ledger), эти строки нужны
// для обратных выборок "бронирование по слоту".
type BookingRepository struct {
	*base.Repository
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт запись о бронировании. ID выдаёт координатор.
func (r *BookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	query := `
		INSERT INTO bookings (id, slot_id, client_name, client_phone)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	err := r.QueryRow(
		ctx, query,
		booking.ID,
		booking.SlotID,
		booking.ClientName,
		booking.ClientPhone,
	).Scan(&booking.CreatedAt)

	if err != nil {
		return fmt.Errorf("create booking: %w", err)
	}

	return nil
}

// Delete удаляет запись о бронировании. Только компенсация несостоявшейся
// записи в журнал — подтверждённые бронирования неизменяемы.
func (r *BookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.ExecAffected(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}

	if affected == 0 {
		return model.ErrNotFound
	}

	return nil
}

// DeleteBySlotID удаляет запись бронирования слота, если она есть.
// Отсутствие записи не ошибка: сверка зовёт его для каждого слота
// без записи в журнале, строка есть не всегда.
func (r *BookingRepository) DeleteBySlotID(ctx context.Context, slotID int64) error {
	if _, err := r.ExecAffected(ctx, `DELETE FROM bookings WHERE slot_id = $1`, slotID); err != nil {
		return fmt.Errorf("delete booking by slot: %w", err)
	}
	return nil
}

// GetBySlotID получает бронирование по слоту (у слота максимум одно)
func (r *BookingRepository) GetBySlotID(ctx context.Context, slotID int64) (*model.Booking, error) {
	query := `
		SELECT id, slot_id, client_name, client_phone, created_at
		FROM bookings
		WHERE slot_id = $1
	`

	var booking model.Booking
	err := r.QueryRow(ctx, query, slotID).Scan(
		&booking.ID,
		&booking.SlotID,
		&booking.ClientName,
		&booking.ClientPhone,
		&booking.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking by slot: %w", err)
	}

	return &booking, nil
}
