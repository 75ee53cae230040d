package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/egorkkov/tutor_booking/internal/ledger"
	"github.com/egorkkov/tutor_booking/internal/model"
)

// BookingService оркестрирует одно бронирование: проверка, перевод слота,
// запись в журнал, обновление зеркала — строго в этом порядке.
type BookingService struct {
	slots    TimetableStore
	bookings BookingStore
	log      BookingLog
	mirror   AvailabilityMirror
	logger   *zap.Logger

	// одна запись в пару (хранилище, зеркало) за раз;
	// чтения идут мимо мьютекса
	mu sync.Mutex
}

func NewBookingService(
	slots TimetableStore,
	bookings BookingStore,
	log BookingLog,
	mirror AvailabilityMirror,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		slots:    slots,
		bookings: bookings,
		log:      log,
		mirror:   mirror,
		logger:   logger,
	}
}

type BookSlotInput struct {
	TeacherID   int64
	Day         string
	Time        string
	ClientName  string
	ClientPhone string
}

// Book бронирует слот преподавателя на пробное занятие.
// Возврат ID означает, что запись зафиксирована в журнале. Повторный вызов
// на занятый слот всегда возвращает model.ErrAlreadyBooked, второй записи
// в журнале не появляется.
func (s *BookingService) Book(ctx context.Context, in BookSlotInput) (uuid.UUID, error) {
	if in.ClientName == "" || in.ClientPhone == "" {
		return uuid.Nil, fmt.Errorf("client name and phone are required: %w", model.ErrInvalidInput)
	}
	if !model.IsValidWeekDay(in.Day) {
		return uuid.Nil, fmt.Errorf("unknown day %q: %w", in.Day, model.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	slot, err := s.slots.FindByTeacherDayTime(ctx, in.TeacherID, in.Day, in.Time)
	if err != nil {
		return uuid.Nil, fmt.Errorf("resolve slot: %w", err)
	}
	if slot == nil {
		return uuid.Nil, fmt.Errorf("slot %s %s of teacher %d: %w", in.Day, in.Time, in.TeacherID, model.ErrNotFound)
	}

	// Единственная точка перехода free→booked. AlreadyBooked уходит
	// наверх как есть: без повтора, без тихого успеха.
	if err := s.slots.TransitionToBooked(ctx, slot.ID); err != nil {
		return uuid.Nil, err
	}

	booking := &model.Booking{
		ID:          uuid.New(),
		SlotID:      slot.ID,
		ClientName:  in.ClientName,
		ClientPhone: in.ClientPhone,
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		s.compensate(ctx, booking, false)
		return uuid.Nil, fmt.Errorf("%w: store booking: %v", model.ErrPersistence, err)
	}

	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now().UTC()
	}

	entry := ledger.Entry{
		BookingID:   booking.ID,
		TeacherID:   in.TeacherID,
		SlotID:      slot.ID,
		Day:         in.Day,
		Time:        in.Time,
		ClientName:  in.ClientName,
		ClientPhone: in.ClientPhone,
		BookedAt:    booking.CreatedAt,
	}

	// Точка фиксации. Если журнал не записался — переход слота
	// считается несостоявшимся и откатывается.
	if err := s.log.Append(entry); err != nil {
		s.compensate(ctx, booking, true)
		return uuid.Nil, fmt.Errorf("%w: append booking log: %v", model.ErrPersistence, err)
	}

	// Зеркало — производный кэш: сбой обновления не откатывает
	// бронирование, зеркало перестроят позже.
	if err := s.mirror.Refresh(in.TeacherID, in.Day, in.Time, false); err != nil {
		s.logger.Warn("Mirror refresh failed, mirror is stale until rebuild",
			zap.Int64("teacher_id", in.TeacherID),
			zap.Int64("slot_id", slot.ID),
			zap.Error(err),
		)
	}

	s.logger.Info("Slot booked",
		zap.String("booking_id", booking.ID.String()),
		zap.Int64("teacher_id", in.TeacherID),
		zap.Int64("slot_id", slot.ID),
		zap.String("day", in.Day),
		zap.String("time", in.Time),
	)

	return booking.ID, nil
}

// compensate возвращает хранилище в состояние до бронирования
func (s *BookingService) compensate(ctx context.Context, booking *model.Booking, dropRow bool) {
	if dropRow {
		if err := s.bookings.Delete(ctx, booking.ID); err != nil {
			s.logger.Error("Failed to delete booking row during compensation",
				zap.String("booking_id", booking.ID.String()),
				zap.Error(err),
			)
		}
	}
	if err := s.slots.Release(ctx, booking.SlotID); err != nil {
		s.logger.Error("Failed to release slot during compensation",
			zap.Int64("slot_id", booking.SlotID),
			zap.Error(err),
		)
	}
}

// Reconcile приводит пару (хранилище, зеркало) в согласие с журналом.
// Занятый слот без записи в журнале — след оборванного бронирования,
// его переход считается несостоявшимся и слот освобождается.
// Затем зеркало перестраивается из хранилища целиком.
func (s *BookingService) Reconcile(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	slots, err := s.slots.SnapshotAll(ctx)
	if err != nil {
		return fmt.Errorf("snapshot slots: %w", err)
	}

	for _, slot := range slots {
		if slot.Status != model.SlotStatusBooked {
			continue
		}
		if s.log.HasSlot(slot.ID) {
			continue
		}

		s.logger.Warn("Booked slot has no ledger entry, releasing",
			zap.Int64("slot_id", slot.ID),
			zap.Int64("teacher_id", slot.TeacherID),
		)

		// Обрыв мог случиться уже после записи строки bookings. Слот
		// держит уникальный индекс по slot_id, и осиротевшая строка
		// блокировала бы все будущие бронирования этого слота.
		if err := s.bookings.DeleteBySlotID(ctx, slot.ID); err != nil {
			return fmt.Errorf("delete orphan booking for slot %d: %w", slot.ID, err)
		}
		if err := s.slots.Release(ctx, slot.ID); err != nil {
			return fmt.Errorf("release orphan slot %d: %w", slot.ID, err)
		}
		slot.Status = model.SlotStatusFree
	}

	if err := s.mirror.RebuildFrom(slots); err != nil {
		return fmt.Errorf("rebuild mirror: %w", err)
	}

	s.logger.Info("Availability reconciled", zap.Int("slots", len(slots)))
	return nil
}
