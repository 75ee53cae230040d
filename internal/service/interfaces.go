package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/egorkkov/tutor_booking/internal/ledger"
	"github.com/egorkkov/tutor_booking/internal/model"
)

// TeacherCatalog — read-mostly реестр преподавателей
type TeacherCatalog interface {
	Exists(ctx context.Context, id int64) (bool, error)
	GetByID(ctx context.Context, id int64) (*model.Teacher, error)
	ListByRating(ctx context.Context) ([]*model.Teacher, error)
	ListByIDs(ctx context.Context, ids []int64) ([]*model.Teacher, error)
}

// TimetableStore владеет слотами и их статусом.
// TransitionToBooked — единственный мутатор free→booked.
type TimetableStore interface {
	FindByTeacherDayTime(ctx context.Context, teacherID int64, day, timeLabel string) (*model.Slot, error)
	ListFreeByTeacher(ctx context.Context, teacherID int64) ([]*model.Slot, error)
	ListByTeacher(ctx context.Context, teacherID int64) ([]*model.Slot, error)
	SnapshotAll(ctx context.Context) ([]*model.Slot, error)
	TransitionToBooked(ctx context.Context, slotID int64) error
	Release(ctx context.Context, slotID int64) error
}

// GoalStore отдаёт строки целей для проекций индекса
type GoalStore interface {
	ListAll(ctx context.Context) ([]*model.Goal, error)
	ListLabelsByTeacher(ctx context.Context, teacherID int64) ([]string, error)
}

// BookingStore — каталожная сторона бронирований
type BookingStore interface {
	Create(ctx context.Context, booking *model.Booking) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteBySlotID(ctx context.Context, slotID int64) error
}

// BookingLog — журнал бронирований, система записи
type BookingLog interface {
	Append(entry ledger.Entry) error
	HasSlot(slotID int64) bool
}

// AvailabilityMirror — производный снимок доступности
type AvailabilityMirror interface {
	Refresh(teacherID int64, day, timeLabel string, free bool) error
	RebuildFrom(slots []*model.Slot) error
}

// SearchRequestStore — очередь заявок на подбор
type SearchRequestStore interface {
	Create(ctx context.Context, request *model.SearchRequest, goal *model.Goal) error
}
