package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/egorkkov/tutor_booking/internal/ledger"
	"github.com/egorkkov/tutor_booking/internal/model"
)

// In-memory реализации хранилищ для тестов сервисов

type fakeSlotStore struct {
	mu     sync.Mutex
	nextID int64
	slots  []*model.Slot

	transitionErr error
}

func newFakeSlotStore() *fakeSlotStore {
	return &fakeSlotStore{}
}

func (f *fakeSlotStore) add(teacherID int64, day, timeLabel string, status model.SlotStatus) *model.Slot {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	slot := &model.Slot{
		ID:        f.nextID,
		TeacherID: teacherID,
		Day:       day,
		Time:      timeLabel,
		Status:    status,
	}
	f.slots = append(f.slots, slot)
	return slot
}

func (f *fakeSlotStore) FindByTeacherDayTime(ctx context.Context, teacherID int64, day, timeLabel string) (*model.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, s := range f.slots {
		if s.TeacherID == teacherID && s.Day == day && s.Time == timeLabel {
			copied := *s
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeSlotStore) ListFreeByTeacher(ctx context.Context, teacherID int64) ([]*model.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*model.Slot
	for _, s := range f.slots {
		if s.TeacherID == teacherID && s.Status == model.SlotStatusFree {
			copied := *s
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeSlotStore) ListByTeacher(ctx context.Context, teacherID int64) ([]*model.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*model.Slot
	for _, s := range f.slots {
		if s.TeacherID == teacherID {
			copied := *s
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeSlotStore) SnapshotAll(ctx context.Context) ([]*model.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]*model.Slot, 0, len(f.slots))
	for _, s := range f.slots {
		copied := *s
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeSlotStore) TransitionToBooked(ctx context.Context, slotID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.transitionErr != nil {
		return f.transitionErr
	}

	for _, s := range f.slots {
		if s.ID != slotID {
			continue
		}
		if s.Status != model.SlotStatusFree {
			return model.ErrAlreadyBooked
		}
		s.Status = model.SlotStatusBooked
		return nil
	}
	return model.ErrNotFound
}

func (f *fakeSlotStore) Release(ctx context.Context, slotID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, s := range f.slots {
		if s.ID != slotID {
			continue
		}
		if s.Status != model.SlotStatusBooked {
			return model.ErrNotFound
		}
		s.Status = model.SlotStatusFree
		return nil
	}
	return model.ErrNotFound
}

type fakeBookingStore struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*model.Booking

	createErr error
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{bookings: map[uuid.UUID]*model.Booking{}}
}

func (f *fakeBookingStore) Create(ctx context.Context, booking *model.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return f.createErr
	}

	// как UNIQUE(slot_id) в таблице bookings
	for _, b := range f.bookings {
		if b.SlotID == booking.SlotID {
			return fmt.Errorf("booking for slot %d already exists", booking.SlotID)
		}
	}

	copied := *booking
	f.bookings[booking.ID] = &copied
	return nil
}

func (f *fakeBookingStore) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.bookings[id]; !ok {
		return model.ErrNotFound
	}
	delete(f.bookings, id)
	return nil
}

func (f *fakeBookingStore) DeleteBySlotID(ctx context.Context, slotID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for id, b := range f.bookings {
		if b.SlotID == slotID {
			delete(f.bookings, id)
		}
	}
	return nil
}

func (f *fakeBookingStore) len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.bookings)
}

type fakeBookingLog struct {
	mu      sync.Mutex
	entries []ledger.Entry

	appendErr error
}

func newFakeBookingLog() *fakeBookingLog {
	return &fakeBookingLog{}
}

func (f *fakeBookingLog) Append(entry ledger.Entry) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.appendErr != nil {
		return f.appendErr
	}
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeBookingLog) HasSlot(slotID int64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, e := range f.entries {
		if e.SlotID == slotID {
			return true
		}
	}
	return false
}

func (f *fakeBookingLog) all() []ledger.Entry {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]ledger.Entry, len(f.entries))
	copy(out, f.entries)
	return out
}

type mirrorKey struct {
	teacherID int64
	day       string
	timeLabel string
}

type fakeMirror struct {
	mu      sync.Mutex
	entries map[mirrorKey]bool

	refreshErr error
	rebuilds   int
}

func newFakeMirror() *fakeMirror {
	return &fakeMirror{entries: map[mirrorKey]bool{}}
}

func (f *fakeMirror) Refresh(teacherID int64, day, timeLabel string, free bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.refreshErr != nil {
		return f.refreshErr
	}
	f.entries[mirrorKey{teacherID, day, timeLabel}] = free
	return nil
}

func (f *fakeMirror) RebuildFrom(slots []*model.Slot) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.rebuilds++
	f.entries = map[mirrorKey]bool{}
	for _, s := range slots {
		f.entries[mirrorKey{s.TeacherID, s.Day, s.Time}] = s.Status == model.SlotStatusFree
	}
	return nil
}

func (f *fakeMirror) get(teacherID int64, day, timeLabel string) (bool, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	free, ok := f.entries[mirrorKey{teacherID, day, timeLabel}]
	return free, ok
}

type fakeTeacherCatalog struct {
	teachers []*model.Teacher
}

func (f *fakeTeacherCatalog) Exists(ctx context.Context, id int64) (bool, error) {
	for _, t := range f.teachers {
		if t.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTeacherCatalog) GetByID(ctx context.Context, id int64) (*model.Teacher, error) {
	for _, t := range f.teachers {
		if t.ID == id {
			copied := *t
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeTeacherCatalog) ListByRating(ctx context.Context) ([]*model.Teacher, error) {
	out := make([]*model.Teacher, len(f.teachers))
	copy(out, f.teachers)
	sortTeachersByRating(out)
	return out, nil
}

func (f *fakeTeacherCatalog) ListByIDs(ctx context.Context, ids []int64) ([]*model.Teacher, error) {
	want := map[int64]struct{}{}
	for _, id := range ids {
		want[id] = struct{}{}
	}

	var out []*model.Teacher
	for _, t := range f.teachers {
		if _, ok := want[t.ID]; ok {
			out = append(out, t)
		}
	}
	sortTeachersByRating(out)
	return out, nil
}

func sortTeachersByRating(teachers []*model.Teacher) {
	for i := 1; i < len(teachers); i++ {
		for j := i; j > 0 && teachers[j-1].Rating < teachers[j].Rating; j-- {
			teachers[j-1], teachers[j] = teachers[j], teachers[j-1]
		}
	}
}

type fakeGoalStore struct {
	goals []*model.Goal
}

func (f *fakeGoalStore) ListAll(ctx context.Context) ([]*model.Goal, error) {
	return f.goals, nil
}

func (f *fakeGoalStore) ListLabelsByTeacher(ctx context.Context, teacherID int64) ([]string, error) {
	var labels []string
	for _, g := range f.goals {
		if g.Owner.Kind == model.GoalOwnerTeacher && g.Owner.TeacherID == teacherID {
			labels = append(labels, g.Label)
		}
	}
	return labels, nil
}

type fakeRequestStore struct {
	mu       sync.Mutex
	requests []*model.SearchRequest
	goals    []*model.Goal

	createErr error
}

func (f *fakeRequestStore) Create(ctx context.Context, request *model.SearchRequest, goal *model.Goal) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return f.createErr
	}

	f.requests = append(f.requests, request)
	f.goals = append(f.goals, goal)
	return nil
}
