package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/egorkkov/tutor_booking/internal/model"
)

// CatalogService — чтения каталога: преподаватели, свободные слоты
// и проекции индекса целей. Проекции пересчитываются на каждый вызов,
// инкрементального сопровождения индекса нет.
type CatalogService struct {
	teachers TeacherCatalog
	slots    TimetableStore
	goals    GoalStore
	logger   *zap.Logger
}

func NewCatalogService(teachers TeacherCatalog, slots TimetableStore, goals GoalStore, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		teachers: teachers,
		slots:    slots,
		goals:    goals,
		logger:   logger,
	}
}

// ListTeachers получает всех преподавателей по убыванию рейтинга
func (s *CatalogService) ListTeachers(ctx context.Context) ([]*model.Teacher, error) {
	return s.teachers.ListByRating(ctx)
}

// GetTeacher получает профиль преподавателя с целями и свободными слотами
func (s *CatalogService) GetTeacher(ctx context.Context, id int64) (*model.Teacher, error) {
	teacher, err := s.teachers.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get teacher: %w", err)
	}
	if teacher == nil {
		return nil, fmt.Errorf("teacher %d: %w", id, model.ErrNotFound)
	}

	labels, err := s.goals.ListLabelsByTeacher(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list teacher goals: %w", err)
	}
	teacher.Goals = labels

	slots, err := s.slots.ListFreeByTeacher(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list teacher slots: %w", err)
	}
	teacher.Slots = slots

	return teacher, nil
}

// ListFreeSlots получает свободные слоты преподавателя в порядке создания
func (s *CatalogService) ListFreeSlots(ctx context.Context, teacherID int64) ([]*model.Slot, error) {
	exists, err := s.teachers.Exists(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("check teacher: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("teacher %d: %w", teacherID, model.ErrNotFound)
	}

	return s.slots.ListFreeByTeacher(ctx, teacherID)
}

// TeacherTimetable получает все слоты преподавателя, включая занятые
func (s *CatalogService) TeacherTimetable(ctx context.Context, teacherID int64) ([]*model.Slot, error) {
	exists, err := s.teachers.Exists(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("check teacher: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("teacher %d: %w", teacherID, model.ErrNotFound)
	}

	return s.slots.ListByTeacher(ctx, teacherID)
}

// ListGoals получает различные метки целей в порядке первого появления.
// Дедупликация — строгое равенство строк: метки, отличающиеся только
// декоративным глифом ("✈ Travel" и "Travel"), сознательно остаются разными.
func (s *CatalogService) ListGoals(ctx context.Context, limit int) ([]string, error) {
	goals, err := s.goals.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}

	seen := make(map[string]struct{}, len(goals))
	var labels []string
	for _, goal := range goals {
		if _, ok := seen[goal.Label]; ok {
			continue
		}
		seen[goal.Label] = struct{}{}
		labels = append(labels, goal.Label)

		if limit > 0 && len(labels) == limit {
			break
		}
	}

	return labels, nil
}

// TeachersByGoal получает преподавателей с целью label, по убыванию рейтинга
func (s *CatalogService) TeachersByGoal(ctx context.Context, label string) ([]*model.Teacher, error) {
	goals, err := s.goals.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}

	seen := map[int64]struct{}{}
	var ids []int64
	for _, goal := range goals {
		if goal.Label != label || goal.Owner.Kind != model.GoalOwnerTeacher {
			continue
		}
		if _, ok := seen[goal.Owner.TeacherID]; ok {
			continue
		}
		seen[goal.Owner.TeacherID] = struct{}{}
		ids = append(ids, goal.Owner.TeacherID)
	}

	return s.teachers.ListByIDs(ctx, ids)
}
