package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/egorkkov/tutor_booking/internal/model"
)

func goalRows(labels ...string) []*model.Goal {
	goals := make([]*model.Goal, 0, len(labels))
	for i, label := range labels {
		goals = append(goals, &model.Goal{
			ID:    int64(i + 1),
			Label: label,
			Owner: model.TeacherRef(1),
		})
	}
	return goals
}

func TestCatalogService_ListGoals(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		labels []string
		limit  int
		want   []string
	}{
		{
			name:   "deduplicates by exact label equality",
			labels: []string{"Travel", "Travel", "Work"},
			want:   []string{"Travel", "Work"},
		},
		{
			name:   "glyph-prefixed label stays distinct",
			labels: []string{"✈ Travel", "Travel"},
			want:   []string{"✈ Travel", "Travel"},
		},
		{
			name:   "limit cuts the list",
			labels: []string{"Travel", "School", "Work", "Relocation"},
			limit:  2,
			want:   []string{"Travel", "School"},
		},
		{
			name:   "first-seen order is preserved",
			labels: []string{"Work", "Travel", "Work", "School"},
			want:   []string{"Work", "Travel", "School"},
		},
		{
			name:   "empty catalog yields nothing",
			labels: nil,
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewCatalogService(&fakeTeacherCatalog{}, newFakeSlotStore(), &fakeGoalStore{goals: goalRows(tt.labels...)}, zap.NewNop())

			got, err := svc.ListGoals(ctx, tt.limit)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCatalogService_TeachersByGoal(t *testing.T) {
	ctx := context.Background()

	teachers := &fakeTeacherCatalog{teachers: []*model.Teacher{
		{ID: 1, Name: "Ivan", Rating: 4.5},
		{ID: 2, Name: "Fedor", Rating: 4.0},
		{ID: 3, Name: "Vasya", Rating: 5.0},
	}}
	goals := &fakeGoalStore{goals: []*model.Goal{
		{ID: 1, Label: "Travel", Owner: model.TeacherRef(1)},
		{ID: 2, Label: "Work", Owner: model.TeacherRef(2)},
		{ID: 3, Label: "Travel", Owner: model.TeacherRef(3)},
		// Цель заявки с той же меткой не делает заявку преподавателем
		{ID: 4, Label: "Travel", Owner: model.SearchRequestRef(uuid.New())},
	}}

	svc := NewCatalogService(teachers, newFakeSlotStore(), goals, zap.NewNop())

	got, err := svc.TeachersByGoal(ctx, "Travel")
	require.NoError(t, err)
	require.Len(t, got, 2)
	// По убыванию рейтинга
	assert.Equal(t, int64(3), got[0].ID)
	assert.Equal(t, int64(1), got[1].ID)

	got, err = svc.TeachersByGoal(ctx, "Chess")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCatalogService_ListFreeSlots(t *testing.T) {
	ctx := context.Background()

	slots := newFakeSlotStore()
	first := slots.add(1, "Mon", "8:00", model.SlotStatusFree)
	slots.add(1, "Mon", "10:00", model.SlotStatusBooked)
	second := slots.add(1, "Tue", "12:00", model.SlotStatusFree)

	teachers := &fakeTeacherCatalog{teachers: []*model.Teacher{{ID: 1, Name: "Ivan"}}}
	svc := NewCatalogService(teachers, slots, &fakeGoalStore{}, zap.NewNop())

	got, err := svc.ListFreeSlots(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 2)
	// Порядок создания — стабильный ключ сортировки
	assert.Equal(t, first.ID, got[0].ID)
	assert.Equal(t, second.ID, got[1].ID)

	_, err = svc.ListFreeSlots(ctx, 42)
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestCatalogService_GetTeacher(t *testing.T) {
	ctx := context.Background()

	slots := newFakeSlotStore()
	slots.add(1, "Mon", "8:00", model.SlotStatusFree)

	teachers := &fakeTeacherCatalog{teachers: []*model.Teacher{{ID: 1, Name: "Ivan", Rating: 4.5}}}
	goals := &fakeGoalStore{goals: []*model.Goal{
		{ID: 1, Label: "Travel", Owner: model.TeacherRef(1)},
	}}

	svc := NewCatalogService(teachers, slots, goals, zap.NewNop())

	teacher, err := svc.GetTeacher(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Ivan", teacher.Name)
	assert.Equal(t, []string{"Travel"}, teacher.Goals)
	require.Len(t, teacher.Slots, 1)

	_, err = svc.GetTeacher(ctx, 99)
	require.ErrorIs(t, err, model.ErrNotFound)
}
