package model

import (
	"time"

	"github.com/google/uuid"
)

type GoalOwnerKind string

const (
	GoalOwnerTeacher       GoalOwnerKind = "teacher"
	GoalOwnerSearchRequest GoalOwnerKind = "search_request"
)

// GoalOwner — тегированный вариант владельца цели: либо преподаватель,
// либо заявка на подбор, никогда оба и никогда никто.
type GoalOwner struct {
	Kind      GoalOwnerKind `json:"kind"`
	TeacherID int64         `json:"teacher_id,omitempty"`
	RequestID uuid.UUID     `json:"request_id,omitempty"`
}

// TeacherRef создаёт владельца-преподавателя
func TeacherRef(teacherID int64) GoalOwner {
	return GoalOwner{Kind: GoalOwnerTeacher, TeacherID: teacherID}
}

// SearchRequestRef создаёт владельца-заявку
func SearchRequestRef(requestID uuid.UUID) GoalOwner {
	return GoalOwner{Kind: GoalOwnerSearchRequest, RequestID: requestID}
}

type Goal struct {
	ID        int64     `json:"id"`
	Label     string    `json:"label"` // может начинаться с декоративного глифа, "✈ Travel" и "Travel" — разные метки
	Owner     GoalOwner `json:"owner"`
	CreatedAt time.Time `json:"created_at"`
}
