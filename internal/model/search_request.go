package model

import (
	"time"

	"github.com/google/uuid"
)

// Фиксированные варианты формы подбора (заменяют словари код→метка)
var (
	HoursBuckets = []string{"1-2 hours", "3-5 hours", "5-7 hours", "7-10 hours"}
	RequestGoals = []string{"Travel", "School", "Work", "Relocation"}
)

// IsValidHoursBucket проверяет что корзина часов входит в фиксированный список
func IsValidHoursBucket(bucket string) bool {
	for _, b := range HoursBuckets {
		if b == bucket {
			return true
		}
	}
	return false
}

// IsValidRequestGoal проверяет что цель заявки входит в фиксированный список
func IsValidRequestGoal(goal string) bool {
	for _, g := range RequestGoals {
		if g == goal {
			return true
		}
	}
	return false
}

// SearchRequest — заявка "подберите мне репетитора". Только добавляется,
// никогда не изменяется и не потребляется системой (разбор вручную).
type SearchRequest struct {
	ID          uuid.UUID `json:"id"`
	HoursBucket string    `json:"hours_bucket"`
	ClientName  string    `json:"client_name"`
	ClientPhone string    `json:"client_phone"`
	CreatedAt   time.Time `json:"created_at"`
}
