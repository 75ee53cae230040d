package model

import "time"

type Teacher struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	About      string    `json:"about"`
	Rating     float64   `json:"rating"` // инвариант 0..5, дублируется CHECK-ом в БД
	Price      int       `json:"price"`  // цена за час, положительное целое
	LessonTime string    `json:"lesson_time"` // легаси-поле со свободным текстом
	CreatedAt  time.Time `json:"created_at"`

	// Дополнительные поля для удобства (не из БД)
	Goals []string `json:"goals,omitempty"`
	Slots []*Slot  `json:"slots,omitempty"`
}
