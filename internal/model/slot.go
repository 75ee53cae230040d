package model

import "time"

type SlotStatus string

const (
	SlotStatusFree   SlotStatus = "free"
	SlotStatusBooked SlotStatus = "booked"
)

// WeekDays фиксированный порядок дней для вывода расписания и зеркала
var WeekDays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

type Slot struct {
	ID        int64      `json:"id"`
	TeacherID int64      `json:"teacher_id"`
	Day       string     `json:"day"`  // метка дня недели: "Mon".."Sun"
	Time      string     `json:"time"` // метка времени: "16:00"
	Status    SlotStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
}

// IsValidWeekDay проверяет что метка дня входит в фиксированный список
func IsValidWeekDay(day string) bool {
	for _, d := range WeekDays {
		if d == day {
			return true
		}
	}
	return false
}
