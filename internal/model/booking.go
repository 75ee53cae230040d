package model

import (
	"time"

	"github.com/google/uuid"
)

// Booking — неизменяемая запись о бронировании слота.
// ID выдаётся координатором до записи в журнал, чтобы журнал и каталог
// всегда сходились в идентичности бронирования.
type Booking struct {
	ID          uuid.UUID `json:"id"`
	SlotID      int64     `json:"slot_id"`
	ClientName  string    `json:"client_name"`
	ClientPhone string    `json:"client_phone"`
	CreatedAt   time.Time `json:"created_at"`
}
