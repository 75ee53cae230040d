package model

import "errors"

// Виды ошибок ядра. Слои выше различают их через errors.Is.
var (
	// ErrNotFound — неизвестный преподаватель или слот
	ErrNotFound = errors.New("not found")

	// ErrAlreadyBooked — слот уже занят. Ожидаемый исход гонки,
	// а не сбой системы: вызывающий должен обновить расписание, а не повторять
	ErrAlreadyBooked = errors.New("slot is already booked")

	// ErrInvalidInput — некорректные имя/телефон/корзина часов
	ErrInvalidInput = errors.New("invalid input")

	// ErrPersistence — сбой долговременной записи, запрос прерывается
	ErrPersistence = errors.New("persistent write failed")
)
