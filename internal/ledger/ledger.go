// Package ledger хранит журнал бронирований — долговременную,
// только-добавляемую историю. Журнал — система записи о том, что было
// забронировано; каталог и зеркало можно восстановить, журнал — нет.
package ledger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Entry — одна зафиксированная запись о бронировании.
// После добавления никогда не изменяется и не удаляется.
type Entry struct {
	BookingID   uuid.UUID `json:"booking_id"`
	TeacherID   int64     `json:"teacher_id"`
	SlotID      int64     `json:"slot_id"`
	Day         string    `json:"day"`
	Time        string    `json:"time"`
	ClientName  string    `json:"client_name"`
	ClientPhone string    `json:"client_phone"`
	BookedAt    time.Time `json:"booked_at"`
}

type Ledger struct {
	path string

	mu      sync.Mutex
	entries []Entry
}

// Open читает журнал с диска или начинает пустой, если файла ещё нет
func Open(path string) (*Ledger, error) {
	l := &Ledger{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return l, nil
		}
		return nil, fmt.Errorf("read booking log: %w", err)
	}

	if err := json.Unmarshal(data, &l.entries); err != nil {
		return nil, fmt.Errorf("parse booking log: %w", err)
	}

	return l, nil
}

// Append дописывает запись в журнал. Возврат без ошибки означает, что
// запись долговременно сохранена — это точка фиксации бронирования.
func (l *Ledger) Append(entry Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries := append(l.entries, entry)
	if err := l.persist(entries); err != nil {
		return fmt.Errorf("append booking log: %w", err)
	}

	l.entries = entries
	return nil
}

// Entries возвращает копию всей истории в порядке добавления
func (l *Ledger) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len возвращает количество записей
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// HasSlot сообщает, есть ли в истории запись для слота
func (l *Ledger) HasSlot(slotID int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, e := range l.entries {
		if e.SlotID == slotID {
			return true
		}
	}
	return false
}

// persist атомарно заменяет файл журнала: пишем во временный файл,
// fsync, rename. Наполовину записанный журнал не виден никогда.
func (l *Ledger) persist(entries []Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal entries: %w", err)
	}

	dir := filepath.Dir(l.path)
	tmp, err := os.CreateTemp(dir, ".booking_log-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), l.path); err != nil {
		return fmt.Errorf("replace booking log: %w", err)
	}

	return nil
}
