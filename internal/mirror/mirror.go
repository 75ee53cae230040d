// Package mirror держит производный снимок доступности для быстрых чтений.
// Зеркало никогда не является источником истины: его можно в любой момент
// перестроить из хранилища слотов, устаревание после сбоя обновления допустимо.
package mirror

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/egorkkov/tutor_booking/internal/model"
)

// Document — плоский документ teacherID→day→time→free
type Document map[string]map[string]map[string]bool

type Mirror struct {
	path string

	mu  sync.RWMutex
	doc Document
}

// Open читает документ зеркала с диска или начинает пустой
func Open(path string) (*Mirror, error) {
	m := &Mirror{path: path, doc: Document{}}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return m, nil
		}
		return nil, fmt.Errorf("read availability mirror: %w", err)
	}

	if err := json.Unmarshal(data, &m.doc); err != nil {
		return nil, fmt.Errorf("parse availability mirror: %w", err)
	}

	return m, nil
}

// Refresh пересчитывает одну запись зеркала по текущему состоянию хранилища
func (m *Mirror) Refresh(teacherID int64, day, timeLabel string, free bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := strconv.FormatInt(teacherID, 10)
	if m.doc[key] == nil {
		m.doc[key] = map[string]map[string]bool{}
	}
	if m.doc[key][day] == nil {
		m.doc[key][day] = map[string]bool{}
	}
	m.doc[key][day][timeLabel] = free

	if err := m.persist(); err != nil {
		return fmt.Errorf("refresh mirror entry: %w", err)
	}

	return nil
}

// RebuildFrom перестраивает документ целиком из снимка хранилища слотов.
// Результат обязан совпадать с зеркалом, которое велось инкрементально.
func (m *Mirror) RebuildFrom(slots []*model.Slot) error {
	doc := Document{}
	for _, slot := range slots {
		key := strconv.FormatInt(slot.TeacherID, 10)
		if doc[key] == nil {
			doc[key] = map[string]map[string]bool{}
		}
		if doc[key][slot.Day] == nil {
			doc[key][slot.Day] = map[string]bool{}
		}
		doc[key][slot.Day][slot.Time] = slot.Status == model.SlotStatusFree
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.doc = doc
	if err := m.persist(); err != nil {
		return fmt.Errorf("rebuild mirror: %w", err)
	}

	return nil
}

// IsFree отвечает по зеркалу, свободен ли слот.
// Второй результат false — записи в зеркале нет.
func (m *Mirror) IsFree(teacherID int64, day, timeLabel string) (bool, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	days, ok := m.doc[strconv.FormatInt(teacherID, 10)]
	if !ok {
		return false, false
	}
	times, ok := days[day]
	if !ok {
		return false, false
	}
	free, ok := times[timeLabel]
	return free, ok
}

// Snapshot возвращает глубокую копию документа
func (m *Mirror) Snapshot() Document {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := Document{}
	for teacher, days := range m.doc {
		out[teacher] = map[string]map[string]bool{}
		for day, times := range days {
			out[teacher][day] = map[string]bool{}
			for tm, free := range times {
				out[teacher][day][tm] = free
			}
		}
	}
	return out
}

func (m *Mirror) persist() error {
	data, err := json.MarshalIndent(m.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal mirror: %w", err)
	}

	dir := filepath.Dir(m.path)
	tmp, err := os.CreateTemp(dir, ".availability_mirror-*.json")
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

	if err := os.Rename(tmp.Name(), m.path); err != nil {
		return fmt.Errorf("replace mirror: %w", err)
	}

	return nil
}
