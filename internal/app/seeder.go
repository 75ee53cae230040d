package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/egorkkov/tutor_booking/internal/ledger"
	"github.com/egorkkov/tutor_booking/internal/model"
)

type teacherWriter interface {
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, teacher *model.Teacher) error
}

type goalWriter interface {
	Create(ctx context.Context, goal *model.Goal) error
}

type slotWriter interface {
	Create(ctx context.Context, slot *model.Slot) error
}

type bookingLogWriter interface {
	Append(entry ledger.Entry) error
}

// CatalogFile — формат файла каталога для первичного импорта
type CatalogFile struct {
	Teachers []CatalogTeacher `json:"teachers"`
}

type CatalogTeacher struct {
	Name       string   `json:"name"`
	About      string   `json:"about"`
	Rating     float64  `json:"rating"`
	Price      int      `json:"price"`
	LessonTime string   `json:"lesson_time"`
	Goals      []string `json:"goals"`
	// free: день → время → true если слот свободен.
	// Полярность фиксирована здесь и только здесь: true = свободен,
	// импорт сразу переводит её в явный статус.
	Free map[string]map[string]bool `json:"free"`
}

// Seeder загружает каталог преподавателей в пустую БД
type Seeder struct {
	teachers teacherWriter
	goals    goalWriter
	slots    slotWriter
	log      bookingLogWriter
	logger   *zap.Logger
}

func NewSeeder(teachers teacherWriter, goals goalWriter, slots slotWriter, log bookingLogWriter, logger *zap.Logger) *Seeder {
	return &Seeder{
		teachers: teachers,
		goals:    goals,
		slots:    slots,
		log:      log,
		logger:   logger,
	}
}

// Run импортирует каталог из файла. Если каталог уже не пустой,
// импорт пропускается: записи каталога неизменяемы после загрузки.
func (s *Seeder) Run(ctx context.Context, path string) error {
	count, err := s.teachers.Count(ctx)
	if err != nil {
		return fmt.Errorf("count teachers: %w", err)
	}
	if count > 0 {
		s.logger.Info("Catalog is not empty, skipping import", zap.Int64("teachers", count))
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read catalog file: %w", err)
	}

	var catalog CatalogFile
	if err := json.Unmarshal(data, &catalog); err != nil {
		return fmt.Errorf("parse catalog file: %w", err)
	}

	imported := 0
	for _, ct := range catalog.Teachers {
		if err := s.importTeacher(ctx, ct); err != nil {
			return fmt.Errorf("import teacher %q: %w", ct.Name, err)
		}
		imported++
	}

	s.logger.Info("✅ Catalog imported", zap.Int("teachers", imported))
	return nil
}

func (s *Seeder) importTeacher(ctx context.Context, ct CatalogTeacher) error {
	if ct.Rating < 0 || ct.Rating > 5 {
		return fmt.Errorf("rating %v is out of range 0..5: %w", ct.Rating, model.ErrInvalidInput)
	}
	if ct.Price <= 0 {
		return fmt.Errorf("price %d must be positive: %w", ct.Price, model.ErrInvalidInput)
	}

	teacher := &model.Teacher{
		Name:       ct.Name,
		About:      ct.About,
		Rating:     ct.Rating,
		Price:      ct.Price,
		LessonTime: ct.LessonTime,
	}
	if err := s.teachers.Create(ctx, teacher); err != nil {
		return err
	}

	for _, label := range ct.Goals {
		goal := &model.Goal{
			Label: label,
			Owner: model.TeacherRef(teacher.ID),
		}
		if err := s.goals.Create(ctx, goal); err != nil {
			return err
		}
	}

	// Дни в фиксированном порядке недели, времена внутри дня по возрастанию:
	// порядок создания слотов — стабильный ключ сортировки для отображения
	for _, day := range model.WeekDays {
		times, ok := ct.Free[day]
		if !ok {
			continue
		}

		labels := make([]string, 0, len(times))
		for tm := range times {
			labels = append(labels, tm)
		}
		sort.Strings(labels)

		for _, tm := range labels {
			status := model.SlotStatusBooked
			if times[tm] {
				status = model.SlotStatusFree
			}
			slot := &model.Slot{
				TeacherID: teacher.ID,
				Day:       day,
				Time:      tm,
				Status:    status,
			}
			if err := s.slots.Create(ctx, slot); err != nil {
				return err
			}

			// Слот, импортированный занятым, сразу фиксируется в журнале
			// без клиента: занятый слот без записи в журнале — это след
			// оборванного бронирования, и сверка на старте его освободит
			if status == model.SlotStatusBooked {
				entry := ledger.Entry{
					BookingID: uuid.New(),
					TeacherID: teacher.ID,
					SlotID:    slot.ID,
					Day:       day,
					Time:      tm,
					BookedAt:  time.Now().UTC(),
				}
				if err := s.log.Append(entry); err != nil {
					return fmt.Errorf("record imported booked slot: %w", err)
				}
			}
		}
	}

	return nil
}
