// Package httpapi — тонкий HTTP-слой над ядром бронирования.
// Никакой логики доступности здесь нет: разбор запроса, валидация формы,
// вызов сервиса, перевод вида ошибки в статус ответа.
package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/egorkkov/tutor_booking/internal/model"
	"github.com/egorkkov/tutor_booking/internal/service"
)

type Catalog interface {
	ListTeachers(ctx context.Context) ([]*model.Teacher, error)
	GetTeacher(ctx context.Context, id int64) (*model.Teacher, error)
	ListFreeSlots(ctx context.Context, teacherID int64) ([]*model.Slot, error)
	TeacherTimetable(ctx context.Context, teacherID int64) ([]*model.Slot, error)
	ListGoals(ctx context.Context, limit int) ([]string, error)
	TeachersByGoal(ctx context.Context, label string) ([]*model.Teacher, error)
}

type Booker interface {
	Book(ctx context.Context, in service.BookSlotInput) (uuid.UUID, error)
}

type Requests interface {
	Submit(ctx context.Context, in service.SubmitRequestInput) (uuid.UUID, error)
}

type Server struct {
	catalog  Catalog
	bookings Booker
	requests Requests
	validate *validator.Validate
	logger   *zap.Logger
}

func NewServer(catalog Catalog, bookings Booker, requests Requests, logger *zap.Logger) *Server {
	return &Server{
		catalog:  catalog,
		bookings: bookings,
		requests: requests,
		validate: validator.New(),
		logger:   logger,
	}
}

// Router собирает маршруты API
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/teachers", s.listTeachers)
	r.Get("/teachers/{teacherID}", s.getTeacher)
	r.Get("/teachers/{teacherID}/slots", s.listFreeSlots)
	r.Get("/teachers/{teacherID}/timetable.png", s.teacherTimetable)
	r.Get("/goals", s.listGoals)
	r.Post("/requests", s.submitRequest)
	r.Post("/bookings", s.bookSlot)

	return r
}
