package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/egorkkov/tutor_booking/internal/model"
	"github.com/egorkkov/tutor_booking/internal/render"
	"github.com/egorkkov/tutor_booking/internal/service"
)

type bookSlotRequest struct {
	TeacherID   int64  `json:"teacher_id" validate:"required"`
	Day         string `json:"day" validate:"required,oneof=Mon Tue Wed Thu Fri Sat Sun"`
	Time        string `json:"time" validate:"required"`
	ClientName  string `json:"client_name" validate:"required,min=2,max=25"`
	ClientPhone string `json:"client_phone" validate:"required,numeric,min=7,max=15"`
}

type searchRequestBody struct {
	Goal        string `json:"goal" validate:"required"`
	Hours       string `json:"hours" validate:"required"`
	ClientName  string `json:"client_name" validate:"required,min=2,max=25"`
	ClientPhone string `json:"client_phone" validate:"required,numeric,min=7,max=15"`
}

func (s *Server) listTeachers(w http.ResponseWriter, r *http.Request) {
	var teachers []*model.Teacher
	var err error

	if goal := r.URL.Query().Get("goal"); goal != "" {
		teachers, err = s.catalog.TeachersByGoal(r.Context(), goal)
	} else {
		teachers, err = s.catalog.ListTeachers(r.Context())
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"teachers": teachers})
}

func (s *Server) getTeacher(w http.ResponseWriter, r *http.Request) {
	id, err := teacherIDParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	teacher, err := s.catalog.GetTeacher(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, teacher)
}

func (s *Server) listFreeSlots(w http.ResponseWriter, r *http.Request) {
	id, err := teacherIDParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	slots, err := s.catalog.ListFreeSlots(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"slots": slots})
}

func (s *Server) teacherTimetable(w http.ResponseWriter, r *http.Request) {
	id, err := teacherIDParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	teacher, err := s.catalog.GetTeacher(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	slots, err := s.catalog.TeacherTimetable(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	png, err := render.TimetablePNG(teacher.Name, slots)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func (s *Server) listGoals(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			s.writeError(w, r, fmt.Errorf("limit %q: %w", raw, model.ErrInvalidInput))
			return
		}
		limit = parsed
	}

	goals, err := s.catalog.ListGoals(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"goals": goals})
}

func (s *Server) submitRequest(w http.ResponseWriter, r *http.Request) {
	var body searchRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, r, fmt.Errorf("parse request body: %w", model.ErrInvalidInput))
		return
	}
	if err := s.validate.Struct(body); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: %v", model.ErrInvalidInput, err))
		return
	}

	requestID, err := s.requests.Submit(r.Context(), service.SubmitRequestInput{
		GoalLabel:   body.Goal,
		HoursBucket: body.Hours,
		ClientName:  body.ClientName,
		ClientPhone: body.ClientPhone,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, map[string]string{"request_id": requestID.String()})
}

func (s *Server) bookSlot(w http.ResponseWriter, r *http.Request) {
	var body bookSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, r, fmt.Errorf("parse request body: %w", model.ErrInvalidInput))
		return
	}
	if err := s.validate.Struct(body); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: %v", model.ErrInvalidInput, err))
		return
	}

	bookingID, err := s.bookings.Book(r.Context(), service.BookSlotInput{
		TeacherID:   body.TeacherID,
		Day:         body.Day,
		Time:        body.Time,
		ClientName:  body.ClientName,
		ClientPhone: body.ClientPhone,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, map[string]string{"booking_id": bookingID.String()})
}

func teacherIDParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "teacherID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("teacher id %q: %w", raw, model.ErrInvalidInput)
	}
	return id, nil
}
