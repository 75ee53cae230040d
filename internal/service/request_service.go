package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/egorkkov/tutor_booking/internal/model"
)

// RequestService принимает заявки на подбор преподавателя.
// Чистое добавление: без ключа дедупликации и без подбора — повторные
// заявки сознательно сохраняются отдельными записями, их разбирают вручную.
type RequestService struct {
	queue  SearchRequestStore
	logger *zap.Logger
}

func NewRequestService(queue SearchRequestStore, logger *zap.Logger) *RequestService {
	return &RequestService{queue: queue, logger: logger}
}

type SubmitRequestInput struct {
	GoalLabel   string
	HoursBucket string
	ClientName  string
	ClientPhone string
}

// Submit сохраняет заявку и её цель. Цель принадлежит заявке, не преподавателю.
func (s *RequestService) Submit(ctx context.Context, in SubmitRequestInput) (uuid.UUID, error) {
	if in.ClientName == "" || in.ClientPhone == "" {
		return uuid.Nil, fmt.Errorf("client name and phone are required: %w", model.ErrInvalidInput)
	}
	if !model.IsValidRequestGoal(in.GoalLabel) {
		return uuid.Nil, fmt.Errorf("unknown goal %q: %w", in.GoalLabel, model.ErrInvalidInput)
	}
	if !model.IsValidHoursBucket(in.HoursBucket) {
		return uuid.Nil, fmt.Errorf("unknown hours bucket %q: %w", in.HoursBucket, model.ErrInvalidInput)
	}

	request := &model.SearchRequest{
		ID:          uuid.New(),
		HoursBucket: in.HoursBucket,
		ClientName:  in.ClientName,
		ClientPhone: in.ClientPhone,
	}
	goal := &model.Goal{
		Label: in.GoalLabel,
		Owner: model.SearchRequestRef(request.ID),
	}

	if err := s.queue.Create(ctx, request, goal); err != nil {
		return uuid.Nil, fmt.Errorf("%w: store search request: %v", model.ErrPersistence, err)
	}

	s.logger.Info("Search request submitted",
		zap.String("request_id", request.ID.String()),
		zap.String("goal", in.GoalLabel),
		zap.String("hours_bucket", in.HoursBucket),
	)

	return request.ID, nil
}
