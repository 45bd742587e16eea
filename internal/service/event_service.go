package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/bimbel-api/internal/dto"
	"github.com/noah-isme/bimbel-api/internal/models"
)

type eventRepository interface {
	CreateEvent(ctx context.Context, event models.Event) (*models.Event, error)
	GetEvent(ctx context.Context, id int64) (*models.Event, error)
	ListEvents(ctx context.Context) ([]models.Event, error)
	ListUpcomingEvents(ctx context.Context, from models.Date) ([]models.Event, error)
}

// EventService manages the calendar.
type EventService struct {
	repo      eventRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEventService constructs the event service.
func NewEventService(repo eventRepository, validate *validator.Validate, logger *zap.Logger) *EventService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventService{repo: repo, validator: newValidator(validate), logger: logger}
}

// Create adds an event.
func (s *EventService) Create(ctx context.Context, req dto.CreateEventRequest) (*models.Event, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalid(err, "invalid event payload")
	}
	return s.repo.CreateEvent(ctx, models.Event{
		Title:        req.Title,
		Description:  req.Description,
		Date:         req.Date,
		Time:         req.Time,
		TargetGrades: req.TargetGrades,
	})
}

// Get returns an event by ID.
func (s *EventService) Get(ctx context.Context, id int64) (*models.Event, error) {
	event, err := s.repo.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, notFound("event not found")
	}
	return event, nil
}

// List returns every event ordered by date.
func (s *EventService) List(ctx context.Context) ([]models.Event, error) {
	return s.repo.ListEvents(ctx)
}

// Upcoming returns events on or after from, defaulting to today.
func (s *EventService) Upcoming(ctx context.Context, from *models.Date) ([]models.Event, error) {
	day := models.Today()
	if from != nil && !from.IsZero() {
		day = *from
	}
	return s.repo.ListUpcomingEvents(ctx, day)
}
