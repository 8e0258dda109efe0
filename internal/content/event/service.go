package event

import (
	"context"
	"log/slog"

	"github.com/dvhoang/vietsu/internal/content/ordering"
	"github.com/dvhoang/vietsu/internal/platform/validate"
	"github.com/dvhoang/vietsu/pkg/slug"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListEvents(context context.Context, f Filter) ([]*Event, error) {
	return service.repo.List(context, f)
}

func (service *Service) GetEvent(context context.Context, id int) (*Event, error) {
	return service.repo.Get(context, id)
}

func (service *Service) GetEventBySlug(context context.Context, slug string) (*Event, error) {
	return service.repo.GetBySlug(context, slug)
}

func (service *Service) CreateEvent(context context.Context, e *Event) error {
	if err := validateEvent(e); err != nil {
		return err
	}

	if err := service.repo.Create(context, e); err != nil {
		return err
	}

	service.logger.Info("event_created", slog.Int("event_id", e.ID), slog.String("slug", e.Slug))
	return nil
}

func (service *Service) UpdateEvent(context context.Context, e *Event) error {
	validator := &validate.Validator{}
	validator.PositiveID("id", e.ID)
	if err := validator.Err(); err != nil {
		return err
	}

	if err := validateEvent(e); err != nil {
		return err
	}

	return service.repo.Update(context, e)
}

func (service *Service) DeleteEvent(context context.Context, id int) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Warn("event_deleted", slog.Int("event_id", id))
	return nil
}

func (service *Service) ReorderEvents(context context.Context, orderedIDs []int) error {
	if err := ordering.ValidateDistinct(orderedIDs); err != nil {
		return err
	}
	return service.repo.Reorder(context, orderedIDs)
}

func validateEvent(e *Event) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, e.Name).MaxLen(FieldName, e.Name, 300)

	if e.YearLabel != nil {
		validator.MaxLen(FieldYearLabel, *e.YearLabel, 100)
	}
	if e.PeriodID != nil {
		validator.PositiveID(FieldPeriodID, *e.PeriodID)
	}
	if e.EventTypeID != nil {
		validator.PositiveID(FieldEventTypeID, *e.EventTypeID)
	}

	if e.Slug == "" {
		e.Slug = slug.From(e.Name)
	}
	validator.Slug(FieldSlug, e.Slug)

	return validator.Err()
}
