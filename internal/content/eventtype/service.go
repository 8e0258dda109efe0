package eventtype

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

func (service *Service) ListEventTypes(context context.Context) ([]*EventType, error) {
	return service.repo.List(context)
}

func (service *Service) GetEventType(context context.Context, id int) (*EventType, error) {
	return service.repo.Get(context, id)
}

func (service *Service) GetEventTypeBySlug(context context.Context, slug string) (*EventType, error) {
	return service.repo.GetBySlug(context, slug)
}

func (service *Service) CreateEventType(context context.Context, et *EventType) error {
	if err := validateEventType(et); err != nil {
		return err
	}

	return service.repo.Create(context, et)
}

func (service *Service) UpdateEventType(context context.Context, et *EventType) error {
	validator := &validate.Validator{}
	validator.PositiveID("id", et.ID)
	if err := validator.Err(); err != nil {
		return err
	}

	if err := validateEventType(et); err != nil {
		return err
	}

	return service.repo.Update(context, et)
}

func (service *Service) DeleteEventType(context context.Context, id int) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Warn("event_type_deleted", slog.Int("event_type_id", id))
	return nil
}

func (service *Service) ReorderEventTypes(context context.Context, orderedIDs []int) error {
	if err := ordering.ValidateDistinct(orderedIDs); err != nil {
		return err
	}
	return service.repo.Reorder(context, orderedIDs)
}

func validateEventType(et *EventType) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, et.Name).MaxLen(FieldName, et.Name, 100)

	if et.Slug == "" {
		et.Slug = slug.From(et.Name)
	}
	validator.Slug(FieldSlug, et.Slug)

	return validator.Err()
}
