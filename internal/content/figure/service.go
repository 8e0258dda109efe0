package figure

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

func (service *Service) ListFigures(context context.Context, f Filter) ([]*Figure, error) {
	return service.repo.List(context, f)
}

func (service *Service) GetFigure(context context.Context, id int) (*Figure, error) {
	return service.repo.Get(context, id)
}

func (service *Service) GetFigureBySlug(context context.Context, slug string) (*Figure, error) {
	return service.repo.GetBySlug(context, slug)
}

func (service *Service) CreateFigure(context context.Context, fig *Figure) error {
	if err := validateFigure(fig); err != nil {
		return err
	}

	if err := service.repo.Create(context, fig); err != nil {
		return err
	}

	service.logger.Info("figure_created", slog.Int("figure_id", fig.ID), slog.String("slug", fig.Slug))
	return nil
}

func (service *Service) UpdateFigure(context context.Context, fig *Figure) error {
	validator := &validate.Validator{}
	validator.PositiveID("id", fig.ID)
	if err := validator.Err(); err != nil {
		return err
	}

	if err := validateFigure(fig); err != nil {
		return err
	}

	return service.repo.Update(context, fig)
}

func (service *Service) DeleteFigure(context context.Context, id int) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Warn("figure_deleted", slog.Int("figure_id", id))
	return nil
}

func (service *Service) ReorderFigures(context context.Context, orderedIDs []int) error {
	if err := ordering.ValidateDistinct(orderedIDs); err != nil {
		return err
	}
	return service.repo.Reorder(context, orderedIDs)
}

func validateFigure(fig *Figure) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, fig.Name).MaxLen(FieldName, fig.Name, 200)

	if fig.Era != nil {
		validator.MaxLen(FieldEra, *fig.Era, 100)
	}
	if fig.PeriodID != nil {
		validator.PositiveID(FieldPeriodID, *fig.PeriodID)
	}

	if fig.Slug == "" {
		fig.Slug = slug.From(fig.Name)
	}
	validator.Slug(FieldSlug, fig.Slug)

	return validator.Err()
}
