package site

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

func (service *Service) ListSites(context context.Context, f Filter) ([]*Site, error) {
	return service.repo.List(context, f)
}

func (service *Service) GetSite(context context.Context, id int) (*Site, error) {
	return service.repo.Get(context, id)
}

func (service *Service) GetSiteBySlug(context context.Context, slug string) (*Site, error) {
	return service.repo.GetBySlug(context, slug)
}

func (service *Service) CreateSite(context context.Context, s *Site) error {
	if err := validateSite(s); err != nil {
		return err
	}

	if err := service.repo.Create(context, s); err != nil {
		return err
	}

	service.logger.Info("site_created", slog.Int("site_id", s.ID), slog.String("slug", s.Slug))
	return nil
}

func (service *Service) UpdateSite(context context.Context, s *Site) error {
	validator := &validate.Validator{}
	validator.PositiveID("id", s.ID)
	if err := validator.Err(); err != nil {
		return err
	}

	if err := validateSite(s); err != nil {
		return err
	}

	return service.repo.Update(context, s)
}

func (service *Service) DeleteSite(context context.Context, id int) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Warn("site_deleted", slog.Int("site_id", id))
	return nil
}

func (service *Service) ReorderSites(context context.Context, orderedIDs []int) error {
	if err := ordering.ValidateDistinct(orderedIDs); err != nil {
		return err
	}
	return service.repo.Reorder(context, orderedIDs)
}

func validateSite(s *Site) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, s.Name).MaxLen(FieldName, s.Name, 200)

	if s.Location != nil {
		validator.MaxLen(FieldLocation, *s.Location, 300)
	}
	if s.PeriodID != nil {
		validator.PositiveID(FieldPeriodID, *s.PeriodID)
	}

	if s.Slug == "" {
		s.Slug = slug.From(s.Name)
	}
	validator.Slug(FieldSlug, s.Slug)

	return validator.Err()
}
