package news

import (
	"context"
	"log/slog"

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

func (service *Service) ListArticles(context context.Context, publishedOnly bool, limit, offset int) ([]*Article, int, error) {
	return service.repo.List(context, publishedOnly, limit, offset)
}

func (service *Service) GetArticle(context context.Context, id int) (*Article, error) {
	return service.repo.Get(context, id)
}

func (service *Service) GetArticleBySlug(context context.Context, slug string) (*Article, error) {
	return service.repo.GetBySlug(context, slug)
}

func (service *Service) CreateArticle(context context.Context, a *Article) error {
	if err := validateArticle(a); err != nil {
		return err
	}

	if err := service.repo.Create(context, a); err != nil {
		return err
	}

	service.logger.Info("article_created", slog.Int("article_id", a.ID), slog.String("slug", a.Slug))
	return nil
}

func (service *Service) UpdateArticle(context context.Context, a *Article) error {
	validator := &validate.Validator{}
	validator.PositiveID("id", a.ID)
	if err := validator.Err(); err != nil {
		return err
	}

	if err := validateArticle(a); err != nil {
		return err
	}

	return service.repo.Update(context, a)
}

func (service *Service) DeleteArticle(context context.Context, id int) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Warn("article_deleted", slog.Int("article_id", id))
	return nil
}

func validateArticle(a *Article) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, a.Title).MaxLen(FieldTitle, a.Title, 300)
	validator.Required(FieldBody, a.Body)

	if a.Slug == "" {
		a.Slug = slug.From(a.Title)
	}
	validator.Slug(FieldSlug, a.Slug)

	return validator.Err()
}
