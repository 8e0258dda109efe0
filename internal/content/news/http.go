package news

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dvhoang/vietsu/internal/platform/apperr"
	"github.com/dvhoang/vietsu/internal/platform/middleware"
	requestutil "github.com/dvhoang/vietsu/internal/platform/request"
	"github.com/dvhoang/vietsu/internal/platform/respond"
	"github.com/dvhoang/vietsu/internal/platform/sec"
	"github.com/dvhoang/vietsu/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public
	router.Get("/", handler.listArticles)
	router.Get("/by-slug/{slug}", handler.getArticleBySlug)

	// Editor protected
	router.Group(func(editor chi.Router) {
		editor.Use(middleware.RequireRole(sec.RoleEditor))

		editor.Get("/{id:[0-9]+}", handler.getArticle)
		editor.Post("/", handler.createArticle)
		editor.Patch("/{id:[0-9]+}", handler.updateArticle)

		editor.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/{id:[0-9]+}", handler.deleteArticle)
	})

	return router
}

type articleRequest struct {
	Title       string  `json:"title"`
	Slug        string  `json:"slug"`
	Excerpt     *string `json:"excerpt"`
	Body        string  `json:"body"`
	PublishedAt *string `json:"publishedAt"`
}

func (body articleRequest) toArticle(id int) (*Article, error) {
	a := &Article{
		ID:      id,
		Title:   body.Title,
		Slug:    body.Slug,
		Excerpt: body.Excerpt,
		Body:    body.Body,
	}

	if body.PublishedAt != nil {
		publishedAt, err := time.Parse(time.RFC3339, *body.PublishedAt)
		if err != nil {
			return nil, apperr.ValidationError("Invalid publishedAt timestamp",
				apperr.FieldError{Field: "publishedAt", Message: "Must be an RFC 3339 timestamp"})
		}
		a.PublishedAt = &publishedAt
	}

	return a, nil
}

func (handler *Handler) listArticles(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	// Editors may browse drafts with ?all=true; the public only sees
	// published articles.
	publishedOnly := true
	if request.URL.Query().Get("all") == "true" {
		if claims := requestutil.Claims(request); claims != nil && sec.UserRole(claims.Role).AtLeast(sec.RoleEditor) {
			publishedOnly = false
		}
	}

	articles, total, err := handler.service.ListArticles(request.Context(), publishedOnly,
		paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, articles, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getArticle(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	a, err := handler.service.GetArticle(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, a)
}

func (handler *Handler) getArticleBySlug(writer http.ResponseWriter, request *http.Request) {
	a, err := handler.service.GetArticleBySlug(request.Context(), requestutil.Param(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Drafts are invisible on the public slug route.
	if !a.Published() {
		claims := requestutil.Claims(request)
		if claims == nil || !sec.UserRole(claims.Role).AtLeast(sec.RoleEditor) {
			respond.Error(writer, request, apperr.NotFound("Article"))
			return
		}
	}

	respond.OK(writer, a)
}

func (handler *Handler) createArticle(writer http.ResponseWriter, request *http.Request) {
	var body articleRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	a, err := body.toArticle(0)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateArticle(request.Context(), a); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, a)
}

func (handler *Handler) updateArticle(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body articleRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	a, err := body.toArticle(id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateArticle(request.Context(), a); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, a)
}

func (handler *Handler) deleteArticle(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteArticle(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Ack(writer)
}
