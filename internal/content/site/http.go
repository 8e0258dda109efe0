package site

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dvhoang/vietsu/internal/platform/middleware"
	requestutil "github.com/dvhoang/vietsu/internal/platform/request"
	"github.com/dvhoang/vietsu/internal/platform/respond"
	"github.com/dvhoang/vietsu/internal/platform/sec"
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
	router.Get("/", handler.listSites)
	router.Get("/{id:[0-9]+}", handler.getSite)
	router.Get("/by-slug/{slug}", handler.getSiteBySlug)

	// Editor protected
	router.Group(func(editor chi.Router) {
		editor.Use(middleware.RequireRole(sec.RoleEditor))

		editor.Post("/", handler.createSite)
		editor.Patch("/{id:[0-9]+}", handler.updateSite)
		editor.Post("/sort", handler.sortSites)

		editor.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/{id:[0-9]+}", handler.deleteSite)
	})

	return router
}

type siteRequest struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Location    *string `json:"location"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
	PeriodID    *int    `json:"periodId"`
}

func (body siteRequest) toSite(id int) *Site {
	return &Site{
		ID:          id,
		Name:        body.Name,
		Slug:        body.Slug,
		Location:    body.Location,
		Description: body.Description,
		ImageURL:    body.ImageURL,
		PeriodID:    body.PeriodID,
	}
}

func (handler *Handler) listSites(writer http.ResponseWriter, request *http.Request) {
	filter := Filter{}
	if raw := request.URL.Query().Get("periodId"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil {
			filter.PeriodID = &value
		}
	}

	sites, err := handler.service.ListSites(request.Context(), filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, sites)
}

func (handler *Handler) getSite(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	s, err := handler.service.GetSite(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, s)
}

func (handler *Handler) getSiteBySlug(writer http.ResponseWriter, request *http.Request) {
	s, err := handler.service.GetSiteBySlug(request.Context(), requestutil.Param(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, s)
}

func (handler *Handler) createSite(writer http.ResponseWriter, request *http.Request) {
	var body siteRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	s := body.toSite(0)
	if err := handler.service.CreateSite(request.Context(), s); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, s)
}

func (handler *Handler) updateSite(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body siteRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	s := body.toSite(id)
	if err := handler.service.UpdateSite(request.Context(), s); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, s)
}

func (handler *Handler) deleteSite(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteSite(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Ack(writer)
}

func (handler *Handler) sortSites(writer http.ResponseWriter, request *http.Request) {
	var orderedIDs []int
	if err := requestutil.DecodeJSON(request, &orderedIDs); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.ReorderSites(request.Context(), orderedIDs); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Ack(writer)
}
