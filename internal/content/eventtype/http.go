package eventtype

import (
	"net/http"

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
	router.Get("/", handler.listEventTypes)
	router.Get("/{id:[0-9]+}", handler.getEventType)
	router.Get("/by-slug/{slug}", handler.getEventTypeBySlug)

	// Editor protected
	router.Group(func(editor chi.Router) {
		editor.Use(middleware.RequireRole(sec.RoleEditor))

		editor.Post("/", handler.createEventType)
		editor.Patch("/{id:[0-9]+}", handler.updateEventType)
		editor.Post("/sort", handler.sortEventTypes)

		editor.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/{id:[0-9]+}", handler.deleteEventType)
	})

	return router
}

type eventTypeRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (handler *Handler) listEventTypes(writer http.ResponseWriter, request *http.Request) {
	eventTypes, err := handler.service.ListEventTypes(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, eventTypes)
}

func (handler *Handler) getEventType(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	et, err := handler.service.GetEventType(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, et)
}

func (handler *Handler) getEventTypeBySlug(writer http.ResponseWriter, request *http.Request) {
	et, err := handler.service.GetEventTypeBySlug(request.Context(), requestutil.Param(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, et)
}

func (handler *Handler) createEventType(writer http.ResponseWriter, request *http.Request) {
	var body eventTypeRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	et := &EventType{Name: body.Name, Slug: body.Slug}
	if err := handler.service.CreateEventType(request.Context(), et); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, et)
}

func (handler *Handler) updateEventType(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body eventTypeRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	et := &EventType{ID: id, Name: body.Name, Slug: body.Slug}
	if err := handler.service.UpdateEventType(request.Context(), et); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, et)
}

func (handler *Handler) deleteEventType(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteEventType(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Ack(writer)
}

func (handler *Handler) sortEventTypes(writer http.ResponseWriter, request *http.Request) {
	var orderedIDs []int
	if err := requestutil.DecodeJSON(request, &orderedIDs); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.ReorderEventTypes(request.Context(), orderedIDs); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Ack(writer)
}
