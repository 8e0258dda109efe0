package event

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
	router.Get("/", handler.listEvents)
	router.Get("/{id:[0-9]+}", handler.getEvent)
	router.Get("/by-slug/{slug}", handler.getEventBySlug)

	// Editor protected
	router.Group(func(editor chi.Router) {
		editor.Use(middleware.RequireRole(sec.RoleEditor))

		editor.Post("/", handler.createEvent)
		editor.Patch("/{id:[0-9]+}", handler.updateEvent)
		editor.Post("/sort", handler.sortEvents)

		editor.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/{id:[0-9]+}", handler.deleteEvent)
	})

	return router
}

type eventRequest struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	YearLabel   *string `json:"yearLabel"`
	Summary     *string `json:"summary"`
	Description *string `json:"description"`
	PeriodID    *int    `json:"periodId"`
	EventTypeID *int    `json:"eventTypeId"`
}

func (body eventRequest) toEvent(id int) *Event {
	return &Event{
		ID:          id,
		Name:        body.Name,
		Slug:        body.Slug,
		YearLabel:   body.YearLabel,
		Summary:     body.Summary,
		Description: body.Description,
		PeriodID:    body.PeriodID,
		EventTypeID: body.EventTypeID,
	}
}

func (handler *Handler) listEvents(writer http.ResponseWriter, request *http.Request) {
	filter := Filter{
		PeriodID:    intQuery(request, "periodId"),
		EventTypeID: intQuery(request, "eventTypeId"),
	}

	events, err := handler.service.ListEvents(request.Context(), filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, events)
}

func (handler *Handler) getEvent(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	e, err := handler.service.GetEvent(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, e)
}

func (handler *Handler) getEventBySlug(writer http.ResponseWriter, request *http.Request) {
	e, err := handler.service.GetEventBySlug(request.Context(), requestutil.Param(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, e)
}

func (handler *Handler) createEvent(writer http.ResponseWriter, request *http.Request) {
	var body eventRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	e := body.toEvent(0)
	if err := handler.service.CreateEvent(request.Context(), e); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, e)
}

func (handler *Handler) updateEvent(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body eventRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	e := body.toEvent(id)
	if err := handler.service.UpdateEvent(request.Context(), e); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, e)
}

func (handler *Handler) deleteEvent(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteEvent(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Ack(writer)
}

func (handler *Handler) sortEvents(writer http.ResponseWriter, request *http.Request) {
	var orderedIDs []int
	if err := requestutil.DecodeJSON(request, &orderedIDs); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.ReorderEvents(request.Context(), orderedIDs); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Ack(writer)
}

// intQuery parses an optional numeric query parameter, ignoring bad input.
func intQuery(request *http.Request, name string) *int {
	raw := request.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &value
}
