package figure

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
	router.Get("/", handler.listFigures)
	router.Get("/{id:[0-9]+}", handler.getFigure)
	router.Get("/by-slug/{slug}", handler.getFigureBySlug)

	// Editor protected
	router.Group(func(editor chi.Router) {
		editor.Use(middleware.RequireRole(sec.RoleEditor))

		editor.Post("/", handler.createFigure)
		editor.Patch("/{id:[0-9]+}", handler.updateFigure)
		editor.Post("/sort", handler.sortFigures)

		editor.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/{id:[0-9]+}", handler.deleteFigure)
	})

	return router
}

type figureRequest struct {
	Name      string  `json:"name"`
	Slug      string  `json:"slug"`
	Era       *string `json:"era"`
	Biography *string `json:"biography"`
	ImageURL  *string `json:"imageUrl"`
	PeriodID  *int    `json:"periodId"`
}

func (body figureRequest) toFigure(id int) *Figure {
	return &Figure{
		ID:        id,
		Name:      body.Name,
		Slug:      body.Slug,
		Era:       body.Era,
		Biography: body.Biography,
		ImageURL:  body.ImageURL,
		PeriodID:  body.PeriodID,
	}
}

func (handler *Handler) listFigures(writer http.ResponseWriter, request *http.Request) {
	filter := Filter{}
	if raw := request.URL.Query().Get("periodId"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil {
			filter.PeriodID = &value
		}
	}

	figures, err := handler.service.ListFigures(request.Context(), filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, figures)
}

func (handler *Handler) getFigure(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	fig, err := handler.service.GetFigure(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, fig)
}

func (handler *Handler) getFigureBySlug(writer http.ResponseWriter, request *http.Request) {
	fig, err := handler.service.GetFigureBySlug(request.Context(), requestutil.Param(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, fig)
}

func (handler *Handler) createFigure(writer http.ResponseWriter, request *http.Request) {
	var body figureRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	fig := body.toFigure(0)
	if err := handler.service.CreateFigure(request.Context(), fig); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, fig)
}

func (handler *Handler) updateFigure(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body figureRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	fig := body.toFigure(id)
	if err := handler.service.UpdateFigure(request.Context(), fig); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, fig)
}

func (handler *Handler) deleteFigure(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteFigure(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Ack(writer)
}

func (handler *Handler) sortFigures(writer http.ResponseWriter, request *http.Request) {
	var orderedIDs []int
	if err := requestutil.DecodeJSON(request, &orderedIDs); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.ReorderFigures(request.Context(), orderedIDs); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Ack(writer)
}
