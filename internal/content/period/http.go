/*
Package period manages historical periods, the top-level classification of the
content catalogue, together with their display order and guarded deletion.

# Routing Strategy

  - Public (v1): Read endpoints accessible to all visitors (GET /periods).
  - Restricted (v1): Mutative endpoints requiring Editor role; deletion and
    its resolution endpoints require Admin.

The handler translates between the web/JSON layer and the internal domain [Service].
*/
package period

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dvhoang/vietsu/internal/platform/middleware"
	requestutil "github.com/dvhoang/vietsu/internal/platform/request"
	"github.com/dvhoang/vietsu/internal/platform/respond"
	"github.com/dvhoang/vietsu/internal/platform/sec"
)

// # Handler Implementation

// Handler implements the HTTP layer for period management.
type Handler struct {
	service *Service
}

// NewHandler constructs a new period [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the period domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Read Endpoints
	router.Get("/", handler.listPeriods)
	router.Get("/{id:[0-9]+}", handler.getPeriod)
	router.Get("/by-slug/{slug}", handler.getPeriodBySlug)

	// ## Content Management (Editor Protected)
	router.Group(func(editor chi.Router) {
		editor.Use(middleware.RequireRole(sec.RoleEditor))

		editor.Post("/", handler.createPeriod)
		editor.Patch("/{id:[0-9]+}", handler.updatePeriod)
		editor.Post("/sort", handler.sortPeriods)
	})

	// ## Deletion and Conflict Resolution (Admin Protected)
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))

		admin.Delete("/{id:[0-9]+}", handler.deletePeriod)
		admin.Post("/{id:[0-9]+}/reassign", handler.reassignPeriod)
		admin.Post("/{id:[0-9]+}/delete-content", handler.purgePeriod)
	})

	return router
}

// periodRequest is the JSON body for create and update operations.
type periodRequest struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Timeframe   *string `json:"timeframe"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
}

// # Read Endpoints

/*
GET /api/v1/periods.

Response:
  - 200: []Period, in display order
*/
func (handler *Handler) listPeriods(writer http.ResponseWriter, request *http.Request) {
	periods, err := handler.service.ListPeriods(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, periods)
}

func (handler *Handler) getPeriod(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	p, err := handler.service.GetPeriod(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, p)
}

func (handler *Handler) getPeriodBySlug(writer http.ResponseWriter, request *http.Request) {
	p, err := handler.service.GetPeriodBySlug(request.Context(), requestutil.Param(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, p)
}

// # Management Endpoints

/*
POST /api/v1/periods.

Request:
  - name: string (required)
  - slug: string (derived from name when omitted)
  - timeframe, description, icon: optional display metadata

Response:
  - 201: Period
  - 400: Validation failure
*/
func (handler *Handler) createPeriod(writer http.ResponseWriter, request *http.Request) {
	var body periodRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	p := &Period{
		Name:        body.Name,
		Slug:        body.Slug,
		Timeframe:   body.Timeframe,
		Description: body.Description,
		Icon:        body.Icon,
	}

	if err := handler.service.CreatePeriod(request.Context(), p); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, p)
}

func (handler *Handler) updatePeriod(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body periodRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	p := &Period{
		ID:          id,
		Name:        body.Name,
		Slug:        body.Slug,
		Timeframe:   body.Timeframe,
		Description: body.Description,
		Icon:        body.Icon,
	}

	if err := handler.service.UpdatePeriod(request.Context(), p); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, p)
}

/*
POST /api/v1/periods/sort.

Request: the complete collection of period IDs as a JSON array, in the
desired display order, e.g. [3, 1, 2].

Response:
  - 200: {"success": true}
  - 400: The IDs do not exactly match the stored collection
*/
func (handler *Handler) sortPeriods(writer http.ResponseWriter, request *http.Request) {
	var orderedIDs []int
	if err := requestutil.DecodeJSON(request, &orderedIDs); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.ReorderPeriods(request.Context(), orderedIDs); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Ack(writer)
}

// # Deletion Endpoints

/*
DELETE /api/v1/periods/{id}.

Response:
  - 200: {"success": true}
  - 400: DEPENDENCY_CONFLICT. The data field lists the blocking events,
    figures, and sites plus the periods available as reassignment targets.
  - 404: The period does not exist
*/
func (handler *Handler) deletePeriod(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeletePeriod(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Ack(writer)
}

/*
POST /api/v1/periods/{id}/reassign.

Request:
  - targetPeriodId: int (existing period, different from {id})

Response:
  - 200: {"success": true}
  - 400: Missing, self-referential, or nonexistent target
  - 404: The period does not exist
*/
func (handler *Handler) reassignPeriod(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body ReassignRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.ReassignAndDelete(request.Context(), id, body.TargetPeriodID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Ack(writer)
}

/*
POST /api/v1/periods/{id}/delete-content.

Description: Destructive resolution of a blocked deletion. Removes the
period and every event, figure, and site referencing it.

Response:
  - 200: {"success": true}
  - 404: The period does not exist
*/
func (handler *Handler) purgePeriod(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.PurgeAndDelete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Ack(writer)
}
