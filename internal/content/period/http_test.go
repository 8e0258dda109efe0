package period_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvhoang/vietsu/internal/content/period"
	"github.com/dvhoang/vietsu/internal/platform/ctxutil"
	"github.com/dvhoang/vietsu/internal/platform/sec"
)

// newTestRouter mounts the period routes behind a middleware that injects the
// given claims, standing in for the JWT authentication layer. A nil claims
// value produces an anonymous request.
func newTestRouter(repo period.Repository, claims *sec.AuthClaims) http.Handler {
	handler := period.NewHandler(period.NewService(repo, slog.New(slog.DiscardHandler)))

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if claims != nil {
				request = request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
			}
			next.ServeHTTP(writer, request)
		})
	})
	router.Mount("/periods", handler.Routes())

	return router
}

func adminClaims() *sec.AuthClaims {
	return &sec.AuthClaims{UserID: "u1", Username: "admin", Role: string(sec.RoleAdmin)}
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	request := httptest.NewRequest(method, path, reader)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

// # Read Endpoints

func TestListPeriods_ReturnsDisplayOrder(t *testing.T) {
	repo := seedPeriods()
	router := newTestRouter(repo, nil)

	recorder := doJSON(t, router, http.MethodGet, "/periods", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	body := decodeBody(t, recorder)
	data, ok := body["data"].([]any)
	require.True(t, ok)
	assert.Len(t, data, 3)

	first, ok := data[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "thoi-ky-bac-thuoc", first["slug"])
	assert.Equal(t, float64(0), first["sortOrder"])
}

func TestListPeriods_EmptyCollection(t *testing.T) {
	router := newTestRouter(newFakeRepository(), nil)

	recorder := doJSON(t, router, http.MethodGet, "/periods", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	// An empty collection is an array on the wire, not null.
	assert.JSONEq(t, `{"data":[]}`, recorder.Body.String())
}

func TestGetPeriodBySlug(t *testing.T) {
	router := newTestRouter(seedPeriods(), nil)

	recorder := doJSON(t, router, http.MethodGet, "/periods/by-slug/nha-tran", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	body := decodeBody(t, recorder)
	data := body["data"].(map[string]any)
	assert.Equal(t, "Nhà Trần", data["name"])
}

func TestGetPeriod_NotFound(t *testing.T) {
	router := newTestRouter(seedPeriods(), nil)

	recorder := doJSON(t, router, http.MethodGet, "/periods/99", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "NOT_FOUND", decodeBody(t, recorder)["code"])
}

// # Authorization

func TestMutations_RequireAuthentication(t *testing.T) {
	router := newTestRouter(seedPeriods(), nil)

	recorder := doJSON(t, router, http.MethodDelete, "/periods/1", nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder = doJSON(t, router, http.MethodPost, "/periods/sort", []int{1, 2, 3})
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestDeletePeriod_RequiresAdminRole(t *testing.T) {
	editor := &sec.AuthClaims{UserID: "u2", Username: "editor", Role: string(sec.RoleEditor)}
	router := newTestRouter(seedPeriods(), editor)

	recorder := doJSON(t, router, http.MethodDelete, "/periods/1", nil)
	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

// # Sort Endpoint

func TestSortPeriods_Success(t *testing.T) {
	repo := seedPeriods()
	router := newTestRouter(repo, adminClaims())

	recorder := doJSON(t, router, http.MethodPost, "/periods/sort", []int{2, 3, 1})
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"success": true}`, recorder.Body.String())

	assert.Equal(t, []int{2, 3, 1}, repo.order)
}

func TestSortPeriods_StaleSnapshot(t *testing.T) {
	repo := seedPeriods()
	router := newTestRouter(repo, adminClaims())

	// A client holding an outdated collection misses period 3.
	recorder := doJSON(t, router, http.MethodPost, "/periods/sort", []int{2, 1})
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeBody(t, recorder)["code"])

	assert.Equal(t, []int{1, 2, 3}, repo.order)
}

func TestSortPeriods_MalformedBody(t *testing.T) {
	router := newTestRouter(seedPeriods(), adminClaims())

	request := httptest.NewRequest(http.MethodPost, "/periods/sort", bytes.NewReader([]byte(`{"ids": "x"}`)))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

// # Deletion Endpoints

func TestDeletePeriod_Clean(t *testing.T) {
	repo := seedPeriods()
	router := newTestRouter(repo, adminClaims())

	recorder := doJSON(t, router, http.MethodDelete, "/periods/3", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"success": true}`, recorder.Body.String())
}

func TestDeletePeriod_ConflictEnvelope(t *testing.T) {
	repo := seedPeriods()
	repo.events[1] = []period.Dependent{
		{ID: 10, Name: "Khởi nghĩa Hai Bà Trưng", Slug: "khoi-nghia-hai-ba-trung"},
	}
	router := newTestRouter(repo, adminClaims())

	recorder := doJSON(t, router, http.MethodDelete, "/periods/1", nil)
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	body := decodeBody(t, recorder)
	assert.Equal(t, "DEPENDENCY_CONFLICT", body["code"])

	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Thời kỳ Bắc thuộc", data["periodName"])

	events := data["events"].([]any)
	require.Len(t, events, 1)
	assert.Equal(t, "khoi-nghia-hai-ba-trung", events[0].(map[string]any)["slug"])

	available := data["availablePeriods"].([]any)
	assert.Len(t, available, 2)
}

func TestReassignPeriod_EndToEnd(t *testing.T) {
	repo := seedPeriods()
	repo.events[1] = []period.Dependent{{ID: 10, Name: "Khởi nghĩa Lam Sơn", Slug: "khoi-nghia-lam-son"}}
	router := newTestRouter(repo, adminClaims())

	recorder := doJSON(t, router, http.MethodPost, "/periods/1/reassign",
		period.ReassignRequest{TargetPeriodID: 3})
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"success": true}`, recorder.Body.String())

	assert.Len(t, repo.events[3], 1)
}

func TestReassignPeriod_SelfTarget(t *testing.T) {
	router := newTestRouter(seedPeriods(), adminClaims())

	recorder := doJSON(t, router, http.MethodPost, "/periods/1/reassign",
		period.ReassignRequest{TargetPeriodID: 1})
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeBody(t, recorder)["code"])
}

func TestPurgePeriod_EndToEnd(t *testing.T) {
	repo := seedPeriods()
	repo.figures[2] = []period.Dependent{{ID: 20, Name: "Trần Hưng Đạo", Slug: "tran-hung-dao"}}
	router := newTestRouter(repo, adminClaims())

	recorder := doJSON(t, router, http.MethodPost, "/periods/2/delete-content", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	_, exists := repo.periods[2]
	assert.False(t, exists)
	assert.Empty(t, repo.figures[2])
}
