package period_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvhoang/vietsu/internal/content/period"
	"github.com/dvhoang/vietsu/internal/platform/apperr"
	"github.com/dvhoang/vietsu/internal/platform/dberr"
	"github.com/dvhoang/vietsu/pkg/pointer"
)

// fakeRepository is an in-memory [period.Repository] for service-level tests.
// Dependents are keyed by the period they reference.
type fakeRepository struct {
	periods map[int]*period.Period
	order   []int
	nextID  int

	events  map[int][]period.Dependent
	figures map[int][]period.Dependent
	sites   map[int][]period.Dependent

	// beforeDelete runs inside Delete before the dependency check, simulating
	// a concurrent writer that sneaks a dependent in after the caller's scan.
	beforeDelete func()

	reorderErr error
}

func newFakeRepository(periods ...*period.Period) *fakeRepository {
	repo := &fakeRepository{
		periods: map[int]*period.Period{},
		events:  map[int][]period.Dependent{},
		figures: map[int][]period.Dependent{},
		sites:   map[int][]period.Dependent{},
		nextID:  1,
	}
	for _, p := range periods {
		repo.periods[p.ID] = p
		repo.order = append(repo.order, p.ID)
		if p.ID >= repo.nextID {
			repo.nextID = p.ID + 1
		}
	}
	return repo
}

func (r *fakeRepository) List(_ context.Context) ([]*period.Period, error) {
	out := make([]*period.Period, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.periods[id])
	}
	return out, nil
}

func (r *fakeRepository) Get(_ context.Context, id int) (*period.Period, error) {
	p, ok := r.periods[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return p, nil
}

func (r *fakeRepository) GetBySlug(_ context.Context, slug string) (*period.Period, error) {
	for _, p := range r.periods {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (r *fakeRepository) Create(_ context.Context, p *period.Period) error {
	p.ID = r.nextID
	r.nextID++
	p.SortOrder = len(r.order)
	r.periods[p.ID] = p
	r.order = append(r.order, p.ID)
	return nil
}

func (r *fakeRepository) Update(_ context.Context, p *period.Period) error {
	if _, ok := r.periods[p.ID]; !ok {
		return dberr.ErrNotFound
	}
	r.periods[p.ID] = p
	return nil
}

func (r *fakeRepository) Delete(_ context.Context, id int) error {
	if r.beforeDelete != nil {
		r.beforeDelete()
	}
	if _, ok := r.periods[id]; !ok {
		return dberr.ErrNotFound
	}
	if len(r.events[id])+len(r.figures[id])+len(r.sites[id]) > 0 {
		return period.ErrHasDependents
	}
	r.removePeriod(id)
	return nil
}

func (r *fakeRepository) Reorder(_ context.Context, orderedIDs []int) error {
	if r.reorderErr != nil {
		return r.reorderErr
	}
	if len(orderedIDs) != len(r.order) {
		return apperr.ValidationError("Ordering must include every record exactly once")
	}
	for _, id := range orderedIDs {
		if _, ok := r.periods[id]; !ok {
			return apperr.ValidationError("Ordering must include every record exactly once")
		}
	}
	r.order = append([]int(nil), orderedIDs...)
	for position, id := range orderedIDs {
		r.periods[id].SortOrder = position
	}
	return nil
}

func (r *fakeRepository) ScanDependents(_ context.Context, id int) (*period.DependencyScan, error) {
	p, ok := r.periods[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	scan := &period.DependencyScan{
		Period: p,
		Dependents: period.DependentSet{
			Events:  append([]period.Dependent{}, r.events[id]...),
			Figures: append([]period.Dependent{}, r.figures[id]...),
			Sites:   append([]period.Dependent{}, r.sites[id]...),
		},
	}
	for _, other := range r.order {
		if other != id {
			scan.AvailablePeriods = append(scan.AvailablePeriods, r.periods[other])
		}
	}
	return scan, nil
}

func (r *fakeRepository) ReassignAndDelete(_ context.Context, sourceID, targetID int) error {
	if _, ok := r.periods[sourceID]; !ok {
		return dberr.ErrNotFound
	}
	if _, ok := r.periods[targetID]; !ok {
		return apperr.ValidationError("Target period does not exist")
	}
	r.events[targetID] = append(r.events[targetID], r.events[sourceID]...)
	r.figures[targetID] = append(r.figures[targetID], r.figures[sourceID]...)
	r.sites[targetID] = append(r.sites[targetID], r.sites[sourceID]...)
	delete(r.events, sourceID)
	delete(r.figures, sourceID)
	delete(r.sites, sourceID)
	r.removePeriod(sourceID)
	return nil
}

func (r *fakeRepository) PurgeAndDelete(_ context.Context, sourceID int) error {
	if _, ok := r.periods[sourceID]; !ok {
		return dberr.ErrNotFound
	}
	delete(r.events, sourceID)
	delete(r.figures, sourceID)
	delete(r.sites, sourceID)
	r.removePeriod(sourceID)
	return nil
}

func (r *fakeRepository) removePeriod(id int) {
	delete(r.periods, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

func newTestService(repo period.Repository) *period.Service {
	return period.NewService(repo, slog.New(slog.DiscardHandler))
}

func seedPeriods() *fakeRepository {
	return newFakeRepository(
		&period.Period{ID: 1, Name: "Thời kỳ Bắc thuộc", Slug: "thoi-ky-bac-thuoc", Timeframe: pointer.To("111 TCN - 938"), SortOrder: 0},
		&period.Period{ID: 2, Name: "Nhà Trần", Slug: "nha-tran", Timeframe: pointer.To("1225 - 1400"), SortOrder: 1},
		&period.Period{ID: 3, Name: "Nhà Lê sơ", Slug: "nha-le-so", Timeframe: pointer.To("1428 - 1527"), SortOrder: 2},
	)
}

// # Creation

func TestCreatePeriod_GeneratesSlug(t *testing.T) {
	repo := seedPeriods()
	service := newTestService(repo)

	p := &period.Period{Name: "Nhà Đinh"}
	require.NoError(t, service.CreatePeriod(context.Background(), p))

	assert.Equal(t, "nha-dinh", p.Slug)
	assert.Equal(t, 3, p.SortOrder)
}

func TestCreatePeriod_RequiresName(t *testing.T) {
	service := newTestService(seedPeriods())

	err := service.CreatePeriod(context.Background(), &period.Period{Name: "  "})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	assert.Equal(t, "name", ae.Details[0].Field)
}

// # Display Order

func TestReorderPeriods_Success(t *testing.T) {
	repo := seedPeriods()
	service := newTestService(repo)

	require.NoError(t, service.ReorderPeriods(context.Background(), []int{3, 1, 2}))

	assert.Equal(t, []int{3, 1, 2}, repo.order)
	assert.Equal(t, 0, repo.periods[3].SortOrder)
	assert.Equal(t, 1, repo.periods[1].SortOrder)
	assert.Equal(t, 2, repo.periods[2].SortOrder)
}

func TestReorderPeriods_RejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		ids  []int
	}{
		{"empty", []int{}},
		{"duplicate", []int{1, 2, 2}},
		{"subset", []int{1, 2}},
		{"foreign_id", []int{1, 2, 99}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := seedPeriods()
			service := newTestService(repo)

			err := service.ReorderPeriods(context.Background(), tt.ids)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)

			// The stored order is untouched.
			assert.Equal(t, []int{1, 2, 3}, repo.order)
		})
	}
}

// # Deletion Guard

func TestDeletePeriod_CleanPeriod(t *testing.T) {
	repo := seedPeriods()
	service := newTestService(repo)

	require.NoError(t, service.DeletePeriod(context.Background(), 2))

	_, ok := repo.periods[2]
	assert.False(t, ok)
}

func TestDeletePeriod_NotFound(t *testing.T) {
	service := newTestService(seedPeriods())

	err := service.DeletePeriod(context.Background(), 99)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}

func TestDeletePeriod_BlockedByDependents(t *testing.T) {
	repo := seedPeriods()
	repo.events[1] = []period.Dependent{
		{ID: 10, Name: "Khởi nghĩa Hai Bà Trưng", Slug: "khoi-nghia-hai-ba-trung"},
	}
	repo.figures[1] = []period.Dependent{
		{ID: 20, Name: "Bà Triệu", Slug: "ba-trieu"},
	}
	service := newTestService(repo)

	err := service.DeletePeriod(context.Background(), 1)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "DEPENDENCY_CONFLICT", ae.Code)
	assert.Equal(t, 400, ae.HTTPStatus)

	payload, ok := ae.Data.(period.ConflictPayload)
	require.True(t, ok)
	assert.Equal(t, "Thời kỳ Bắc thuộc", payload.PeriodName)
	assert.Len(t, payload.Events, 1)
	assert.Len(t, payload.Figures, 1)
	assert.Empty(t, payload.Sites)

	// Reassignment choices exclude the period being deleted.
	require.Len(t, payload.AvailablePeriods, 2)
	for _, available := range payload.AvailablePeriods {
		assert.NotEqual(t, 1, available.ID)
	}

	// The period itself survives.
	_, exists := repo.periods[1]
	assert.True(t, exists)
}

func TestDeletePeriod_BlockedLastRemainingPeriod(t *testing.T) {
	repo := newFakeRepository(
		&period.Period{ID: 1, Name: "Nhà Trần", Slug: "nha-tran", SortOrder: 0},
	)
	repo.events[1] = []period.Dependent{
		{ID: 10, Name: "Kháng chiến chống Nguyên Mông", Slug: "khang-chien-chong-nguyen-mong"},
	}
	service := newTestService(repo)

	err := service.DeletePeriod(context.Background(), 1)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "DEPENDENCY_CONFLICT", ae.Code)

	payload, ok := ae.Data.(period.ConflictPayload)
	require.True(t, ok)

	// No reassignment choices exist, but the wire shape stays an array.
	require.NotNil(t, payload.AvailablePeriods)
	assert.Empty(t, payload.AvailablePeriods)

	encoded, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"availablePeriods":[]`)
}

func TestDeletePeriod_DependentAppearsAfterScan(t *testing.T) {
	repo := seedPeriods()
	repo.beforeDelete = func() {
		repo.sites[2] = []period.Dependent{
			{ID: 30, Name: "Thành nhà Hồ", Slug: "thanh-nha-ho"},
		}
	}
	service := newTestService(repo)

	err := service.DeletePeriod(context.Background(), 2)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "DEPENDENCY_CONFLICT", ae.Code)

	// The conflict listing reflects the late-arriving dependent.
	payload, ok := ae.Data.(period.ConflictPayload)
	require.True(t, ok)
	require.Len(t, payload.Sites, 1)
	assert.Equal(t, "Thành nhà Hồ", payload.Sites[0].Name)

	_, exists := repo.periods[2]
	assert.True(t, exists)
}

// # Reassignment

func TestReassignAndDelete_MovesDependents(t *testing.T) {
	repo := seedPeriods()
	repo.events[1] = []period.Dependent{{ID: 10, Name: "Khởi nghĩa Lam Sơn", Slug: "khoi-nghia-lam-son"}}
	repo.sites[1] = []period.Dependent{{ID: 30, Name: "Cố đô Hoa Lư", Slug: "co-do-hoa-lu"}}
	service := newTestService(repo)

	require.NoError(t, service.ReassignAndDelete(context.Background(), 1, 3))

	_, exists := repo.periods[1]
	assert.False(t, exists)
	assert.Len(t, repo.events[3], 1)
	assert.Len(t, repo.sites[3], 1)
}

func TestReassignAndDelete_RejectsSelfTarget(t *testing.T) {
	repo := seedPeriods()
	service := newTestService(repo)

	err := service.ReassignAndDelete(context.Background(), 1, 1)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	assert.Equal(t, "targetPeriodId", ae.Details[0].Field)

	_, exists := repo.periods[1]
	assert.True(t, exists)
}

func TestReassignAndDelete_RejectsMissingTarget(t *testing.T) {
	service := newTestService(seedPeriods())

	err := service.ReassignAndDelete(context.Background(), 1, 0)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	err = service.ReassignAndDelete(context.Background(), 1, 99)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

// # Cascade Purge

func TestPurgeAndDelete_RemovesEverything(t *testing.T) {
	repo := seedPeriods()
	repo.events[2] = []period.Dependent{{ID: 10, Name: "Trận Bạch Đằng", Slug: "tran-bach-dang"}}
	repo.figures[2] = []period.Dependent{{ID: 20, Name: "Trần Hưng Đạo", Slug: "tran-hung-dao"}}
	service := newTestService(repo)

	require.NoError(t, service.PurgeAndDelete(context.Background(), 2))

	_, exists := repo.periods[2]
	assert.False(t, exists)
	assert.Empty(t, repo.events[2])
	assert.Empty(t, repo.figures[2])
}

func TestPurgeAndDelete_NotFound(t *testing.T) {
	service := newTestService(seedPeriods())

	err := service.PurgeAndDelete(context.Background(), 99)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

// # Transaction Failures

type failingRepository struct {
	*fakeRepository
}

func (r *failingRepository) ReassignAndDelete(context.Context, int, int) error {
	return apperr.TransactionFailure(errors.New("deadlock detected"))
}

func TestReassignAndDelete_TransactionFailure(t *testing.T) {
	repo := seedPeriods()
	service := newTestService(&failingRepository{repo})

	err := service.ReassignAndDelete(context.Background(), 1, 2)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "TRANSACTION_FAILURE", ae.Code)
	assert.Equal(t, 500, ae.HTTPStatus)

	// Nothing moved, nothing deleted.
	_, exists := repo.periods[1]
	assert.True(t, exists)
}
