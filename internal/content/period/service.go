package period

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dvhoang/vietsu/internal/content/ordering"
	"github.com/dvhoang/vietsu/internal/platform/apperr"
	"github.com/dvhoang/vietsu/internal/platform/validate"
	"github.com/dvhoang/vietsu/pkg/slice"
	"github.com/dvhoang/vietsu/pkg/slug"
)

// # Service Layer

// Service orchestrates the business logic for historical periods, the parent
// classification that events, figures, and sites hang off.
//
// Deletion is the delicate operation here: a period may only disappear once
// every row referencing it has been reassigned or purged, and the store layer
// enforces that atomically so concurrent edits cannot orphan a dependent.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// # Lookups

func (service *Service) ListPeriods(context context.Context) ([]*Period, error) {
	return service.repo.List(context)
}

func (service *Service) GetPeriod(context context.Context, id int) (*Period, error) {
	return service.repo.Get(context, id)
}

func (service *Service) GetPeriodBySlug(context context.Context, slug string) (*Period, error) {
	return service.repo.GetBySlug(context, slug)
}

// # Management

/*
CreatePeriod registers a new historical period.

Description: Validates the display metadata, derives an SEO slug from the
Vietnamese name when none is supplied, and persists the record. The store
appends the new period to the end of the display order.

Parameters:
  - context: context.Context
  - p: *Period (The entity to be persisted)

Returns:
  - error: Validation or persistence errors
*/
func (service *Service) CreatePeriod(context context.Context, p *Period) error {

	// Business attribute validation
	validator := &validate.Validator{}
	validator.Required(FieldName, p.Name).MaxLen(FieldName, p.Name, 200)

	if p.Timeframe != nil {
		validator.MaxLen(FieldTimeframe, *p.Timeframe, 100)
	}

	// Slug generation from the diacritic-bearing name
	if p.Slug == "" {
		p.Slug = slug.From(p.Name)
	}
	validator.Slug(FieldSlug, p.Slug)

	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.Create(context, p); err != nil {
		return err
	}

	service.logger.Info("period_created",
		slog.Int("period_id", p.ID),
		slog.String("slug", p.Slug),
	)

	return nil
}

/*
UpdatePeriod applies modifications to an existing period.

Parameters:
  - context: context.Context
  - p: *Period (Updated attributes, ID set)

Returns:
  - error: Validation or persistence errors
*/
func (service *Service) UpdatePeriod(context context.Context, p *Period) error {

	validator := &validate.Validator{}
	validator.PositiveID("id", p.ID)
	validator.Required(FieldName, p.Name).MaxLen(FieldName, p.Name, 200)

	if p.Timeframe != nil {
		validator.MaxLen(FieldTimeframe, *p.Timeframe, 100)
	}

	if p.Slug == "" {
		p.Slug = slug.From(p.Name)
	}
	validator.Slug(FieldSlug, p.Slug)

	if err := validator.Err(); err != nil {
		return err
	}

	return service.repo.Update(context, p)
}

// # Display Order

/*
ReorderPeriods persists a new display order for the whole collection.

Description: The supplied slice is the complete collection in its new order;
its position index becomes each period's sortOrder. The order is rejected
unless the IDs are distinct and match the stored collection exactly, so a
stale drag-and-drop snapshot can never half-apply.

Parameters:
  - context: context.Context
  - orderedIDs: []int (Every period ID, in the desired display order)

Returns:
  - error: Validation errors for a malformed or stale ordering, or a
    rolled-back transaction failure
*/
func (service *Service) ReorderPeriods(context context.Context, orderedIDs []int) error {
	if err := ordering.ValidateDistinct(orderedIDs); err != nil {
		return err
	}

	if err := service.repo.Reorder(context, orderedIDs); err != nil {
		return err
	}

	service.logger.Info("periods_reordered", slog.Int("count", len(orderedIDs)))

	return nil
}

// # Deletion Guard

/*
DeletePeriod removes a period, refusing while anything still references it.

Description: Scans the events, figures, and sites collections for rows whose
periodId references the target. If any exist, the deletion is blocked and the
returned error carries the full dependent listing plus the other periods
available as reassignment targets. If the scan comes back clean, the store
performs a guarded delete that re-checks dependents in the same statement; a
dependent created in the gap re-blocks the deletion with a fresh listing.

Parameters:
  - context: context.Context
  - id: int

Returns:
  - error: NOT_FOUND if the period does not exist, DEPENDENCY_CONFLICT with
    the resolution payload if rows still reference it, nil on success
*/
func (service *Service) DeletePeriod(context context.Context, id int) error {
	scan, err := service.repo.ScanDependents(context, id)
	if err != nil {
		return err
	}

	if !scan.Dependents.Empty() {
		return service.conflict(scan)
	}

	err = service.repo.Delete(context, id)
	if errors.Is(err, ErrHasDependents) {
		// A dependent appeared between the scan and the delete. Re-scan so
		// the client gets a listing that reflects what actually blocked it.
		scan, scanErr := service.repo.ScanDependents(context, id)
		if scanErr != nil {
			return scanErr
		}
		return service.conflict(scan)
	}
	if err != nil {
		return err
	}

	service.logger.Warn("period_deleted", slog.Int("period_id", id))

	return nil
}

/*
ReassignAndDelete repoints every dependent to another period, then deletes.

Description: This is the non-destructive resolution of a blocked deletion.
All events, figures, and sites referencing the source period are moved to the
target period and the source is deleted, atomically. Content under the target
keeps its own relative order.

Parameters:
  - context: context.Context
  - sourceID: int (The period being deleted)
  - targetID: int (The period inheriting its dependents)

Returns:
  - error: Validation errors for a bad target, NOT_FOUND for a vanished
    source, or a rolled-back transaction failure
*/
func (service *Service) ReassignAndDelete(context context.Context, sourceID, targetID int) error {
	validator := &validate.Validator{}
	validator.PositiveID(FieldTarget, targetID)
	validator.Custom(FieldTarget, targetID == sourceID,
		"Target must differ from the period being deleted")

	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.ReassignAndDelete(context, sourceID, targetID); err != nil {
		return err
	}

	service.logger.Warn("period_reassigned_and_deleted",
		slog.Int("source_period_id", sourceID),
		slog.Int("target_period_id", targetID),
	)

	return nil
}

/*
PurgeAndDelete deletes a period together with everything referencing it.

Description: This is the destructive resolution of a blocked deletion. Every
event, figure, and site whose periodId references the source is deleted, then
the period itself, atomically. The dependent count is logged before the purge
so the audit trail records how much content was removed.

Parameters:
  - context: context.Context
  - id: int

Returns:
  - error: NOT_FOUND if the period does not exist, or a rolled-back
    transaction failure
*/
func (service *Service) PurgeAndDelete(context context.Context, id int) error {
	scan, err := service.repo.ScanDependents(context, id)
	if err != nil {
		return err
	}

	if err := service.repo.PurgeAndDelete(context, id); err != nil {
		return err
	}

	service.logger.Warn("period_purged",
		slog.Int("period_id", id),
		slog.String("period_name", scan.Period.Name),
		slog.Int("dependents_removed", scan.Dependents.Count()),
	)

	return nil
}

// conflict builds the DEPENDENCY_CONFLICT error from a dependency scan.
func (service *Service) conflict(scan *DependencyScan) error {
	dependentSlug := func(d Dependent) string { return d.Slug }
	service.logger.Info("period_delete_blocked",
		slog.Int("period_id", scan.Period.ID),
		slog.Int("dependent_count", scan.Dependents.Count()),
		slog.Any("events", slice.Map(scan.Dependents.Events, dependentSlug)),
		slog.Any("figures", slice.Map(scan.Dependents.Figures, dependentSlug)),
		slog.Any("sites", slice.Map(scan.Dependents.Sites, dependentSlug)),
	)

	// Every group in the payload is an array on the wire, never null, even
	// when the period being deleted is the last one standing.
	available := scan.AvailablePeriods
	if available == nil {
		available = []*Period{}
	}

	return apperr.DependencyConflict(
		"Period cannot be deleted while content still references it",
		ConflictPayload{
			PeriodName:       scan.Period.Name,
			Events:           scan.Dependents.Events,
			Figures:          scan.Dependents.Figures,
			Sites:            scan.Dependents.Sites,
			AvailablePeriods: available,
		},
	)
}
