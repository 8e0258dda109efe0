package period

import (
	"context"
	"errors"
)

// ErrHasDependents is returned by [Repository.Delete] when the guarded delete
// finds dependents that appeared after the caller's scan. The caller should
// re-scan and report the fresh conflict listing.
var ErrHasDependents = errors.New("period still has dependents")

type Repository interface {
	List(context context.Context) ([]*Period, error)
	Get(context context.Context, id int) (*Period, error)
	GetBySlug(context context.Context, slug string) (*Period, error)
	Create(context context.Context, p *Period) error
	Update(context context.Context, p *Period) error

	// Delete removes a dependency-free period. It returns [ErrHasDependents]
	// if any row still references the period, and never deletes in that case.
	Delete(context context.Context, id int) error

	// Reorder rewrites sortOrder for the whole collection to match orderedIDs.
	Reorder(context context.Context, orderedIDs []int) error

	// ScanDependents is a pure read of the rows referencing the period, plus
	// the other periods available as reassignment targets.
	ScanDependents(context context.Context, id int) (*DependencyScan, error)

	// ReassignAndDelete atomically repoints every dependent from sourceID to
	// targetID and deletes the source period.
	ReassignAndDelete(context context.Context, sourceID, targetID int) error

	// PurgeAndDelete atomically deletes every dependent of sourceID and then
	// the source period itself.
	PurgeAndDelete(context context.Context, sourceID int) error
}
