package period

import "time"

// Period represents a named historical era — the parent classification that
// events, figures, and sites reference.
type Period struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Timeframe   *string   `json:"timeframe"`
	Description *string   `json:"description"`
	Icon        *string   `json:"icon"`
	SortOrder   int       `json:"sortOrder"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Dependent is a summary of a row that references a period. It carries just
// enough for the admin UI to render the conflict listing.
type Dependent struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// DependentSet groups a period's dependents by collection.
type DependentSet struct {
	Events  []Dependent `json:"events"`
	Figures []Dependent `json:"figures"`
	Sites   []Dependent `json:"sites"`
}

// Empty reports whether no row in any collection references the period.
func (s DependentSet) Empty() bool {
	return len(s.Events) == 0 && len(s.Figures) == 0 && len(s.Sites) == 0
}

// Count returns the total number of dependent rows across all collections.
func (s DependentSet) Count() int {
	return len(s.Events) + len(s.Figures) + len(s.Sites)
}

// DependencyScan is the result of scanning a period for dependents.
type DependencyScan struct {
	// Period is the scanned period itself.
	Period *Period

	// Dependents are the rows whose periodId references the scanned period.
	Dependents DependentSet

	// AvailablePeriods lists every other period, in display order, offered
	// as reassignment targets.
	AvailablePeriods []*Period
}

// ConflictPayload is returned (inside the error envelope's data field) when a
// deletion is blocked by live dependents. It contains everything the admin UI
// needs to resolve the conflict without a second round trip.
type ConflictPayload struct {
	PeriodName       string      `json:"periodName"`
	Events           []Dependent `json:"events"`
	Figures          []Dependent `json:"figures"`
	Sites            []Dependent `json:"sites"`
	AvailablePeriods []*Period   `json:"availablePeriods"`
}

// ReassignRequest is the body of POST /periods/{id}/reassign.
type ReassignRequest struct {
	TargetPeriodID int `json:"targetPeriodId"`
}

// Field names for validation
const (
	FieldName      = "name"
	FieldSlug      = "slug"
	FieldTimeframe = "timeframe"
	FieldIcon      = "icon"
	FieldTarget    = "targetPeriodId"
)
