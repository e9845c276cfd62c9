// ABOUTME: Export/import codec for the full dataset as a portable JSON document.
// ABOUTME: Exports week-grouped; imports legacy flat arrays and PascalCase names.
package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/trainer/internal/models"
)

// ErrImportFormat reports a document that failed to parse or whose
// fields did not deserialize into the expected shapes. The whole import
// fails; the document is validated in full before any writes happen.
var ErrImportFormat = errors.New("invalid import data format")

// WeeklyCapable is the bucketing capability an activity store may offer.
// Import writes week-keyed documents bucket-by-bucket when the store
// implements it, and falls back to one flat bulk replacement otherwise.
type WeeklyCapable interface {
	SetWeek(weekKey string, activities []models.Activity) error
}

// ActivityCollection is the minimal store surface the codec requires.
type ActivityCollection interface {
	AllActivities() ([]models.Activity, error)
	SetAllActivities([]models.Activity) error
}

// Document is the portable export format. Activities are always grouped
// by week key regardless of how the backing store lays them out.
type Document struct {
	Activities    map[string][]models.Activity `json:"activities"`
	ActivityTypes []models.ActivityType        `json:"activityTypes"`
	ExportDate    time.Time                    `json:"exportDate"`
}

// ExportImport serializes and restores the whole dataset.
type ExportImport struct {
	store  ActivityCollection
	weekly WeeklyCapable // nil when the store has no bucketing capability
	types  *TypeStore
	repo   *ActivityRepository
	now    func() time.Time
}

// NewExportImport creates the codec. Whether the store can write week
// buckets directly is decided here, once, not re-checked per call.
func NewExportImport(store ActivityCollection, types *TypeStore, repo *ActivityRepository) *ExportImport {
	weekly, _ := store.(WeeklyCapable)
	return &ExportImport{
		store:  store,
		weekly: weekly,
		types:  types,
		repo:   repo,
		now:    time.Now,
	}
}

// Export returns the full dataset as an indented JSON document.
func (e *ExportImport) Export() ([]byte, error) {
	activities, err := e.store.AllActivities()
	if err != nil {
		return nil, fmt.Errorf("export activities: %w", err)
	}

	// Activity types keep their on-disk order in the export.
	types, err := e.types.load()
	if err != nil {
		return nil, fmt.Errorf("export activity types: %w", err)
	}

	doc := Document{
		Activities:    groupByWeek(activities),
		ActivityTypes: types,
		ExportDate:    e.now().UTC(),
	}
	return json.MarshalIndent(doc, "", "  ")
}

// Import restores a dataset from JSON. The activities field may be a
// flat array (legacy) or an object keyed by week; both fields are also
// accepted under PascalCase names from older exports. An absent
// activityTypes field leaves stored types untouched. The document is
// parsed and validated in full before anything is written, and the id
// counter is recalculated once after any activity write.
func (e *ExportImport) Import(data []byte) error {
	var doc struct {
		Activities       json.RawMessage `json:"activities"`
		ActivitiesPas    json.RawMessage `json:"Activities"`
		ActivityTypes    json.RawMessage `json:"activityTypes"`
		ActivityTypesPas json.RawMessage `json:"ActivityTypes"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrImportFormat, err)
	}

	activitiesRaw := doc.Activities
	if activitiesRaw == nil {
		activitiesRaw = doc.ActivitiesPas
	}
	typesRaw := doc.ActivityTypes
	if typesRaw == nil {
		typesRaw = doc.ActivityTypesPas
	}

	// Parse every field up front so a malformed document fails before
	// the first write.
	var flat []models.Activity
	var byWeek map[string][]models.Activity
	if activitiesRaw != nil {
		var err error
		flat, byWeek, err = parseActivities(activitiesRaw)
		if err != nil {
			return err
		}
	}

	var types []models.ActivityType
	if typesRaw != nil {
		if err := json.Unmarshal(typesRaw, &types); err != nil {
			return fmt.Errorf("%w: activity types: %v", ErrImportFormat, err)
		}
	}

	imported := false
	switch {
	case byWeek != nil:
		if e.weekly != nil {
			for weekKey, group := range byWeek {
				if err := e.weekly.SetWeek(weekKey, group); err != nil {
					return err
				}
			}
		} else {
			var all []models.Activity
			for _, group := range byWeek {
				all = append(all, group...)
			}
			if err := e.store.SetAllActivities(all); err != nil {
				return err
			}
		}
		imported = true
	case flat != nil:
		if err := e.store.SetAllActivities(flat); err != nil {
			return err
		}
		imported = true
	}

	if types != nil {
		if err := e.types.save(types); err != nil {
			return err
		}
	}

	if imported {
		return e.repo.RecalculateNextID()
	}
	return nil
}

// parseActivities decodes the activities field as either the legacy flat
// array or the current week-keyed object. Exactly one return is non-nil
// on success.
func parseActivities(raw json.RawMessage) ([]models.Activity, map[string][]models.Activity, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, nil, fmt.Errorf("%w: empty activities field", ErrImportFormat)
	}

	if bytes.Equal(trimmed, []byte("null")) {
		return nil, nil, nil
	}

	switch trimmed[0] {
	case '[':
		var flat []models.Activity
		if err := json.Unmarshal(raw, &flat); err != nil {
			return nil, nil, fmt.Errorf("%w: activities: %v", ErrImportFormat, err)
		}
		if flat == nil {
			flat = []models.Activity{}
		}
		return flat, nil, nil
	case '{':
		var byWeek map[string][]models.Activity
		if err := json.Unmarshal(raw, &byWeek); err != nil {
			return nil, nil, fmt.Errorf("%w: activities: %v", ErrImportFormat, err)
		}
		if byWeek == nil {
			byWeek = map[string][]models.Activity{}
		}
		return nil, byWeek, nil
	default:
		return nil, nil, fmt.Errorf("%w: activities must be an array or a week-keyed object", ErrImportFormat)
	}
}
