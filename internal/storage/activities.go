// ABOUTME: Activity repository: CRUD and range queries over weekly buckets.
// ABOUTME: Owns the persisted monotonic id counter and cross-week moves.
package storage

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/harperreed/trainer/internal/kv"
	"github.com/harperreed/trainer/internal/models"
	"github.com/harperreed/trainer/internal/week"
)

// nextIDKey persists the "next id to assign" counter as a JSON integer.
const nextIDKey = "activityNextId"

// ActivityRepository implements activity semantics on top of WeeklyStore.
//
// The read-modify-write sequences in Add/Update/Delete are not locked
// against each other: if two such calls race on the same week bucket the
// later write wins and the earlier mutation is lost. The tracker is a
// single-user, one-interaction-at-a-time tool, so this is accepted
// rather than paid for with bucket-level locking.
type ActivityRepository struct {
	weeks *WeeklyStore
	kv    kv.Store

	nextID      int
	initialized bool
}

// NewActivityRepository creates a repository over the given weekly store.
// The id counter initializes lazily on first use, or explicitly via
// RecalculateNextID.
func NewActivityRepository(weeks *WeeklyStore, store kv.Store) *ActivityRepository {
	return &ActivityRepository{weeks: weeks, kv: store, nextID: 1}
}

// List returns activities sorted by When descending. When start or end
// is non-nil the query is restricted to the week buckets touched by the
// range; otherwise every bucket is read.
func (r *ActivityRepository) List(start, end *time.Time) ([]models.Activity, error) {
	var activities []models.Activity
	var err error

	if start != nil || end != nil {
		// Open-ended bounds default to a century on the missing side,
		// which keeps the day-by-day week walk finite.
		to := time.Now().AddDate(100, 0, 0)
		if end != nil {
			to = *end
		}
		from := to.AddDate(-200, 0, 0)
		if start != nil {
			from = *start
		}
		activities, err = r.weeks.GetWeeks(week.KeysInRange(from, to))
	} else {
		activities, err = r.weeks.AllActivities()
	}
	if err != nil {
		return nil, err
	}

	if err := r.ensureNextID(); err != nil {
		return nil, err
	}

	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].When.After(activities[j].When)
	})
	return activities, nil
}

// Get returns the activity with the given id, or nil if none exists.
func (r *ActivityRepository) Get(id int) (*models.Activity, error) {
	activities, err := r.List(nil, nil)
	if err != nil {
		return nil, err
	}
	for i := range activities {
		if activities[i].ID == id {
			return &activities[i], nil
		}
	}
	return nil, nil
}

// Add assigns the next id, persists the incremented counter, and appends
// the activity to its week bucket. Returns the activity with its id set.
func (r *ActivityRepository) Add(activity models.Activity) (models.Activity, error) {
	if err := r.ensureNextID(); err != nil {
		return models.Activity{}, err
	}

	activity.ID = r.nextID
	r.nextID++
	if err := r.persistNextID(); err != nil {
		return models.Activity{}, err
	}

	weekKey := week.Key(activity.When)
	bucket, err := r.weeks.GetWeek(weekKey)
	if err != nil {
		return models.Activity{}, err
	}
	bucket = append(bucket, activity)
	if err := r.weeks.SetWeek(weekKey, bucket); err != nil {
		return models.Activity{}, err
	}
	return activity, nil
}

// Update replaces the stored activity with the same id. A missing id is
// a silent no-op. If When moved across a week boundary the activity is
// removed from its old bucket (deleting the bucket if now empty) and
// placed in the new one exactly once.
func (r *ActivityRepository) Update(activity models.Activity) error {
	existing, err := r.Get(activity.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return nil
	}

	oldWeek := week.Key(existing.When)
	newWeek := week.Key(activity.When)

	if oldWeek == newWeek {
		bucket, err := r.weeks.GetWeek(oldWeek)
		if err != nil {
			return err
		}
		bucket = removeByID(bucket, activity.ID)
		bucket = append(bucket, activity)
		return r.weeks.SetWeek(oldWeek, bucket)
	}

	oldBucket, err := r.weeks.GetWeek(oldWeek)
	if err != nil {
		return err
	}
	oldBucket = removeByID(oldBucket, activity.ID)
	if len(oldBucket) == 0 {
		if err := r.weeks.RemoveWeek(oldWeek); err != nil {
			return err
		}
	} else {
		if err := r.weeks.SetWeek(oldWeek, oldBucket); err != nil {
			return err
		}
	}

	newBucket, err := r.weeks.GetWeek(newWeek)
	if err != nil {
		return err
	}
	newBucket = removeByID(newBucket, activity.ID)
	newBucket = append(newBucket, activity)
	return r.weeks.SetWeek(newWeek, newBucket)
}

// Delete removes the activity with the given id from its week bucket,
// deleting the bucket when it empties. A missing id is a silent no-op.
func (r *ActivityRepository) Delete(id int) error {
	existing, err := r.Get(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return nil
	}

	weekKey := week.Key(existing.When)
	bucket, err := r.weeks.GetWeek(weekKey)
	if err != nil {
		return err
	}
	bucket = removeByID(bucket, id)
	if len(bucket) == 0 {
		return r.weeks.RemoveWeek(weekKey)
	}
	return r.weeks.SetWeek(weekKey, bucket)
}

// ListByType returns all activities with the given activity type id,
// sorted by When descending.
func (r *ActivityRepository) ListByType(activityTypeID int) ([]models.Activity, error) {
	activities, err := r.List(nil, nil)
	if err != nil {
		return nil, err
	}

	var filtered []models.Activity
	for _, a := range activities {
		if a.ActivityTypeID == activityTypeID {
			filtered = append(filtered, a)
		}
	}
	return filtered, nil
}

// WeekKeys returns the week keys that currently have stored activities.
func (r *ActivityRepository) WeekKeys() ([]string, error) {
	return r.weeks.WeekKeys()
}

// RecalculateNextID rescans all stored activities and resets the counter
// to max id + 1 (or 1 when empty), persisting the result. Must run after
// any bulk import: imported records carry producer-controlled ids the
// in-memory counter has never seen, and skipping the rescan makes future
// Add calls collide with them.
func (r *ActivityRepository) RecalculateNextID() error {
	activities, err := r.weeks.AllActivities()
	if err != nil {
		return err
	}

	r.nextID = maxID(activities) + 1
	if err := r.persistNextID(); err != nil {
		return err
	}
	r.initialized = true
	return nil
}

// ensureNextID lazily initializes the counter: the persisted value when
// present and positive, else max stored id + 1, else 1. The result is
// persisted immediately so the fallback scan runs at most once.
func (r *ActivityRepository) ensureNextID() error {
	if r.initialized {
		return nil
	}

	data, err := r.kv.Get(nextIDKey)
	if err != nil {
		return fmt.Errorf("read id counter: %w", err)
	}
	if data != nil {
		var stored int
		if err := json.Unmarshal(data, &stored); err == nil && stored > 0 {
			r.nextID = stored
			r.initialized = true
			return nil
		}
	}

	return r.RecalculateNextID()
}

func (r *ActivityRepository) persistNextID() error {
	data, err := json.Marshal(r.nextID)
	if err != nil {
		return fmt.Errorf("encode id counter: %w", err)
	}
	if err := r.kv.Set(nextIDKey, data); err != nil {
		return fmt.Errorf("write id counter: %w", err)
	}
	return nil
}

func removeByID(activities []models.Activity, id int) []models.Activity {
	kept := activities[:0]
	for _, a := range activities {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	return kept
}

func maxID(activities []models.Activity) int {
	max := 0
	for _, a := range activities {
		if a.ID > max {
			max = a.ID
		}
	}
	return max
}
