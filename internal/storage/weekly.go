// ABOUTME: Week-partitioned activity storage over the kv.Store capability.
// ABOUTME: One JSON bucket per ISO week, plus one-time legacy flat migration.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/harperreed/trainer/internal/kv"
	"github.com/harperreed/trainer/internal/models"
	"github.com/harperreed/trainer/internal/week"
)

// legacyActivitiesKey is the pre-partitioning storage key holding every
// activity as one flat JSON array. Migration moves its contents into
// per-week buckets and deletes it.
const legacyActivitiesKey = "activities"

// WeeklyStore partitions activity lists into per-week buckets stored
// under "activities-YYYY.WW" keys. A bucket exists exactly when its week
// has at least one activity; buckets emptied by removals are deleted.
type WeeklyStore struct {
	kv kv.Store

	initMu   sync.Mutex
	migrated bool
}

// NewWeeklyStore wraps a kv.Store with week-partitioned access.
func NewWeeklyStore(store kv.Store) *WeeklyStore {
	return &WeeklyStore{kv: store}
}

// GetWeek reads one week's bucket. A missing bucket yields an empty list.
func (s *WeeklyStore) GetWeek(weekKey string) ([]models.Activity, error) {
	if err := s.ensureMigrated(); err != nil {
		return nil, err
	}

	data, err := s.kv.Get(week.StorageKey(weekKey))
	if err != nil {
		return nil, fmt.Errorf("read week %s: %w", weekKey, err)
	}
	if data == nil {
		return []models.Activity{}, nil
	}

	var activities []models.Activity
	if err := json.Unmarshal(data, &activities); err != nil {
		return nil, fmt.Errorf("decode week %s: %w", weekKey, err)
	}
	return activities, nil
}

// GetWeeks reads the buckets for all requested weeks in one batched
// fetch and returns the flattened activities. Missing buckets
// contribute nothing.
func (s *WeeklyStore) GetWeeks(weekKeys []string) ([]models.Activity, error) {
	if err := s.ensureMigrated(); err != nil {
		return nil, err
	}

	storageKeys := make([]string, len(weekKeys))
	for i, wk := range weekKeys {
		storageKeys[i] = week.StorageKey(wk)
	}

	buckets, err := s.kv.GetMany(storageKeys)
	if err != nil {
		return nil, fmt.Errorf("read weeks: %w", err)
	}

	var all []models.Activity
	for _, key := range storageKeys {
		data, ok := buckets[key]
		if !ok {
			continue
		}
		var activities []models.Activity
		if err := json.Unmarshal(data, &activities); err != nil {
			return nil, fmt.Errorf("decode bucket %s: %w", key, err)
		}
		all = append(all, activities...)
	}
	return all, nil
}

// SetWeek overwrites one week's bucket with the given list.
func (s *WeeklyStore) SetWeek(weekKey string, activities []models.Activity) error {
	if err := s.ensureMigrated(); err != nil {
		return err
	}
	return s.writeWeek(weekKey, activities)
}

// RemoveWeek deletes one week's bucket entirely.
func (s *WeeklyStore) RemoveWeek(weekKey string) error {
	if err := s.ensureMigrated(); err != nil {
		return err
	}
	if err := s.kv.Delete(week.StorageKey(weekKey)); err != nil {
		return fmt.Errorf("remove week %s: %w", weekKey, err)
	}
	return nil
}

// WeekKeys returns the week keys of every bucket with stored activities.
func (s *WeeklyStore) WeekKeys() ([]string, error) {
	if err := s.ensureMigrated(); err != nil {
		return nil, err
	}
	return s.listWeekKeys()
}

// AllActivities reads every bucket and returns the flattened list.
func (s *WeeklyStore) AllActivities() ([]models.Activity, error) {
	weekKeys, err := s.WeekKeys()
	if err != nil {
		return nil, err
	}
	return s.GetWeeks(weekKeys)
}

// SetAllActivities replaces the entire activity collection: the list is
// grouped by week, each group's bucket is written, and buckets for
// weeks no longer represented are deleted rather than left empty.
func (s *WeeklyStore) SetAllActivities(activities []models.Activity) error {
	if err := s.ensureMigrated(); err != nil {
		return err
	}

	existing, err := s.listWeekKeys()
	if err != nil {
		return err
	}
	stale := make(map[string]bool, len(existing))
	for _, wk := range existing {
		stale[wk] = true
	}

	for weekKey, group := range groupByWeek(activities) {
		if err := s.writeWeek(weekKey, group); err != nil {
			return err
		}
		delete(stale, weekKey)
	}

	for weekKey := range stale {
		if err := s.kv.Delete(week.StorageKey(weekKey)); err != nil {
			return fmt.Errorf("remove week %s: %w", weekKey, err)
		}
	}
	return nil
}

// ensureMigrated runs the legacy flat-storage migration at most once per
// process. Concurrent first calls block until the first caller finishes,
// then observe the migrated flag and proceed. Migration errors are
// reported and swallowed so a bad legacy payload cannot wedge startup.
func (s *WeeklyStore) ensureMigrated() error {
	s.initMu.Lock()
	defer s.initMu.Unlock()

	if s.migrated {
		return nil
	}
	if err := s.migrateLegacy(); err != nil {
		fmt.Fprintf(os.Stderr, "trainer: migration from flat storage failed: %v\n", err)
	}
	s.migrated = true
	return nil
}

// migrateLegacy moves a pre-partitioning flat "activities" list into
// per-week buckets and deletes the legacy key. Idempotent: once the key
// is gone the whole operation is a no-op. Activity types already live
// under their final non-partitioned key and need no rewrite.
func (s *WeeklyStore) migrateLegacy() error {
	data, err := s.kv.Get(legacyActivitiesKey)
	if err != nil {
		return fmt.Errorf("read legacy activities: %w", err)
	}
	if data == nil {
		return nil
	}

	var activities []models.Activity
	if err := json.Unmarshal(data, &activities); err != nil {
		return fmt.Errorf("decode legacy activities: %w", err)
	}

	for weekKey, group := range groupByWeek(activities) {
		if err := s.writeWeek(weekKey, group); err != nil {
			return err
		}
	}

	if err := s.kv.Delete(legacyActivitiesKey); err != nil {
		return fmt.Errorf("remove legacy activities: %w", err)
	}
	return nil
}

func (s *WeeklyStore) writeWeek(weekKey string, activities []models.Activity) error {
	data, err := json.Marshal(activities)
	if err != nil {
		return fmt.Errorf("encode week %s: %w", weekKey, err)
	}
	if err := s.kv.Set(week.StorageKey(weekKey), data); err != nil {
		return fmt.Errorf("write week %s: %w", weekKey, err)
	}
	return nil
}

func (s *WeeklyStore) listWeekKeys() ([]string, error) {
	storageKeys, err := s.kv.Keys(week.KeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("list week buckets: %w", err)
	}

	weekKeys := make([]string, 0, len(storageKeys))
	for _, key := range storageKeys {
		wk, err := week.FromStorageKey(key)
		if err != nil {
			return nil, err
		}
		weekKeys = append(weekKeys, wk)
	}
	return weekKeys, nil
}

// groupByWeek buckets activities by the week key of their When.
func groupByWeek(activities []models.Activity) map[string][]models.Activity {
	groups := make(map[string][]models.Activity)
	for _, a := range activities {
		wk := week.Key(a.When)
		groups[wk] = append(groups[wk], a)
	}
	return groups
}
