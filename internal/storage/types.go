// ABOUTME: Flat CRUD store for activity types under a single storage key.
// ABOUTME: Reads sort by name; writes preserve on-disk insertion order.
package storage

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/harperreed/trainer/internal/kv"
	"github.com/harperreed/trainer/internal/models"
)

// activityTypesKey holds the full activity type list as one JSON array.
const activityTypesKey = "activityTypes"

// TypeStore is flat, non-partitioned CRUD over the activity type list.
// Unlike the activity repository it keeps no persisted id counter: the
// next id is re-derived from the stored list's max id on every write.
type TypeStore struct {
	kv kv.Store
}

// NewTypeStore creates a TypeStore over the given kv store.
func NewTypeStore(store kv.Store) *TypeStore {
	return &TypeStore{kv: store}
}

// List returns all activity types sorted by name ascending. Ties keep
// their stored relative order.
func (s *TypeStore) List() ([]models.ActivityType, error) {
	types, err := s.load()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(types, func(i, j int) bool {
		return types[i].Name < types[j].Name
	})
	return types, nil
}

// Get returns the activity type with the given id, or nil if none exists.
func (s *TypeStore) Get(id int) (*models.ActivityType, error) {
	types, err := s.load()
	if err != nil {
		return nil, err
	}
	for i := range types {
		if types[i].ID == id {
			return &types[i], nil
		}
	}
	return nil, nil
}

// GetByName returns the activity type with the given name, or nil.
func (s *TypeStore) GetByName(name string) (*models.ActivityType, error) {
	types, err := s.load()
	if err != nil {
		return nil, err
	}
	for i := range types {
		if types[i].Name == name {
			return &types[i], nil
		}
	}
	return nil, nil
}

// Add assigns max stored id + 1 (or 1 when empty) and appends the type
// to the end of the stored list, preserving insertion order on disk.
func (s *TypeStore) Add(t models.ActivityType) (models.ActivityType, error) {
	types, err := s.load()
	if err != nil {
		return models.ActivityType{}, err
	}

	nextID := 1
	for _, existing := range types {
		if existing.ID >= nextID {
			nextID = existing.ID + 1
		}
	}
	t.ID = nextID

	types = append(types, t)
	if err := s.save(types); err != nil {
		return models.ActivityType{}, err
	}
	return t, nil
}

// Update replaces the stored type with the same id in place, keeping its
// position in the list. A missing id is a silent no-op.
func (s *TypeStore) Update(t models.ActivityType) error {
	types, err := s.load()
	if err != nil {
		return err
	}
	for i := range types {
		if types[i].ID == t.ID {
			types[i] = t
			return s.save(types)
		}
	}
	return nil
}

// Delete removes the type with the given id. A missing id is a silent
// no-op that still rewrites the list.
func (s *TypeStore) Delete(id int) error {
	types, err := s.load()
	if err != nil {
		return err
	}

	kept := types[:0]
	for _, t := range types {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	return s.save(kept)
}

// load reads the stored list in its on-disk order.
func (s *TypeStore) load() ([]models.ActivityType, error) {
	data, err := s.kv.Get(activityTypesKey)
	if err != nil {
		return nil, fmt.Errorf("read activity types: %w", err)
	}
	if data == nil {
		return []models.ActivityType{}, nil
	}

	var types []models.ActivityType
	if err := json.Unmarshal(data, &types); err != nil {
		return nil, fmt.Errorf("decode activity types: %w", err)
	}
	return types, nil
}

func (s *TypeStore) save(types []models.ActivityType) error {
	data, err := json.Marshal(types)
	if err != nil {
		return fmt.Errorf("encode activity types: %w", err)
	}
	if err := s.kv.Set(activityTypesKey, data); err != nil {
		return fmt.Errorf("write activity types: %w", err)
	}
	return nil
}
