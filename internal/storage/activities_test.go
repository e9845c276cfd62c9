// ABOUTME: Tests for activity CRUD, id counter lifecycle, and cross-week moves.
// ABOUTME: Exercises the repository through the in-memory kv backend.
package storage

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/harperreed/trainer/internal/kv"
	"github.com/harperreed/trainer/internal/models"
)

func setupRepo(t *testing.T) (*ActivityRepository, *kv.Memory) {
	t.Helper()
	store := kv.NewMemory()
	weekly := NewWeeklyStore(store)
	return NewActivityRepository(weekly, store), store
}

func TestAddAssignsSequentialIDs(t *testing.T) {
	repo, store := setupRepo(t)
	when := time.Date(2025, 1, 15, 10, 0, 0, 0, time.Local)

	for want := 1; want <= 3; want++ {
		got, err := repo.Add(models.NewActivity(1, 10).WithWhen(when))
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if got.ID != want {
			t.Errorf("Add assigned id %d, want %d", got.ID, want)
		}
	}

	// Counter is persisted as a JSON integer.
	raw, err := store.Get("activityNextId")
	if err != nil || raw == nil {
		t.Fatalf("counter not persisted: (%v, %v)", raw, err)
	}
	var next int
	if err := json.Unmarshal(raw, &next); err != nil {
		t.Fatalf("counter not a JSON int: %v", err)
	}
	if next != 4 {
		t.Errorf("persisted counter = %d, want 4", next)
	}
}

func TestCounterSurvivesRestart(t *testing.T) {
	repo, store := setupRepo(t)
	when := time.Date(2025, 1, 15, 10, 0, 0, 0, time.Local)

	if _, err := repo.Add(models.NewActivity(1, 10).WithWhen(when)); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	// A fresh repository over the same store picks up the counter.
	repo2 := NewActivityRepository(NewWeeklyStore(store), store)
	got, err := repo2.Add(models.NewActivity(1, 10).WithWhen(when))
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if got.ID != 2 {
		t.Errorf("id after restart = %d, want 2", got.ID)
	}
}

func TestCounterFallsBackToMaxScan(t *testing.T) {
	repo, store := setupRepo(t)
	when := time.Date(2025, 1, 15, 10, 0, 0, 0, time.Local)

	// Activities exist but no counter was ever written.
	weekly := NewWeeklyStore(store)
	if err := weekly.SetWeek("2025.03", []models.Activity{
		{ID: 7, ActivityTypeID: 1, When: when, Amount: 5},
	}); err != nil {
		t.Fatalf("SetWeek failed: %v", err)
	}

	got, err := repo.Add(models.NewActivity(1, 10).WithWhen(when))
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if got.ID != 8 {
		t.Errorf("id from max-scan fallback = %d, want 8", got.ID)
	}
}

func TestCounterIgnoresCorruptPersistedValue(t *testing.T) {
	repo, store := setupRepo(t)
	when := time.Date(2025, 1, 15, 10, 0, 0, 0, time.Local)

	if err := store.Set("activityNextId", []byte(`"garbage"`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := repo.Add(models.NewActivity(1, 10).WithWhen(when))
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if got.ID != 1 {
		t.Errorf("id with corrupt counter = %d, want 1", got.ID)
	}
}

func TestGetReturnsNilForMissingID(t *testing.T) {
	repo, _ := setupRepo(t)

	got, err := repo.Get(42)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Errorf("Get(missing) = %v, want nil", got)
	}
}

func TestListSortsDescending(t *testing.T) {
	repo, _ := setupRepo(t)
	base := time.Date(2025, 1, 15, 10, 0, 0, 0, time.Local)

	for i := 0; i < 3; i++ {
		_, err := repo.Add(models.NewActivity(1, 10).WithWhen(base.Add(time.Duration(i) * time.Hour)))
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	got, err := repo.List(nil, nil)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("List returned %d, want 3", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].When.After(got[i-1].When) {
			t.Errorf("List not sorted descending at index %d", i)
		}
	}
	if got[0].ID != 3 {
		t.Errorf("most recent first: got id %d, want 3", got[0].ID)
	}
}

func TestListRangeReadsOnlyTouchedWeeks(t *testing.T) {
	repo, _ := setupRepo(t)

	jan := time.Date(2025, 1, 15, 10, 0, 0, 0, time.Local)
	mar := time.Date(2025, 3, 12, 10, 0, 0, 0, time.Local)
	if _, err := repo.Add(models.NewActivity(1, 10).WithWhen(jan)); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if _, err := repo.Add(models.NewActivity(1, 20).WithWhen(mar)); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(2025, 3, 31, 0, 0, 0, 0, time.Local)
	got, err := repo.List(&start, &end)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 1 || got[0].Amount != 20 {
		t.Errorf("ranged List = %v, want only the March activity", got)
	}
}

func TestUpdateWithinSameWeek(t *testing.T) {
	repo, _ := setupRepo(t)
	when := time.Date(2025, 1, 15, 10, 0, 0, 0, time.Local)

	added, err := repo.Add(models.NewActivity(1, 10).WithWhen(when))
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	added.Amount = 25
	added.Notes = "more reps"
	if err := repo.Update(added); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := repo.Get(added.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil || got.Amount != 25 || got.Notes != "more reps" {
		t.Errorf("Get after Update = %v, want amount 25 with notes", got)
	}
}

func TestUpdateMovesAcrossWeeks(t *testing.T) {
	repo, store := setupRepo(t)
	janWeek3 := time.Date(2025, 1, 15, 10, 0, 0, 0, time.Local)
	janWeek4 := time.Date(2025, 1, 22, 10, 0, 0, 0, time.Local)

	added, err := repo.Add(models.NewActivity(1, 10).WithWhen(janWeek3))
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	added.When = janWeek4
	if err := repo.Update(added); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	// Old bucket was the activity's only occupant, so it must be gone.
	raw, _ := store.Get("activities-2025.03")
	if raw != nil {
		t.Errorf("emptied source bucket survived cross-week move")
	}

	got, err := repo.Get(added.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil || !got.When.Equal(janWeek4) {
		t.Fatalf("Get after move = %v, want activity in week 04", got)
	}

	// Exactly one copy exists.
	all, err := repo.List(nil, nil)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("List after move has %d activities, want 1", len(all))
	}
}

func TestUpdateMissingIDIsNoop(t *testing.T) {
	repo, _ := setupRepo(t)
	when := time.Date(2025, 1, 15, 10, 0, 0, 0, time.Local)

	err := repo.Update(models.Activity{ID: 99, ActivityTypeID: 1, When: when, Amount: 5})
	if err != nil {
		t.Fatalf("Update(missing) error = %v, want nil", err)
	}

	all, err := repo.List(nil, nil)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("Update(missing) created an activity: %v", all)
	}
}

func TestDeleteRemovesEmptiedBucket(t *testing.T) {
	repo, store := setupRepo(t)
	when := time.Date(2025, 1, 15, 10, 0, 0, 0, time.Local)

	added, err := repo.Add(models.NewActivity(1, 10).WithWhen(when))
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := repo.Delete(added.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	raw, _ := store.Get("activities-2025.03")
	if raw != nil {
		t.Errorf("emptied bucket survived Delete")
	}
}

func TestDeleteKeepsNonEmptyBucket(t *testing.T) {
	repo, _ := setupRepo(t)
	when := time.Date(2025, 1, 15, 10, 0, 0, 0, time.Local)

	first, err := repo.Add(models.NewActivity(1, 10).WithWhen(when))
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if _, err := repo.Add(models.NewActivity(1, 20).WithWhen(when.Add(time.Hour))); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if err := repo.Delete(first.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	all, err := repo.List(nil, nil)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 1 || all[0].Amount != 20 {
		t.Errorf("List after Delete = %v, want just the second activity", all)
	}
}

func TestDeleteMissingIDIsNoop(t *testing.T) {
	repo, _ := setupRepo(t)
	if err := repo.Delete(42); err != nil {
		t.Errorf("Delete(missing) error = %v, want nil", err)
	}
}

func TestListByType(t *testing.T) {
	repo, _ := setupRepo(t)
	when := time.Date(2025, 1, 15, 10, 0, 0, 0, time.Local)

	if _, err := repo.Add(models.NewActivity(1, 10).WithWhen(when)); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if _, err := repo.Add(models.NewActivity(2, 20).WithWhen(when)); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	got, err := repo.ListByType(2)
	if err != nil {
		t.Fatalf("ListByType failed: %v", err)
	}
	if len(got) != 1 || got[0].ActivityTypeID != 2 {
		t.Errorf("ListByType(2) = %v, want one activity of type 2", got)
	}
}

func TestRecalculateNextIDAfterImport(t *testing.T) {
	repo, _ := setupRepo(t)
	when := time.Date(2025, 1, 15, 10, 0, 0, 0, time.Local)

	for i := 0; i < 3; i++ {
		if _, err := repo.Add(models.NewActivity(1, 10).WithWhen(when)); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	// Simulate an import that replaced everything with producer ids.
	imported := []models.Activity{
		{ID: 20, ActivityTypeID: 1, When: when, Amount: 1},
		{ID: 21, ActivityTypeID: 1, When: when, Amount: 2},
		{ID: 22, ActivityTypeID: 1, When: when, Amount: 3},
	}
	if err := repo.weeks.SetAllActivities(imported); err != nil {
		t.Fatalf("SetAllActivities failed: %v", err)
	}
	if err := repo.RecalculateNextID(); err != nil {
		t.Fatalf("RecalculateNextID failed: %v", err)
	}

	got, err := repo.Add(models.NewActivity(1, 10).WithWhen(when))
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if got.ID != 23 {
		t.Errorf("id after recalculate = %d, want 23", got.ID)
	}
}
