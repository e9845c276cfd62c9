// ABOUTME: Tests exercising the Store contract against memory and badger.
// ABOUTME: Missing keys return nil without error; prefix scans and batching work.
package kv

import (
	"bytes"
	"testing"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()
	badger, err := OpenBadger(t.TempDir())
	if err != nil {
		t.Fatalf("OpenBadger failed: %v", err)
	}
	t.Cleanup(func() { badger.Close() })
	return map[string]Store{
		"memory": NewMemory(),
		"badger": badger,
	}
}

func TestGetMissingKey(t *testing.T) {
	for name, store := range backends(t) {
		got, err := store.Get("nope")
		if err != nil {
			t.Errorf("%s: Get(missing) error = %v, want nil", name, err)
		}
		if got != nil {
			t.Errorf("%s: Get(missing) = %v, want nil", name, got)
		}
	}
}

func TestSetGetDelete(t *testing.T) {
	for name, store := range backends(t) {
		if err := store.Set("k", []byte("v")); err != nil {
			t.Fatalf("%s: Set failed: %v", name, err)
		}
		got, err := store.Get("k")
		if err != nil {
			t.Fatalf("%s: Get failed: %v", name, err)
		}
		if !bytes.Equal(got, []byte("v")) {
			t.Errorf("%s: Get = %q, want %q", name, got, "v")
		}

		if err := store.Delete("k"); err != nil {
			t.Fatalf("%s: Delete failed: %v", name, err)
		}
		got, err = store.Get("k")
		if err != nil || got != nil {
			t.Errorf("%s: Get after Delete = (%v, %v), want (nil, nil)", name, got, err)
		}
	}
}

func TestDeleteMissingKeyIsNoop(t *testing.T) {
	for name, store := range backends(t) {
		if err := store.Delete("never-set"); err != nil {
			t.Errorf("%s: Delete(missing) error = %v, want nil", name, err)
		}
	}
}

func TestKeysPrefix(t *testing.T) {
	for name, store := range backends(t) {
		for _, k := range []string{"activities-2025.01", "activities-2025.02", "activityTypes", "other"} {
			if err := store.Set(k, []byte("x")); err != nil {
				t.Fatalf("%s: Set failed: %v", name, err)
			}
		}

		keys, err := store.Keys("activities-")
		if err != nil {
			t.Fatalf("%s: Keys failed: %v", name, err)
		}
		if len(keys) != 2 {
			t.Errorf("%s: Keys(activities-) = %v, want 2 entries", name, keys)
		}
		for _, k := range keys {
			if k != "activities-2025.01" && k != "activities-2025.02" {
				t.Errorf("%s: unexpected key %s", name, k)
			}
		}

		all, err := store.Keys("")
		if err != nil {
			t.Fatalf("%s: Keys(\"\") failed: %v", name, err)
		}
		if len(all) != 4 {
			t.Errorf("%s: Keys(\"\") = %v, want 4 entries", name, all)
		}
	}
}

func TestGetMany(t *testing.T) {
	for name, store := range backends(t) {
		if err := store.Set("a", []byte("1")); err != nil {
			t.Fatalf("%s: Set failed: %v", name, err)
		}
		if err := store.Set("b", []byte("2")); err != nil {
			t.Fatalf("%s: Set failed: %v", name, err)
		}

		got, err := store.GetMany([]string{"a", "missing", "b"})
		if err != nil {
			t.Fatalf("%s: GetMany failed: %v", name, err)
		}
		if len(got) != 2 {
			t.Errorf("%s: GetMany = %v, want only present keys", name, got)
		}
		if !bytes.Equal(got["a"], []byte("1")) || !bytes.Equal(got["b"], []byte("2")) {
			t.Errorf("%s: GetMany values wrong: %v", name, got)
		}
	}
}

func TestClear(t *testing.T) {
	for name, store := range backends(t) {
		if err := store.Set("k", []byte("v")); err != nil {
			t.Fatalf("%s: Set failed: %v", name, err)
		}
		if err := store.Clear(); err != nil {
			t.Fatalf("%s: Clear failed: %v", name, err)
		}
		keys, err := store.Keys("")
		if err != nil {
			t.Fatalf("%s: Keys failed: %v", name, err)
		}
		if len(keys) != 0 {
			t.Errorf("%s: Keys after Clear = %v, want empty", name, keys)
		}
	}
}

func TestMemoryCopiesValues(t *testing.T) {
	m := NewMemory()
	v := []byte("original")
	if err := m.Set("k", v); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	v[0] = 'X'

	got, err := m.Get("k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !bytes.Equal(got, []byte("original")) {
		t.Errorf("stored value aliased caller's slice: %q", got)
	}
}

func TestBadgerPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	store, err := OpenBadger(dir)
	if err != nil {
		t.Fatalf("OpenBadger failed: %v", err)
	}
	if err := store.Set("k", []byte("v")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := OpenBadger(dir)
	if err != nil {
		t.Fatalf("OpenBadger (reopen) failed: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Get("k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !bytes.Equal(got, []byte("v")) {
		t.Errorf("Get after reopen = %q, want %q", got, "v")
	}
}
