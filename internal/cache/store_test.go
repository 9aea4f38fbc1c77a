// Platewise - Restaurant Recommendations from Review Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/tomtom215/platewise/internal/recommend"
)

func openTestStore(t *testing.T, memoryEntries int) *Store {
	t.Helper()
	s, err := Open(Config{InMemory: true, TTL: time.Hour, MemoryEntries: memoryEntries})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testEntry(fp, user string) *Entry {
	return &Entry{
		Fingerprint: fp,
		UserID:      user,
		Items: []recommend.Recommendation{
			{ID: "b1", Name: "Sakura", Rating: 4.5, Categories: []string{"Sushi"}, Score: 1},
			{ID: "b2", Name: "Luigi's", Rating: 4, Categories: []string{"Pizza"}, Score: 0},
		},
		Candidates: 2,
	}
}

func TestStore_PutGet(t *testing.T) {
	for _, memoryEntries := range []int{0, 16} {
		s := openTestStore(t, memoryEntries)
		ctx := context.Background()
		key := Key("fp1", "u1")

		if _, ok, err := s.Get(ctx, key); err != nil || ok {
			t.Fatalf("Get() before Put = %v, %v", ok, err)
		}

		if err := s.Put(ctx, key, testEntry("fp1", "u1")); err != nil {
			t.Fatalf("Put() error = %v", err)
		}

		got, ok, err := s.Get(ctx, key)
		if err != nil || !ok {
			t.Fatalf("Get() = %v, %v", ok, err)
		}
		if got.UserID != "u1" || len(got.Items) != 2 || got.Items[0].Name != "Sakura" {
			t.Errorf("Get() = %+v", got)
		}
		if got.CreatedAt.IsZero() {
			t.Error("CreatedAt should be set on Put")
		}
	}
}

func TestStore_ReadsThroughToBadger(t *testing.T) {
	s := openTestStore(t, 4)
	ctx := context.Background()
	key := Key("fp", "u")

	if err := s.Put(ctx, key, testEntry("fp", "u")); err != nil {
		t.Fatal(err)
	}
	s.front.Clear()

	got, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		t.Fatalf("Get() = %v, %v", ok, err)
	}
	if got.Items[1].ID != "b2" {
		t.Errorf("Items = %+v", got.Items)
	}
	if s.front.Len() != 1 {
		t.Error("badger hit should repopulate the LRU")
	}
}

func TestStore_Delete(t *testing.T) {
	s := openTestStore(t, 4)
	ctx := context.Background()
	key := Key("fp", "u")

	if err := s.Put(ctx, key, testEntry("fp", "u")); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, key); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := s.Get(ctx, key); ok {
		t.Error("entry should be gone after Delete")
	}
}

func TestStore_PurgeStale(t *testing.T) {
	s := openTestStore(t, 8)
	ctx := context.Background()

	for _, k := range [][2]string{{"old", "u1"}, {"old", "u2"}, {"new", "u1"}} {
		if err := s.Put(ctx, Key(k[0], k[1]), testEntry(k[0], k[1])); err != nil {
			t.Fatal(err)
		}
	}

	removed, err := s.PurgeStale(ctx, "new")
	if err != nil {
		t.Fatalf("PurgeStale() error = %v", err)
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}
	n, err := s.Len(ctx)
	if err != nil || n != 1 {
		t.Errorf("Len() = %d, %v; want 1", n, err)
	}
	if _, ok, _ := s.Get(ctx, Key("old", "u1")); ok {
		t.Error("stale entry still served")
	}
	if _, ok, _ := s.Get(ctx, Key("new", "u1")); !ok {
		t.Error("current entry was purged")
	}
}

func TestStore_Persistent(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	cfg := Config{Path: dir, TTL: time.Hour, GCDiscardRatio: 0.5}

	s, err := Open(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Put(ctx, Key("fp", "u"), testEntry("fp", "u")); err != nil {
		t.Fatal(err)
	}
	if _, err := s.RunGC(); err != nil {
		t.Errorf("RunGC() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s, err = Open(cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if _, ok, err := s.Get(ctx, Key("fp", "u")); err != nil || !ok {
		t.Errorf("entry lost across reopen: %v, %v", ok, err)
	}
}

func TestStore_Errors(t *testing.T) {
	if _, err := Open(Config{InMemory: true}); err == nil {
		t.Error("Open() with zero TTL should fail")
	}

	s := openTestStore(t, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := s.Get(ctx, "k"); err == nil {
		t.Error("Get() with cancelled context should fail")
	}
	if err := s.Put(ctx, "k", &Entry{}); err == nil {
		t.Error("Put() with cancelled context should fail")
	}

	if rewrote, err := s.RunGC(); err != nil || rewrote {
		t.Errorf("in-memory RunGC() = %v, %v", rewrote, err)
	}
}

func TestKey(t *testing.T) {
	if got := Key("abc", "user-1"); got != "ranking:abc:user-1" {
		t.Errorf("Key() = %q", got)
	}
}
