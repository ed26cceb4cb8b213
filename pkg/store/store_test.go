package store

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/daviddao/leapsec/pkg/date"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("New(%q): %v", dbPath, err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// testRecord builds a record for the given update day; the compact form
// is synthetic but distinct per day.
func testRecord(updated date.MJD) *Record {
	return &Record{
		Source:  "https://example.com/leap-seconds.list",
		Updated: updated,
		Expires: updated + 180,
		Compact: "6+6+12?",
		Body:    []byte("#$\t0\n"),
	}
}

func TestSaveAndLatest(t *testing.T) {
	s := newTestStore(t)
	rec := testRecord(59000)
	rec.Compact = "6+6+59?"
	rec.Body = []byte("file body\n")

	id, err := s.Save(rec)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if id <= 0 {
		t.Fatalf("Save returned id %d, want > 0", id)
	}

	got, err := s.Latest()
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if got == nil {
		t.Fatal("Latest returned nil for non-empty cache")
	}
	if got.Updated != 59000 || got.Compact != "6+6+59?" {
		t.Fatalf("record mismatch: %+v", got)
	}
	if !bytes.Equal(got.Body, []byte("file body\n")) {
		t.Fatalf("body mismatch: %q", got.Body)
	}
	if got.FetchedAt.IsZero() {
		t.Fatal("FetchedAt not set")
	}
}

func TestLatest_Empty(t *testing.T) {
	s := newTestStore(t)
	got, err := s.Latest()
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if got != nil {
		t.Fatalf("empty cache: Latest = %+v, want nil", got)
	}
}

func TestSave_DeduplicatesSameVersion(t *testing.T) {
	s := newTestStore(t)
	id1, err := s.Save(testRecord(59000))
	if err != nil {
		t.Fatal(err)
	}

	// Same update day and compact form fetched again from elsewhere.
	again := testRecord(59000)
	again.Source = "file:/tmp/leap-seconds.list"
	id2, err := s.Save(again)
	if err != nil {
		t.Fatal(err)
	}

	if id1 != id2 {
		t.Fatalf("duplicate save: ids %d and %d, want same row", id1, id2)
	}
	if c := s.Count(); c != 1 {
		t.Fatalf("Count = %d, want 1", c)
	}
	got, err := s.Latest()
	if err != nil {
		t.Fatal(err)
	}
	if got.Source != "file:/tmp/leap-seconds.list" {
		t.Fatalf("source not refreshed: %q", got.Source)
	}
}

func TestSave_NewVersionInserts(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Save(testRecord(59000)); err != nil {
		t.Fatal(err)
	}
	newer := testRecord(59180)
	newer.Compact = "6+6+12+12?"
	if _, err := s.Save(newer); err != nil {
		t.Fatal(err)
	}

	if c := s.Count(); c != 2 {
		t.Fatalf("Count = %d, want 2", c)
	}
	got, err := s.Latest()
	if err != nil {
		t.Fatal(err)
	}
	if got.Updated != 59180 {
		t.Fatalf("Latest.Updated = %d, want 59180", got.Updated)
	}
}

func TestGet(t *testing.T) {
	s := newTestStore(t)
	id, err := s.Save(testRecord(59000))
	if err != nil {
		t.Fatal(err)
	}

	got, err := s.Get(id)
	if err != nil {
		t.Fatalf("Get(%d): %v", id, err)
	}
	if got.ID != id || got.Updated != 59000 {
		t.Fatalf("record mismatch: %+v", got)
	}

	if _, err := s.Get(id + 100); err == nil {
		t.Fatal("expected error for missing record")
	}
}

func TestList_NewestFirst(t *testing.T) {
	s := newTestStore(t)
	for _, day := range []date.MJD{59000, 59360, 59180} {
		if _, err := s.Save(testRecord(day)); err != nil {
			t.Fatal(err)
		}
	}

	recs, err := s.List(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 3 {
		t.Fatalf("got %d records, want 3", len(recs))
	}
	if recs[0].Updated != 59360 || recs[1].Updated != 59180 || recs[2].Updated != 59000 {
		t.Fatalf("not newest first: %d, %d, %d", recs[0].Updated, recs[1].Updated, recs[2].Updated)
	}

	recs, err = s.List(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records with limit=2, want 2", len(recs))
	}
}

func TestCount_Empty(t *testing.T) {
	s := newTestStore(t)
	if c := s.Count(); c != 0 {
		t.Fatalf("empty cache: Count = %d, want 0", c)
	}
}

func TestPrune(t *testing.T) {
	s := newTestStore(t)
	for _, day := range []date.MJD{59000, 59180, 59360} {
		if _, err := s.Save(testRecord(day)); err != nil {
			t.Fatal(err)
		}
	}

	deleted, err := s.Prune(1)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("deleted %d rows, want 2", deleted)
	}
	got, err := s.Latest()
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.Updated != 59360 {
		t.Fatalf("newest record should survive pruning, got %+v", got)
	}
}

func TestPrune_KeepsAtLeastOne(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Save(testRecord(59000)); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Prune(0); err != nil {
		t.Fatal(err)
	}
	if c := s.Count(); c != 1 {
		t.Fatalf("Prune(0) should keep one record, Count = %d", c)
	}
}

func TestSave_PreservesFetchedAt(t *testing.T) {
	s := newTestStore(t)
	rec := testRecord(59000)
	rec.FetchedAt = time.Date(2021, 3, 1, 12, 0, 0, 0, time.UTC)
	if _, err := s.Save(rec); err != nil {
		t.Fatal(err)
	}
	got, err := s.Latest()
	if err != nil {
		t.Fatal(err)
	}
	if !got.FetchedAt.Equal(rec.FetchedAt) {
		t.Fatalf("FetchedAt = %v, want %v", got.FetchedAt, rec.FetchedAt)
	}
}
