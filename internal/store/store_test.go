package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/kamecha/denops-translate.vim/internal"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func saveEntry(t *testing.T, s *Store, id, text, translated, errMsg string, at time.Time) {
	t.Helper()
	ctx := context.Background()
	err := s.SaveRequest(ctx, internal.TranslationRequest{
		ID:         id,
		SourceText: text,
		SourceLang: "en",
		TargetLang: "ja",
		Endpoint:   "",
		Timestamp:  at,
	})
	if err != nil {
		t.Fatalf("SaveRequest failed: %v", err)
	}
	if err := s.SaveResult(ctx, id, "google-web", translated, 120, errMsg); err != nil {
		t.Fatalf("SaveResult failed: %v", err)
	}
}

func TestStore_New(t *testing.T) {
	s := newTestStore(t)

	if s == nil {
		t.Fatal("expected non-nil store")
	}
}

func TestStore_New_InvalidPath(t *testing.T) {
	_, err := New("/nonexistent/path/test.db")
	if err == nil {
		t.Error("expected error for invalid path")
	}
}

func TestStore_ListHistory(t *testing.T) {
	s := newTestStore(t)
	now := time.Now()

	saveEntry(t, s, "req-1", "Hello", "こんにちは", "", now.Add(-time.Minute))
	saveEntry(t, s, "req-2", "World", "", "backend down", now)

	entries, err := s.ListHistory(context.Background(), 0)
	if err != nil {
		t.Fatalf("ListHistory failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ID != "req-2" {
		t.Errorf("expected newest first, got %s", entries[0].ID)
	}
	if entries[0].Error != "backend down" {
		t.Errorf("expected error recorded, got %q", entries[0].Error)
	}
	if entries[1].TranslatedText != "こんにちは" || entries[1].ServiceName != "google-web" {
		t.Errorf("unexpected entry %+v", entries[1])
	}
}

func TestStore_ListHistory_Limit(t *testing.T) {
	s := newTestStore(t)
	now := time.Now()

	for i, id := range []string{"a", "b", "c"} {
		saveEntry(t, s, id, "text "+id, "訳 "+id, "", now.Add(time.Duration(i)*time.Second))
	}

	entries, err := s.ListHistory(context.Background(), 2)
	if err != nil {
		t.Fatalf("ListHistory failed: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 entries, got %d", len(entries))
	}
}

func TestStore_NormalizesSourceText(t *testing.T) {
	s := newTestStore(t)

	// "e" followed by a combining acute accent
	saveEntry(t, s, "req-1", "cafe\u0301", "カフェ", "", time.Now())

	entries, err := s.ListHistory(context.Background(), 0)
	if err != nil {
		t.Fatalf("ListHistory failed: %v", err)
	}
	if entries[0].SourceText != "caf\u00e9" {
		t.Errorf("expected NFC text, got %q", entries[0].SourceText)
	}
}

func TestStore_Stats(t *testing.T) {
	s := newTestStore(t)
	now := time.Now()

	saveEntry(t, s, "req-1", "Hello", "こんにちは", "", now)
	saveEntry(t, s, "req-2", "World", "", "backend down", now)

	stats, err := s.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.TotalRequests != 2 || stats.Succeeded != 1 || stats.Failed != 1 {
		t.Errorf("unexpected stats %+v", stats)
	}
	if stats.AvgLatencyMs != 120 {
		t.Errorf("expected average latency 120, got %v", stats.AvgLatencyMs)
	}
}

func TestStore_ClearHistory(t *testing.T) {
	s := newTestStore(t)

	saveEntry(t, s, "req-1", "Hello", "こんにちは", "", time.Now())

	n, err := s.ClearHistory(context.Background())
	if err != nil {
		t.Fatalf("ClearHistory failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 removed, got %d", n)
	}

	entries, err := s.ListHistory(context.Background(), 0)
	if err != nil {
		t.Fatalf("ListHistory failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty history, got %d", len(entries))
	}
}
