package audit

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestRecordAndList(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	svc.Record(ctx, "admin-1", "co-1", "company.update", "company", "co-1", map[string]any{"field": "status"})
	svc.Record(ctx, "admin-1", "co-2", "company.create", "company", "co-2", nil)

	events, err := svc.List(ctx, "", 0, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	// Newest first.
	if events[0].Action != "company.create" {
		t.Fatalf("expected newest-first ordering, got %s", events[0].Action)
	}

	scoped, err := svc.List(ctx, "co-1", 0, 0)
	if err != nil {
		t.Fatalf("scoped list: %v", err)
	}
	if len(scoped) != 1 || scoped[0].Action != "company.update" {
		t.Fatalf("expected only co-1 events, got %+v", scoped)
	}

	var detail map[string]string
	if err := json.Unmarshal(scoped[0].Detail, &detail); err != nil {
		t.Fatalf("decode detail: %v", err)
	}
	if detail["field"] != "status" {
		t.Fatalf("unexpected detail: %v", detail)
	}
}

type failingAppendRepo struct{ MemoryRepo }

func (f *failingAppendRepo) Append(ctx context.Context, event Event) error {
	return errors.New("append failed")
}

func TestRecordNeverPropagatesFailure(t *testing.T) {
	svc := NewService(&failingAppendRepo{})
	// Must not panic or surface the error.
	svc.Record(context.Background(), "admin-1", "co-1", "company.update", "company", "co-1", nil)

	var nilSvc *Service
	nilSvc.Record(context.Background(), "a", "c", "x", "y", "z", nil)
}
