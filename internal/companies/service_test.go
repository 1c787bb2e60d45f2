package companies

import (
	"context"
	"errors"
	"testing"
)

func f64(v float64) *float64 { return &v }

func TestCreateDefaultsAndValidation(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	company, err := svc.Create(ctx, CreateInput{Name: "  Acme  ", EmployeeCount: 40})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if company.Name != "Acme" {
		t.Fatalf("expected trimmed name, got %q", company.Name)
	}
	if company.Status != StatusActive {
		t.Fatalf("new companies start active, got %s", company.Status)
	}
	if company.ID == "" {
		t.Fatalf("expected generated id")
	}

	if _, err := svc.Create(ctx, CreateInput{Name: "   "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("blank name: expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Create(ctx, CreateInput{Name: "X", EmployeeCount: -1}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("negative count: expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Create(ctx, CreateInput{Name: "X", TopUpPercentage: f64(140)}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("percentage over 100: expected ErrInvalidInput, got %v", err)
	}
}

func TestUpdatePartialFields(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	company, err := svc.Create(ctx, CreateInput{Name: "Acme", ContactEmail: "hr@acme.test"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	pct := f64(80)
	updated, err := svc.Update(ctx, company.ID, UpdateInput{TopUpPercentage: pct})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.TopUpPercentage == nil || *updated.TopUpPercentage != 80 {
		t.Fatalf("expected top-up 80, got %v", updated.TopUpPercentage)
	}
	if updated.Name != "Acme" || updated.ContactEmail != "hr@acme.test" {
		t.Fatalf("unset fields must be untouched, got %+v", updated)
	}

	status := StatusSuspended
	updated, err = svc.Update(ctx, company.ID, UpdateInput{Status: &status})
	if err != nil {
		t.Fatalf("suspend: %v", err)
	}
	if updated.Status != StatusSuspended {
		t.Fatalf("expected suspended, got %s", updated.Status)
	}

	bad := "archived"
	if _, err := svc.Update(ctx, company.ID, UpdateInput{Status: &bad}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unknown status: expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Update(ctx, "missing", UpdateInput{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListClampsLimit(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.Create(ctx, CreateInput{Name: "Co"}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	list, err := svc.List(ctx, 0, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 companies, got %d", len(list))
	}

	list, err = svc.List(ctx, 2, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected limit 2 respected, got %d", len(list))
	}
}
