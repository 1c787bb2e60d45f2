package users

import (
	"context"
	"errors"
	"testing"

	sharedauth "leavepilot-backend/internal/shared/auth"
)

func TestUpsertFromAuthDefaultsToHRAdmin(t *testing.T) {
	t.Setenv("SUPERADMIN_EMAILS", "")
	svc := NewService(NewMemoryRepo())

	admin, err := svc.UpsertFromAuth(context.Background(), Admin{ID: "google:1", Email: "pat@acme.test", Name: "Pat"})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if admin.Role != sharedauth.RoleHRAdmin {
		t.Fatalf("expected hr_admin default, got %s", admin.Role)
	}
	if admin.LastLoginAt == nil {
		t.Fatalf("expected last login stamped")
	}
}

func TestUpsertFromAuthSuperadminAllowlist(t *testing.T) {
	t.Setenv("SUPERADMIN_EMAILS", "root@leavepilot.test, Ops@Leavepilot.Test")
	svc := NewService(NewMemoryRepo())

	admin, err := svc.UpsertFromAuth(context.Background(), Admin{ID: "google:2", Email: "ops@leavepilot.test"})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if admin.Role != sharedauth.RoleSuperadmin {
		t.Fatalf("allowlisted email should be superadmin, got %s", admin.Role)
	}
}

func TestUpsertKeepsAssignedRoleAndScope(t *testing.T) {
	t.Setenv("SUPERADMIN_EMAILS", "")
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	admin, err := svc.UpsertFromAuth(ctx, Admin{ID: "google:3", Email: "pat@acme.test"})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	companyID := "co-1"
	if _, err := svc.Assign(ctx, admin.ID, sharedauth.RoleHRAdmin, &companyID); err != nil {
		t.Fatalf("assign: %v", err)
	}

	// A later login must not wipe the assigned company scope.
	again, err := svc.UpsertFromAuth(ctx, Admin{ID: "google:3", Email: "pat@acme.test", Name: "Pat R."})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if again.CompanyID == nil || *again.CompanyID != "co-1" {
		t.Fatalf("company scope must survive re-login, got %v", again.CompanyID)
	}
	if again.Name != "Pat R." {
		t.Fatalf("profile fields refresh on login, got %q", again.Name)
	}
}

func TestAssignSuperadminClearsScope(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	admin, err := svc.UpsertFromAuth(ctx, Admin{ID: "google:4", Email: "pat@acme.test"})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	companyID := "co-1"
	if _, err := svc.Assign(ctx, admin.ID, sharedauth.RoleHRAdmin, &companyID); err != nil {
		t.Fatalf("assign: %v", err)
	}

	promoted, err := svc.Assign(ctx, admin.ID, sharedauth.RoleSuperadmin, &companyID)
	if err != nil {
		t.Fatalf("promote: %v", err)
	}
	if promoted.CompanyID != nil {
		t.Fatalf("superadmins are unscoped, got %v", *promoted.CompanyID)
	}

	if _, err := svc.Assign(ctx, admin.ID, "owner", nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unknown role: expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Assign(ctx, "missing", sharedauth.RoleHRAdmin, nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
