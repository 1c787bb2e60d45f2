package users

import (
	"context"
	"os"
	"strings"

	sharedauth "leavepilot-backend/internal/shared/auth"
)

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// UpsertFromAuth persists the admin identity from OAuth and returns the
// stored account, including the role and company scope a superadmin may have
// assigned earlier. New accounts default to hr_admin unless the email is on
// the SUPERADMIN_EMAILS allowlist.
func (s *Service) UpsertFromAuth(ctx context.Context, admin Admin) (Admin, error) {
	if strings.TrimSpace(admin.ID) == "" || strings.TrimSpace(admin.Email) == "" {
		return Admin{}, ErrInvalidInput
	}
	if admin.Role == "" {
		admin.Role = sharedauth.RoleHRAdmin
		if superadminEmail(admin.Email) {
			admin.Role = sharedauth.RoleSuperadmin
		}
	}
	return s.Repo.Upsert(ctx, admin)
}

func (s *Service) GetByID(ctx context.Context, adminID string) (Admin, error) {
	if strings.TrimSpace(adminID) == "" {
		return Admin{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, adminID)
}

// Assign sets an admin's role and company scope.
func (s *Service) Assign(ctx context.Context, adminID, role string, companyID *string) (Admin, error) {
	switch role {
	case sharedauth.RoleHRAdmin, sharedauth.RoleSuperadmin:
	default:
		return Admin{}, ErrInvalidInput
	}
	admin, err := s.GetByID(ctx, adminID)
	if err != nil {
		return Admin{}, err
	}
	admin.Role = role
	admin.CompanyID = companyID
	if role == sharedauth.RoleSuperadmin {
		admin.CompanyID = nil
	}
	if err := s.Repo.Update(ctx, admin); err != nil {
		return Admin{}, err
	}
	return admin, nil
}

func superadminEmail(email string) bool {
	raw := os.Getenv("SUPERADMIN_EMAILS")
	for _, candidate := range strings.Split(raw, ",") {
		if candidate = strings.TrimSpace(candidate); candidate != "" && strings.EqualFold(candidate, email) {
			return true
		}
	}
	return false
}
