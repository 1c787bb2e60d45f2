package companies

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// CreateInput carries the writable company fields.
type CreateInput struct {
	Name            string
	ContactEmail    string
	EmployeeCount   int
	TopUpPercentage *float64
	TopUpWeeks      *int
}

func (s *Service) Create(ctx context.Context, input CreateInput) (Company, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.ContactEmail = strings.TrimSpace(input.ContactEmail)
	if input.Name == "" {
		return Company{}, ErrInvalidInput
	}
	if input.EmployeeCount < 0 {
		return Company{}, ErrInvalidInput
	}
	if input.TopUpPercentage != nil && (*input.TopUpPercentage < 0 || *input.TopUpPercentage > 100) {
		return Company{}, ErrInvalidInput
	}

	now := time.Now().UTC()
	company := Company{
		ID:              uuid.NewString(),
		Name:            input.Name,
		ContactEmail:    input.ContactEmail,
		EmployeeCount:   input.EmployeeCount,
		TopUpPercentage: input.TopUpPercentage,
		TopUpWeeks:      input.TopUpWeeks,
		Status:          StatusActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.Repo.Create(ctx, company); err != nil {
		return Company{}, err
	}
	return company, nil
}

func (s *Service) Get(ctx context.Context, companyID string) (Company, error) {
	if strings.TrimSpace(companyID) == "" {
		return Company{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, companyID)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]Company, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.Repo.List(ctx, limit, offset)
}

// UpdateInput carries optional field updates; nil means leave unchanged.
type UpdateInput struct {
	Name            *string
	ContactEmail    *string
	EmployeeCount   *int
	TopUpPercentage *float64
	TopUpWeeks      *int
	Status          *string
}

func (s *Service) Update(ctx context.Context, companyID string, input UpdateInput) (Company, error) {
	company, err := s.Get(ctx, companyID)
	if err != nil {
		return Company{}, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return Company{}, ErrInvalidInput
		}
		company.Name = name
	}
	if input.ContactEmail != nil {
		company.ContactEmail = strings.TrimSpace(*input.ContactEmail)
	}
	if input.EmployeeCount != nil {
		if *input.EmployeeCount < 0 {
			return Company{}, ErrInvalidInput
		}
		company.EmployeeCount = *input.EmployeeCount
	}
	if input.TopUpPercentage != nil {
		if *input.TopUpPercentage < 0 || *input.TopUpPercentage > 100 {
			return Company{}, ErrInvalidInput
		}
		company.TopUpPercentage = input.TopUpPercentage
	}
	if input.TopUpWeeks != nil {
		company.TopUpWeeks = input.TopUpWeeks
	}
	if input.Status != nil {
		switch *input.Status {
		case StatusActive, StatusSuspended:
			company.Status = *input.Status
		default:
			return Company{}, ErrInvalidInput
		}
	}

	company.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Update(ctx, company); err != nil {
		return Company{}, err
	}
	return company, nil
}
