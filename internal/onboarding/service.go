package onboarding

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"leavepilot-backend/internal/companies"
	"leavepilot-backend/internal/employees"
)

// CompanyCreator finalizes a completed draft into a tenant record.
type CompanyCreator interface {
	Create(ctx context.Context, input companies.CreateInput) (companies.Company, error)
}

// RosterSeeder creates the initial employee rows from the roster section.
type RosterSeeder interface {
	Create(ctx context.Context, companyID string, input employees.CreateInput) (employees.Employee, error)
}

type Service struct {
	Repo      Repo
	Companies CompanyCreator
	Roster    RosterSeeder
}

func NewService(repo Repo, companySvc CompanyCreator, rosterSvc RosterSeeder) *Service {
	return &Service{Repo: repo, Companies: companySvc, Roster: rosterSvc}
}

// Get fetches a draft, creating an empty one on first touch so the wizard
// can start from any step.
func (s *Service) Get(ctx context.Context, sessionID string) (Draft, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return Draft{}, ErrInvalidInput
	}
	draft, err := s.Repo.GetBySession(ctx, sessionID)
	if err == nil {
		return draft, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Draft{}, err
	}

	now := time.Now().UTC()
	draft = Draft{
		SessionID:   sessionID,
		CurrentStep: StepCompanyProfile,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.Upsert(ctx, draft); err != nil {
		return Draft{}, err
	}
	return draft, nil
}

// UpdateStep applies a validated partial update to exactly one section. The
// payload is the raw request body for that step; fields of other steps are
// untouched.
func (s *Service) UpdateStep(ctx context.Context, sessionID, step string, payload json.RawMessage) (Draft, error) {
	draft, err := s.Get(ctx, sessionID)
	if err != nil {
		return Draft{}, err
	}
	if draft.Completed {
		return Draft{}, ErrCompleted
	}

	switch step {
	case StepCompanyProfile:
		var section CompanyProfile
		if err := decodeStrict(payload, &section); err != nil {
			return Draft{}, ErrInvalidInput
		}
		section.CompanyName = strings.TrimSpace(section.CompanyName)
		if section.CompanyName == "" || section.EmployeeCount < 0 {
			return Draft{}, ErrInvalidInput
		}
		draft.CompanyProfile = &section
	case StepPolicySetup:
		var section PolicySetup
		if err := decodeStrict(payload, &section); err != nil {
			return Draft{}, ErrInvalidInput
		}
		if section.TopUpPercentage != nil && (*section.TopUpPercentage < 0 || *section.TopUpPercentage > 100) {
			return Draft{}, ErrInvalidInput
		}
		if section.TopUpWeeks != nil && *section.TopUpWeeks < 0 {
			return Draft{}, ErrInvalidInput
		}
		draft.PolicySetup = &section
	case StepRosterSeed:
		var section RosterSeed
		if err := decodeStrict(payload, &section); err != nil {
			return Draft{}, ErrInvalidInput
		}
		for _, entry := range section.Employees {
			if strings.TrimSpace(entry.Name) == "" {
				return Draft{}, ErrInvalidInput
			}
		}
		draft.RosterSeed = &section
	default:
		return Draft{}, ErrUnknownStep
	}

	draft.CurrentStep = step
	draft.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Upsert(ctx, draft); err != nil {
		return Draft{}, err
	}
	return draft, nil
}

// Complete finalizes the draft into a company record and seeds the roster.
// The company profile section is required; policy and roster are optional.
func (s *Service) Complete(ctx context.Context, sessionID string) (Draft, error) {
	draft, err := s.Get(ctx, sessionID)
	if err != nil {
		return Draft{}, err
	}
	if draft.Completed {
		return Draft{}, ErrCompleted
	}
	if draft.CompanyProfile == nil {
		return Draft{}, ErrIncomplete
	}

	input := companies.CreateInput{
		Name:          draft.CompanyProfile.CompanyName,
		ContactEmail:  draft.CompanyProfile.ContactEmail,
		EmployeeCount: draft.CompanyProfile.EmployeeCount,
	}
	if draft.PolicySetup != nil {
		input.TopUpPercentage = draft.PolicySetup.TopUpPercentage
		input.TopUpWeeks = draft.PolicySetup.TopUpWeeks
	}
	company, err := s.Companies.Create(ctx, input)
	if err != nil {
		return Draft{}, err
	}

	if draft.RosterSeed != nil {
		for _, entry := range draft.RosterSeed.Employees {
			_, err := s.Roster.Create(ctx, company.ID, employees.CreateInput{
				Name:       entry.Name,
				ExternalID: entry.ExternalID,
				Department: entry.Department,
				Email:      entry.Email,
			})
			if err != nil {
				return Draft{}, err
			}
		}
	}

	draft.Completed = true
	draft.CompanyID = company.ID
	draft.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Upsert(ctx, draft); err != nil {
		return Draft{}, err
	}
	return draft, nil
}

func decodeStrict(payload json.RawMessage, target any) error {
	dec := json.NewDecoder(strings.NewReader(string(payload)))
	dec.DisallowUnknownFields()
	return dec.Decode(target)
}
