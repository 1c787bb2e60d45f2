package employees

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"leavepilot-backend/internal/ingest"
)

// DocumentSource is the slice of the ingestion service used to build an
// employee from a stored extraction.
type DocumentSource interface {
	Get(ctx context.Context, companyID, documentID string) (ingest.Document, error)
	LinkEmployee(ctx context.Context, companyID, documentID, employeeID string) error
}

type Service struct {
	Repo Repo
	Docs DocumentSource
}

func NewService(repo Repo, docs DocumentSource) *Service {
	return &Service{Repo: repo, Docs: docs}
}

// CreateInput carries the writable employee fields.
type CreateInput struct {
	Name           string
	ExternalID     *string
	Department     *string
	Email          *string
	LeaveStatus    string
	LeaveStartDate *time.Time
	LeaveEndDate   *time.Time
}

func (s *Service) Create(ctx context.Context, companyID string, input CreateInput) (Employee, error) {
	return s.create(ctx, companyID, input, nil)
}

func (s *Service) create(ctx context.Context, companyID string, input CreateInput, sourceDocumentID *string) (Employee, error) {
	input.Name = strings.TrimSpace(input.Name)
	if companyID == "" || input.Name == "" {
		return Employee{}, ErrInvalidInput
	}
	if input.LeaveStatus == "" {
		input.LeaveStatus = LeaveNone
	}
	if !validLeaveStatus(input.LeaveStatus) {
		return Employee{}, ErrInvalidInput
	}

	now := time.Now().UTC()
	employee := Employee{
		ID:               uuid.NewString(),
		CompanyID:        companyID,
		Name:             input.Name,
		ExternalID:       input.ExternalID,
		Department:       input.Department,
		Email:            input.Email,
		LeaveStatus:      input.LeaveStatus,
		LeaveStartDate:   input.LeaveStartDate,
		LeaveEndDate:     input.LeaveEndDate,
		SourceDocumentID: sourceDocumentID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.Repo.Create(ctx, employee); err != nil {
		return Employee{}, err
	}
	return employee, nil
}

// CreateFromDocument builds an employee record pre-populated from a stored
// extraction blob. Explicit overrides win over extracted values. The source
// document is linked back to the new employee; a link conflict surfaces as
// ingest.ErrAlreadyLinked.
func (s *Service) CreateFromDocument(ctx context.Context, companyID, documentID string, overrides CreateInput) (Employee, error) {
	if companyID == "" || documentID == "" {
		return Employee{}, ErrInvalidInput
	}
	doc, err := s.Docs.Get(ctx, companyID, documentID)
	if err != nil {
		if errors.Is(err, ingest.ErrNotFound) {
			return Employee{}, ErrNotFound
		}
		return Employee{}, err
	}

	input := prefillFromExtraction(doc.Extraction.ExtractionResult)
	if strings.TrimSpace(overrides.Name) != "" {
		input.Name = overrides.Name
	}
	if overrides.ExternalID != nil {
		input.ExternalID = overrides.ExternalID
	}
	if overrides.Department != nil {
		input.Department = overrides.Department
	}
	if overrides.Email != nil {
		input.Email = overrides.Email
	}
	if overrides.LeaveStatus != "" {
		input.LeaveStatus = overrides.LeaveStatus
	}
	input.LeaveStartDate = overrides.LeaveStartDate
	input.LeaveEndDate = overrides.LeaveEndDate

	employee, err := s.create(ctx, companyID, input, &doc.ID)
	if err != nil {
		return Employee{}, err
	}

	if err := s.Docs.LinkEmployee(ctx, companyID, documentID, employee.ID); err != nil {
		return Employee{}, err
	}
	return employee, nil
}

func prefillFromExtraction(result ingest.ExtractionResult) CreateInput {
	var input CreateInput
	if result.EmployeeInfo.Name != nil {
		input.Name = *result.EmployeeInfo.Name
	}
	input.ExternalID = result.EmployeeInfo.EmployeeID
	input.Department = result.EmployeeInfo.Department
	return input
}

func (s *Service) Get(ctx context.Context, companyID, employeeID string) (Employee, error) {
	if companyID == "" || employeeID == "" {
		return Employee{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, companyID, employeeID)
}

func (s *Service) List(ctx context.Context, companyID string, limit, offset int) ([]Employee, error) {
	if companyID == "" {
		return nil, ErrInvalidInput
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.Repo.ListByCompany(ctx, companyID, limit, offset)
}

// UpdateLeaveStatus moves an employee through the leave lifecycle and sets
// the optional start/end dates.
func (s *Service) UpdateLeaveStatus(ctx context.Context, companyID, employeeID, status string, start, end *time.Time) (Employee, error) {
	if !validLeaveStatus(status) {
		return Employee{}, ErrInvalidInput
	}
	employee, err := s.Get(ctx, companyID, employeeID)
	if err != nil {
		return Employee{}, err
	}
	employee.LeaveStatus = status
	if start != nil {
		employee.LeaveStartDate = start
	}
	if end != nil {
		employee.LeaveEndDate = end
	}
	employee.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Update(ctx, employee); err != nil {
		return Employee{}, err
	}
	return employee, nil
}
