package onboarding

import (
	"errors"
	"time"
)

// Wizard steps. Each step owns exactly one draft section.
const (
	StepCompanyProfile = "company_profile"
	StepPolicySetup    = "policy_setup"
	StepRosterSeed     = "roster_seed"
)

var (
	ErrNotFound     = errors.New("onboarding draft not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnknownStep  = errors.New("unknown onboarding step")
	ErrIncomplete   = errors.New("draft is missing required sections")
	ErrCompleted    = errors.New("draft is already completed")
)

// CompanyProfile is the first wizard section.
type CompanyProfile struct {
	CompanyName   string `json:"companyName"`
	ContactEmail  string `json:"contactEmail"`
	EmployeeCount int    `json:"employeeCount"`
}

// PolicySetup is the leave-policy section.
type PolicySetup struct {
	TopUpPercentage *float64 `json:"topUpPercentage"`
	TopUpWeeks      *int     `json:"topUpWeeks"`
}

// RosterSeedEntry is one employee row captured during onboarding.
type RosterSeedEntry struct {
	Name       string  `json:"name"`
	ExternalID *string `json:"externalId"`
	Department *string `json:"department"`
	Email      *string `json:"email"`
}

// RosterSeed is the optional initial roster section.
type RosterSeed struct {
	Employees []RosterSeedEntry `json:"employees"`
}

// Draft is a server-held wizard state keyed by an opaque session id. The
// client sends partial step updates instead of round-tripping one mutable
// blob.
type Draft struct {
	SessionID      string          `json:"sessionId"`
	CompanyProfile *CompanyProfile `json:"companyProfile"`
	PolicySetup    *PolicySetup    `json:"policySetup"`
	RosterSeed     *RosterSeed     `json:"rosterSeed"`
	CurrentStep    string          `json:"currentStep"`
	Completed      bool            `json:"completed"`
	CompanyID      string          `json:"companyId,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}
