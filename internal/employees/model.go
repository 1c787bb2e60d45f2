package employees

import "time"

// Leave statuses an employee moves through.
const (
	LeaveNone      = "none"
	LeaveExpecting = "expecting"
	LeaveOnLeave   = "on_leave"
	LeaveReturned  = "returned"
)

type Employee struct {
	ID               string     `json:"id"`
	CompanyID        string     `json:"companyId"`
	Name             string     `json:"name"`
	ExternalID       *string    `json:"externalId"`
	Department       *string    `json:"department"`
	Email            *string    `json:"email"`
	LeaveStatus      string     `json:"leaveStatus"`
	LeaveStartDate   *time.Time `json:"leaveStartDate"`
	LeaveEndDate     *time.Time `json:"leaveEndDate"`
	SourceDocumentID *string    `json:"sourceDocumentId"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

func validLeaveStatus(status string) bool {
	switch status {
	case LeaveNone, LeaveExpecting, LeaveOnLeave, LeaveReturned:
		return true
	default:
		return false
	}
}
