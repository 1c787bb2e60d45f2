package companies

import "time"

// Company statuses.
const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
)

type Company struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	ContactEmail    string    `json:"contactEmail"`
	EmployeeCount   int       `json:"employeeCount"`
	TopUpPercentage *float64  `json:"topUpPercentage"`
	TopUpWeeks      *int      `json:"topUpWeeks"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
