package users

import "time"

// Admin is an HR-admin or superadmin account. CompanyID scopes hr_admins to
// their tenant; superadmins carry no company.
type Admin struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	CompanyID   *string    `json:"companyId"`
	CreatedAt   time.Time  `json:"createdAt"`
	LastLoginAt *time.Time `json:"lastLoginAt"`
}
