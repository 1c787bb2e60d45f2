package content

import "time"

// Categories and audiences for library items.
const (
	CategoryGuide        = "guide"
	CategoryPolicy       = "policy"
	CategoryFAQ          = "faq"
	CategoryAnnouncement = "announcement"

	AudienceHRAdmin  = "hr_admin"
	AudienceEmployee = "employee"
	AudienceAll      = "all"
)

type Item struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Category  string    `json:"category"`
	Audience  string    `json:"audience"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func validCategory(category string) bool {
	switch category {
	case CategoryGuide, CategoryPolicy, CategoryFAQ, CategoryAnnouncement:
		return true
	default:
		return false
	}
}

func validAudience(audience string) bool {
	switch audience {
	case AudienceHRAdmin, AudienceEmployee, AudienceAll:
		return true
	default:
		return false
	}
}
