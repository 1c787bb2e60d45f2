package audit

import "context"

type Repo interface {
	Append(ctx context.Context, event Event) error
	List(ctx context.Context, companyID string, limit, offset int) ([]Event, error)
}
