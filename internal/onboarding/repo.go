package onboarding

import "context"

type Repo interface {
	Upsert(ctx context.Context, draft Draft) error
	GetBySession(ctx context.Context, sessionID string) (Draft, error)
}
