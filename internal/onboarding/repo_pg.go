package onboarding

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Upsert(ctx context.Context, draft Draft) error {
	const query = `
INSERT INTO onboarding_drafts (session_id, company_profile, policy_setup, roster_seed, current_step, completed, company_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (session_id) DO UPDATE SET
  company_profile = EXCLUDED.company_profile,
  policy_setup = EXCLUDED.policy_setup,
  roster_seed = EXCLUDED.roster_seed,
  current_step = EXCLUDED.current_step,
  completed = EXCLUDED.completed,
  company_id = EXCLUDED.company_id,
  updated_at = EXCLUDED.updated_at`

	profile, err := marshalSection(draft.CompanyProfile)
	if err != nil {
		return err
	}
	policy, err := marshalSection(draft.PolicySetup)
	if err != nil {
		return err
	}
	roster, err := marshalSection(draft.RosterSeed)
	if err != nil {
		return err
	}
	var companyID any
	if draft.CompanyID != "" {
		companyID = draft.CompanyID
	}

	_, err = r.DB.ExecContext(ctx, query,
		draft.SessionID,
		profile,
		policy,
		roster,
		draft.CurrentStep,
		draft.Completed,
		companyID,
		draft.CreatedAt,
		draft.UpdatedAt,
	)
	return err
}

func (r *PGRepo) GetBySession(ctx context.Context, sessionID string) (Draft, error) {
	const query = `
SELECT session_id, company_profile, policy_setup, roster_seed, current_step, completed, company_id, created_at, updated_at
FROM onboarding_drafts
WHERE session_id = $1
LIMIT 1`
	var draft Draft
	var profile, policy, roster []byte
	var companyID sql.NullString
	err := r.DB.QueryRowContext(ctx, query, sessionID).Scan(
		&draft.SessionID,
		&profile,
		&policy,
		&roster,
		&draft.CurrentStep,
		&draft.Completed,
		&companyID,
		&draft.CreatedAt,
		&draft.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Draft{}, ErrNotFound
		}
		return Draft{}, err
	}
	if companyID.Valid {
		draft.CompanyID = companyID.String
	}
	if err := unmarshalSection(profile, &draft.CompanyProfile); err != nil {
		return Draft{}, err
	}
	if err := unmarshalSection(policy, &draft.PolicySetup); err != nil {
		return Draft{}, err
	}
	if err := unmarshalSection(roster, &draft.RosterSeed); err != nil {
		return Draft{}, err
	}
	return draft, nil
}

func marshalSection[T any](section *T) (any, error) {
	if section == nil {
		return nil, nil
	}
	blob, err := json.Marshal(section)
	if err != nil {
		return nil, fmt.Errorf("marshal draft section: %w", err)
	}
	return blob, nil
}

func unmarshalSection[T any](blob []byte, target **T) error {
	if len(blob) == 0 {
		return nil
	}
	var value T
	if err := json.Unmarshal(blob, &value); err != nil {
		return fmt.Errorf("unmarshal draft section: %w", err)
	}
	*target = &value
	return nil
}

var _ Repo = (*PGRepo)(nil)
