package content

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

type CreateInput struct {
	Title    string
	Body     string
	Category string
	Audience string
}

func (s *Service) Create(ctx context.Context, input CreateInput) (Item, error) {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return Item{}, ErrInvalidInput
	}
	if input.Category == "" {
		input.Category = CategoryGuide
	}
	if input.Audience == "" {
		input.Audience = AudienceAll
	}
	if !validCategory(input.Category) || !validAudience(input.Audience) {
		return Item{}, ErrInvalidInput
	}

	now := time.Now().UTC()
	item := Item{
		ID:        uuid.NewString(),
		Title:     input.Title,
		Body:      input.Body,
		Category:  input.Category,
		Audience:  input.Audience,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(ctx, item); err != nil {
		return Item{}, err
	}
	return item, nil
}

func (s *Service) Get(ctx context.Context, itemID string) (Item, error) {
	if strings.TrimSpace(itemID) == "" {
		return Item{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, itemID)
}

// List returns items newest-first. When publishedOnly is set, drafts are
// hidden; audience narrows to items for that audience plus "all".
func (s *Service) List(ctx context.Context, publishedOnly bool, audience string, limit, offset int) ([]Item, error) {
	if audience != "" && !validAudience(audience) {
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
	return s.Repo.List(ctx, publishedOnly, audience, limit, offset)
}

type UpdateInput struct {
	Title     *string
	Body      *string
	Category  *string
	Audience  *string
	Published *bool
}

func (s *Service) Update(ctx context.Context, itemID string, input UpdateInput) (Item, error) {
	item, err := s.Get(ctx, itemID)
	if err != nil {
		return Item{}, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return Item{}, ErrInvalidInput
		}
		item.Title = title
	}
	if input.Body != nil {
		item.Body = *input.Body
	}
	if input.Category != nil {
		if !validCategory(*input.Category) {
			return Item{}, ErrInvalidInput
		}
		item.Category = *input.Category
	}
	if input.Audience != nil {
		if !validAudience(*input.Audience) {
			return Item{}, ErrInvalidInput
		}
		item.Audience = *input.Audience
	}
	if input.Published != nil {
		item.Published = *input.Published
	}

	item.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Update(ctx, item); err != nil {
		return Item{}, err
	}
	return item, nil
}

func (s *Service) Delete(ctx context.Context, itemID string) error {
	if strings.TrimSpace(itemID) == "" {
		return ErrInvalidInput
	}
	return s.Repo.Delete(ctx, itemID)
}
