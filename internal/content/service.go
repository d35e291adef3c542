package content

import (
	"context"
	"strings"

	"github.com/convocoach/coach-service/internal/quiz"
)

type service struct {
	repo Repository
}

// NewService creates a new content service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Pages(ctx context.Context, category string) ([]Page, error) {
	if category == "" {
		return nil, ErrMissingCategory
	}

	pages, err := s.repo.GetPages(ctx, category)
	if err != nil {
		return nil, err
	}

	// Authoring stores newlines as literal "\n" escapes; normalize before
	// handing pages to the renderer.
	out := make([]Page, len(pages))
	for i, page := range pages {
		page.Content = strings.ReplaceAll(page.Content, `\n`, "\n")
		out[i] = page
	}
	return out, nil
}

func (s *service) Categories(ctx context.Context) ([]string, error) {
	return s.repo.ListCategories(ctx)
}

func (s *service) Question(ctx context.Context, category string, page int) (quiz.Question, bool, error) {
	pages, err := s.repo.GetPages(ctx, category)
	if err != nil {
		return quiz.Question{}, false, err
	}
	if page < 0 || page >= len(pages) {
		return quiz.Question{}, false, ErrPageOutOfRange
	}
	if pages[page].Quiz == nil {
		return quiz.Question{}, false, nil
	}
	return *pages[page].Quiz, true, nil
}
