package content

import (
	"context"

	"github.com/convocoach/coach-service/internal/quiz"
)

// Page is a single theory page, optionally carrying an embedded quiz.
type Page struct {
	Heading string         `json:"heading" firestore:"heading"`
	Content string         `json:"content" firestore:"content"`
	Quiz    *quiz.Question `json:"quiz,omitempty" firestore:"quiz"`
}

// Document is the persisted shape of (theoryContent, <category-title>).
type Document struct {
	Content []Page `json:"content" firestore:"content"`
}

// Repository defines read (and seed) access to theory content.
type Repository interface {
	// GetPages returns the pages for a category or ErrNotFound.
	GetPages(ctx context.Context, category string) ([]Page, error)

	// ListCategories returns the available category titles.
	ListCategories(ctx context.Context) ([]string, error)

	// SaveCategory replaces a category document (seeding).
	SaveCategory(ctx context.Context, category string, pages []Page) error
}

// Service defines the content read interface.
type Service interface {
	Pages(ctx context.Context, category string) ([]Page, error)
	Categories(ctx context.Context) ([]string, error)

	// Question implements quiz.QuestionSource.
	Question(ctx context.Context, category string, page int) (quiz.Question, bool, error)
}
