package quiz

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// ErrNoQuestion indicates the referenced page has no embedded quiz.
var ErrNoQuestion = errors.New("no quiz on this page")

// QuestionSource supplies the embedded question for a content page.
// Implemented by the content service.
type QuestionSource interface {
	Question(ctx context.Context, category string, page int) (Question, bool, error)
}

// Ledger is the slice of the points ledger the evaluator needs.
type Ledger interface {
	AddPoints(ctx context.Context, uid string, delta int) int
}

// AnswerResponse is returned by POST /v1/quiz/answer.
type AnswerResponse struct {
	Correct       bool `json:"correct"`
	PointsAwarded int  `json:"pointsAwarded"`
	PointsTotal   int  `json:"pointsTotal"`
}

// Service evaluates answers and awards points at most once per view.
type Service struct {
	source QuestionSource
	ledger Ledger
	logger *slog.Logger

	mu    sync.Mutex
	views map[string]*viewEntry
}

type viewEntry struct {
	category string
	page     int
	view     View
}

// NewService creates a new quiz service
func NewService(source QuestionSource, ledger Ledger, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		source: source,
		ledger: ledger,
		logger: logger,
		views:  make(map[string]*viewEntry),
	}
}

// Answer evaluates the selection for the given page. For signed-in users the
// view is locked after the first selection and a correct answer awards the
// fixed reward once per view; moving to a different page resets the lock.
// Anonymous users get the evaluation result with no award and no lock.
func (s *Service) Answer(ctx context.Context, uid, category string, page int, selected string) (*AnswerResponse, error) {
	q, ok, err := s.source.Question(ctx, category, page)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoQuestion
	}

	if uid == "" {
		result := Evaluate(q, selected)
		return &AnswerResponse{Correct: result.Correct}, nil
	}

	result, err := s.selectForUser(uid, category, page, q, selected)
	if err != nil {
		return nil, err
	}

	resp := &AnswerResponse{Correct: result.Correct}
	if result.Correct {
		resp.PointsAwarded = RewardPoints
		resp.PointsTotal = s.ledger.AddPoints(ctx, uid, RewardPoints)
		if resp.PointsTotal == 0 {
			// Award did not land; the ledger already logged the cause.
			resp.PointsAwarded = 0
		}
	}
	return resp, nil
}

func (s *Service) selectForUser(uid, category string, page int, q Question, selected string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.views[uid]
	if !ok || entry.category != category || entry.page != page {
		// Navigation away resets the state machine. Deliberately no
		// dedup by question id across visits: paging back re-enables
		// selection and can award again.
		entry = &viewEntry{category: category, page: page}
		s.views[uid] = entry
	}

	return entry.view.Select(q, selected)
}
