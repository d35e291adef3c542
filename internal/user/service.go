package user

import (
	"context"
	"log/slog"
)

type service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new points ledger service
func NewService(repo Repository, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{repo: repo, logger: logger}
}

func (s *service) Signup(ctx context.Context, uid, email string) error {
	if uid == "" {
		return ErrMissingUserID
	}
	return s.repo.Create(ctx, uid, email)
}

func (s *service) Profile(ctx context.Context, uid string) *ProfileResponse {
	points := s.GetPoints(ctx, uid)
	return &ProfileResponse{
		UID:    uid,
		Points: points,
		Badges: UnlockedBadges(points),
	}
}

// GetPoints returns the current total. Absence is a valid default, not an
// error: anonymous users, missing documents, and store failures all read as
// zero so the calling screen always has something to render.
func (s *service) GetPoints(ctx context.Context, uid string) int {
	if uid == "" {
		return 0
	}

	u, err := s.repo.Get(ctx, uid)
	if err == ErrNotFound {
		return 0
	}
	if err != nil {
		s.logger.Error("failed to fetch points", slog.String("userId", uid), slog.Any("error", err))
		return 0
	}
	return u.Points
}

// AddPoints adds delta and returns the new total, creating the record when
// missing. On failure it returns 0; callers must treat that as "no change
// occurred" rather than an authoritative counter.
func (s *service) AddPoints(ctx context.Context, uid string, delta int) int {
	if uid == "" {
		return 0
	}
	if delta <= 0 {
		s.logger.Warn("ignoring non-positive point delta", slog.String("userId", uid), slog.Int("delta", delta))
		return 0
	}

	total, err := s.repo.AddPoints(ctx, uid, delta)
	if err != nil {
		s.logger.Error("failed to update points", slog.String("userId", uid), slog.Any("error", err))
		return 0
	}
	return total
}
