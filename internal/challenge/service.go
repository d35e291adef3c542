package challenge

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/convocoach/coach-service/internal/user"
)

type service struct {
	repo   Repository
	users  user.Repository
	logger *slog.Logger
}

// NewService creates a new daily challenge rotator service
func NewService(repo Repository, users user.Repository, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{repo: repo, users: users, logger: logger}
}

// Active returns the challenge at the current rotation index together with
// the caller's completion flag. Anonymous callers (empty uid) and users whose
// document cannot be read are reported as not completed; only a failure to
// load the rotation itself is surfaced to the caller.
func (s *service) Active(ctx context.Context, uid string) (*ActiveChallenge, error) {
	var (
		rotation  *Rotation
		completed map[string]bool
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rot, err := s.repo.GetRotation(gctx)
		if err != nil {
			return err
		}
		rotation = rot
		return nil
	})

	if uid != "" {
		g.Go(func() error {
			u, err := s.users.Get(gctx, uid)
			if err == user.ErrNotFound {
				return nil
			}
			if err != nil {
				s.logger.Error("failed to load completion flags", slog.String("userId", uid), slog.Any("error", err))
				return nil
			}
			completed = u.DailyChallenges
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(rotation.Challenges) == 0 {
		return nil, ErrNoChallenges
	}

	idx := rotation.CurrentIndex
	if idx < 0 || idx >= len(rotation.Challenges) {
		// A hand-edited document can carry a stale index; clamp instead
		// of indexing out of bounds.
		idx = ((idx % len(rotation.Challenges)) + len(rotation.Challenges)) % len(rotation.Challenges)
	}

	selected := rotation.Challenges[idx]
	return &ActiveChallenge{
		Challenge: selected,
		Completed: completed[selected.ID],
	}, nil
}

// AdvanceIfStale rotates the pointer by one position when lastUpdated is not
// today's calendar date. Calling it any number of times within the same day
// rotates at most once, and skipped days never catch up: three missed days
// still advance the index by exactly one.
func (s *service) AdvanceIfStale(ctx context.Context, now time.Time) (bool, error) {
	return s.repo.AdvanceIfStale(ctx, now.Format(DateLayout))
}

// Complete marks the challenge done for the user and awards the fixed
// reward. The user document must already exist; unlike the points ledger
// this never creates one. Re-completing keeps the flag set and awards the
// reward again, preserving the behavior clients were built against.
func (s *service) Complete(ctx context.Context, uid, challengeID string) (*CompleteResponse, error) {
	if uid == "" {
		return nil, user.ErrMissingUserID
	}
	if challengeID == "" {
		return nil, ErrMissingChallengeID
	}

	total, err := s.users.CompleteChallenge(ctx, uid, challengeID, RewardPoints)
	if err != nil {
		return nil, err
	}

	return &CompleteResponse{
		ChallengeID:   challengeID,
		Completed:     true,
		PointsAwarded: RewardPoints,
		PointsTotal:   total,
	}, nil
}
