package challenge

import (
	"context"
	"time"
)

// DateLayout is the day-granularity format stored in the rotation document.
const DateLayout = "2006-01-02"

// RewardPoints is the fixed award for completing the daily challenge.
const RewardPoints = 10

// Challenge is a single entry of the shared challenge sequence.
type Challenge struct {
	ID          string `json:"id" firestore:"id"`
	Title       string `json:"title" firestore:"title"`
	Description string `json:"description" firestore:"description"`
}

// Rotation is the shared singleton pointer document: one record for all
// users, stored at (dailyChallenges, "today") to match the production data.
type Rotation struct {
	Challenges   []Challenge `json:"challenges" firestore:"challenges"`
	CurrentIndex int         `json:"currentIndex" firestore:"currentIndex"`
	LastUpdated  string      `json:"lastUpdated" firestore:"lastUpdated"`
}

// ActiveChallenge is today's challenge annotated with the caller's completion state.
type ActiveChallenge struct {
	Challenge
	Completed bool `json:"completed"`
}

// CompleteResponse is returned by POST /v1/challenges/{id}/complete.
type CompleteResponse struct {
	ChallengeID   string `json:"challengeId"`
	Completed     bool   `json:"completed"`
	PointsAwarded int    `json:"pointsAwarded"`
	PointsTotal   int    `json:"pointsTotal"`
}

// Repository defines the interface for rotation data access.
type Repository interface {
	// GetRotation returns the singleton rotation document or ErrNotFound.
	GetRotation(ctx context.Context) (*Rotation, error)

	// AdvanceIfStale advances the pointer by exactly one position (mod
	// sequence length) when lastUpdated differs from today, as a single
	// conditional update so concurrent same-day callers rotate at most
	// once. Returns whether a rotation happened. An empty sequence is
	// ErrNoChallenges rather than an out-of-bounds index.
	AdvanceIfStale(ctx context.Context, today string) (bool, error)

	// SaveRotation replaces the rotation document (seeding).
	SaveRotation(ctx context.Context, rotation *Rotation) error
}

// Service defines the daily challenge rotator interface.
type Service interface {
	Active(ctx context.Context, uid string) (*ActiveChallenge, error)
	AdvanceIfStale(ctx context.Context, now time.Time) (bool, error)
	Complete(ctx context.Context, uid, challengeID string) (*CompleteResponse, error)
}
