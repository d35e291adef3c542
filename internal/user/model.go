package user

import "context"

// User represents the persisted user document. Field names match the
// production Firestore data written by the mobile client, so the service can
// run against an existing database unchanged.
type User struct {
	UID              string          `json:"uid" firestore:"uid"`
	Email            string          `json:"email" firestore:"email"`
	Points           int             `json:"points" firestore:"points"`
	CompletedModules []string        `json:"completedModules" firestore:"completedModules"`
	DailyChallenges  map[string]bool `json:"dailyChallenges" firestore:"dailyChallenges"`
}

// Badge represents a milestone earned from points. Badges are purely derived
// from the points total; nothing is persisted.
type Badge struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	MinPoints int    `json:"minPoints"`
	Icon      string `json:"icon"`
}

// ProfileResponse is returned by GET /v1/users/me.
type ProfileResponse struct {
	UID    string  `json:"uid"`
	Points int     `json:"points"`
	Badges []Badge `json:"badges"`
}

// Repository defines the interface for user data access.
type Repository interface {
	// Get returns the user document or ErrNotFound when absent.
	Get(ctx context.Context, uid string) (*User, error)

	// Create seeds a fresh user document with zero points and empty
	// completion sets. Existing documents keep their counters.
	Create(ctx context.Context, uid, email string) error

	// AddPoints atomically adds delta to the points counter and returns
	// the new total. A missing document is created with points = delta.
	AddPoints(ctx context.Context, uid string, delta int) (int, error)

	// CompleteChallenge marks the challenge done and adds the reward in a
	// single atomic write, returning the new total. Unlike AddPoints it
	// returns ErrNotFound when the user document is absent.
	CompleteChallenge(ctx context.Context, uid, challengeID string, reward int) (int, error)
}

// Service defines the points ledger interface. Read paths follow the
// availability-over-correctness policy: store failures degrade to zero
// values and are logged, never propagated to callers.
type Service interface {
	Signup(ctx context.Context, uid, email string) error
	Profile(ctx context.Context, uid string) *ProfileResponse
	GetPoints(ctx context.Context, uid string) int
	AddPoints(ctx context.Context, uid string, delta int) int
}
