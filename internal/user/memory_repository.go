package user

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu    sync.Mutex
	store map[string]*User
}

// NewMemoryRepository returns an in-memory repository intended for local development and tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{store: make(map[string]*User)}
}

func (r *memoryRepository) Get(_ context.Context, uid string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.store[uid]
	if !ok {
		return nil, ErrNotFound
	}
	return copyUser(u), nil
}

func (r *memoryRepository) Create(_ context.Context, uid, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.store[uid]; ok {
		existing.Email = email
		return nil
	}

	r.store[uid] = &User{
		UID:              uid,
		Email:            email,
		Points:           0,
		CompletedModules: []string{},
		DailyChallenges:  map[string]bool{},
	}
	return nil
}

func (r *memoryRepository) AddPoints(_ context.Context, uid string, delta int) (int, error) {
	if uid == "" {
		return 0, ErrMissingUserID
	}
	if delta <= 0 {
		return 0, ErrInvalidDelta
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.store[uid]
	if !ok {
		u = &User{
			UID:              uid,
			CompletedModules: []string{},
			DailyChallenges:  map[string]bool{},
		}
		r.store[uid] = u
	}
	u.Points += delta
	return u.Points, nil
}

func (r *memoryRepository) CompleteChallenge(_ context.Context, uid, challengeID string, reward int) (int, error) {
	if reward <= 0 {
		return 0, ErrInvalidDelta
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.store[uid]
	if !ok {
		return 0, ErrNotFound
	}
	if u.DailyChallenges == nil {
		u.DailyChallenges = map[string]bool{}
	}
	u.DailyChallenges[challengeID] = true
	u.Points += reward
	return u.Points, nil
}

func copyUser(u *User) *User {
	out := *u
	out.CompletedModules = append([]string(nil), u.CompletedModules...)
	out.DailyChallenges = make(map[string]bool, len(u.DailyChallenges))
	for k, v := range u.DailyChallenges {
		out.DailyChallenges[k] = v
	}
	return &out
}
