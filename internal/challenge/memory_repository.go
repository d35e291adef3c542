package challenge

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu       sync.Mutex
	rotation *Rotation
}

// NewMemoryRepository returns an in-memory repository intended for local development and tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{}
}

func (r *memoryRepository) GetRotation(_ context.Context) (*Rotation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.rotation == nil {
		return nil, ErrNotFound
	}
	return copyRotation(r.rotation), nil
}

func (r *memoryRepository) AdvanceIfStale(_ context.Context, today string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.rotation == nil {
		return false, ErrNotFound
	}
	if len(r.rotation.Challenges) == 0 {
		return false, ErrNoChallenges
	}
	if r.rotation.LastUpdated == today {
		return false, nil
	}

	r.rotation.CurrentIndex = (r.rotation.CurrentIndex + 1) % len(r.rotation.Challenges)
	r.rotation.LastUpdated = today
	return true, nil
}

func (r *memoryRepository) SaveRotation(_ context.Context, rotation *Rotation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rotation = copyRotation(rotation)
	return nil
}

func copyRotation(rotation *Rotation) *Rotation {
	out := *rotation
	out.Challenges = append([]Challenge(nil), rotation.Challenges...)
	return &out
}
