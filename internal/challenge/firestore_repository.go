package challenge

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	rotationCollection = "dailyChallenges"
	rotationDoc        = "today"
)

type firestoreRepository struct {
	client *firestore.Client
}

// NewFirestoreRepository creates a new Firestore repository
func NewFirestoreRepository(client *firestore.Client) Repository {
	return &firestoreRepository{client: client}
}

func (r *firestoreRepository) rotationRef() *firestore.DocumentRef {
	return r.client.Collection(rotationCollection).Doc(rotationDoc)
}

func (r *firestoreRepository) GetRotation(ctx context.Context) (*Rotation, error) {
	doc, err := r.rotationRef().Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var rotation Rotation
	if err := doc.DataTo(&rotation); err != nil {
		return nil, fmt.Errorf("unmarshal rotation: %w", err)
	}
	return &rotation, nil
}

func (r *firestoreRepository) AdvanceIfStale(ctx context.Context, today string) (bool, error) {
	rotated := false

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		rotated = false

		doc, err := tx.Get(r.rotationRef())
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var rotation Rotation
		if err := doc.DataTo(&rotation); err != nil {
			return fmt.Errorf("unmarshal rotation: %w", err)
		}

		if len(rotation.Challenges) == 0 {
			return ErrNoChallenges
		}

		// Re-checking inside the transaction makes the advance a
		// conditional update: two processes observing staleness still
		// rotate only once per day.
		if rotation.LastUpdated == today {
			return nil
		}

		nextIndex := (rotation.CurrentIndex + 1) % len(rotation.Challenges)
		if err := tx.Update(r.rotationRef(), []firestore.Update{
			{Path: "currentIndex", Value: nextIndex},
			{Path: "lastUpdated", Value: today},
		}); err != nil {
			return err
		}

		rotated = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return rotated, nil
}

func (r *firestoreRepository) SaveRotation(ctx context.Context, rotation *Rotation) error {
	_, err := r.rotationRef().Set(ctx, rotation)
	return err
}
