package user

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const usersCollection = "users"

type firestoreRepository struct {
	client *firestore.Client
}

// NewFirestoreRepository creates a new Firestore repository
func NewFirestoreRepository(client *firestore.Client) Repository {
	return &firestoreRepository{client: client}
}

func (r *firestoreRepository) Get(ctx context.Context, uid string) (*User, error) {
	doc, err := r.client.Collection(usersCollection).Doc(uid).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var u User
	if err := doc.DataTo(&u); err != nil {
		return nil, fmt.Errorf("unmarshal user: %w", err)
	}
	u.UID = uid
	return &u, nil
}

func (r *firestoreRepository) Create(ctx context.Context, uid, email string) error {
	docRef := r.client.Collection(usersCollection).Doc(uid)

	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		data := map[string]any{
			"uid":   uid,
			"email": email,
		}

		// Counters and completion sets are seeded only for fresh documents
		// so a repeated signup never resets an existing account.
		if _, err := tx.Get(docRef); status.Code(err) == codes.NotFound {
			data["points"] = 0
			data["completedModules"] = []string{}
			data["dailyChallenges"] = map[string]bool{}
		} else if err != nil {
			return err
		}

		return tx.Set(docRef, data, firestore.MergeAll)
	})
}

func (r *firestoreRepository) AddPoints(ctx context.Context, uid string, delta int) (int, error) {
	if uid == "" {
		return 0, ErrMissingUserID
	}
	if delta <= 0 {
		return 0, ErrInvalidDelta
	}

	docRef := r.client.Collection(usersCollection).Doc(uid)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(docRef); status.Code(err) == codes.NotFound {
			return tx.Set(docRef, map[string]any{
				"uid":              uid,
				"points":           delta,
				"completedModules": []string{},
				"dailyChallenges":  map[string]bool{},
			}, firestore.MergeAll)
		} else if err != nil {
			return err
		}

		// Atomic increment closes the lost-update window of the legacy
		// read-then-write the mobile client used.
		return tx.Update(docRef, []firestore.Update{
			{Path: "points", Value: firestore.Increment(int64(delta))},
		})
	})
	if err != nil {
		return 0, err
	}

	u, err := r.Get(ctx, uid)
	if err != nil {
		return 0, err
	}
	return u.Points, nil
}

func (r *firestoreRepository) CompleteChallenge(ctx context.Context, uid, challengeID string, reward int) (int, error) {
	if uid == "" || challengeID == "" {
		return 0, fmt.Errorf("missing identifiers")
	}
	if reward <= 0 {
		return 0, ErrInvalidDelta
	}

	docRef := r.client.Collection(usersCollection).Doc(uid)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(docRef); status.Code(err) == codes.NotFound {
			// Asymmetric with AddPoints: completion requires an existing
			// account and never creates one.
			return ErrNotFound
		} else if err != nil {
			return err
		}

		return tx.Update(docRef, []firestore.Update{
			{FieldPath: firestore.FieldPath{"dailyChallenges", challengeID}, Value: true},
			{Path: "points", Value: firestore.Increment(int64(reward))},
		})
	})
	if err != nil {
		return 0, err
	}

	u, err := r.Get(ctx, uid)
	if err != nil {
		return 0, err
	}
	return u.Points, nil
}
