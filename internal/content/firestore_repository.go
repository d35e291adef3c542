package content

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const contentCollection = "theoryContent"

type firestoreRepository struct {
	client *firestore.Client
}

// NewFirestoreRepository creates a new Firestore repository
func NewFirestoreRepository(client *firestore.Client) Repository {
	return &firestoreRepository{client: client}
}

func (r *firestoreRepository) GetPages(ctx context.Context, category string) ([]Page, error) {
	doc, err := r.client.Collection(contentCollection).Doc(category).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var document Document
	if err := doc.DataTo(&document); err != nil {
		return nil, fmt.Errorf("unmarshal content: %w", err)
	}
	return document.Content, nil
}

func (r *firestoreRepository) ListCategories(ctx context.Context) ([]string, error) {
	iter := r.client.Collection(contentCollection).Documents(ctx)
	defer iter.Stop()

	var categories []string
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		categories = append(categories, doc.Ref.ID)
	}
	return categories, nil
}

func (r *firestoreRepository) SaveCategory(ctx context.Context, category string, pages []Page) error {
	_, err := r.client.Collection(contentCollection).Doc(category).Set(ctx, Document{Content: pages})
	return err
}
