package cli

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"github.com/convocoach/coach-service/internal/challenge"
	"github.com/convocoach/coach-service/internal/config"
	"github.com/convocoach/coach-service/internal/content"
	"github.com/convocoach/coach-service/internal/user"
)

type stores struct {
	users      user.Repository
	challenges challenge.Repository
	content    content.Repository
	close      func() error
}

// newStores wires the configured datastore. The memory backend exists for
// local runs without a Firestore project; the Firestore client honors
// FIRESTORE_EMULATOR_HOST on its own.
func newStores(ctx context.Context, cfg config.Config) (*stores, error) {
	switch cfg.DataStore {
	case "memory":
		return &stores{
			users:      user.NewMemoryRepository(),
			challenges: challenge.NewMemoryRepository(),
			content:    content.NewMemoryRepository(),
			close:      func() error { return nil },
		}, nil
	case "firestore":
		client, err := firestore.NewClient(ctx, cfg.GCPProjectID)
		if err != nil {
			return nil, fmt.Errorf("firestore client: %w", err)
		}
		return &stores{
			users:      user.NewFirestoreRepository(client),
			challenges: challenge.NewFirestoreRepository(client),
			content:    content.NewFirestoreRepository(client),
			close:      client.Close,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported datastore: %s", cfg.DataStore)
	}
}
