package firestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/leasedesk/rental-portal/internal/platform/config"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// Connect creates a Firestore client from the env-provided service account
// and verifies it can list collections.
func Connect(ctx context.Context, cfg config.Config, log *zap.Logger) (*firestore.Client, error) {
	creds, source, err := cfg.FirebaseCredentialsJSON()
	if err != nil {
		return nil, err
	}

	client, err := firestore.NewClient(ctx, cfg.FirebaseProjectID, option.WithCredentialsJSON(creds))
	if err != nil {
		return nil, fmt.Errorf("init firestore client: %w", err)
	}
	if err := ping(ctx, client); err != nil {
		client.Close()
		return nil, fmt.Errorf("firestore ping: %w", err)
	}

	log.Info("connected to firestore",
		zap.String("project", cfg.FirebaseProjectID),
		zap.String("credentials", source),
	)
	return client, nil
}

func ping(ctx context.Context, client *firestore.Client) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := client.Collections(ctx).Next()
	if errors.Is(err, iterator.Done) {
		return nil
	}
	return err
}
