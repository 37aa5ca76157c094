package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/leasedesk/rental-portal/pkg/model"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrSnapshotNotFound is returned before the first snapshot has been saved.
var ErrSnapshotNotFound = errors.New("performance snapshot not found")

// SnapshotRepository manages the system/property_performance singleton document.
type SnapshotRepository struct {
	client *firestore.Client
}

func NewSnapshotRepository(client *firestore.Client) *SnapshotRepository {
	return &SnapshotRepository{client: client}
}

func (r *SnapshotRepository) doc() *firestore.DocumentRef {
	return r.client.Collection("system").Doc("property_performance")
}

func (r *SnapshotRepository) SaveSnapshot(ctx context.Context, snap model.PerformanceSnapshot) error {
	if snap.GeneratedAt.IsZero() {
		snap.GeneratedAt = time.Now().UTC()
	}
	if _, err := r.doc().Set(ctx, snap); err != nil {
		return fmt.Errorf("save performance snapshot: %w", err)
	}
	return nil
}

func (r *SnapshotRepository) LatestSnapshot(ctx context.Context) (model.PerformanceSnapshot, error) {
	docSnap, err := r.doc().Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return model.PerformanceSnapshot{}, ErrSnapshotNotFound
		}
		return model.PerformanceSnapshot{}, fmt.Errorf("get performance snapshot: %w", err)
	}
	var snap model.PerformanceSnapshot
	if err := docSnap.DataTo(&snap); err != nil {
		return model.PerformanceSnapshot{}, fmt.Errorf("decode performance snapshot: %w", err)
	}
	return snap, nil
}
