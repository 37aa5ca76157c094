package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type folderMappingDoc struct {
	Folder string `firestore:"folder"`
}

// FirestoreMappingStore keeps one document per unit in unit_folder_mappings.
type FirestoreMappingStore struct {
	client *firestore.Client
}

func NewFirestoreMappingStore(client *firestore.Client) *FirestoreMappingStore {
	return &FirestoreMappingStore{client: client}
}

func (r *FirestoreMappingStore) Get(ctx context.Context, unitID string) (string, error) {
	snap, err := r.client.Collection(folderMappingCollection).Doc(unitID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return "", ErrMappingNotFound
		}
		return "", fmt.Errorf("get folder mapping %s: %w", unitID, err)
	}
	var doc folderMappingDoc
	if err := snap.DataTo(&doc); err != nil {
		return "", fmt.Errorf("decode folder mapping %s: %w", unitID, err)
	}
	if doc.Folder == "" {
		return "", ErrMappingNotFound
	}
	return doc.Folder, nil
}

func (r *FirestoreMappingStore) Set(ctx context.Context, unitID, folder string) error {
	ref := r.client.Collection(folderMappingCollection).Doc(unitID)
	if _, err := ref.Set(ctx, folderMappingDoc{Folder: folder}); err != nil {
		return fmt.Errorf("set folder mapping %s: %w", unitID, err)
	}
	return nil
}

func (r *FirestoreMappingStore) All(ctx context.Context) (map[string]string, error) {
	iter := r.client.Collection(folderMappingCollection).Documents(ctx)
	defer iter.Stop()

	result := make(map[string]string)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterate folder mappings: %w", err)
		}
		var doc folderMappingDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode folder mapping %s: %w", snap.Ref.ID, err)
		}
		result[snap.Ref.ID] = doc.Folder
	}
	return result, nil
}

// Import writes mappings in batches to reduce round trips.
func (r *FirestoreMappingStore) Import(ctx context.Context, mappings map[string]string) error {
	if len(mappings) == 0 {
		return nil
	}
	const batchSize = 400

	ids := make([]string, 0, len(mappings))
	for id := range mappings {
		ids = append(ids, id)
	}
	for start := 0; start < len(ids); start += batchSize {
		end := start + batchSize
		if end > len(ids) {
			end = len(ids)
		}
		batch := r.client.Batch()
		for _, id := range ids[start:end] {
			ref := r.client.Collection(folderMappingCollection).Doc(id)
			batch.Set(ref, folderMappingDoc{Folder: mappings[id]})
		}
		if _, err := batch.Commit(ctx); err != nil {
			return fmt.Errorf("commit mapping batch [%d:%d]: %w", start, end, err)
		}
	}
	return nil
}
