package database

import (
	"context"
	"fmt"

	"cloud.google.com/go/datastore"
)

// NewDatastoreClient connects to Cloud Datastore for projectID. The client
// library honours DATASTORE_EMULATOR_HOST, which is how local runs and CI
// reach the emulator.
func NewDatastoreClient(ctx context.Context, projectID string) (*datastore.Client, error) {
	if projectID == "" {
		return nil, fmt.Errorf("datastore project id is empty")
	}
	client, err := datastore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create datastore client: %w", err)
	}
	return client, nil
}
