// Package workers runs background jobs of the drive client.
//
// A [Worker] blocks in Run until its context is cancelled. [Workers] starts
// a set of them and stops them together.
package workers

import (
	"context"

	"github.com/MKhiriev/go-sealed-drive/models"
)

// Worker is a background job. Run blocks until ctx is done.
type Worker interface {
	Run(ctx context.Context)
}

// ManifestSyncer reloads the manifest. Sync never fails; on error it keeps
// and returns the previous state.
type ManifestSyncer interface {
	Sync(ctx context.Context) *models.Manifest
}
