// Package evidence retrieves and ranks independent evidence for claims.
package evidence

import (
	"context"

	"github.com/truthlens/truthlens/internal/model"
)

// Source is one external evidence provider queried per claim.
// Implementations fail soft: missing credentials or transport errors
// yield an empty result list, never a pipeline failure (the retriever
// logs the error and moves on).
type Source interface {
	// Name identifies the source in logs
	Name() string

	// Kind is the SourceKind stamped on every item this source produces
	Kind() model.SourceKind

	// BaseURL is the endpoint this source queries, used for per-domain pacing
	BaseURL() string

	// Search returns evidence items for one claim
	Search(ctx context.Context, claim model.Claim) ([]model.EvidenceItem, error)
}
