// Package services defines interfaces for domain service contracts.
package services

import (
	"context"

	"github.com/ochairo/ocrboot/internal/domain/entities"
)

// VerificationService decides which integrity checks apply to a downloaded
// artifact and runs them
type VerificationService interface {
	VerifyArtifact(ctx context.Context, desc *entities.Descriptor, artifact *entities.Artifact) error
	RequiredChecks(desc *entities.Descriptor) []string
}
