// Package services implements domain business logic and use cases.
package services

import (
	"context"
	"fmt"

	"github.com/ochairo/ocrboot/internal/domain/entities"
	"github.com/ochairo/ocrboot/internal/domain/interfaces/gateways"
	"github.com/ochairo/ocrboot/internal/domain/interfaces/services"
)

// Integrity checks
const (
	CheckSHA256    = "sha256"
	CheckSignature = "signature"
)

// verificationService implements VerificationService with pure business logic
type verificationService struct {
	gateway gateways.VerificationGateway
}

// NewVerificationService creates a new verification service with dependency injection
func NewVerificationService(gateway gateways.VerificationGateway) services.VerificationService {
	return &verificationService{gateway: gateway}
}

// RequiredChecks returns the checks the descriptor asks for, in execution order
// Pure business logic - no I/O
func (s *verificationService) RequiredChecks(desc *entities.Descriptor) []string {
	checks := make([]string, 0, 2)
	if desc.Install.SHA256 != "" {
		checks = append(checks, CheckSHA256)
	}
	if desc.Install.HasSignature() {
		checks = append(checks, CheckSignature)
	}
	return checks
}

// VerifyArtifact runs every required check against the downloaded artifact
func (s *verificationService) VerifyArtifact(ctx context.Context, desc *entities.Descriptor, artifact *entities.Artifact) error {
	for _, check := range s.RequiredChecks(desc) {
		switch check {
		case CheckSHA256:
			if err := s.gateway.VerifyChecksum(ctx, artifact.Path, desc.Install.SHA256); err != nil {
				return fmt.Errorf("%s: %w", artifact.Name, err)
			}
		case CheckSignature:
			// Only this descriptor's keys may vouch for its artifact
			s.gateway.ResetGPGKeys()
			if desc.Install.GPGKeyFile != "" {
				if err := s.gateway.ImportGPGKeyFromFile(desc.Install.GPGKeyFile); err != nil {
					return fmt.Errorf("%s: %w", artifact.Name, err)
				}
			}
			if desc.Install.GPGKeysURL != "" {
				if err := s.gateway.ImportGPGKeysFromURL(ctx, desc.Install.GPGKeysURL); err != nil {
					return fmt.Errorf("%s: %w", artifact.Name, err)
				}
			}
			if err := s.gateway.VerifyGPGSignature(ctx, artifact.Path, desc.Install.SignatureURL); err != nil {
				return fmt.Errorf("%s: %w", artifact.Name, err)
			}
		}
	}
	return nil
}
