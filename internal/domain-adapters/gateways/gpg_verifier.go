package gateways

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ochairo/ocrboot/internal/external-adapters/gpg"
)

// gpgVerifier wraps the external GPG adapter to implement the domain gateway interface
type gpgVerifier struct {
	verifier *gpg.Verifier
}

// NewGPGVerifier creates a new GPG verifier gateway
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewGPGVerifier(client *http.Client) *gpgVerifier {
	if client == nil {
		return &gpgVerifier{verifier: gpg.NewVerifier()}
	}
	return &gpgVerifier{verifier: gpg.NewVerifierWithClient(client)}
}

// ResetGPGKeys clears the keyring
func (g *gpgVerifier) ResetGPGKeys() {
	g.verifier.ClearKeyring()
}

// ImportGPGKeyFromFile imports a public key from a local file
func (g *gpgVerifier) ImportGPGKeyFromFile(keyPath string) error {
	if err := g.verifier.ImportKeyFromFile(keyPath); err != nil {
		return fmt.Errorf("failed to import GPG key from file: %w", err)
	}
	return nil
}

// ImportGPGKeysFromURL imports all GPG keys from a KEYS file URL
func (g *gpgVerifier) ImportGPGKeysFromURL(ctx context.Context, keysURL string) error {
	if err := g.verifier.ImportKeysFromURL(ctx, keysURL); err != nil {
		return fmt.Errorf("failed to import GPG keys from URL: %w", err)
	}
	return nil
}

// VerifyGPGSignature verifies a detached GPG signature downloaded from a URL
func (g *gpgVerifier) VerifyGPGSignature(ctx context.Context, filePath, sigURL string) error {
	if err := g.verifier.VerifySignature(ctx, filePath, sigURL); err != nil {
		return fmt.Errorf("GPG signature verification failed: %w", err)
	}
	return nil
}
