package gateways

import (
	"context"
	"net/http"

	"github.com/ochairo/ocrboot/internal/domain/interfaces/gateways"
)

// compositeVerificationGateway implements VerificationGateway by composing
// the checksum and GPG verifiers
type compositeVerificationGateway struct {
	checksumVerifier *checksumVerifier
	gpgVerifier      *gpgVerifier
}

// NewVerificationGateway creates the verification gateway used by the bootstrapper.
// A nil client uses the GPG adapter's default HTTP client.
func NewVerificationGateway(client *http.Client) gateways.VerificationGateway {
	return &compositeVerificationGateway{
		checksumVerifier: NewChecksumVerifier(),
		gpgVerifier:      NewGPGVerifier(client),
	}
}

// VerifyChecksum verifies a file's SHA256 checksum
func (c *compositeVerificationGateway) VerifyChecksum(ctx context.Context, filePath, expectedSum string) error {
	return c.checksumVerifier.VerifyChecksum(ctx, filePath, expectedSum)
}

// ResetGPGKeys drops every previously imported key
func (c *compositeVerificationGateway) ResetGPGKeys() {
	c.gpgVerifier.ResetGPGKeys()
}

// ImportGPGKeyFromFile imports a signing key stored on disk
func (c *compositeVerificationGateway) ImportGPGKeyFromFile(keyPath string) error {
	return c.gpgVerifier.ImportGPGKeyFromFile(keyPath)
}

// ImportGPGKeysFromURL imports the signing keys for later signature checks
func (c *compositeVerificationGateway) ImportGPGKeysFromURL(ctx context.Context, keysURL string) error {
	return c.gpgVerifier.ImportGPGKeysFromURL(ctx, keysURL)
}

// VerifyGPGSignature verifies a detached GPG signature
func (c *compositeVerificationGateway) VerifyGPGSignature(ctx context.Context, filePath, sigURL string) error {
	return c.gpgVerifier.VerifyGPGSignature(ctx, filePath, sigURL)
}
