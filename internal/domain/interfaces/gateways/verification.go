package gateways

import (
	"context"
)

// VerificationGateway checks downloaded artifacts before they are installed.
// Imported keys stay trusted until ResetGPGKeys.
type VerificationGateway interface {
	VerifyChecksum(ctx context.Context, filePath, expectedSum string) error
	ResetGPGKeys()
	ImportGPGKeysFromURL(ctx context.Context, keysURL string) error
	ImportGPGKeyFromFile(keyPath string) error
	VerifyGPGSignature(ctx context.Context, filePath, sigURL string) error
}
