// Package gpg provides OpenPGP signature verification for downloaded installers.
package gpg

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/ProtonMail/go-crypto/openpgp"
)

const (
	maxKeysFileSize  = 10 * 1024 * 1024
	maxSignatureSize = 10 * 1024
	armorHeader      = "-----BEGIN PGP SIGNATURE---"
)

// Verifier implements detached signature verification using ProtonMail's go-crypto,
// the maintained fork of golang.org/x/crypto/openpgp
type Verifier struct {
	keyring    openpgp.EntityList
	httpClient *http.Client
}

// NewVerifier creates a new GPG verifier
func NewVerifier() *Verifier {
	return NewVerifierWithClient(&http.Client{Timeout: 30 * time.Second})
}

// NewVerifierWithClient creates a verifier that fetches keys and signatures with client
func NewVerifierWithClient(client *http.Client) *Verifier {
	return &Verifier{
		keyring:    make(openpgp.EntityList, 0),
		httpClient: client,
	}
}

func (v *Verifier) fetch(ctx context.Context, url string, limit int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	//nolint:errcheck // Defer close
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	return io.ReadAll(io.LimitReader(resp.Body, limit))
}

// ImportKeysFromURL imports all public keys from an armored KEYS file URL
func (v *Verifier) ImportKeysFromURL(ctx context.Context, keysURL string) error {
	data, err := v.fetch(ctx, keysURL, maxKeysFileSize)
	if err != nil {
		return fmt.Errorf("failed to download KEYS file: %w", err)
	}

	entities, err := openpgp.ReadArmoredKeyRing(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to parse KEYS file: %w", err)
	}
	if len(entities) == 0 {
		return fmt.Errorf("no keys found in KEYS file")
	}

	v.keyring = append(v.keyring, entities...)
	return nil
}

// ImportKeyFromFile imports a public key from an armored or binary file
func (v *Verifier) ImportKeyFromFile(keyPath string) error {
	//nolint:gosec // G304: keyPath is operator-provided
	data, err := os.ReadFile(keyPath)
	if err != nil {
		return fmt.Errorf("failed to open key file: %w", err)
	}

	entities, err := openpgp.ReadArmoredKeyRing(bytes.NewReader(data))
	if err != nil {
		entities, err = openpgp.ReadKeyRing(bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("failed to read key: %w", err)
		}
	}
	if len(entities) == 0 {
		return fmt.Errorf("no keys found in file")
	}

	v.keyring = append(v.keyring, entities...)
	return nil
}

// VerifySignature verifies filePath against a detached signature downloaded from sigURL
func (v *Verifier) VerifySignature(ctx context.Context, filePath, sigURL string) error {
	if len(v.keyring) == 0 {
		return fmt.Errorf("no GPG keys imported")
	}

	sigData, err := v.fetch(ctx, sigURL, maxSignatureSize)
	if err != nil {
		return fmt.Errorf("failed to download signature: %w", err)
	}
	if len(sigData) < 10 {
		return fmt.Errorf("signature file too small to be valid GPG signature")
	}

	return v.check(filePath, sigData)
}

func (v *Verifier) check(filePath string, sigData []byte) error {
	//nolint:gosec // G304: filePath is the downloaded artifact
	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	//nolint:errcheck // Defer close
	defer f.Close()

	if bytes.HasPrefix(sigData, []byte(armorHeader)) {
		_, err = openpgp.CheckArmoredDetachedSignature(v.keyring, f, bytes.NewReader(sigData), nil)
	} else {
		_, err = openpgp.CheckDetachedSignature(v.keyring, f, bytes.NewReader(sigData), nil)
	}
	if err != nil {
		return fmt.Errorf("signature verification failed: %w", err)
	}
	return nil
}

// ClearKeyring clears all imported keys
func (v *Verifier) ClearKeyring() {
	v.keyring = make(openpgp.EntityList, 0)
}
