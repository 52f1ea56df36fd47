package gpg

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"
)

// signedFixture creates a signing key, an installer file and its armored
// detached signature, and serves the public key and signature over HTTP
func signedFixture(t *testing.T, payload []byte) (server *httptest.Server, filePath string) {
	t.Helper()

	entity, err := openpgp.NewEntity("ocrboot test", "", "test@example.com", nil)
	if err != nil {
		t.Fatalf("NewEntity() error = %v", err)
	}

	var keys bytes.Buffer
	w, err := armor.Encode(&keys, openpgp.PublicKeyType, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := entity.Serialize(w); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	var sig bytes.Buffer
	if err := openpgp.ArmoredDetachSign(&sig, entity, bytes.NewReader(payload), nil); err != nil {
		t.Fatalf("ArmoredDetachSign() error = %v", err)
	}

	filePath = filepath.Join(t.TempDir(), "tesseract-setup.exe")
	if err := os.WriteFile(filePath, payload, 0600); err != nil {
		t.Fatal(err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/KEYS", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write(keys.Bytes()) })
	mux.HandleFunc("/setup.exe.asc", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write(sig.Bytes()) })
	server = httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server, filePath
}

func TestVerifier_VerifySignature_Valid(t *testing.T) {
	server, file := signedFixture(t, []byte("installer payload"))
	v := NewVerifierWithClient(server.Client())

	if err := v.ImportKeysFromURL(context.Background(), server.URL+"/KEYS"); err != nil {
		t.Fatalf("ImportKeysFromURL() error = %v", err)
	}
	if len(v.keyring) != 1 {
		t.Errorf("keyring size = %d, want 1", len(v.keyring))
	}

	if err := v.VerifySignature(context.Background(), file, server.URL+"/setup.exe.asc"); err != nil {
		t.Errorf("VerifySignature() error = %v", err)
	}
}

func TestVerifier_VerifySignature_Tampered(t *testing.T) {
	server, file := signedFixture(t, []byte("installer payload"))
	if err := os.WriteFile(file, []byte("tampered payload"), 0600); err != nil {
		t.Fatal(err)
	}

	v := NewVerifierWithClient(server.Client())
	if err := v.ImportKeysFromURL(context.Background(), server.URL+"/KEYS"); err != nil {
		t.Fatalf("ImportKeysFromURL() error = %v", err)
	}

	err := v.VerifySignature(context.Background(), file, server.URL+"/setup.exe.asc")
	if err == nil || !strings.Contains(err.Error(), "signature verification failed") {
		t.Errorf("VerifySignature() error = %v, want signature verification failure", err)
	}
}

func TestVerifier_ImportKeysFromURL_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	v := NewVerifierWithClient(server.Client())
	err := v.ImportKeysFromURL(context.Background(), server.URL+"/KEYS")
	if err == nil || !strings.Contains(err.Error(), "failed to download KEYS file") {
		t.Errorf("ImportKeysFromURL() error = %v", err)
	}
}

func TestVerifier_ImportKeyFromFile_Invalid(t *testing.T) {
	v := NewVerifier()
	keyPath := filepath.Join(t.TempDir(), "empty.asc")
	if err := os.WriteFile(keyPath, []byte("not a gpg key"), 0600); err != nil {
		t.Fatal(err)
	}

	if err := v.ImportKeyFromFile(keyPath); err == nil {
		t.Fatal("Expected error for invalid key file, got nil")
	}
	if err := v.ImportKeyFromFile("/nonexistent/key.asc"); err == nil || !strings.Contains(err.Error(), "failed to open key file") {
		t.Errorf("ImportKeyFromFile() error = %v", err)
	}
}

func TestVerifier_ImportKeyFromFile_Valid(t *testing.T) {
	server, file := signedFixture(t, []byte("installer payload"))

	// Save the served public key locally, as an offline key would be shipped
	resp, err := server.Client().Get(server.URL + "/KEYS")
	if err != nil {
		t.Fatal(err)
	}
	var keys bytes.Buffer
	_, err = keys.ReadFrom(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		t.Fatal(err)
	}
	keyPath := filepath.Join(t.TempDir(), "tesseract.asc")
	if err := os.WriteFile(keyPath, keys.Bytes(), 0600); err != nil {
		t.Fatal(err)
	}

	v := NewVerifierWithClient(server.Client())
	if err := v.ImportKeyFromFile(keyPath); err != nil {
		t.Fatalf("ImportKeyFromFile() error = %v", err)
	}
	if err := v.VerifySignature(context.Background(), file, server.URL+"/setup.exe.asc"); err != nil {
		t.Errorf("VerifySignature() error = %v", err)
	}
}

func TestVerifier_NoKeysImported(t *testing.T) {
	v := NewVerifier()
	testFile := filepath.Join(t.TempDir(), "test.bin")
	if err := os.WriteFile(testFile, []byte("test"), 0600); err != nil {
		t.Fatal(err)
	}

	if err := v.VerifySignature(context.Background(), testFile, "http://example.invalid/test.sig"); err == nil || !strings.Contains(err.Error(), "no GPG keys imported") {
		t.Errorf("VerifySignature() error = %v", err)
	}
}

func TestVerifier_ClearKeyring(t *testing.T) {
	server, file := signedFixture(t, []byte("installer payload"))
	v := NewVerifierWithClient(server.Client())
	if err := v.ImportKeysFromURL(context.Background(), server.URL+"/KEYS"); err != nil {
		t.Fatalf("ImportKeysFromURL() error = %v", err)
	}

	v.ClearKeyring()
	if len(v.keyring) != 0 {
		t.Errorf("keyring size after clear = %d", len(v.keyring))
	}
	if err := v.VerifySignature(context.Background(), file, server.URL+"/setup.exe.asc"); err == nil {
		t.Error("VerifySignature() should fail once the keyring is cleared")
	}
}
