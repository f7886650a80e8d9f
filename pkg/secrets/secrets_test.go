package secrets_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/megaphone-app/megaphone/pkg/secrets"
)

func newSystem(t *testing.T, passphrase string) secrets.System {
	t.Helper()

	cfg := secrets.Config{Passphrase: passphrase}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize error: %v", err)
	}

	sys, err := secrets.New(&cfg)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	return sys
}

func TestRoundTrip(t *testing.T) {
	sys := newSystem(t, "correct horse battery staple")

	creds := secrets.Credentials{
		"access_token": "tw-token",
		"person_id":    "AbC123",
	}

	blob, err := sys.Encrypt(creds)
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	if bytes.Contains(blob, []byte("tw-token")) {
		t.Error("sealed blob leaks plaintext credentials")
	}

	got, err := sys.Decrypt(blob)
	if err != nil {
		t.Fatalf("Decrypt error: %v", err)
	}
	if len(got) != len(creds) {
		t.Fatalf("Decrypt returned %d fields, want %d", len(got), len(creds))
	}
	for key, want := range creds {
		if got[key] != want {
			t.Errorf("%s = %q, want %q", key, got[key], want)
		}
	}
}

func TestEncryptProducesUniqueBlobs(t *testing.T) {
	sys := newSystem(t, "passphrase")
	creds := secrets.Credentials{"access_token": "token"}

	first, err := sys.Encrypt(creds)
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	second, err := sys.Encrypt(creds)
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	if bytes.Equal(first, second) {
		t.Error("sealing the same credentials twice should produce distinct blobs")
	}
}

func TestDecrypt(t *testing.T) {
	sys := newSystem(t, "passphrase")

	blob, err := sys.Encrypt(secrets.Credentials{"access_token": "token"})
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	t.Run("wrong passphrase fails", func(t *testing.T) {
		other := newSystem(t, "different passphrase")
		_, err := other.Decrypt(blob)
		if !errors.Is(err, secrets.ErrDecryptFailed) {
			t.Errorf("Decrypt error = %v, want ErrDecryptFailed", err)
		}
	})

	t.Run("tampered blob fails", func(t *testing.T) {
		tampered := bytes.Clone(blob)
		tampered[len(tampered)-1] ^= 0xff
		_, err := sys.Decrypt(tampered)
		if !errors.Is(err, secrets.ErrDecryptFailed) {
			t.Errorf("Decrypt error = %v, want ErrDecryptFailed", err)
		}
	})

	t.Run("short blob fails", func(t *testing.T) {
		_, err := sys.Decrypt([]byte{1, 2, 3})
		if !errors.Is(err, secrets.ErrMalformedBlob) {
			t.Errorf("Decrypt error = %v, want ErrMalformedBlob", err)
		}
	})
}

func TestConfig(t *testing.T) {
	t.Run("passphrase required", func(t *testing.T) {
		var cfg secrets.Config
		if err := cfg.Finalize(nil); err == nil {
			t.Error("Finalize should require a passphrase")
		}
	})

	t.Run("salt defaults", func(t *testing.T) {
		cfg := secrets.Config{Passphrase: "p"}
		if err := cfg.Finalize(nil); err != nil {
			t.Fatalf("Finalize error: %v", err)
		}
		if cfg.Salt == "" {
			t.Error("Salt should default to a non-empty value")
		}
	})

	t.Run("merge overwrites non-zero fields", func(t *testing.T) {
		cfg := secrets.Config{Passphrase: "base", Salt: "base-salt"}
		cfg.Merge(&secrets.Config{Passphrase: "overlay"})
		if cfg.Passphrase != "overlay" {
			t.Errorf("Passphrase = %q, want overlay", cfg.Passphrase)
		}
		if cfg.Salt != "base-salt" {
			t.Errorf("Salt = %q, want base-salt", cfg.Salt)
		}
	})
}
