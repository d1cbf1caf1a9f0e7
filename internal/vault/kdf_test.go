package vault

import (
	"bytes"
	"errors"
	"testing"

	serrors "github.com/nainglynndw/securedenv/internal/errors"
	"github.com/nainglynndw/securedenv/internal/project"
)

var testIdent = project.Identity{Name: "myapp", Hash: "0123456789abcdef"}

func TestDeriveKeyDeterministic(t *testing.T) {
	salt := bytes.Repeat([]byte{0x42}, SaltSize)

	key1, err := DeriveKey(Password("Str0ng!Pass99"), salt, testIdent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	key2, err := DeriveKey(Password("Str0ng!Pass99"), salt, testIdent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(key1) != KeySize {
		t.Fatalf("expected %d-byte key, got %d", KeySize, len(key1))
	}
	if !bytes.Equal(key1, key2) {
		t.Error("identical inputs must derive identical keys")
	}
}

func TestDeriveKeyProjectBinding(t *testing.T) {
	salt := bytes.Repeat([]byte{0x42}, SaltSize)

	key1, err := DeriveKey(Password("Str0ng!Pass99"), salt, project.Identity{Name: "app-one"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	key2, err := DeriveKey(Password("Str0ng!Pass99"), salt, project.Identity{Name: "app-two"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if bytes.Equal(key1, key2) {
		t.Error("same password and salt must derive different keys for different projects")
	}
}

func TestDeriveKeySaltSensitivity(t *testing.T) {
	salt1 := bytes.Repeat([]byte{0x01}, SaltSize)
	salt2 := bytes.Repeat([]byte{0x02}, SaltSize)

	key1, err := DeriveKey(Password("Str0ng!Pass99"), salt1, testIdent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	key2, err := DeriveKey(Password("Str0ng!Pass99"), salt2, testIdent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if bytes.Equal(key1, key2) {
		t.Error("different salts must derive different keys")
	}
}

func TestDeriveKeyWeakPasswordRejected(t *testing.T) {
	salt := bytes.Repeat([]byte{0x42}, SaltSize)

	_, err := DeriveKey(Password("weak"), salt, testIdent)
	if !errors.Is(err, serrors.ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
}

func TestDeriveKeyRawKeyBypassesPolicy(t *testing.T) {
	salt := bytes.Repeat([]byte{0x42}, SaltSize)

	// A short raw key would fail the password policy but is fine as a key file.
	key, err := DeriveKey(RawKey([]byte{0x01}), salt, testIdent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(key) != KeySize {
		t.Fatalf("expected %d-byte key, got %d", KeySize, len(key))
	}
}

func TestDeriveKeyRawKeyContentSensitivity(t *testing.T) {
	salt := bytes.Repeat([]byte{0x42}, SaltSize)

	// Same length, different content: keys must differ.
	key1, err := DeriveKey(RawKey(bytes.Repeat([]byte{0xaa}, 32)), salt, testIdent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	key2, err := DeriveKey(RawKey(bytes.Repeat([]byte{0xbb}, 32)), salt, testIdent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if bytes.Equal(key1, key2) {
		t.Error("raw keys of equal length but different content must derive different keys")
	}
}
