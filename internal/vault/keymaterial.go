package vault

import (
	"fmt"
	"os"

	serrors "github.com/nainglynndw/securedenv/internal/errors"
)

// KeyMaterial is the secret input to key derivation: either a Password
// or a RawKey. The interface is sealed so no third variant can appear.
type KeyMaterial interface {
	keyBytes() []byte
}

// Password is UTF-8 text subject to the strength policy. The policy is
// applied lazily inside DeriveKey, not at resolve time.
type Password string

func (p Password) keyBytes() []byte { return []byte(p) }

// RawKey is an opaque byte sequence read from a key file. Any length and
// content is accepted; no strength policy applies.
type RawKey []byte

func (k RawKey) keyBytes() []byte { return []byte(k) }

// ResolveOptions carries the caller-supplied key specification.
type ResolveOptions struct {
	Password    string
	KeyFilePath string
}

// ResolveKeyMaterial enforces mutual exclusion between password-based and
// key-file-based key material and loads the chosen variant.
//
// Returns ErrKeyConflict if both are supplied (never silently prefers one),
// ErrKeyFileUnreadable if the key file cannot be read, and ErrKeyMissing
// if neither is supplied.
func ResolveKeyMaterial(opts ResolveOptions) (KeyMaterial, error) {
	if opts.Password != "" && opts.KeyFilePath != "" {
		return nil, serrors.ErrKeyConflict
	}

	if opts.KeyFilePath != "" {
		data, err := os.ReadFile(opts.KeyFilePath)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", serrors.ErrKeyFileUnreadable, opts.KeyFilePath, err)
		}
		return RawKey(data), nil
	}

	if opts.Password != "" {
		return Password(opts.Password), nil
	}

	return nil, serrors.ErrKeyMissing
}
