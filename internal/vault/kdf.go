package vault

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"

	serrors "github.com/nainglynndw/securedenv/internal/errors"
	"github.com/nainglynndw/securedenv/internal/project"
)

const (
	// KeySize is the AES-256 key size.
	KeySize = 32

	// SaltSize is the per-encryption random salt size in bytes.
	SaltSize = 32

	// formatTag is mixed into project entropy so a future format revision
	// derives disjoint keys.
	formatTag = "securedenv-v1"

	round1Iterations = 500000
	round2Iterations = 100000
	round3Iterations = 50000
)

// DeriveKey converts key material plus a salt and the project identity
// into a 32-byte symmetric key.
//
// Password material is gated through the strength policy first and fails
// with ErrWeakPassword if it scores below the threshold. RawKey material
// bypasses the policy but runs through the identical derivation pipeline,
// so two key files of the same length are never interchangeable unless
// their content matches.
//
// Derivation is three sequential PBKDF2-HMAC-SHA256 rounds, each feeding
// the next:
//
//  1. material + salt, 500,000 iterations
//  2. previous key + (salt ∥ project entropy), 100,000 iterations
//  3. previous key + SHA-256(salt ∥ project entropy), 50,000 iterations
//
// Binding the key to the project identity defeats key reuse across
// differently named projects; the random salt defeats rainbow tables.
func DeriveKey(material KeyMaterial, salt []byte, ident project.Identity) ([]byte, error) {
	if password, ok := material.(Password); ok {
		result := ValidatePassword(string(password))
		if !result.Strong {
			return nil, fmt.Errorf("%w: needs %s", serrors.ErrWeakPassword, strings.Join(result.Unmet, ", "))
		}
	}

	entropy := projectEntropy(ident.Name)

	boundSalt := make([]byte, 0, len(salt)+len(entropy))
	boundSalt = append(boundSalt, salt...)
	boundSalt = append(boundSalt, entropy...)

	round1 := pbkdf2.Key(material.keyBytes(), salt, round1Iterations, KeySize, sha256.New)
	round2 := pbkdf2.Key(round1, boundSalt, round2Iterations, KeySize, sha256.New)

	hardenedSalt := sha256.Sum256(boundSalt)
	key := pbkdf2.Key(round2, hardenedSalt[:], round3Iterations, KeySize, sha256.New)

	ClearBytes(round1)
	ClearBytes(round2)

	return key, nil
}

// projectEntropy hashes the project name with the format tag. It is the
// project-specific input that binds derived keys to a single project.
func projectEntropy(name string) []byte {
	sum := sha256.Sum256([]byte(name + ":" + formatTag))
	return sum[:]
}
