// Package vault provides the cryptographic core for securedenv.
//
// Encryption uses AES-256-GCM with:
//   - 32-byte key derived from the key material via PBKDF2
//   - 32-byte random salt and 16-byte random nonce per encryption call
//   - 128-bit authentication tag; tampering is always detected
//
// Key derivation runs three sequential PBKDF2-HMAC-SHA256 rounds
// (500,000 / 100,000 / 50,000 iterations). The second and third rounds
// mix in project entropy, a hash of the project name plus a format tag,
// so a key derived for one project never decrypts another project's
// data even with the same password and salt.
//
// Key material is either a Password (subject to the strength policy) or
// a RawKey read from a key file (any bytes accepted). The two are
// mutually exclusive per operation and resolved by ResolveKeyMaterial.
//
// Memory safety:
//   - Use ClearBytes() to zero sensitive data after use
package vault
