package errors

import "errors"

// Key material errors indicate problems with the password or key file
// supplied for an operation.
var (
	// ErrWeakPassword indicates the password fails the strength policy.
	// It is never returned for key-file material.
	ErrWeakPassword = errors.New("password does not meet strength requirements")

	// ErrKeyConflict indicates both a password and a key file were supplied.
	// The two forms of key material are mutually exclusive.
	ErrKeyConflict = errors.New("password and key file are mutually exclusive")

	// ErrKeyFileUnreadable indicates the key file does not exist or cannot be read.
	ErrKeyFileUnreadable = errors.New("key file is unreadable")

	// ErrKeyMissing indicates neither a password nor a key file was supplied.
	ErrKeyMissing = errors.New("no key material supplied")
)

// Cryptographic errors indicate failures during authenticated decryption.
var (
	// ErrDecryptionFailed indicates an authentication-tag mismatch or
	// corrupted ciphertext: either the wrong key or tampered data.
	ErrDecryptionFailed = errors.New("decryption failed")
)

// Container errors indicate the backup container bytes are malformed.
var (
	// ErrInvalidContainer indicates the bytes fail magic or length
	// validation and are not a securedenv container.
	ErrInvalidContainer = errors.New("invalid backup container")
)

// Operation errors indicate a missing artifact or empty input set.
var (
	// ErrNoFilesFound indicates a backup found nothing eligible to back up.
	ErrNoFilesFound = errors.New("no environment files found")

	// ErrBackupNotFound indicates no local container exists for this project.
	ErrBackupNotFound = errors.New("no backup found for this project")

	// ErrRemoteNotFound indicates no remote object exists for this project.
	ErrRemoteNotFound = errors.New("no remote backup found for this project")

	// ErrRemoteConflict indicates a concurrent push updated the remote
	// object between the revision read and the conditional write.
	ErrRemoteConflict = errors.New("remote backup was updated concurrently")

	// ErrRemoteNotConfigured indicates push/pull was requested before a
	// remote repository was configured.
	ErrRemoteNotConfigured = errors.New("remote repository is not configured")
)
