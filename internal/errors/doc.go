// Package errors provides typed error values for securedenv.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching. This makes
// error handling more robust and refactoring-safe.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Key errors: problems with the supplied key material
//     (ErrWeakPassword, ErrKeyConflict, ErrKeyMissing)
//   - Crypto errors: authenticated decryption failures (ErrDecryptionFailed)
//   - Container errors: malformed container bytes (ErrInvalidContainer)
//   - Operation errors: missing artifacts or inputs (ErrBackupNotFound,
//     ErrRemoteNotFound, ErrNoFilesFound)
//
// ErrInvalidContainer and ErrDecryptionFailed are deliberately distinct so
// callers can tell "wrong file" from "wrong key".
//
// # Usage
//
// Return errors from internal packages:
//
//	if opts.Password != "" && opts.KeyFile != "" {
//	    return nil, errors.ErrKeyConflict
//	}
//
// Handle errors in the CLI layer:
//
//	result, err := workflows.Restore(ctx, opts)
//	if errors.Is(err, serrors.ErrBackupNotFound) {
//	    // Show user-friendly message
//	}
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("reading key file %s: %w", path, errors.ErrKeyFileUnreadable)
package errors
