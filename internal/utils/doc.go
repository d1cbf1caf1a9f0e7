// Package utils provides shared utility functions for securedenv.
//
// This package contains general-purpose helpers used across multiple packages.
// Functions are organized into logical groups:
//
// # Filesystem Utilities
//
// Functions for working with the filesystem:
//   - WriteFileAtomic: writes through a temp file and renames into place
//   - CopyFile: byte-verbatim file copy
//
// # String Utilities
//
//   - FormatPaths: formats file paths for human-readable output
//
// # Terminal Utilities
//
// Functions for terminal detection and interaction:
//   - ReadPassphrase: hidden passphrase input
//   - IsTerminal: checks if stdin is a terminal
package utils
