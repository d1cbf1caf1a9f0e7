// Package project derives a stable identity for the project being backed up.
package project

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
)

// hashLength is the number of hex characters of the name hash used as the
// local storage path component.
const hashLength = 16

// Identity is the (name, hash) pair for a project. The name is the
// basename of the project root, so the same folder name on a different
// machine or path resolves to the same identity. The hash keeps the
// literal project name off the local disk layout.
type Identity struct {
	Name string
	Hash string
}

// Identify derives the identity for the given project root. It is a pure
// function of the root path and is recomputed on every call; identities
// are never cached or persisted.
func Identify(root string) Identity {
	name := filepath.Base(filepath.Clean(root))
	sum := sha256.Sum256([]byte(name))
	return Identity{
		Name: name,
		Hash: hex.EncodeToString(sum[:])[:hashLength],
	}
}
