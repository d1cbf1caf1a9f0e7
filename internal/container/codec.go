// Package container serializes backup records into the securedenv binary
// container format and back.
//
// The layout, in fixed order:
//
//	bytes 0..7   ASCII magic "SENVBK01" (format + version)
//	bytes 8..11  big-endian uint32 payload length
//	bytes 12..   payload
//
// The payload is the record's JSON encoding, XORed with a fixed repeating
// key. The XOR pass only resists casual inspection of the file; it is
// not a security boundary and is reversible without any key material.
// Confidentiality comes entirely from the encrypted blobs inside the
// record.
package container

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"strings"

	serrors "github.com/nainglynndw/securedenv/internal/errors"
)

const (
	// Magic identifies the container format and version.
	Magic = "SENVBK01"

	// Extension is the reserved container-file extension. Files carrying
	// it are never eligible for backup and may not appear as record keys.
	Extension = ".senv"

	// FileName is the fixed name of the container inside a project's
	// local storage directory and under its remote path.
	FileName = "backup" + Extension

	// headerSize is the magic plus the 4-byte length field.
	headerSize = len(Magic) + 4
)

// obfuscationKey is the fixed repeating XOR key, cycled by index modulo
// its length. Deliberately a program constant: the format must stay
// self-describing and reversible without key material.
var obfuscationKey = []byte("securedenv::container::v1")

// Serialize encodes a record into container bytes.
func Serialize(record *BackupRecord) ([]byte, error) {
	for name := range record.Files {
		if strings.HasSuffix(name, Extension) {
			return nil, fmt.Errorf("record key %q uses the reserved container extension %s", name, Extension)
		}
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("encoding backup record: %w", err)
	}
	obfuscate(payload)

	out := make([]byte, headerSize+len(payload))
	copy(out, Magic)
	binary.BigEndian.PutUint32(out[len(Magic):headerSize], uint32(len(payload)))
	copy(out[headerSize:], payload)

	return out, nil
}

// Deserialize decodes container bytes back into a record. Any mismatch
// in magic or declared length fails with ErrInvalidContainer, which is
// distinct from a decryption failure so callers can tell "wrong file"
// from "wrong key".
func Deserialize(data []byte) (*BackupRecord, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: truncated header (%d bytes)", serrors.ErrInvalidContainer, len(data))
	}

	if !bytes.Equal(data[:len(Magic)], []byte(Magic)) {
		return nil, fmt.Errorf("%w: bad magic", serrors.ErrInvalidContainer)
	}

	declared := binary.BigEndian.Uint32(data[len(Magic):headerSize])
	payload := data[headerSize:]
	if int(declared) != len(payload) {
		return nil, fmt.Errorf("%w: declared payload length %d, have %d bytes", serrors.ErrInvalidContainer, declared, len(payload))
	}

	// Work on a copy so the caller's buffer is left intact.
	decoded := make([]byte, len(payload))
	copy(decoded, payload)
	obfuscate(decoded)

	var record BackupRecord
	if err := json.Unmarshal(decoded, &record); err != nil {
		return nil, fmt.Errorf("%w: undecodable payload: %v", serrors.ErrInvalidContainer, err)
	}

	return &record, nil
}

// obfuscate XORs the payload in place with the repeating key. Applying
// it twice restores the original bytes.
func obfuscate(payload []byte) {
	for i := range payload {
		payload[i] ^= obfuscationKey[i%len(obfuscationKey)]
	}
}
