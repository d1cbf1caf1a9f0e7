package container

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	serrors "github.com/nainglynndw/securedenv/internal/errors"
	"github.com/nainglynndw/securedenv/internal/vault"
)

func sampleRecord() *BackupRecord {
	record := NewBackupRecord("myapp")
	record.Files[".env"] = vault.EncryptedBlob{
		Ciphertext: []byte{0x01, 0x02},
		Salt:       bytes.Repeat([]byte{0x03}, vault.SaltSize),
		Nonce:      bytes.Repeat([]byte{0x04}, vault.NonceSize),
		AuthTag:    bytes.Repeat([]byte{0x05}, vault.TagSize),
	}
	return record
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	record := sampleRecord()

	data, err := Serialize(record)
	if err != nil {
		t.Fatalf("serialize failed: %v", err)
	}

	decoded, err := Deserialize(data)
	if err != nil {
		t.Fatalf("deserialize failed: %v", err)
	}

	if decoded.ProjectName != "myapp" {
		t.Errorf("expected project name myapp, got %q", decoded.ProjectName)
	}
	if decoded.Timestamp != record.Timestamp {
		t.Errorf("timestamp changed: %q vs %q", decoded.Timestamp, record.Timestamp)
	}
	blob, ok := decoded.Files[".env"]
	if !ok {
		t.Fatal("missing .env entry after round trip")
	}
	if !bytes.Equal(blob.Ciphertext, []byte{0x01, 0x02}) {
		t.Error("ciphertext changed in round trip")
	}
}

func TestSerializeHeader(t *testing.T) {
	data, err := Serialize(sampleRecord())
	if err != nil {
		t.Fatalf("serialize failed: %v", err)
	}

	if !bytes.HasPrefix(data, []byte(Magic)) {
		t.Fatalf("container does not start with magic, got %q", data[:len(Magic)])
	}

	declared := binary.BigEndian.Uint32(data[len(Magic) : len(Magic)+4])
	if int(declared) != len(data)-len(Magic)-4 {
		t.Errorf("declared payload length %d, actual %d", declared, len(data)-len(Magic)-4)
	}
}

func TestSerializePayloadObfuscated(t *testing.T) {
	data, err := Serialize(sampleRecord())
	if err != nil {
		t.Fatalf("serialize failed: %v", err)
	}

	// The payload must not contain readable JSON markers.
	if bytes.Contains(data, []byte(`"projectName"`)) {
		t.Error("payload contains plain JSON; obfuscation missing")
	}
}

func TestSerializeRejectsReservedExtension(t *testing.T) {
	record := NewBackupRecord("myapp")
	record.Files["backup.senv"] = vault.EncryptedBlob{}

	if _, err := Serialize(record); err == nil {
		t.Fatal("expected error for record key with reserved extension")
	}
}

func TestDeserializeBadMagic(t *testing.T) {
	data, err := Serialize(sampleRecord())
	if err != nil {
		t.Fatalf("serialize failed: %v", err)
	}
	data[0] ^= 0xff

	if _, err := Deserialize(data); !errors.Is(err, serrors.ErrInvalidContainer) {
		t.Fatalf("expected ErrInvalidContainer, got %v", err)
	}
}

func TestDeserializeTruncated(t *testing.T) {
	if _, err := Deserialize([]byte("SENV")); !errors.Is(err, serrors.ErrInvalidContainer) {
		t.Fatalf("expected ErrInvalidContainer for short input, got %v", err)
	}
}

func TestDeserializeLengthMismatch(t *testing.T) {
	data, err := Serialize(sampleRecord())
	if err != nil {
		t.Fatalf("serialize failed: %v", err)
	}

	// Truncate the payload while keeping the declared length.
	if _, err := Deserialize(data[:len(data)-1]); !errors.Is(err, serrors.ErrInvalidContainer) {
		t.Fatalf("expected ErrInvalidContainer for length mismatch, got %v", err)
	}
}

func TestDeserializeGarbagePayload(t *testing.T) {
	payload := []byte("not json at all")
	data := make([]byte, len(Magic)+4+len(payload))
	copy(data, Magic)
	binary.BigEndian.PutUint32(data[len(Magic):], uint32(len(payload)))
	copy(data[len(Magic)+4:], payload)

	if _, err := Deserialize(data); !errors.Is(err, serrors.ErrInvalidContainer) {
		t.Fatalf("expected ErrInvalidContainer for garbage payload, got %v", err)
	}
}

func TestDeserializeLeavesInputIntact(t *testing.T) {
	data, err := Serialize(sampleRecord())
	if err != nil {
		t.Fatalf("serialize failed: %v", err)
	}

	snapshot := make([]byte, len(data))
	copy(snapshot, data)

	if _, err := Deserialize(data); err != nil {
		t.Fatalf("deserialize failed: %v", err)
	}
	if !bytes.Equal(data, snapshot) {
		t.Error("deserialize mutated the caller's buffer")
	}
}
