package container

import (
	"time"

	"github.com/nainglynndw/securedenv/internal/vault"
)

// BackupRecord is one project's snapshot: every eligible file's encrypted
// blob keyed by its relative filename. A record lives in memory only for
// the duration of a single operation.
type BackupRecord struct {
	ProjectName string `json:"projectName"`

	// Timestamp is the snapshot creation time in RFC 3339 format.
	Timestamp string `json:"timestamp"`

	Files map[string]vault.EncryptedBlob `json:"files"`
}

// NewBackupRecord creates an empty record for a project, stamped with the
// current UTC time.
func NewBackupRecord(projectName string) *BackupRecord {
	return &BackupRecord{
		ProjectName: projectName,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Files:       make(map[string]vault.EncryptedBlob),
	}
}
