// Package audit appends a local JSONL trail of securedenv operations.
//
// The trail lives next to the project's container in local storage, so
// it shares the storage directory's privacy properties (hashed project
// path). Audit failures never fail the operation being logged.
package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/nainglynndw/securedenv/internal/configs"
)

// Entry represents a single audit log entry.
type Entry struct {
	ID        string `json:"id"`      // Random entry ID.
	Timestamp string `json:"ts"`      // RFC3339 with microseconds.
	Install   string `json:"install"` // Install UUID performing the operation.
	Operation string `json:"op"`      // Operation name.
	Project   string `json:"project"` // Project name.

	// Optional fields depending on operation.
	Files      []string `json:"files,omitempty"`       // For backup/restore.
	FilesCount int      `json:"files_count,omitempty"` // For restore/import/pull.
	OutputPath string   `json:"output_path,omitempty"` // For export.
	InputPath  string   `json:"input_path,omitempty"`  // For import.
	Remote     string   `json:"remote,omitempty"`      // For push/pull.
}

// NewEntry creates an entry for an operation, stamped with the install
// UUID when one is available.
func NewEntry(operation string, projectName string) Entry {
	entry := Entry{
		ID:        uuid.New().String(),
		Operation: operation,
		Project:   projectName,
	}

	if config, err := configs.LoadUserConfig(); err == nil {
		entry.Install = config.Install.UUID
	}

	return entry
}

// Log appends an entry to the audit log in the given storage directory.
// If logging fails it returns silently; operations should not fail just
// because audit logging failed.
func Log(storageDir string, entry Entry) {
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}

	if storageDir == "" {
		return
	}

	logPath := filepath.Join(storageDir, "audit.jsonl")

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	line, err := json.Marshal(entry)
	if err != nil {
		return
	}

	line = append(line, '\n')
	if _, err := f.Write(line); err != nil {
		return
	}
}
