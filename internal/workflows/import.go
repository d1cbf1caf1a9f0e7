package workflows

import (
	"context"
	"fmt"
	"os"

	"github.com/nainglynndw/securedenv/internal/audit"
	"github.com/nainglynndw/securedenv/internal/configs"
	"github.com/nainglynndw/securedenv/internal/container"
	"github.com/nainglynndw/securedenv/internal/project"
	"github.com/nainglynndw/securedenv/internal/utils"
)

// ImportOptions configures the import workflow.
type ImportOptions struct {
	KeyOptions

	// ProjectRoot is the directory restored files are written into.
	ProjectRoot string

	// InputPath is the external container file to import.
	InputPath string
}

// ImportResult contains the outcome of an import operation.
type ImportResult struct {
	// Project is the identity the container was stored under.
	Project project.Identity

	// ContainerPath is the local container the import replaced.
	ContainerPath string

	// Files lists the relative filenames that were written.
	Files []string
}

// Import reads a container from an external path, persists a verbatim
// copy as this project's local container (replacing any existing one),
// then decrypts and writes every entry with Restore semantics.
//
// Returns ErrInvalidContainer if the input is not a securedenv container
// and ErrDecryptionFailed if the key does not open it. A decryption
// failure happens after the local container has been replaced but before
// any working-directory file is touched.
func Import(ctx context.Context, opts ImportOptions) (*ImportResult, error) {
	ident := project.Identify(opts.ProjectRoot)

	raw, err := os.ReadFile(opts.InputPath)
	if err != nil {
		return nil, fmt.Errorf("reading container %s: %w", opts.InputPath, err)
	}

	record, err := container.Deserialize(raw)
	if err != nil {
		return nil, err
	}

	material, err := opts.resolve()
	if err != nil {
		return nil, err
	}

	storageDir := configs.ProjectStoragePath(ident.Hash)
	if err := os.MkdirAll(storageDir, 0700); err != nil {
		return nil, fmt.Errorf("creating storage directory %s: %w", storageDir, err)
	}

	containerPath := configs.ContainerPath(ident.Hash)
	if err := utils.WriteFileAtomic(containerPath, raw, 0600); err != nil {
		return nil, err
	}

	plaintexts, err := decryptAll(ctx, record, material, ident)
	if err != nil {
		return nil, err
	}
	defer clearAll(plaintexts)

	files, err := writeRestoredFiles(opts.ProjectRoot, plaintexts)
	if err != nil {
		return nil, err
	}

	entry := audit.NewEntry("import", ident.Name)
	entry.InputPath = opts.InputPath
	entry.FilesCount = len(files)
	audit.Log(storageDir, entry)

	return &ImportResult{
		Project:       ident,
		ContainerPath: containerPath,
		Files:         files,
	}, nil
}
