package workflows

import (
	"context"

	"github.com/nainglynndw/securedenv/internal/audit"
	"github.com/nainglynndw/securedenv/internal/configs"
	"github.com/nainglynndw/securedenv/internal/project"
)

// RestoreOptions configures the restore workflow.
type RestoreOptions struct {
	KeyOptions

	// ProjectRoot is the directory restored files are written into.
	ProjectRoot string
}

// RestoreResult contains the outcome of a restore operation.
type RestoreResult struct {
	// Project is the identity the container was read under.
	Project project.Identity

	// Files lists the relative filenames that were written.
	Files []string
}

// Restore decrypts the project's local container back into the working
// directory, overwriting existing files.
//
// Every entry is decrypted before any file is written: a wrong key fails
// the whole operation with ErrDecryptionFailed and leaves the working
// directory untouched. Returns ErrBackupNotFound when no local container
// exists and ErrInvalidContainer when the container bytes are malformed.
func Restore(ctx context.Context, opts RestoreOptions) (*RestoreResult, error) {
	ident := project.Identify(opts.ProjectRoot)

	_, record, err := readLocalContainer(ident)
	if err != nil {
		return nil, err
	}

	material, err := opts.resolve()
	if err != nil {
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

	entry := audit.NewEntry("restore", ident.Name)
	entry.FilesCount = len(files)
	audit.Log(configs.ProjectStoragePath(ident.Hash), entry)

	return &RestoreResult{Project: ident, Files: files}, nil
}
