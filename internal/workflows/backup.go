package workflows

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nainglynndw/securedenv/internal/audit"
	"github.com/nainglynndw/securedenv/internal/configs"
	"github.com/nainglynndw/securedenv/internal/container"
	serrors "github.com/nainglynndw/securedenv/internal/errors"
	"github.com/nainglynndw/securedenv/internal/project"
	"github.com/nainglynndw/securedenv/internal/utils"
	"github.com/nainglynndw/securedenv/internal/vault"
)

// BackupOptions configures the backup workflow.
type BackupOptions struct {
	KeyOptions

	// ProjectRoot is the directory whose dot-env files are backed up.
	ProjectRoot string

	// FilePatterns narrows the backup to matching files. If empty, all
	// eligible dot-env files in the project root are backed up.
	FilePatterns []string
}

// BackupResult contains the outcome of a backup operation.
type BackupResult struct {
	// Project is the identity the backup was stored under.
	Project project.Identity

	// ContainerPath is the local container that was written.
	ContainerPath string

	// Files lists the relative filenames that were encrypted.
	Files []string
}

// Backup snapshots the project's dot-env files into the local container.
//
// Each file is encrypted independently with a fresh salt and nonce, the
// record is serialized into the container format, and the container is
// written atomically under the project's hashed storage path.
//
// Returns ErrNoFilesFound if nothing eligible exists, ErrWeakPassword if
// the password fails the strength policy, and the key-resolution errors
// from ResolveKeyMaterial.
func Backup(ctx context.Context, opts BackupOptions) (*BackupResult, error) {
	material, err := opts.resolve()
	if err != nil {
		return nil, err
	}

	ident := project.Identify(opts.ProjectRoot)

	files, err := resolveBackupFiles(opts.FilePatterns, opts.ProjectRoot)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, serrors.ErrNoFilesFound
	}

	record := container.NewBackupRecord(ident.Name)

	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := os.ReadFile(filepath.Join(opts.ProjectRoot, filepath.FromSlash(name)))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}

		blob, err := vault.Encrypt(data, material, ident)
		vault.ClearBytes(data)
		if err != nil {
			return nil, fmt.Errorf("encrypting %s: %w", name, err)
		}

		record.Files[name] = *blob
	}

	serialized, err := container.Serialize(record)
	if err != nil {
		return nil, err
	}

	storageDir := configs.ProjectStoragePath(ident.Hash)
	if err := os.MkdirAll(storageDir, 0700); err != nil {
		return nil, fmt.Errorf("creating storage directory %s: %w", storageDir, err)
	}

	containerPath := configs.ContainerPath(ident.Hash)
	if err := utils.WriteFileAtomic(containerPath, serialized, 0600); err != nil {
		return nil, err
	}

	entry := audit.NewEntry("backup", ident.Name)
	entry.Files = files
	audit.Log(storageDir, entry)

	return &BackupResult{
		Project:       ident,
		ContainerPath: containerPath,
		Files:         files,
	}, nil
}

// resolveBackupFiles finds eligible files based on patterns or defaults
// to every dot-env file in the project root.
func resolveBackupFiles(patterns []string, projectRoot string) ([]string, error) {
	if len(patterns) > 0 {
		return ResolveFiles(patterns, projectRoot)
	}
	return FindEnvFiles(projectRoot)
}
