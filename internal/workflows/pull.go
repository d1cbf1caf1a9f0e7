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

// PullOptions configures the pull workflow.
type PullOptions struct {
	KeyOptions

	// ProjectRoot is the directory restored files are written into.
	ProjectRoot string
}

// PullResult contains the outcome of a pull operation.
type PullResult struct {
	// Project is the identity the container was pulled under.
	Project project.Identity

	// RemotePath is the object path that was downloaded.
	RemotePath string

	// ContainerPath is the local container the pull replaced.
	ContainerPath string

	// Files lists the relative filenames that were written.
	Files []string
}

// Pull downloads the project's container from the remote store, persists
// it verbatim as the local container, then decrypts and writes every
// entry with Restore semantics.
//
// Returns ErrRemoteNotFound when no remote object exists for this
// project and ErrRemoteNotConfigured when no remote is set up.
func Pull(ctx context.Context, opts PullOptions) (*PullResult, error) {
	client, config, err := newRemoteClient()
	if err != nil {
		return nil, err
	}

	ident := project.Identify(opts.ProjectRoot)
	path := remotePath(ident)

	blob, err := client.GetBlob(ctx, path)
	if err != nil {
		return nil, err
	}

	record, err := container.Deserialize(blob.Content)
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
	if err := utils.WriteFileAtomic(containerPath, blob.Content, 0600); err != nil {
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

	entry := audit.NewEntry("pull", ident.Name)
	entry.Remote = config.Remote.Repository
	entry.FilesCount = len(files)
	audit.Log(storageDir, entry)

	return &PullResult{
		Project:       ident,
		RemotePath:    path,
		ContainerPath: containerPath,
		Files:         files,
	}, nil
}
