package workflows

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/nainglynndw/securedenv/internal/audit"
	"github.com/nainglynndw/securedenv/internal/configs"
	serrors "github.com/nainglynndw/securedenv/internal/errors"
	"github.com/nainglynndw/securedenv/internal/project"
)

// PushOptions configures the push workflow.
type PushOptions struct {
	KeyOptions

	// ProjectRoot is the directory whose dot-env files are backed up
	// and pushed.
	ProjectRoot string

	// FilePatterns narrows the backup half of the push, like
	// BackupOptions.FilePatterns.
	FilePatterns []string
}

// PushResult contains the outcome of a push operation.
type PushResult struct {
	// Project is the identity the container was pushed under.
	Project project.Identity

	// RemotePath is the object path in the remote repository, keyed by
	// the literal project name.
	RemotePath string

	// Files lists the relative filenames included in the pushed backup.
	Files []string

	// Created is true when no remote object existed before this push.
	Created bool
}

// Push performs a fresh backup, then uploads the resulting container to
// the remote store under the literal project name.
//
// If a remote object already exists, its current revision marker is read
// first and the upload is conditioned on it, so a concurrent push from
// another machine surfaces as ErrRemoteConflict instead of being
// silently overwritten. An absent remote object is the normal first-push
// case and uploads unconditionally.
func Push(ctx context.Context, opts PushOptions) (*PushResult, error) {
	client, config, err := newRemoteClient()
	if err != nil {
		return nil, err
	}

	backup, err := Backup(ctx, BackupOptions{
		KeyOptions:   opts.KeyOptions,
		ProjectRoot:  opts.ProjectRoot,
		FilePatterns: opts.FilePatterns,
	})
	if err != nil {
		return nil, err
	}
	ident := backup.Project

	// Read back the container that was just written so the uploaded
	// bytes are exactly what local storage holds.
	raw, err := os.ReadFile(backup.ContainerPath)
	if err != nil {
		return nil, fmt.Errorf("reading container %s: %w", backup.ContainerPath, err)
	}

	path := remotePath(ident)

	revision := ""
	created := true
	blob, err := client.GetBlob(ctx, path)
	switch {
	case err == nil:
		revision = blob.Revision
		created = false
	case errors.Is(err, serrors.ErrRemoteNotFound):
		// First push for this project; no revision to condition on.
	default:
		return nil, err
	}

	message := fmt.Sprintf("securedenv push: %s", ident.Name)
	if err := client.PutBlob(ctx, path, raw, revision, message); err != nil {
		return nil, err
	}

	entry := audit.NewEntry("push", ident.Name)
	entry.Remote = config.Remote.Repository
	entry.Files = backup.Files
	audit.Log(configs.ProjectStoragePath(ident.Hash), entry)

	return &PushResult{
		Project:    ident,
		RemotePath: path,
		Files:      backup.Files,
		Created:    created,
	}, nil
}
