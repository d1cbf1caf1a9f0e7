package workflows

import (
	"context"
	"os"
	"path/filepath"

	"github.com/nainglynndw/securedenv/internal/configs"
	"github.com/nainglynndw/securedenv/internal/project"
)

// FileState describes one backed-up file relative to the working directory.
type FileState struct {
	// Name is the relative filename inside the backup.
	Name string

	// Present is true when the file currently exists in the project root.
	Present bool
}

// StatusOptions configures the status workflow.
type StatusOptions struct {
	// ProjectRoot identifies the project to report on.
	ProjectRoot string
}

// StatusResult describes the project's backup state. Filenames are
// stored in the clear inside the container, so status needs no key.
type StatusResult struct {
	// Project is the identity the container was read under.
	Project project.Identity

	// ContainerPath is the local container location.
	ContainerPath string

	// Timestamp is the snapshot creation time recorded in the container.
	Timestamp string

	// Files lists every backed-up file and whether it exists locally.
	Files []FileState

	// RemoteConfigured is true when a remote repository is set up.
	RemoteConfigured bool
}

// Status reports what the local container holds without decrypting
// anything. Returns ErrBackupNotFound when no container exists.
func Status(ctx context.Context, opts StatusOptions) (*StatusResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ident := project.Identify(opts.ProjectRoot)

	_, record, err := readLocalContainer(ident)
	if err != nil {
		return nil, err
	}

	result := &StatusResult{
		Project:       ident,
		ContainerPath: configs.ContainerPath(ident.Hash),
		Timestamp:     record.Timestamp,
	}

	for _, name := range sortedFileNames(record) {
		_, statErr := os.Stat(filepath.Join(opts.ProjectRoot, filepath.FromSlash(name)))
		result.Files = append(result.Files, FileState{
			Name:    name,
			Present: statErr == nil,
		})
	}

	if config, err := configs.LoadUserConfig(); err == nil {
		result.RemoteConfigured = config.Remote.Repository != ""
	}

	return result, nil
}
