package workflows

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/nainglynndw/securedenv/internal/configs"
	"github.com/nainglynndw/securedenv/internal/container"
	serrors "github.com/nainglynndw/securedenv/internal/errors"
	"github.com/nainglynndw/securedenv/internal/project"
	"github.com/nainglynndw/securedenv/internal/remote"
	"github.com/nainglynndw/securedenv/internal/vault"
)

// KeyOptions is the mutually exclusive key specification shared by all
// workflows that touch encrypted data.
type KeyOptions struct {
	// Password is the passphrase-based key material.
	Password string

	// KeyFilePath points to an opaque binary key file.
	KeyFilePath string
}

func (o KeyOptions) resolve() (vault.KeyMaterial, error) {
	return vault.ResolveKeyMaterial(vault.ResolveOptions{
		Password:    o.Password,
		KeyFilePath: o.KeyFilePath,
	})
}

// supplied reports whether any key material was specified at all.
func (o KeyOptions) supplied() bool {
	return o.Password != "" || o.KeyFilePath != ""
}

// readLocalContainer loads and decodes a project's local container.
// Returns ErrBackupNotFound when no container exists.
func readLocalContainer(ident project.Identity) ([]byte, *container.BackupRecord, error) {
	path := configs.ContainerPath(ident.Hash)

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: %s", serrors.ErrBackupNotFound, ident.Name)
		}
		return nil, nil, fmt.Errorf("reading container %s: %w", path, err)
	}

	record, err := container.Deserialize(raw)
	if err != nil {
		return nil, nil, err
	}

	return raw, record, nil
}

// sortedFileNames returns the record's file keys in deterministic order.
func sortedFileNames(record *container.BackupRecord) []string {
	names := make([]string, 0, len(record.Files))
	for name := range record.Files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// decryptAll decrypts every entry of a record into memory. The whole
// operation fails on the first decryption failure so no partial restore
// can happen downstream.
func decryptAll(ctx context.Context, record *container.BackupRecord, material vault.KeyMaterial, ident project.Identity) (map[string][]byte, error) {
	plaintexts := make(map[string][]byte, len(record.Files))

	for _, name := range sortedFileNames(record) {
		if err := ctx.Err(); err != nil {
			clearAll(plaintexts)
			return nil, err
		}

		blob := record.Files[name]
		data, err := vault.Decrypt(&blob, material, ident)
		if err != nil {
			clearAll(plaintexts)
			return nil, fmt.Errorf("decrypting %s: %w", name, err)
		}
		plaintexts[name] = data
	}

	return plaintexts, nil
}

// writeRestoredFiles writes decrypted plaintexts into the project root,
// overwriting existing content. Returns the written names, sorted.
func writeRestoredFiles(projectRoot string, plaintexts map[string][]byte) ([]string, error) {
	names := make([]string, 0, len(plaintexts))
	for name := range plaintexts {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		target := filepath.Join(projectRoot, filepath.FromSlash(name))

		if dir := filepath.Dir(target); dir != projectRoot {
			if err := os.MkdirAll(dir, 0700); err != nil {
				return nil, fmt.Errorf("creating directory for %s: %w", name, err)
			}
		}

		if err := os.WriteFile(target, plaintexts[name], 0600); err != nil {
			return nil, fmt.Errorf("writing %s: %w", name, err)
		}
	}

	return names, nil
}

func clearAll(plaintexts map[string][]byte) {
	for _, data := range plaintexts {
		vault.ClearBytes(data)
	}
}

// remotePath is where a project's container lives in the remote store:
// keyed by the literal, human-readable project name, unlike local storage.
func remotePath(ident project.Identity) string {
	return ident.Name + "/" + container.FileName
}

// newRemoteClient builds a remote client from the user configuration.
// Returns ErrRemoteNotConfigured when no repository is set up.
func newRemoteClient() (*remote.Client, *configs.UserConfig, error) {
	config, err := configs.LoadUserConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("loading user config: %w", err)
	}

	if config.Remote.Repository == "" {
		return nil, nil, serrors.ErrRemoteNotConfigured
	}

	token, err := configs.ResolveRemoteToken(config.Remote)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", serrors.ErrRemoteNotConfigured, err)
	}

	client := remote.New(remote.Config{
		Repository: config.Remote.Repository,
		Branch:     config.Remote.Branch,
		Token:      token,
		BaseURL:    remoteBaseURL,
	})

	return client, config, nil
}

// remoteBaseURL is overridden in tests to point at a local server.
var remoteBaseURL = ""
