package workflows

import (
	"context"
	"fmt"
	"time"

	"github.com/nainglynndw/securedenv/internal/audit"
	"github.com/nainglynndw/securedenv/internal/configs"
	"github.com/nainglynndw/securedenv/internal/project"
	"github.com/nainglynndw/securedenv/internal/utils"
	"github.com/nainglynndw/securedenv/internal/vault"
)

// ExportOptions configures the export workflow.
type ExportOptions struct {
	// KeyOptions is optional for export: when supplied, the key is
	// verified against the container before copying.
	KeyOptions

	// ProjectRoot identifies the project whose container is exported.
	ProjectRoot string

	// OutputPath is the destination for the container copy. If empty,
	// defaults to securedenv-backup-YYYY-MM-DD.senv.
	OutputPath string
}

// ExportResult contains the outcome of an export operation.
type ExportResult struct {
	// Project is the identity the container was read under.
	Project project.Identity

	// OutputPath is the path the copy was written to.
	OutputPath string

	// EntryCount is the number of encrypted entries in the container.
	EntryCount int

	// Verified is true when key material was supplied and successfully
	// decrypted an entry before the copy was made.
	Verified bool
}

// Export copies the project's local container verbatim to the output
// path. No re-encryption or re-derivation happens; the copy is
// byte-identical to the local container.
//
// When key material is supplied, one entry is decrypted first as a
// fail-fast check that the key actually opens this container. Returns
// ErrBackupNotFound when no local container exists.
func Export(ctx context.Context, opts ExportOptions) (*ExportResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ident := project.Identify(opts.ProjectRoot)

	raw, record, err := readLocalContainer(ident)
	if err != nil {
		return nil, err
	}

	result := &ExportResult{
		Project:    ident,
		EntryCount: len(record.Files),
	}

	if opts.supplied() {
		material, err := opts.resolve()
		if err != nil {
			return nil, err
		}
		if err := verifyFirstEntry(record.Files, material, ident); err != nil {
			return nil, err
		}
		result.Verified = true
	}

	outputPath := opts.OutputPath
	if outputPath == "" {
		outputPath = fmt.Sprintf("securedenv-backup-%s.senv", time.Now().Format("2006-01-02"))
	}
	result.OutputPath = outputPath

	if err := utils.WriteFileAtomic(outputPath, raw, 0600); err != nil {
		return nil, err
	}

	entry := audit.NewEntry("export", ident.Name)
	entry.OutputPath = outputPath
	audit.Log(configs.ProjectStoragePath(ident.Hash), entry)

	return result, nil
}

// verifyFirstEntry decrypts a single entry as a cheap key check. An
// empty container trivially verifies.
func verifyFirstEntry(files map[string]vault.EncryptedBlob, material vault.KeyMaterial, ident project.Identity) error {
	for name, blob := range files {
		data, err := vault.Decrypt(&blob, material, ident)
		if err != nil {
			return fmt.Errorf("verifying key against %s: %w", name, err)
		}
		vault.ClearBytes(data)
		return nil
	}
	return nil
}
