package workflows

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/nainglynndw/securedenv/internal/project"
	"github.com/nainglynndw/securedenv/internal/vault"
)

// DiffOptions configures the diff workflow.
type DiffOptions struct {
	KeyOptions

	// ProjectRoot is the directory compared against the backup.
	ProjectRoot string
}

// FileDiff is the comparison of one backed-up file with its local
// counterpart.
type FileDiff struct {
	// Name is the relative filename inside the backup.
	Name string

	// Missing is true when the file does not exist locally.
	Missing bool

	// Unified holds the unified diff when contents differ; empty when
	// the file is unchanged or missing.
	Unified string
}

// DiffResult contains the comparison of a backup with the working directory.
type DiffResult struct {
	// Project is the identity the container was read under.
	Project project.Identity

	// Diffs holds one entry per backed-up file, in sorted order.
	Diffs []FileDiff

	// HasChanges is true when any file is missing or modified.
	HasChanges bool
}

// Diff decrypts the local container and compares each entry with the
// file currently in the project root, producing unified diffs for
// modified files. Requires key material; returns ErrBackupNotFound when
// no container exists and ErrDecryptionFailed on a wrong key.
func Diff(ctx context.Context, opts DiffOptions) (*DiffResult, error) {
	ident := project.Identify(opts.ProjectRoot)

	_, record, err := readLocalContainer(ident)
	if err != nil {
		return nil, err
	}

	material, err := opts.resolve()
	if err != nil {
		return nil, err
	}

	result := &DiffResult{Project: ident}

	for _, name := range sortedFileNames(record) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		blob := record.Files[name]
		backed, err := vault.Decrypt(&blob, material, ident)
		if err != nil {
			return nil, fmt.Errorf("decrypting %s: %w", name, err)
		}

		local, readErr := os.ReadFile(filepath.Join(opts.ProjectRoot, filepath.FromSlash(name)))
		if readErr != nil {
			vault.ClearBytes(backed)
			if os.IsNotExist(readErr) {
				result.Diffs = append(result.Diffs, FileDiff{Name: name, Missing: true})
				result.HasChanges = true
				continue
			}
			return nil, fmt.Errorf("reading %s: %w", name, readErr)
		}

		unified := unifiedDiff(name, backed, local)
		vault.ClearBytes(backed)
		vault.ClearBytes(local)

		if unified != "" {
			result.HasChanges = true
		}
		result.Diffs = append(result.Diffs, FileDiff{Name: name, Unified: unified})
	}

	return result, nil
}

// unifiedDiff generates a unified diff between the backed-up and local
// content. Returns empty string when the contents are identical.
func unifiedDiff(path string, backed, local []byte) string {
	if bytes.Equal(backed, local) {
		return ""
	}

	if !isText(backed) || !isText(local) {
		return fmt.Sprintf("Binary file %s has changed\n", path)
	}

	dmp := diffmatchpatch.New()

	// Line-mode diff for better output.
	backedStr, localStr := string(backed), string(local)
	a, b, lineArray := dmp.DiffLinesToChars(backedStr, localStr)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	patches := dmp.PatchMake(backedStr, diffs)
	if len(patches) == 0 {
		return ""
	}

	var out strings.Builder
	out.WriteString(fmt.Sprintf("--- a/%s\n", path))
	out.WriteString(fmt.Sprintf("+++ b/%s\n", path))
	out.WriteString(dmp.PatchToText(patches))
	return out.String()
}

// isText reports whether data looks like text: no null bytes and valid UTF-8.
func isText(data []byte) bool {
	if bytes.IndexByte(data, 0) != -1 {
		return false
	}
	return utf8.Valid(data)
}
