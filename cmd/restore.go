package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	serrors "github.com/nainglynndw/securedenv/internal/errors"
	"github.com/nainglynndw/securedenv/internal/ui"
	"github.com/nainglynndw/securedenv/internal/utils"
	"github.com/nainglynndw/securedenv/internal/workflows"
)

var restoreKey keyFlags

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Decrypt the local backup container back into the working directory",
	Long: `Decrypts every file in this project's backup container and writes it
back into the current directory, overwriting existing files.

A wrong key fails the whole operation before any file is touched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting restore command")
		key, err := restoreKey.options()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to read key material: %v", err)
		}

		spinner, cleanup := startSpinner("Decrypting environment files...", verbose)
		defer cleanup()

		projectRoot, err := os.Getwd()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to determine working directory: %v", err)
		}

		result, err := workflows.Restore(cmd.Context(), workflows.RestoreOptions{
			KeyOptions:  key,
			ProjectRoot: projectRoot,
		})
		if err != nil {
			switch {
			case errors.Is(err, serrors.ErrBackupNotFound):
				spinner.FinalMSG = ui.Error.Sprint("✗") + " No backup found for this project\n" +
					ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("securedenv backup") + " first"
				return nil
			case errors.Is(err, serrors.ErrDecryptionFailed):
				spinner.FinalMSG = ui.Error.Sprint("✗") + " Decryption failed. Wrong password or key file?\n" +
					"No files were modified."
				return nil
			case errors.Is(err, serrors.ErrInvalidContainer):
				spinner.FinalMSG = ui.Error.Sprint("✗") + " The stored container is corrupted or not a securedenv backup"
				return nil
			case errors.Is(err, serrors.ErrKeyConflict), errors.Is(err, serrors.ErrKeyFileUnreadable):
				spinner.FinalMSG = ui.Error.Sprint("✗") + " " + err.Error()
				return nil
			}
			return Logger.ErrorfAndReturn("restore failed: %v", err)
		}

		Logger.Infof("Restore command completed successfully with %d files", len(result.Files))

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Environment files restored successfully!\n" +
			"The following files were written: " + utils.FormatPaths(result.Files)
		return nil
	},
}

func init() {
	restoreKey.register(restoreCmd)
}
