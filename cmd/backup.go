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

var backupKey keyFlags

var backupCmd = &cobra.Command{
	Use:   "backup [file...]",
	Short: "Encrypt the project's .env files into the local backup container",
	Long: `Encrypts every eligible .env file in the current directory into a single
backup container stored outside the working tree. Pass filenames to back
up a subset instead.

The backup replaces any previous one for this project.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting backup command")
		key, err := backupKey.options()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to read key material: %v", err)
		}

		spinner, cleanup := startSpinner("Encrypting environment files...", verbose)
		defer cleanup()

		projectRoot, err := os.Getwd()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to determine working directory: %v", err)
		}

		result, err := workflows.Backup(cmd.Context(), workflows.BackupOptions{
			KeyOptions:   key,
			ProjectRoot:  projectRoot,
			FilePatterns: args,
		})
		if err != nil {
			switch {
			case errors.Is(err, serrors.ErrNoFilesFound):
				spinner.FinalMSG = ui.Error.Sprint("✗") + " No environment files found in " + ui.Path.Sprint(projectRoot)
				return nil
			case errors.Is(err, serrors.ErrWeakPassword):
				spinner.FinalMSG = ui.Error.Sprint("✗") + " Password is too weak: " + err.Error() + "\n" +
					ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("securedenv check") + " to see the full policy"
				return nil
			case errors.Is(err, serrors.ErrKeyConflict), errors.Is(err, serrors.ErrKeyFileUnreadable):
				spinner.FinalMSG = ui.Error.Sprint("✗") + " " + err.Error()
				return nil
			}
			return Logger.ErrorfAndReturn("backup failed: %v", err)
		}

		Logger.Infof("Backup command completed successfully with %d files", len(result.Files))

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Environment files backed up successfully!\n" +
			"The following files were encrypted: " + utils.FormatPaths(result.Files) +
			ui.Info.Sprint("→") + " Container stored at " + ui.Path.Sprint(result.ContainerPath)
		return nil
	},
}

func init() {
	backupKey.register(backupCmd)
}
