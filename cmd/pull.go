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

var pullKey keyFlags

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Download the remote backup and restore it into the working directory",
	Long: `Downloads this project's container from the configured remote
repository, replaces the local backup with it, and decrypts it into the
current directory.

A wrong key fails the whole operation before any file is touched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting pull command")
		key, err := pullKey.options()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to read key material: %v", err)
		}

		spinner, cleanup := startSpinner("Pulling backup from remote...", verbose)
		defer cleanup()

		projectRoot, err := os.Getwd()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to determine working directory: %v", err)
		}

		result, err := workflows.Pull(cmd.Context(), workflows.PullOptions{
			KeyOptions:  key,
			ProjectRoot: projectRoot,
		})
		if err != nil {
			switch {
			case errors.Is(err, serrors.ErrRemoteNotConfigured):
				spinner.FinalMSG = ui.Error.Sprint("✗") + " No remote repository configured\n" +
					ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("securedenv remote set <owner/repo>") + " first"
				return nil
			case errors.Is(err, serrors.ErrRemoteNotFound):
				spinner.FinalMSG = ui.Error.Sprint("✗") + " No remote backup exists for this project\n" +
					ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("securedenv push") + " from the machine that has it"
				return nil
			case errors.Is(err, serrors.ErrInvalidContainer):
				spinner.FinalMSG = ui.Error.Sprint("✗") + " The remote object is not a securedenv backup container"
				return nil
			case errors.Is(err, serrors.ErrDecryptionFailed):
				spinner.FinalMSG = ui.Error.Sprint("✗") + " Decryption failed. Wrong password or key file?\n" +
					"The container was stored locally but no files were written."
				return nil
			case errors.Is(err, serrors.ErrKeyConflict), errors.Is(err, serrors.ErrKeyFileUnreadable):
				spinner.FinalMSG = ui.Error.Sprint("✗") + " " + err.Error()
				return nil
			}
			return Logger.ErrorfAndReturn("pull failed: %v", err)
		}

		Logger.Infof("Pull command completed successfully with %d files", len(result.Files))

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Backup pulled and restored successfully!\n" +
			"The following files were written: " + utils.FormatPaths(result.Files)
		return nil
	},
}

func init() {
	pullKey.register(pullCmd)
}
