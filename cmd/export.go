package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	serrors "github.com/nainglynndw/securedenv/internal/errors"
	"github.com/nainglynndw/securedenv/internal/ui"
	"github.com/nainglynndw/securedenv/internal/workflows"
)

var (
	exportKey    keyFlags
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Copy the local backup container to a portable file",
	Long: `Copies this project's backup container byte-for-byte to a file you can
move between machines. The copy stays encrypted; no key is needed.

Supply a password or key file to verify it opens the container before
exporting.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting export command")
		spinner, cleanup := startSpinner("Exporting backup container...", verbose)
		defer cleanup()

		projectRoot, err := os.Getwd()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to determine working directory: %v", err)
		}

		result, err := workflows.Export(cmd.Context(), workflows.ExportOptions{
			KeyOptions:  exportKey.raw(),
			ProjectRoot: projectRoot,
			OutputPath:  exportOutput,
		})
		if err != nil {
			switch {
			case errors.Is(err, serrors.ErrBackupNotFound):
				spinner.FinalMSG = ui.Error.Sprint("✗") + " No backup found for this project\n" +
					ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("securedenv backup") + " first"
				return nil
			case errors.Is(err, serrors.ErrDecryptionFailed):
				spinner.FinalMSG = ui.Error.Sprint("✗") + " Key verification failed. Wrong password or key file?\n" +
					"Nothing was exported."
				return nil
			case errors.Is(err, serrors.ErrKeyConflict), errors.Is(err, serrors.ErrKeyFileUnreadable):
				spinner.FinalMSG = ui.Error.Sprint("✗") + " " + err.Error()
				return nil
			}
			return Logger.ErrorfAndReturn("export failed: %v", err)
		}

		Logger.Infof("Export command completed successfully with %d entries", result.EntryCount)

		finalMessage := ui.Success.Sprint("✓") + " Backup exported to " + ui.Path.Sprint(result.OutputPath) + "\n"
		if result.Verified {
			finalMessage += ui.Success.Sprint("✓") + " Key verified against the container\n"
		}
		finalMessage += ui.Info.Sprint("→") + " Import it elsewhere with " +
			ui.Code.Sprint("securedenv import "+result.OutputPath)

		spinner.FinalMSG = finalMessage
		return nil
	},
}

func init() {
	exportKey.register(exportCmd)
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "destination path for the exported container")
}
