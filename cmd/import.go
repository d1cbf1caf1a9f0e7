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

var importKey keyFlags

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Restore from an exported backup container file",
	Long: `Reads an exported container file, stores it as this project's local
backup, and decrypts it into the current directory. The container must
have been created with the same key material you supply here.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting import command")
		key, err := importKey.options()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to read key material: %v", err)
		}

		spinner, cleanup := startSpinner("Importing backup container...", verbose)
		defer cleanup()

		projectRoot, err := os.Getwd()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to determine working directory: %v", err)
		}

		result, err := workflows.Import(cmd.Context(), workflows.ImportOptions{
			KeyOptions:  key,
			ProjectRoot: projectRoot,
			InputPath:   args[0],
		})
		if err != nil {
			switch {
			case errors.Is(err, serrors.ErrInvalidContainer):
				spinner.FinalMSG = ui.Error.Sprint("✗") + " " + ui.Path.Sprint(args[0]) +
					" is not a securedenv backup container"
				return nil
			case errors.Is(err, serrors.ErrDecryptionFailed):
				spinner.FinalMSG = ui.Error.Sprint("✗") + " Decryption failed. Wrong password or key file?\n" +
					"The container was stored locally but no files were written."
				return nil
			case errors.Is(err, serrors.ErrKeyConflict), errors.Is(err, serrors.ErrKeyFileUnreadable):
				spinner.FinalMSG = ui.Error.Sprint("✗") + " " + err.Error()
				return nil
			}
			return Logger.ErrorfAndReturn("import failed: %v", err)
		}

		Logger.Infof("Import command completed successfully with %d files", len(result.Files))

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Backup imported successfully!\n" +
			"The following files were written: " + utils.FormatPaths(result.Files)
		return nil
	},
}

func init() {
	importKey.register(importCmd)
}
