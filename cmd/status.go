package cmd

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"

	serrors "github.com/nainglynndw/securedenv/internal/errors"
	"github.com/nainglynndw/securedenv/internal/ui"
	"github.com/nainglynndw/securedenv/internal/workflows"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show what the local backup container holds",
	Long: `Lists the files stored in this project's backup container and whether
each one currently exists in the working directory. Filenames are stored
in the clear, so no key is needed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting status command")
		spinner, cleanup := startSpinner("Reading backup container...", verbose)
		defer cleanup()

		projectRoot, err := os.Getwd()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to determine working directory: %v", err)
		}

		result, err := workflows.Status(cmd.Context(), workflows.StatusOptions{
			ProjectRoot: projectRoot,
		})
		if err != nil {
			switch {
			case errors.Is(err, serrors.ErrBackupNotFound):
				spinner.FinalMSG = ui.Error.Sprint("✗") + " No backup found for this project\n" +
					ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("securedenv backup") + " first"
				return nil
			case errors.Is(err, serrors.ErrInvalidContainer):
				spinner.FinalMSG = ui.Error.Sprint("✗") + " The stored container is corrupted or not a securedenv backup"
				return nil
			}
			return Logger.ErrorfAndReturn("status failed: %v", err)
		}

		var b strings.Builder
		b.WriteString(ui.Success.Sprint("✓") + " Backup for " + ui.Highlight.Sprint(result.Project.Name) +
			" " + ui.Muted.Sprintf("taken %s", result.Timestamp) + "\n")
		for _, file := range result.Files {
			marker := ui.Success.Sprint("present")
			if !file.Present {
				marker = ui.Warning.Sprint("missing locally")
			}
			b.WriteString("    - " + ui.Path.Sprint(file.Name) + " " + ui.Muted.Sprint(marker) + "\n")
		}
		if result.RemoteConfigured {
			b.WriteString(ui.Info.Sprint("→") + " Remote sync is configured; use " +
				ui.Code.Sprint("securedenv push") + " to upload")
		} else {
			b.WriteString(ui.Info.Sprint("→") + " No remote configured; run " +
				ui.Code.Sprint("securedenv remote set <owner/repo>") + " to enable sync")
		}

		spinner.FinalMSG = b.String()
		return nil
	},
}
