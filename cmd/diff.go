package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	serrors "github.com/nainglynndw/securedenv/internal/errors"
	"github.com/nainglynndw/securedenv/internal/ui"
	"github.com/nainglynndw/securedenv/internal/workflows"
)

var diffKey keyFlags

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Compare the backup container with the working directory",
	Long: `Decrypts this project's backup container in memory and shows a unified
diff between each backed-up file and its local counterpart. Nothing is
written to disk.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting diff command")
		key, err := diffKey.options()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to read key material: %v", err)
		}

		spinner, cleanup := startSpinner("Comparing backup with working directory...", verbose)
		defer cleanup()

		projectRoot, err := os.Getwd()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to determine working directory: %v", err)
		}

		result, err := workflows.Diff(cmd.Context(), workflows.DiffOptions{
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
				spinner.FinalMSG = ui.Error.Sprint("✗") + " Decryption failed. Wrong password or key file?"
				return nil
			case errors.Is(err, serrors.ErrKeyConflict), errors.Is(err, serrors.ErrKeyFileUnreadable):
				spinner.FinalMSG = ui.Error.Sprint("✗") + " " + err.Error()
				return nil
			}
			return Logger.ErrorfAndReturn("diff failed: %v", err)
		}

		if !result.HasChanges {
			spinner.FinalMSG = ui.Success.Sprint("✓") + " Working directory matches the backup"
			return nil
		}

		var b strings.Builder
		b.WriteString(ui.Warning.Sprint("!") + " Working directory differs from the backup\n")
		for _, file := range result.Diffs {
			switch {
			case file.Missing:
				b.WriteString(ui.Warning.Sprint("!") + " " + ui.Path.Sprint(file.Name) + " is missing locally\n")
			case file.Unified != "":
				b.WriteString(fmt.Sprintf("\n%s", file.Unified))
			}
		}
		b.WriteString("\n" + ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("securedenv restore") +
			" to bring back the backed-up versions")

		spinner.FinalMSG = b.String()
		return nil
	},
}

func init() {
	diffKey.register(diffCmd)
}
