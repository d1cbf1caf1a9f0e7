package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	serrors "github.com/nainglynndw/securedenv/internal/errors"
	"github.com/nainglynndw/securedenv/internal/ui"
	"github.com/nainglynndw/securedenv/internal/workflows"
)

var pushKey keyFlags

var pushCmd = &cobra.Command{
	Use:   "push [file...]",
	Short: "Back up and upload the container to the configured remote",
	Long: `Takes a fresh backup of the project's .env files and uploads the
container to the configured remote repository, keyed by the project
name. The remote copy stays encrypted.

Requires a remote; set one up with 'securedenv remote set'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting push command")
		key, err := pushKey.options()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to read key material: %v", err)
		}

		spinner, cleanup := startSpinner("Pushing backup to remote...", verbose)
		defer cleanup()

		projectRoot, err := os.Getwd()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to determine working directory: %v", err)
		}

		result, err := workflows.Push(cmd.Context(), workflows.PushOptions{
			KeyOptions:   key,
			ProjectRoot:  projectRoot,
			FilePatterns: args,
		})
		if err != nil {
			switch {
			case errors.Is(err, serrors.ErrRemoteNotConfigured):
				spinner.FinalMSG = ui.Error.Sprint("✗") + " No remote repository configured\n" +
					ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("securedenv remote set <owner/repo>") + " first"
				return nil
			case errors.Is(err, serrors.ErrRemoteConflict):
				spinner.FinalMSG = ui.Error.Sprint("✗") + " The remote backup was updated by another machine\n" +
					ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("securedenv pull") + " to fetch it, then push again"
				return nil
			case errors.Is(err, serrors.ErrNoFilesFound):
				spinner.FinalMSG = ui.Error.Sprint("✗") + " No environment files found in " + ui.Path.Sprint(projectRoot)
				return nil
			case errors.Is(err, serrors.ErrWeakPassword):
				spinner.FinalMSG = ui.Error.Sprint("✗") + " Password is too weak: " + err.Error()
				return nil
			case errors.Is(err, serrors.ErrKeyConflict), errors.Is(err, serrors.ErrKeyFileUnreadable):
				spinner.FinalMSG = ui.Error.Sprint("✗") + " " + err.Error()
				return nil
			}
			return Logger.ErrorfAndReturn("push failed: %v", err)
		}

		Logger.Infof("Push command completed successfully to %s", result.RemotePath)

		verb := "updated"
		if result.Created {
			verb = "created"
		}
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Backup pushed successfully!\n" +
			ui.Info.Sprint("→") + " Remote object " + verb + " at " + ui.Path.Sprint(result.RemotePath)
		return nil
	},
}

func init() {
	pushKey.register(pushCmd)
}
