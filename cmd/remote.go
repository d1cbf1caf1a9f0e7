package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nainglynndw/securedenv/internal/configs"
	"github.com/nainglynndw/securedenv/internal/keyring"
	"github.com/nainglynndw/securedenv/internal/ui"
	"github.com/nainglynndw/securedenv/internal/utils"
)

var (
	remoteBranch string
	remoteToken  string
)

var remoteCmd = &cobra.Command{
	Use:   "remote",
	Short: "Configure the remote repository used by push and pull",
	Long: `Manages the hosted git repository that backup containers are pushed to
and pulled from. The access token is stored in the OS keyring when one
is available.`,
}

var remoteSetCmd = &cobra.Command{
	Use:   "set <owner/repo>",
	Short: "Set the remote repository and access token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repository := args[0]
		if !strings.Contains(repository, "/") {
			return Logger.ErrorfAndReturn("repository must be in owner/repo form, got %q", repository)
		}

		config, err := configs.EnsureUserConfig()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load user config: %v", err)
		}

		token := remoteToken
		if token == "" {
			passphrase, err := utils.ReadPassphrase("Access token: ")
			if err != nil {
				return Logger.ErrorfAndReturn("failed to read access token: %v", err)
			}
			token = string(passphrase)
		}

		config.Remote.Repository = repository
		config.Remote.Branch = remoteBranch

		if err := configs.StoreRemoteToken(config, token); err != nil {
			return Logger.ErrorfAndReturn("failed to store remote configuration: %v", err)
		}

		finalMessage := ui.Success.Sprint("✓") + " Remote set to " + ui.Highlight.Sprint(repository) + "\n"
		if keyring.HasToken(repository) {
			finalMessage += ui.Info.Sprint("→") + " Access token stored in the OS keyring"
		} else {
			finalMessage += ui.Warning.Sprint("!") + " No OS keyring available; token stored in the config file"
		}
		fmt.Print(ui.EnsureNewline(finalMessage))
		return nil
	},
}

var remoteShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current remote configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := configs.LoadUserConfig()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load user config: %v", err)
		}

		if config.Remote.Repository == "" {
			fmt.Print(ui.EnsureNewline(ui.Error.Sprint("✗") + " No remote repository configured\n" +
				ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("securedenv remote set <owner/repo>") + " to configure one"))
			return nil
		}

		var b strings.Builder
		b.WriteString("Repository: " + ui.Highlight.Sprint(config.Remote.Repository) + "\n")
		branch := config.Remote.Branch
		if branch == "" {
			branch = ui.Muted.Sprint("repository default")
		} else {
			branch = ui.Highlight.Sprint(branch)
		}
		b.WriteString("Branch:     " + branch + "\n")

		switch {
		case keyring.HasToken(config.Remote.Repository):
			b.WriteString("Token:      " + ui.Success.Sprint("stored in OS keyring") + "\n")
		case config.Remote.Token != "":
			b.WriteString("Token:      " + ui.Warning.Sprint("stored in config file") + "\n")
		default:
			b.WriteString("Token:      " + ui.Error.Sprint("not set") + "\n")
		}

		fmt.Print(b.String())
		return nil
	},
}

var remoteUnsetCmd = &cobra.Command{
	Use:   "unset",
	Short: "Remove the remote configuration and stored token",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := configs.LoadUserConfig()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load user config: %v", err)
		}

		if config.Remote.Repository == "" {
			fmt.Print(ui.EnsureNewline(ui.Error.Sprint("✗") + " No remote repository configured"))
			return nil
		}

		repository := config.Remote.Repository
		if err := keyring.DeleteToken(repository); err != nil {
			Logger.Debugf("No keyring token to delete for %s: %v", repository, err)
		}

		config.Remote = configs.RemoteConfig{}
		if err := configs.SaveUserConfig(config); err != nil {
			return Logger.ErrorfAndReturn("failed to save user config: %v", err)
		}

		fmt.Print(ui.EnsureNewline(ui.Success.Sprint("✓") + " Remote " + ui.Highlight.Sprint(repository) + " removed"))
		return nil
	},
}

func init() {
	remoteSetCmd.Flags().StringVarP(&remoteBranch, "branch", "b", "", "branch to write containers to (default: repository default)")
	remoteSetCmd.Flags().StringVarP(&remoteToken, "token", "t", "", "access token (prompted for when omitted)")

	remoteCmd.AddCommand(remoteSetCmd)
	remoteCmd.AddCommand(remoteShowCmd)
	remoteCmd.AddCommand(remoteUnsetCmd)
}
