package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nainglynndw/securedenv/internal/ui"
	"github.com/nainglynndw/securedenv/internal/utils"
	"github.com/nainglynndw/securedenv/internal/vault"
)

var checkCmd = &cobra.Command{
	Use:   "check [password]",
	Short: "Check a password against the strength policy",
	Long: `Scores a password against the strength policy used by backup: minimum
length, uppercase, lowercase, digit, special character, and no common
password fragments. At most one requirement may fail.

With no argument, prompts for the password without echoing it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var password string
		if len(args) == 1 {
			password = args[0]
		} else {
			passphrase, err := utils.ReadPassphrase("Enter password: ")
			if err != nil {
				return Logger.ErrorfAndReturn("failed to read password: %v", err)
			}
			password = string(passphrase)
		}

		result := vault.ValidatePassword(password)

		var b strings.Builder
		if result.Strong {
			b.WriteString(ui.Success.Sprint("✓") + " Password is strong ")
		} else {
			b.WriteString(ui.Error.Sprint("✗") + " Password is too weak ")
		}
		b.WriteString(ui.Muted.Sprintf("score %d/6", result.Score) + "\n")

		for _, unmet := range result.Unmet {
			b.WriteString("    - missing: " + ui.Warning.Sprint(unmet) + "\n")
		}
		if !result.Strong {
			b.WriteString(ui.Info.Sprint("→") + " At most one requirement may fail\n")
		}

		fmt.Print(b.String())
		return nil
	},
}
