package cmd

import (
	"fmt"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"

	logger "github.com/nainglynndw/securedenv/internal/logging"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	RootCmd = &cobra.Command{
		Use:   "securedenv",
		Short: "Encrypted backup and restore for dot-env secret files",
		Long: `securedenv encrypts the dot-env files of a project into a single
tamper-evident container, stores it outside the working tree, and can
push it to a hosted git repository for cross-machine sync.

Keys are derived from a password or an opaque key file and are never
stored anywhere. Losing the key means losing the backup.

Run 'securedenv help <command>' for details on a specific command.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing securedenv with verbose=%t, debug=%t", verbose, debug)
		},
		Run: func(cmd *cobra.Command, args []string) {
			figure.NewFigure("securedenv", "", true).Print()
			fmt.Println("Run 'securedenv --help' to see available commands.")
		},
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	RootCmd.AddCommand(backupCmd)
	RootCmd.AddCommand(restoreCmd)
	RootCmd.AddCommand(statusCmd)
	RootCmd.AddCommand(diffCmd)
	RootCmd.AddCommand(checkCmd)
	RootCmd.AddCommand(exportCmd)
	RootCmd.AddCommand(importCmd)
	RootCmd.AddCommand(pushCmd)
	RootCmd.AddCommand(pullCmd)
	RootCmd.AddCommand(remoteCmd)
}

// Helper functions for testing

// GetRootCmd returns the RootCmd for testing.
func GetRootCmd() *cobra.Command {
	return RootCmd
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	backupKey = keyFlags{}
	restoreKey = keyFlags{}
	diffKey = keyFlags{}
	exportKey = keyFlags{}
	importKey = keyFlags{}
	pushKey = keyFlags{}
	pullKey = keyFlags{}
	exportOutput = ""
	remoteBranch = ""
	remoteToken = ""
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}
