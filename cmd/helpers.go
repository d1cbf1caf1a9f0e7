package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/nainglynndw/securedenv/internal/ui"
	"github.com/nainglynndw/securedenv/internal/utils"
	"github.com/nainglynndw/securedenv/internal/workflows"
)

// keyFlags holds the mutually exclusive key-material flags shared by every
// command that touches encrypted data.
type keyFlags struct {
	password string
	keyFile  string
}

// register adds the --password and --key-file flags to a command.
func (f *keyFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.password, "password", "p", "", "passphrase used to derive the encryption key")
	cmd.Flags().StringVarP(&f.keyFile, "key-file", "k", "", "path to a binary key file used as the key")
}

// raw returns the flag values without prompting. Used by commands where
// key material is optional.
func (f *keyFlags) raw() workflows.KeyOptions {
	return workflows.KeyOptions{
		Password:    f.password,
		KeyFilePath: f.keyFile,
	}
}

// options returns the key options, prompting interactively for a password
// when neither flag was given. Mutual-exclusion errors are left to the
// workflow so they surface the same way for every command.
func (f *keyFlags) options() (workflows.KeyOptions, error) {
	if f.password == "" && f.keyFile == "" {
		passphrase, err := utils.ReadPassphrase("Enter password: ")
		if err != nil {
			return workflows.KeyOptions{}, err
		}
		f.password = string(passphrase)
	}
	return f.raw(), nil
}

// startSpinner creates and starts a spinner with the given message when not in
// verbose or debug mode. Returns the spinner and a function that should be
// deferred to clean up.
//
// IMPORTANT: spinner.FinalMSG values do NOT need trailing newlines. The cleanup
// function automatically calls ui.EnsureNewline() on the final message before
// printing it. This ensures consistent output formatting across all commands.
func startSpinner(message string, verbose bool) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	err := s.Color("cyan")
	if err != nil {
		// If we can't set spinner color, just continue without it.
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	if !verbose && !debug {
		Logger.Debugf("Starting spinner in non-verbose mode")
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		// Restore log output first.
		if !verbose && !debug {
			Logger.Debugf("Restoring log output")
			log.SetOutput(os.Stdout)
		}

		// Ensure final message ends with a newline.
		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		// Stop the spinner first to clear the spinner line.
		if !verbose && !debug {
			Logger.Debugf("Stopping spinner")
			s.Stop()
		}

		// Print final message to stdout (for tests to capture).
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}
