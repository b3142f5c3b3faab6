// Package cmd wires the mrig CLI: install, uninstall, status, and get.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mrig/pkg/display"
	"mrig/pkg/layout"
)

var rootCmd = &cobra.Command{
	Use:           "mrig",
	Short:         "mrig provisions a local media toolchain",
	Long:          "mrig installs, verifies and removes a self-contained media toolchain: downloader, encoder suite, helper scripts, PATH registration and launcher shortcuts.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI and maps orchestration failure to exit code 1.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("root", "", "Install root directory (default: per-user data dir)")
	rootCmd.PersistentFlags().String("log", "", "Append log lines to this file as well as the console")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose progress output")
}

// newDisplay builds the log sink from the persistent flags. The caller owns
// Close.
func newDisplay(cmd *cobra.Command) (display.Display, error) {
	logFile, _ := cmd.Flags().GetString("log")
	verbose, _ := cmd.Flags().GetBool("verbose")

	var disp display.Display
	if logFile != "" {
		d, err := display.New(display.ToBoth, logFile)
		if err != nil {
			return nil, err
		}
		disp = d
	} else {
		disp = display.NewConsole()
	}
	disp.SetVerbose(verbose)
	return disp, nil
}

func newRoot(cmd *cobra.Command) *layout.Root {
	dir, _ := cmd.Flags().GetString("root")
	return layout.New(dir)
}
