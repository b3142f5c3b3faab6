package cmd

import (
	"github.com/spf13/cobra"

	"mrig/pkg/toolchain"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report which managed artifacts are present",
	RunE: func(cmd *cobra.Command, _ []string) error {
		disp, err := newDisplay(cmd)
		if err != nil {
			return err
		}
		defer disp.Close()

		toolchain.NewInstaller(disp).Report(newRoot(cmd))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
