package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mrig/pkg/toolchain"
)

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the media toolchain",
	Long:  "Remove every artifact the installer created. Directories holding user-added files are preserved unless --force is given.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")
		yes, _ := cmd.Flags().GetBool("yes")

		disp, err := newDisplay(cmd)
		if err != nil {
			return err
		}
		defer disp.Close()

		root := newRoot(cmd)
		if !yes {
			ans, err := disp.Prompt(fmt.Sprintf("Remove the toolchain at %s? [y/N]:", root.Dir))
			if err != nil {
				return err
			}
			if !strings.EqualFold(ans, "y") {
				disp.Infof("aborted")
				return nil
			}
		}

		inst := toolchain.NewInstaller(disp)
		return inst.Uninstall(root, toolchain.UninstallOptions{Force: force})
	},
}

func init() {
	uninstallCmd.Flags().Bool("force", false, "Remove directories even when they still hold user files")
	uninstallCmd.Flags().Bool("yes", false, "Assume yes for the confirmation prompt")
	rootCmd.AddCommand(uninstallCmd)
}
