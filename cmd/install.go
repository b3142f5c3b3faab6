package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"mrig/pkg/fetch"
	"mrig/pkg/layout"
	"mrig/pkg/pathenv"
	"mrig/pkg/release"
	"mrig/pkg/toolchain"
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the media toolchain",
	Long:  "Install the downloader, encoder suite and helper scripts into the install root. Safe to re-run: each step checks current state and fetches only what is missing.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		branch, _ := cmd.Flags().GetString("branch")
		local, _ := cmd.Flags().GetBool("local-shortcut")
		desktop, _ := cmd.Flags().GetBool("desktop-shortcut")
		menu, _ := cmd.Flags().GetBool("start-menu-shortcut")
		noPath, _ := cmd.Flags().GetBool("no-path")

		disp, err := newDisplay(cmd)
		if err != nil {
			return err
		}
		defer disp.Close()

		opts := toolchain.InstallOptions{
			Branch:            branch,
			LocalShortcut:     local,
			DesktopShortcut:   desktop,
			StartMenuShortcut: menu,
		}
		if !noPath {
			opts.Path = pathenv.New(os.Getenv("PATH"))
		}

		inst := toolchain.NewInstaller(disp)

		// The default downloader URL follows the latest release. A pinned tag
		// goes through the release manifest instead.
		if tag, _ := cmd.Flags().GetString("downloader-tag"); tag != "" {
			resolver := release.NewResolver(fetch.New(disp))
			url, err := resolver.AssetURL(cmd.Context(), layout.DownloaderRepo, tag, layout.DownloaderAsset())
			if err != nil {
				return err
			}
			inst.DownloaderURL = url
		}

		if err := inst.Install(cmd.Context(), newRoot(cmd), opts); err != nil {
			return err
		}

		// The registrar mutated an explicit list; apply it to this process.
		// Persisting beyond the process is the user's shell profile's job.
		if opts.Path != nil {
			return os.Setenv("PATH", opts.Path.String())
		}
		return nil
	},
}

func init() {
	installCmd.Flags().String("branch", "main", "Branch or tag the helper scripts are fetched at")
	installCmd.Flags().String("downloader-tag", "", "Pin the downloader to a release tag instead of latest")
	installCmd.Flags().Bool("local-shortcut", false, "Create a launcher shortcut inside the install root")
	installCmd.Flags().Bool("desktop-shortcut", false, "Create a desktop shortcut")
	installCmd.Flags().Bool("start-menu-shortcut", false, "Create a start-menu shortcut")
	installCmd.Flags().Bool("no-path", false, "Skip PATH registration")
	rootCmd.AddCommand(installCmd)
}
