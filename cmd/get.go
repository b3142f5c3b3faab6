package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"mrig/pkg/media"
	"mrig/pkg/toolchain"
)

var getCmd = &cobra.Command{
	Use:   "get [URL...]",
	Short: "Fetch media with the installed downloader",
	Long:  "Run the installed downloader over the given URLs. --batch expands a playlist file (one URL per line, '#' comments ignored).",
	RunE: func(cmd *cobra.Command, args []string) error {
		batch, _ := cmd.Flags().GetString("batch")
		audioOnly, _ := cmd.Flags().GetBool("audio-only")
		outputDir, _ := cmd.Flags().GetString("output")

		disp, err := newDisplay(cmd)
		if err != nil {
			return err
		}
		defer disp.Close()

		root := newRoot(cmd)
		if !toolchain.NewInstaller(disp).Installed(root) {
			return fmt.Errorf("toolchain not installed at %s; run 'mrig install' first", root.Dir)
		}

		urls := args
		if batch != "" {
			fromFile, err := media.ReadPlaylist(batch)
			if err != nil {
				return err
			}
			urls = append(urls, fromFile...)
		}

		runner := media.NewRunner(root, disp)
		return runner.Fetch(cmd.Context(), media.Options{
			AudioOnly: audioOnly,
			OutputDir: outputDir,
		}, urls)
	},
}

func init() {
	getCmd.Flags().String("batch", "", "Playlist file with one URL per line")
	getCmd.Flags().Bool("audio-only", false, "Extract audio instead of video")
	getCmd.Flags().StringP("output", "o", "", "Directory the downloader writes results to")
	rootCmd.AddCommand(getCmd)
}
