package media

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"

	"mrig/pkg/display"
	"mrig/pkg/layout"
)

// Options shape one downloader invocation.
type Options struct {
	// AudioOnly extracts audio instead of downloading video.
	AudioOnly bool
	// OutputDir is where the downloader writes results. Empty means the
	// downloader's default.
	OutputDir string
}

// Runner invokes the installed downloader binary.
// Immutable
type Runner struct {
	bin      string
	cacheDir string
	disp     display.Display
}

// NewRunner builds a Runner for the toolchain at root.
func NewRunner(root *layout.Root, disp display.Display) *Runner {
	return &Runner{
		bin:      root.DownloaderPath(),
		cacheDir: root.CacheDir(),
		disp:     disp,
	}
}

// args builds the argument vector for one invocation. Arguments are passed
// as a vector, never through a shell, so URLs cannot be reinterpreted as
// shell syntax.
func (r *Runner) args(opts Options, urls []string) []string {
	argv := []string{"--cache-dir", r.cacheDir}
	if opts.AudioOnly {
		argv = append(argv, "--extract-audio")
	}
	if opts.OutputDir != "" {
		argv = append(argv, "--paths", opts.OutputDir)
	}
	return append(argv, urls...)
}

// Fetch runs the downloader over urls, relaying its output line by line to
// the display. The downloader's exit status is the only success signal.
func (r *Runner) Fetch(ctx context.Context, opts Options, urls []string) error {
	if len(urls) == 0 {
		return fmt.Errorf("no urls to fetch")
	}

	cmd := exec.CommandContext(ctx, r.bin, r.args(opts, urls)...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("pipe downloader output: %w", err)
	}
	cmd.Stderr = cmd.Stdout

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start downloader: %w", err)
	}
	r.relay(stdout)

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("downloader failed: %w", err)
	}
	return nil
}

func (r *Runner) relay(out io.Reader) {
	sc := bufio.NewScanner(out)
	for sc.Scan() {
		r.disp.Infof("%s", sc.Text())
	}
}
