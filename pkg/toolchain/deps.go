package toolchain

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"mrig/pkg/archive"
	"mrig/pkg/layout"
)

// EnsureDownloader installs the media downloader binary into binDir. The
// directory must already exist; otherwise the call fails with no side
// effects. Either the binary exists afterwards or the call reports failure —
// there is no partial state to clean up.
func (i *Installer) EnsureDownloader(ctx context.Context, binDir string) error {
	if err := requireDir(binDir); err != nil {
		return err
	}

	dest := filepath.Join(binDir, layout.DownloaderName())
	if err := i.fetcher.FetchFile(ctx, i.DownloaderURL, dest); err != nil {
		return err
	}
	if !exists(dest) {
		return fmt.Errorf("%w: %s missing after fetch", ErrVerifyFailed, dest)
	}
	return markExecutable(dest)
}

// EnsureEncoders installs the three encoder binaries into binDir from the
// upstream bundle. The bundle contract is a single top-level folder; zero or
// multiple candidates fail loudly. All three binaries must be present after
// extraction — a bundle yielding two of three is a failure, and the next run
// re-attempts all three.
func (i *Installer) EnsureEncoders(ctx context.Context, binDir string) error {
	if err := requireDir(binDir); err != nil {
		return err
	}

	archivePath := filepath.Join(binDir, filepath.Base(i.EncoderArchiveURL))
	if err := i.fetcher.FetchFile(ctx, i.EncoderArchiveURL, archivePath); err != nil {
		return err
	}
	defer os.Remove(archivePath)

	extractDir := filepath.Join(binDir, ".mrig-extract")
	if err := os.RemoveAll(extractDir); err != nil {
		return fmt.Errorf("clear extract dir: %w", err)
	}
	if err := os.MkdirAll(extractDir, 0o755); err != nil {
		return fmt.Errorf("create extract dir: %w", err)
	}
	defer os.RemoveAll(extractDir)

	if err := archive.Extract(archivePath, extractDir); err != nil {
		return fmt.Errorf("extract encoder bundle: %w", err)
	}

	tops, err := archive.TopLevelDirs(extractDir)
	if err != nil {
		return fmt.Errorf("inspect extracted bundle: %w", err)
	}
	if len(tops) != 1 {
		return fmt.Errorf("encoder bundle must contain exactly one top-level folder, found %d", len(tops))
	}

	// Upstream bundles keep the executables under <top>/bin; fall back to the
	// top folder itself.
	srcDir := filepath.Join(extractDir, tops[0], "bin")
	if !exists(srcDir) {
		srcDir = filepath.Join(extractDir, tops[0])
	}

	for _, name := range layout.EncoderNames() {
		src := filepath.Join(srcDir, name)
		if !exists(src) {
			continue // caught by verification below
		}
		if err := copyFile(src, filepath.Join(binDir, name)); err != nil {
			return fmt.Errorf("install %s: %w", name, err)
		}
	}

	var missing []string
	for _, name := range layout.EncoderNames() {
		if !exists(filepath.Join(binDir, name)) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: encoder bundle missing %s", ErrVerifyFailed, strings.Join(missing, ", "))
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o755)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func markExecutable(path string) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return os.Chmod(path, 0o755)
}
