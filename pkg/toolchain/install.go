package toolchain

import (
	"context"
	"fmt"
	"os"

	"mrig/pkg/layout"
	"mrig/pkg/lockfile"
	"mrig/pkg/pathenv"
	"mrig/pkg/shortcut"
)

// InstallOptions selects optional install behavior.
type InstallOptions struct {
	// Branch is the ref the script/doc files are fetched at.
	Branch string
	// Path, when set, is the PATH-like list bin is registered in. The caller
	// owns applying the mutated list to whatever scope it came from.
	Path *pathenv.List

	LocalShortcut     bool
	DesktopShortcut   bool
	StartMenuShortcut bool
}

// Install brings root to the fully-installed state. Each stage checks current
// state and remediates only what is missing, so the whole routine is
// idempotent and resumable: a re-run after an interruption picks up at the
// first incomplete stage without repeating finished work.
//
// Stage failure aborts the orchestration: later stages assume earlier ones
// (binaries present under bin) succeeded, so continuing past a hard failure
// would only produce misleading follow-on errors. The returned error names
// the failed stage.
func (i *Installer) Install(ctx context.Context, root *layout.Root, opts InstallOptions) error {
	if opts.Branch == "" {
		opts.Branch = "main"
	}

	// One orchestration per root at a time. The existence checks below are
	// not atomic against a concurrent install.
	unlock, err := lockfile.Acquire(root.LockFile())
	if err != nil {
		return fmt.Errorf("acquire install lock: %w", err)
	}
	defer unlock()

	stages := []struct {
		name string
		run  func() error
	}{
		{"install root", func() error { return i.ensureDir(root.Dir) }},
		{"directory layout", func() error {
			for _, d := range []string{root.Bin(), root.Var(), root.Etc(), root.CacheDir()} {
				if err := i.ensureDir(d); err != nil {
					return err
				}
			}
			return nil
		}},
		{"downloader", func() error { return i.stageDownloader(ctx, root) }},
		{"encoder suite", func() error { return i.stageEncoders(ctx, root) }},
		{"scripts", func() error { return i.EnsureScripts(ctx, root, opts.Branch) }},
		{"path registration", func() error { return i.stagePath(root, opts.Path) }},
		{"shortcuts", func() error { return i.stageShortcuts(root, opts) }},
	}

	for _, s := range stages {
		if err := s.run(); err != nil {
			i.disp.Errorf("stage %q failed: %v", s.name, err)
			return fmt.Errorf("install stage %q: %w", s.name, err)
		}
	}

	i.disp.Infof("installation complete at %s", root.Dir)
	return nil
}

func (i *Installer) ensureDir(dir string) error {
	if exists(dir) {
		return nil
	}
	i.disp.Warningf("directory %s missing, creating", dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	i.disp.Infof("created %s", dir)
	return nil
}

func (i *Installer) stageDownloader(ctx context.Context, root *layout.Root) error {
	if exists(root.DownloaderPath()) {
		i.disp.Infof("downloader present at %s", root.DownloaderPath())
		return nil
	}
	i.disp.Warningf("downloader missing, fetching")
	if err := i.EnsureDownloader(ctx, root.Bin()); err != nil {
		return err
	}
	i.disp.Infof("installed %s", root.DownloaderPath())
	return nil
}

func (i *Installer) stageEncoders(ctx context.Context, root *layout.Root) error {
	missing := false
	for _, p := range root.EncoderPaths() {
		if !exists(p) {
			missing = true
			break
		}
	}
	if !missing {
		i.disp.Infof("encoder suite present under %s", root.Bin())
		return nil
	}
	i.disp.Warningf("encoder suite incomplete, fetching bundle")
	if err := i.EnsureEncoders(ctx, root.Bin()); err != nil {
		return err
	}
	i.disp.Infof("installed encoder suite under %s", root.Bin())
	return nil
}

func (i *Installer) stagePath(root *layout.Root, list *pathenv.List) error {
	if list == nil {
		return nil
	}
	changed, err := list.Ensure(root.Bin())
	if err != nil {
		return err
	}
	if changed {
		i.disp.Infof("added %s to PATH for this process; add it to your shell profile to persist", root.Bin())
	} else {
		i.disp.Infof("%s already on PATH", root.Bin())
	}
	return nil
}

func (i *Installer) stageShortcuts(root *layout.Root, opts InstallOptions) error {
	flavors := []struct {
		want bool
		path string
	}{
		{opts.LocalShortcut, root.LocalShortcut()},
		{opts.DesktopShortcut, root.DesktopShortcut()},
		{opts.StartMenuShortcut, root.MenuShortcut()},
	}
	for _, f := range flavors {
		if !f.want {
			continue
		}
		sc := shortcut.Shortcut{
			Path:    f.path,
			Name:    layout.AppName,
			Target:  root.EntryScript(),
			WorkDir: root.Dir,
		}
		if err := shortcut.CreateOrRefresh(sc); err != nil {
			return fmt.Errorf("shortcut %s: %w", f.path, err)
		}
		i.disp.Infof("shortcut refreshed at %s", f.path)
	}
	return nil
}
