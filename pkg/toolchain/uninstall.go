package toolchain

import (
	"fmt"
	"os"

	"mrig/pkg/layout"
)

// UninstallOptions selects uninstall behavior.
type UninstallOptions struct {
	// Force removes structural directories even when they still hold content
	// the installer never created.
	Force bool
}

// Uninstall removes every artifact Install may have created. Removal is
// best-effort per item: an artifact already absent is logged as a warning and
// skipped, any other removal error is fatal and aborts the remaining work so
// a half-broken teardown is never silently continued. Directories are pruned
// leaf to root and, without Force, only when empty — user-added files keep
// their directory alive.
func (i *Installer) Uninstall(root *layout.Root, opts UninstallOptions) error {
	// Phase 1: individual artifacts.
	for _, a := range root.ManagedArtifacts() {
		if err := os.Remove(a.Path); err != nil {
			if os.IsNotExist(err) {
				i.disp.Warningf("%s not found at %s, skipping", a.Name, a.Path)
				continue
			}
			i.disp.Errorf("failed to remove %s: %v", a.Path, err)
			return fmt.Errorf("remove %s: %w", a.Path, err)
		}
		i.disp.Infof("removed %s", a.Path)
	}

	// Phase 2: the cache directory, recursively.
	if exists(root.CacheDir()) {
		if err := os.RemoveAll(root.CacheDir()); err != nil {
			i.disp.Errorf("failed to remove cache: %v", err)
			return fmt.Errorf("remove cache: %w", err)
		}
		i.disp.Infof("removed %s", root.CacheDir())
	} else {
		i.disp.Warningf("cache not found at %s, skipping", root.CacheDir())
	}

	// Phase 3: structural directories, leaf to root.
	for _, dir := range root.StructuralDirs() {
		if err := i.pruneDir(dir, opts.Force); err != nil {
			return err
		}
	}

	i.disp.Infof("uninstall complete")
	return nil
}

// pruneDir removes dir when it is empty or force is set. A non-empty dir
// without force is preserved; a missing dir is only a warning.
func (i *Installer) pruneDir(dir string, force bool) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			i.disp.Warningf("%s not found, skipping", dir)
			return nil
		}
		i.disp.Errorf("failed to inspect %s: %v", dir, err)
		return fmt.Errorf("inspect %s: %w", dir, err)
	}

	if len(entries) > 0 && !force {
		i.disp.Infof("%s not empty, preserved", dir)
		return nil
	}

	rm := os.Remove
	if force {
		rm = os.RemoveAll
	}
	if err := rm(dir); err != nil {
		i.disp.Errorf("failed to remove %s: %v", dir, err)
		return fmt.Errorf("remove %s: %w", dir, err)
	}
	i.disp.Infof("removed %s", dir)
	return nil
}
