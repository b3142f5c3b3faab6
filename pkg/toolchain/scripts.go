package toolchain

import (
	"context"
	"fmt"

	"mrig/pkg/layout"
)

// EnsureScripts fetches each missing script/doc file from the versioned
// source location at branch. Files already present are left alone, so a
// re-run after an interruption fetches only what is still missing.
func (i *Installer) EnsureScripts(ctx context.Context, root *layout.Root, branch string) error {
	for _, f := range root.ScriptFiles() {
		if exists(f.Path) {
			continue
		}
		i.disp.Warningf("%s missing, fetching from %s", f.Rel, branch)

		url := i.ScriptURL(branch, f)
		if err := i.fetcher.FetchFile(ctx, url, f.Path); err != nil {
			return fmt.Errorf("fetch %s: %w", f.Rel, err)
		}
		if !exists(f.Path) {
			return fmt.Errorf("%w: %s missing after fetch", ErrVerifyFailed, f.Path)
		}
		if f.Executable {
			if err := markExecutable(f.Path); err != nil {
				return fmt.Errorf("mark %s executable: %w", f.Rel, err)
			}
		}
		i.disp.Infof("installed %s", f.Path)
	}
	return nil
}
