package toolchain

import (
	"os"

	"github.com/dustin/go-humanize"

	"mrig/pkg/layout"
)

// ArtifactStatus is one managed artifact's presence on disk.
type ArtifactStatus struct {
	Name    string
	Path    string
	Present bool
	Size    int64
}

// Status inspects every managed artifact under root.
func (i *Installer) Status(root *layout.Root) []ArtifactStatus {
	var out []ArtifactStatus
	for _, a := range root.ManagedArtifacts() {
		st := ArtifactStatus{Name: a.Name, Path: a.Path}
		if fi, err := os.Stat(a.Path); err == nil {
			st.Present = true
			st.Size = fi.Size()
		}
		out = append(out, st)
	}
	return out
}

// Installed reports whether the toolchain binaries are all present: the
// downloader, the three encoders, and the entry script.
func (i *Installer) Installed(root *layout.Root) bool {
	if !exists(root.DownloaderPath()) {
		return false
	}
	for _, p := range root.EncoderPaths() {
		if !exists(p) {
			return false
		}
	}
	return exists(root.EntryScript())
}

// Report logs one line per artifact plus a summary.
func (i *Installer) Report(root *layout.Root) {
	var present, total int
	for _, st := range i.Status(root) {
		total++
		if st.Present {
			present++
			i.disp.Infof("%-22s %10s  %s", st.Name, humanize.Bytes(uint64(st.Size)), st.Path)
		} else {
			i.disp.Warningf("%-22s %10s  %s", st.Name, "absent", st.Path)
		}
	}
	i.disp.Infof("%d of %d managed artifacts present", present, total)
}
