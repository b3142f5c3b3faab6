// Package layout defines the on-disk shape of an mrig installation: the
// install root with its bin/var/etc subdirectories, every managed artifact
// with its expected path, the shortcut locations, and the upstream sources
// artifacts are fetched from. All other packages derive paths from here.
package layout

import (
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"
)

// AppName is the product name used for directories and shortcuts.
const AppName = "mrig"

const (
	// DownloaderRepo is the upstream release repository of the downloader,
	// used when resolving a pinned release tag.
	DownloaderRepo = "yt-dlp/yt-dlp"
	// DownloaderURLBase is the trusted upstream for the media downloader
	// binary. The asset name per platform is appended.
	DownloaderURLBase = "https://github.com/" + DownloaderRepo + "/releases/latest/download/"
	// EncoderURLBase is the trusted upstream for the encoder suite archive.
	EncoderURLBase = "https://github.com/BtbN/FFmpeg-Builds/releases/latest/download/"
	// ScriptURLBase is the versioned source for helper scripts and docs; the
	// branch or tag plus the file path is appended.
	ScriptURLBase = "https://raw.githubusercontent.com/mrig/mrig/"
)

// Root is an install root and the external locations shortcuts land in.
// Mutable
type Root struct {
	// Dir is the installation root directory.
	Dir string
	// DesktopDir is where the desktop shortcut goes.
	DesktopDir string
	// MenuDir is the start-menu-equivalent applications directory; the
	// shortcut goes into an AppName subfolder of it.
	MenuDir string
}

// New returns a Root for dir, or the default per-user location when dir is
// empty, with platform-default shortcut directories.
func New(dir string) *Root {
	if dir == "" {
		dir = filepath.Join(xdg.DataHome, AppName)
	}
	return &Root{
		Dir:        dir,
		DesktopDir: filepath.Join(xdg.Home, "Desktop"),
		MenuDir:    filepath.Join(xdg.DataHome, "applications"),
	}
}

// Bin is the executables and scripts directory.
func (r *Root) Bin() string { return filepath.Join(r.Dir, "bin") }

// Var is the runtime and cache state directory.
func (r *Root) Var() string { return filepath.Join(r.Dir, "var") }

// Etc is the configuration directory.
func (r *Root) Etc() string { return filepath.Join(r.Dir, "etc") }

// CacheDir holds downloader caches under var.
func (r *Root) CacheDir() string { return filepath.Join(r.Var(), "cache") }

// LockFile is the install lock taken for the duration of an orchestration.
func (r *Root) LockFile() string { return filepath.Join(r.Var(), "install.lock") }

// ExeSuffix is ".exe" on Windows and empty elsewhere.
func ExeSuffix() string {
	if runtime.GOOS == "windows" {
		return ".exe"
	}
	return ""
}

// DownloaderName is the file name of the media downloader binary.
func DownloaderName() string { return "yt-dlp" + ExeSuffix() }

// DownloaderPath is the installed downloader binary.
func (r *Root) DownloaderPath() string { return filepath.Join(r.Bin(), DownloaderName()) }

// DownloaderAsset is the release asset name of the downloader binary for
// this platform.
func DownloaderAsset() string {
	switch runtime.GOOS {
	case "windows":
		return "yt-dlp.exe"
	case "darwin":
		return "yt-dlp_macos"
	default:
		return "yt-dlp"
	}
}

// DownloaderURL is the full upstream URL of the downloader binary for this
// platform, following the latest release.
func DownloaderURL() string {
	return DownloaderURLBase + DownloaderAsset()
}

// EncoderNames are the three binaries expected from the encoder bundle.
func EncoderNames() []string {
	s := ExeSuffix()
	return []string{"ffmpeg" + s, "ffplay" + s, "ffprobe" + s}
}

// EncoderPaths are the installed encoder binaries.
func (r *Root) EncoderPaths() []string {
	var out []string
	for _, n := range EncoderNames() {
		out = append(out, filepath.Join(r.Bin(), n))
	}
	return out
}

// EncoderArchiveURL is the full upstream URL of the encoder suite archive for
// this platform.
func EncoderArchiveURL() string {
	switch {
	case runtime.GOOS == "windows":
		return EncoderURLBase + "ffmpeg-master-latest-win64-gpl.zip"
	case runtime.GOARCH == "arm64":
		return EncoderURLBase + "ffmpeg-master-latest-linuxarm64-gpl.tar.xz"
	default:
		return EncoderURLBase + "ffmpeg-master-latest-linux64-gpl.tar.xz"
	}
}

// ScriptFile is one of the helper script or doc files fetched from the
// versioned source location.
type ScriptFile struct {
	// Rel is the path relative to the repository root upstream.
	Rel string
	// Path is the installed location.
	Path string
	// Executable marks script files that need the executable bit.
	Executable bool
}

// ScriptFiles returns the four core script/doc files: the download
// orchestrator script and the interactive entry script under bin, plus
// README and LICENSE at the root.
func (r *Root) ScriptFiles() []ScriptFile {
	return []ScriptFile{
		{Rel: "scripts/mrig-dl", Path: filepath.Join(r.Bin(), "mrig-dl"), Executable: true},
		{Rel: "scripts/mrig-menu", Path: filepath.Join(r.Bin(), "mrig-menu"), Executable: true},
		{Rel: "README.md", Path: filepath.Join(r.Dir, "README.md")},
		{Rel: "LICENSE", Path: filepath.Join(r.Dir, "LICENSE")},
	}
}

// ScriptURL builds the upstream URL for a script file at the given branch or
// tag.
func ScriptURL(branch string, f ScriptFile) string {
	return ScriptURLBase + branch + "/" + f.Rel
}

func shortcutExt() string {
	if runtime.GOOS == "windows" {
		return ".cmd"
	}
	return ".desktop"
}

// LocalShortcut lives inside the install root.
func (r *Root) LocalShortcut() string {
	return filepath.Join(r.Dir, AppName+shortcutExt())
}

// DesktopShortcut lives in the user's desktop directory.
func (r *Root) DesktopShortcut() string {
	return filepath.Join(r.DesktopDir, AppName+shortcutExt())
}

// MenuFolder is the AppName folder inside the start-menu-equivalent location.
func (r *Root) MenuFolder() string {
	return filepath.Join(r.MenuDir, AppName)
}

// MenuShortcut lives inside MenuFolder.
func (r *Root) MenuShortcut() string {
	return filepath.Join(r.MenuFolder(), AppName+shortcutExt())
}

// LegacyMenuShortcut is the flat pre-folder start-menu location. Never
// created anymore, still removed at uninstall.
func (r *Root) LegacyMenuShortcut() string {
	return filepath.Join(r.MenuDir, AppName+shortcutExt())
}

// EntryScript is the shortcut target: the interactive entry script.
func (r *Root) EntryScript() string {
	return filepath.Join(r.Bin(), "mrig-menu")
}

// Artifact is a single named file the uninstaller removes.
type Artifact struct {
	Name string
	Path string
}

// ManagedArtifacts lists the twelve files removed one by one during
// uninstall phase 1: six bin entries, two doc files, four shortcut locations.
// The cache directory is handled separately.
func (r *Root) ManagedArtifacts() []Artifact {
	arts := []Artifact{
		{Name: "downloader", Path: r.DownloaderPath()},
	}
	for i, p := range r.EncoderPaths() {
		arts = append(arts, Artifact{Name: EncoderNames()[i], Path: p})
	}
	for _, f := range r.ScriptFiles() {
		arts = append(arts, Artifact{Name: filepath.Base(f.Path), Path: f.Path})
	}
	arts = append(arts,
		Artifact{Name: "local shortcut", Path: r.LocalShortcut()},
		Artifact{Name: "desktop shortcut", Path: r.DesktopShortcut()},
		Artifact{Name: "menu shortcut", Path: r.MenuShortcut()},
		Artifact{Name: "legacy menu shortcut", Path: r.LegacyMenuShortcut()},
	)
	return arts
}

// StructuralDirs lists the directories pruned during uninstall phase 3,
// ordered leaf to root so each child is judged for emptiness before its
// parent. The install root itself comes last.
func (r *Root) StructuralDirs() []string {
	return []string{
		r.MenuFolder(),
		r.Bin(),
		r.Etc(),
		r.Var(),
		r.Dir,
	}
}
