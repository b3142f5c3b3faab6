package toolchain

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"mrig/pkg/display"
	"mrig/pkg/layout"
	"mrig/pkg/pathenv"
)

// upstream is a fake release host: a downloader binary, an encoder bundle,
// and raw script files.
type upstream struct {
	ts       *httptest.Server
	requests atomic.Int64
	// encoders controls which binaries the bundle ships.
	encoders []string
	// topDirs controls how many top-level folders the bundle has.
	topDirs []string
	// failEncoders makes the bundle endpoint return 500.
	failEncoders atomic.Bool
}

func newUpstream(t *testing.T) *upstream {
	t.Helper()
	u := &upstream{
		encoders: []string{"ffmpeg", "ffplay", "ffprobe"},
		topDirs:  []string{"ffmpeg-test-build"},
	}
	u.ts = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.requests.Add(1)
		switch {
		case r.URL.Path == "/yt-dlp":
			fmt.Fprint(w, "downloader-binary")
		case r.URL.Path == "/bundle.tar.gz":
			if u.failEncoders.Load() {
				http.Error(w, "unavailable", http.StatusInternalServerError)
				return
			}
			u.writeBundle(w)
		case strings.HasPrefix(r.URL.Path, "/raw/"):
			fmt.Fprintf(w, "content of %s", r.URL.Path)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(u.ts.Close)
	return u
}

func (u *upstream) writeBundle(w http.ResponseWriter) {
	gw := gzip.NewWriter(w)
	tw := tar.NewWriter(gw)
	for _, top := range u.topDirs {
		for _, name := range u.encoders {
			content := []byte("binary " + name)
			hdr := &tar.Header{
				Name: top + "/bin/" + name,
				Mode: 0o755,
				Size: int64(len(content)),
			}
			tw.WriteHeader(hdr)
			tw.Write(content)
		}
	}
	tw.Close()
	gw.Close()
}

func testSetup(t *testing.T) (*Installer, *layout.Root, *upstream) {
	t.Helper()
	u := newUpstream(t)

	base := t.TempDir()
	root := &layout.Root{
		Dir:        filepath.Join(base, "mrig"),
		DesktopDir: filepath.Join(base, "Desktop"),
		MenuDir:    filepath.Join(base, "applications"),
	}

	inst := NewInstaller(display.Discard())
	inst.DownloaderURL = u.ts.URL + "/yt-dlp"
	inst.EncoderArchiveURL = u.ts.URL + "/bundle.tar.gz"
	inst.ScriptURL = func(branch string, f layout.ScriptFile) string {
		return u.ts.URL + "/raw/" + branch + "/" + f.Rel
	}
	return inst, root, u
}

func allOpts() InstallOptions {
	return InstallOptions{
		Branch:            "main",
		LocalShortcut:     true,
		DesktopShortcut:   true,
		StartMenuShortcut: true,
	}
}

func TestInstallProducesFullLayout(t *testing.T) {
	inst, root, _ := testSetup(t)

	opts := allOpts()
	opts.Path = pathenv.NewWithSeparator("/usr/bin", ":")
	if err := inst.Install(context.Background(), root, opts); err != nil {
		t.Fatalf("Install: %v", err)
	}

	for _, p := range []string{
		root.DownloaderPath(),
		filepath.Join(root.Bin(), "ffmpeg"),
		filepath.Join(root.Bin(), "ffplay"),
		filepath.Join(root.Bin(), "ffprobe"),
		filepath.Join(root.Bin(), "mrig-dl"),
		root.EntryScript(),
		filepath.Join(root.Dir, "README.md"),
		filepath.Join(root.Dir, "LICENSE"),
		root.LocalShortcut(),
		root.DesktopShortcut(),
		root.MenuShortcut(),
		root.CacheDir(),
		root.Etc(),
	} {
		if !exists(p) {
			t.Errorf("missing after install: %s", p)
		}
	}

	if !opts.Path.Contains(root.Bin()) {
		t.Errorf("bin not registered on PATH list: %s", opts.Path)
	}
	if !inst.Installed(root) {
		t.Error("Installed() = false after full install")
	}
}

func TestInstallIdempotentSecondRunFetchesNothing(t *testing.T) {
	inst, root, u := testSetup(t)

	if err := inst.Install(context.Background(), root, allOpts()); err != nil {
		t.Fatalf("first Install: %v", err)
	}
	after := u.requests.Load()

	if err := inst.Install(context.Background(), root, allOpts()); err != nil {
		t.Fatalf("second Install: %v", err)
	}
	if got := u.requests.Load(); got != after {
		t.Errorf("second install fetched %d times, want 0", got-after)
	}
}

func TestInstallResumesWithoutRefetchingDownloader(t *testing.T) {
	inst, root, u := testSetup(t)

	// First run dies at the encoder stage: downloader installed, suite absent.
	u.failEncoders.Store(true)
	err := inst.Install(context.Background(), root, allOpts())
	if err == nil {
		t.Fatal("expected install failure with encoder bundle unavailable")
	}
	if !strings.Contains(err.Error(), "encoder suite") {
		t.Errorf("error does not name the failed stage: %v", err)
	}
	if !exists(root.DownloaderPath()) {
		t.Fatal("downloader should be installed before the failing stage")
	}
	// Abort-on-failure: the script stage must not have run.
	if exists(filepath.Join(root.Bin(), "mrig-dl")) {
		t.Error("later stage ran after a hard failure")
	}

	before := u.requests.Load()

	u.failEncoders.Store(false)
	if err := inst.Install(context.Background(), root, allOpts()); err != nil {
		t.Fatalf("resumed Install: %v", err)
	}

	// The resumed run fetched the bundle and the four scripts, never the
	// downloader again: 5 requests.
	if got := u.requests.Load() - before; got != 5 {
		t.Errorf("resumed install made %d fetches, want 5 (bundle + 4 scripts)", got)
	}
	if !inst.Installed(root) {
		t.Error("toolchain incomplete after resume")
	}
}

func TestEncoderBundleMissingBinaryIsFailure(t *testing.T) {
	inst, root, u := testSetup(t)
	u.encoders = []string{"ffmpeg", "ffprobe"} // ffplay missing upstream

	err := inst.Install(context.Background(), root, allOpts())
	if err == nil {
		t.Fatal("expected failure when bundle is missing a binary")
	}
	if !errors.Is(err, ErrVerifyFailed) {
		t.Errorf("err = %v, want ErrVerifyFailed", err)
	}
	if !strings.Contains(err.Error(), "ffplay") {
		t.Errorf("error does not name the missing binary: %v", err)
	}

	// No extraction debris or archive may survive.
	entries, _ := os.ReadDir(root.Bin())
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".mrig-") || strings.HasSuffix(e.Name(), ".tar.gz") {
			t.Errorf("leftover %s in bin", e.Name())
		}
	}
}

func TestEncoderBundleMultipleTopDirsFailsLoudly(t *testing.T) {
	inst, root, u := testSetup(t)
	u.topDirs = []string{"build-a", "build-b"}

	err := inst.Install(context.Background(), root, allOpts())
	if err == nil || !strings.Contains(err.Error(), "exactly one top-level folder") {
		t.Fatalf("err = %v, want single-subfolder contract violation", err)
	}
}

func TestEnsureDownloaderPreconditions(t *testing.T) {
	inst, _, _ := testSetup(t)

	missing := filepath.Join(t.TempDir(), "absent")
	if err := inst.EnsureDownloader(context.Background(), missing); !errors.Is(err, ErrNotDirectory) {
		t.Errorf("missing dir: err = %v, want ErrNotDirectory", err)
	}

	file := filepath.Join(t.TempDir(), "plain")
	os.WriteFile(file, []byte("x"), 0o644)
	if err := inst.EnsureDownloader(context.Background(), file); !errors.Is(err, ErrNotDirectory) {
		t.Errorf("plain file: err = %v, want ErrNotDirectory", err)
	}
}

func TestShortcutRefreshedOnReinstall(t *testing.T) {
	inst, root, _ := testSetup(t)

	if err := inst.Install(context.Background(), root, allOpts()); err != nil {
		t.Fatalf("Install: %v", err)
	}
	// Sabotage the shortcut; a re-run must rewrite it, not skip it.
	if err := os.WriteFile(root.LocalShortcut(), []byte("stale"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := inst.Install(context.Background(), root, allOpts()); err != nil {
		t.Fatalf("reinstall: %v", err)
	}

	b, _ := os.ReadFile(root.LocalShortcut())
	if string(b) == "stale" {
		t.Error("shortcut was skipped instead of refreshed")
	}
	if !strings.Contains(string(b), root.EntryScript()) {
		t.Errorf("refreshed shortcut does not point at entry script:\n%s", b)
	}
}
