package media

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"testing"

	"mrig/pkg/display"
	"mrig/pkg/layout"
)

func TestReadPlaylistFiltersLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.txt")
	content := `# favorites
https://example.com/a

  https://example.com/b
# trailing comment
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	urls, err := ReadPlaylist(path)
	if err != nil {
		t.Fatalf("ReadPlaylist: %v", err)
	}
	want := []string{"https://example.com/a", "https://example.com/b"}
	if !reflect.DeepEqual(urls, want) {
		t.Errorf("urls = %v, want %v", urls, want)
	}
}

func TestReadPlaylistMissingFile(t *testing.T) {
	if _, err := ReadPlaylist(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Fatal("expected error for missing playlist")
	}
}

func TestArgsAreVectorized(t *testing.T) {
	root := &layout.Root{Dir: "/opt/mrig"}
	r := NewRunner(root, display.Discard())

	// A URL with shell metacharacters stays a single argument.
	evil := "https://example.com/watch?v=x;rm -rf /"
	argv := r.args(Options{AudioOnly: true, OutputDir: "/tmp/out"}, []string{evil})

	want := []string{"--cache-dir", root.CacheDir(), "--extract-audio", "--paths", "/tmp/out", evil}
	if !reflect.DeepEqual(argv, want) {
		t.Errorf("argv = %v, want %v", argv, want)
	}
}

func TestFetchRelaysOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake downloader script requires sh")
	}
	base := t.TempDir()
	root := &layout.Root{Dir: filepath.Join(base, "mrig")}
	if err := os.MkdirAll(root.Bin(), 0o755); err != nil {
		t.Fatal(err)
	}
	fake := "#!/bin/sh\necho fetching \"$@\"\n"
	if err := os.WriteFile(root.DownloaderPath(), []byte(fake), 0o755); err != nil {
		t.Fatal(err)
	}

	buf := &bytes.Buffer{}
	r := NewRunner(root, display.NewWriterDisplay(buf, strings.NewReader("")))

	if err := r.Fetch(context.Background(), Options{}, []string{"https://example.com/a"}); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !strings.Contains(buf.String(), "https://example.com/a") {
		t.Errorf("downloader output not relayed:\n%s", buf.String())
	}
}

func TestFetchReportsExitFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake downloader script requires sh")
	}
	base := t.TempDir()
	root := &layout.Root{Dir: filepath.Join(base, "mrig")}
	if err := os.MkdirAll(root.Bin(), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(root.DownloaderPath(), []byte("#!/bin/sh\nexit 3\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	r := NewRunner(root, display.Discard())
	if err := r.Fetch(context.Background(), Options{}, []string{"u"}); err == nil {
		t.Fatal("expected error from failing downloader")
	}
}

func TestFetchRejectsEmptyURLList(t *testing.T) {
	r := NewRunner(&layout.Root{Dir: "/opt/mrig"}, display.Discard())
	if err := r.Fetch(context.Background(), Options{}, nil); err == nil {
		t.Fatal("expected error for empty url list")
	}
}
