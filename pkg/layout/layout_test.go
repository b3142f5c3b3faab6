package layout

import (
	"path/filepath"
	"strings"
	"testing"
)

func testRoot(dir string) *Root {
	return &Root{
		Dir:        dir,
		DesktopDir: filepath.Join(dir, "Desktop"),
		MenuDir:    filepath.Join(dir, "applications"),
	}
}

func TestDerivedDirs(t *testing.T) {
	r := testRoot("/opt/mrig")
	if r.Bin() != filepath.Join("/opt/mrig", "bin") {
		t.Errorf("Bin = %s", r.Bin())
	}
	if r.CacheDir() != filepath.Join("/opt/mrig", "var", "cache") {
		t.Errorf("CacheDir = %s", r.CacheDir())
	}
	if filepath.Dir(r.LockFile()) != r.Var() {
		t.Errorf("lock file must live under var: %s", r.LockFile())
	}
}

func TestManagedArtifactsCount(t *testing.T) {
	r := testRoot("/opt/mrig")
	arts := r.ManagedArtifacts()
	if len(arts) != 12 {
		t.Fatalf("expected 12 managed artifacts, got %d", len(arts))
	}
	seen := map[string]bool{}
	for _, a := range arts {
		if seen[a.Path] {
			t.Errorf("duplicate artifact path %s", a.Path)
		}
		seen[a.Path] = true
	}
}

func TestStructuralDirsLeafToRoot(t *testing.T) {
	r := testRoot("/opt/mrig")
	dirs := r.StructuralDirs()
	if dirs[len(dirs)-1] != r.Dir {
		t.Errorf("install root must come last: %v", dirs)
	}
	for i, d := range dirs[:len(dirs)-1] {
		if d == r.Dir {
			t.Errorf("root listed before position %d", i)
		}
	}
}

func TestScriptFiles(t *testing.T) {
	r := testRoot("/opt/mrig")
	files := r.ScriptFiles()
	if len(files) != 4 {
		t.Fatalf("expected 4 script/doc files, got %d", len(files))
	}
	var execs, docs int
	for _, f := range files {
		if f.Executable {
			execs++
			if filepath.Dir(f.Path) != r.Bin() {
				t.Errorf("executable script outside bin: %s", f.Path)
			}
		} else {
			docs++
			if filepath.Dir(f.Path) != r.Dir {
				t.Errorf("doc file outside root: %s", f.Path)
			}
		}
	}
	if execs != 2 || docs != 2 {
		t.Errorf("want 2 scripts + 2 docs, got %d + %d", execs, docs)
	}

	url := ScriptURL("v1.4.0", files[0])
	if !strings.Contains(url, "/v1.4.0/scripts/") {
		t.Errorf("versioned url = %s", url)
	}
}

func TestDownloaderURLEndsWithAsset(t *testing.T) {
	if !strings.HasSuffix(DownloaderURL(), DownloaderAsset()) {
		t.Errorf("url %s does not end with asset %s", DownloaderURL(), DownloaderAsset())
	}
}

func TestDefaultRootNonEmpty(t *testing.T) {
	r := New("")
	if r.Dir == "" || !strings.HasSuffix(r.Dir, AppName) {
		t.Errorf("default root = %q", r.Dir)
	}
}
