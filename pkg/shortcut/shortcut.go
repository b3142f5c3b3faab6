// Package shortcut writes launcher entries pointing at an executable plus
// arguments. A shortcut that already exists is always rewritten with the
// current values, never skipped, so a relocated install cannot leave stale
// launchers behind.
package shortcut

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Shortcut describes one launcher entry.
type Shortcut struct {
	// Path is where the shortcut file is written. The extension selects the
	// format: ".cmd" produces a Windows batch launcher, anything else a
	// freedesktop desktop entry.
	Path string
	// Name is the display name of the launcher.
	Name string
	// Target is the executable the shortcut starts. A bare command name is
	// resolved through PATH; relative paths are made absolute. The resolved
	// absolute path is embedded, so the shortcut survives later PATH changes
	// at the cost of snapshotting the location.
	Target string
	// Args is the argument string appended to the target.
	Args string
	// WorkDir is the working directory for the launched process.
	WorkDir string
}

// CreateOrRefresh writes the shortcut, overwriting any existing file at
// sc.Path, and verifies the written file exists. Creation and refresh are
// verified alike.
func CreateOrRefresh(sc Shortcut) error {
	target, err := resolveTarget(sc.Target)
	if err != nil {
		return fmt.Errorf("resolve shortcut target: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(sc.Path), 0o755); err != nil {
		return fmt.Errorf("create shortcut directory: %w", err)
	}

	var content string
	if strings.HasSuffix(sc.Path, ".cmd") {
		content = cmdLauncher(sc, target)
	} else {
		content = desktopEntry(sc, target)
	}

	if err := os.WriteFile(sc.Path, []byte(content), 0o755); err != nil {
		return fmt.Errorf("write shortcut: %w", err)
	}
	if _, err := os.Stat(sc.Path); err != nil {
		return fmt.Errorf("verify shortcut: %w", err)
	}
	return nil
}

func resolveTarget(target string) (string, error) {
	if target == "" {
		return "", fmt.Errorf("empty target")
	}
	if filepath.Base(target) == target {
		// Bare command name: resolve through PATH.
		p, err := exec.LookPath(target)
		if err != nil {
			return "", err
		}
		target = p
	}
	return filepath.Abs(target)
}

func desktopEntry(sc Shortcut, target string) string {
	var b strings.Builder
	b.WriteString("[Desktop Entry]\n")
	b.WriteString("Type=Application\n")
	fmt.Fprintf(&b, "Name=%s\n", sc.Name)
	execLine := target
	if sc.Args != "" {
		execLine += " " + sc.Args
	}
	fmt.Fprintf(&b, "Exec=%s\n", execLine)
	if sc.WorkDir != "" {
		fmt.Fprintf(&b, "Path=%s\n", sc.WorkDir)
	}
	b.WriteString("Terminal=true\n")
	return b.String()
}

func cmdLauncher(sc Shortcut, target string) string {
	var b strings.Builder
	b.WriteString("@echo off\r\n")
	if sc.WorkDir != "" {
		fmt.Fprintf(&b, "cd /d \"%s\"\r\n", sc.WorkDir)
	}
	fmt.Fprintf(&b, "\"%s\" %s %%*\r\n", target, sc.Args)
	return b.String()
}
