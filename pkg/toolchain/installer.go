// Package toolchain provisions and tears down an mrig install root: the
// downloader binary, the encoder suite, helper scripts, PATH registration,
// and launcher shortcuts. Every step inspects current state before acting and
// is safe to re-run; recovery from any partial state is re-invocation.
package toolchain

import (
	"errors"
	"fmt"
	"os"

	"mrig/pkg/display"
	"mrig/pkg/fetch"
	"mrig/pkg/layout"
)

// ErrNotDirectory means a target directory does not exist or is not a
// directory. Reported before any side effect.
var ErrNotDirectory = errors.New("not a directory")

// ErrVerifyFailed means a fetch or extraction reported success but the
// expected artifact is absent.
var ErrVerifyFailed = errors.New("verification failed")

// Installer drives install, uninstall, and status over one install root.
// Mutable
type Installer struct {
	disp    display.Display
	fetcher *fetch.Fetcher

	// Upstream locations, overridable for tests.
	DownloaderURL     string
	EncoderArchiveURL string
	ScriptURL         func(branch string, f layout.ScriptFile) string
}

// NewInstaller builds an Installer reporting to disp.
func NewInstaller(disp display.Display) *Installer {
	return &Installer{
		disp:              disp,
		fetcher:           fetch.New(disp),
		DownloaderURL:     layout.DownloaderURL(),
		EncoderArchiveURL: layout.EncoderArchiveURL(),
		ScriptURL:         layout.ScriptURL,
	}
}

// requireDir fails unless path exists and is a directory.
func requireDir(path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNotDirectory, path)
	}
	if !fi.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotDirectory, path)
	}
	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
