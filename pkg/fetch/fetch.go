package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"mrig/pkg/display"
)

// ErrDestIsDirectory means the destination path already exists as a directory.
var ErrDestIsDirectory = errors.New("destination is a directory")

// Mutable
type Fetcher struct {
	handlers map[string]SchemeHandler
	disp     display.Display
}

// New returns a Fetcher with the HTTP/HTTPS handler registered.
func New(disp display.Display) *Fetcher {
	f := &Fetcher{
		handlers: make(map[string]SchemeHandler),
		disp:     disp,
	}
	f.Register(NewHTTPHandler())
	return f
}

func (f *Fetcher) Register(h SchemeHandler) {
	for _, scheme := range h.Schemes() {
		f.handlers[scheme] = h
	}
}

// Get streams uri into w through the handler registered for its scheme.
func (f *Fetcher) Get(ctx context.Context, uri string, w io.Writer, task display.Task) error {
	u, err := url.Parse(uri)
	if err != nil {
		return fmt.Errorf("invalid uri: %w", err)
	}

	scheme := strings.ToLower(u.Scheme)
	handler, ok := f.handlers[scheme]
	if !ok {
		return fmt.Errorf("unsupported scheme: %s", scheme)
	}

	return handler.Get(ctx, uri, w, task)
}

// FetchFile downloads uri to dest. The download lands in a sibling temp file
// in dest's parent directory; only a verified temp file is renamed onto dest,
// overwriting any previous content. On failure dest is left untouched. The
// temp file is removed best-effort either way, so a retry is always safe.
func (f *Fetcher) FetchFile(ctx context.Context, uri, dest string) error {
	if fi, err := os.Stat(dest); err == nil && fi.IsDir() {
		return fmt.Errorf("%w: %s", ErrDestIsDirectory, dest)
	}

	tmp := filepath.Join(filepath.Dir(dest), ".mrig-"+uuid.NewString()+".part")
	defer os.Remove(tmp)

	task := f.disp.StartTask(filepath.Base(dest))
	defer task.Done()

	err := func() error {
		w, err := os.Create(tmp)
		if err != nil {
			return fmt.Errorf("create temp file: %w", err)
		}
		defer w.Close()
		return f.Get(ctx, uri, w, task)
	}()
	if err != nil {
		return fmt.Errorf("download %s: %w", uri, err)
	}

	// The handler returned success; the temp file must exist before we claim
	// completion.
	if _, err := os.Stat(tmp); err != nil {
		return fmt.Errorf("download %s: temp file missing after transfer: %w", uri, err)
	}

	if err := os.Rename(tmp, dest); err != nil {
		return fmt.Errorf("move %s into place: %w", dest, err)
	}
	return nil
}
