// Package fetch retrieves remote resources. It supports multiple URI schemes
// through a handler registry and lands files on disk with a sibling temp file
// plus atomic rename, so a failed download never clobbers the destination.
package fetch

import (
	"context"
	"io"

	"mrig/pkg/display"
)

// Getter streams the resource at a URI into a writer.
type Getter interface {
	// Get retrieves the resource at uri and writes it to w, reporting progress
	// to task.
	Get(ctx context.Context, uri string, w io.Writer, task display.Task) error
}

// SchemeHandler handles specific URI schemes (e.g. "https").
type SchemeHandler interface {
	Get(ctx context.Context, uri string, w io.Writer, task display.Task) error
	// Schemes returns the URI schemes this handler can process.
	Schemes() []string
}
