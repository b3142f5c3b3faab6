// Package release resolves a release ref (a tag, or "latest") against an
// upstream release manifest and extracts asset download URLs from it with a
// jq query. The fixed download URLs in layout stay the default path; this
// resolver backs pinning the downloader to a specific release tag.
package release

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/itchyny/gojq"

	"mrig/pkg/display"
	"mrig/pkg/fetch"
)

// assetQuery pulls the download URL of a named asset out of a GitHub-style
// release document.
const assetQuery = `.assets[] | select(.name == $name) | .browser_download_url`

// Mutable
type Resolver struct {
	fetcher *fetch.Fetcher
	// APIBase is the release API endpoint, overridable for tests.
	APIBase string
}

// NewResolver builds a Resolver over the given fetcher.
func NewResolver(f *fetch.Fetcher) *Resolver {
	return &Resolver{
		fetcher: f,
		APIBase: "https://api.github.com/repos/",
	}
}

// manifestURL builds the release manifest URL for repo ("owner/name") at ref.
func (r *Resolver) manifestURL(repo, ref string) string {
	if ref == "" || ref == "latest" {
		return r.APIBase + repo + "/releases/latest"
	}
	return r.APIBase + repo + "/releases/tags/" + ref
}

// AssetURL resolves the download URL of the named asset in repo at ref.
func (r *Resolver) AssetURL(ctx context.Context, repo, ref, asset string) (string, error) {
	buf := &bytes.Buffer{}
	task := noopTask{}
	if err := r.fetcher.Get(ctx, r.manifestURL(repo, ref), buf, task); err != nil {
		return "", fmt.Errorf("fetch release manifest: %w", err)
	}

	var doc any
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		return "", fmt.Errorf("parse release manifest: %w", err)
	}

	q, err := gojq.Parse(assetQuery)
	if err != nil {
		return "", fmt.Errorf("parse asset query: %w", err)
	}
	code, err := gojq.Compile(q, gojq.WithVariables([]string{"$name"}))
	if err != nil {
		return "", fmt.Errorf("compile asset query: %w", err)
	}

	iter := code.Run(doc, asset)
	for {
		res, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := res.(error); isErr {
			return "", fmt.Errorf("run asset query: %w", err)
		}
		if url, isStr := res.(string); isStr && url != "" {
			return url, nil
		}
	}
	return "", fmt.Errorf("release %s@%s has no asset %q", repo, ref, asset)
}

type noopTask struct{}

func (noopTask) Progress(int, string) {}
func (noopTask) Done()                {}

var _ display.Task = noopTask{}
