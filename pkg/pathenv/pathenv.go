// Package pathenv manages membership of directories in a PATH-like list.
// The list is an explicit value passed in by the caller, never read from the
// ambient process environment, so callers decide the scope of the mutation
// and tests never touch the real PATH.
package pathenv

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ErrNotApplied means an append was attempted but a re-check still did not
// find the directory in the list.
var ErrNotApplied = errors.New("path entry not present after append")

// List is an ordered PATH-like value: raw string plus the separator it is
// split on.
// Mutable
type List struct {
	raw string
	sep string
}

// New wraps a raw PATH value using the platform list separator.
func New(raw string) *List {
	return NewWithSeparator(raw, string(os.PathListSeparator))
}

// NewWithSeparator wraps a raw PATH value with an explicit separator.
// Tests use this to exercise foreign-platform values deterministically.
func NewWithSeparator(raw, sep string) *List {
	return &List{raw: raw, sep: sep}
}

// String returns the current raw value.
func (l *List) String() string { return l.raw }

// Segments returns the cleaned list entries, empty segments dropped.
func (l *List) Segments() []string {
	var out []string
	for _, p := range strings.Split(l.raw, l.sep) {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, filepath.Clean(p))
	}
	return out
}

// Contains reports whether dir is a member of the list. Membership is exact
// segment equality after cleaning, never a substring match: /tools/bin2 does
// not satisfy /tools/bin. On Windows the comparison is case-insensitive.
func (l *List) Contains(dir string) bool {
	if l.raw == "" || dir == "" {
		return false
	}
	want := filepath.Clean(strings.TrimSpace(dir))
	for _, seg := range l.Segments() {
		if segmentsEqual(seg, want) {
			return true
		}
	}
	return false
}

// Append adds dir to the end of the list, inserting the separator unless the
// raw value is empty or already ends with one.
func (l *List) Append(dir string) {
	switch {
	case l.raw == "":
		l.raw = dir
	case strings.HasSuffix(l.raw, l.sep):
		l.raw += dir
	default:
		l.raw += l.sep + dir
	}
}

// Ensure makes dir a member of the list. It returns true if the list was
// modified. After an append the list is re-split and re-checked; if the entry
// still is not found the mutation did not take effect and ErrNotApplied is
// returned.
func (l *List) Ensure(dir string) (bool, error) {
	if l.Contains(dir) {
		return false, nil
	}
	l.Append(dir)
	if !l.Contains(dir) {
		return false, ErrNotApplied
	}
	return true, nil
}

func segmentsEqual(a, b string) bool {
	if runtime.GOOS == "windows" {
		return strings.EqualFold(a, b)
	}
	return a == b
}
