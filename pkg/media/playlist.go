// Package media drives the installed downloader binary. The toolchain treats
// it as an external collaborator: mrig provisions it, hands it structured
// argument vectors, and relays its output. No media logic lives here.
package media

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ReadPlaylist returns the usable entries of a playlist file: one URL per
// line, blank lines and '#' comments dropped, surrounding whitespace trimmed.
func ReadPlaylist(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open playlist: %w", err)
	}
	defer f.Close()

	var urls []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read playlist: %w", err)
	}
	return urls, nil
}
