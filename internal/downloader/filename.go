package downloader

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// NoChunk disables the chunk suffix in FormatFilename.
const NoChunk = -1

var (
	reUnsafe = regexp.MustCompile(`[^a-zA-Z0-9\s]`)
	reRuns   = regexp.MustCompile(`[\s_]+`)
)

// FormatFilename turns a media title into a filesystem-safe base name:
// non-alphanumerics become underscores, whitespace and underscore runs
// collapse to one underscore, and the result is lowercased. A chunk >= 0
// appends _chunk_<n>.
func FormatFilename(title string, chunk int) string {
	name := reUnsafe.ReplaceAllString(title, "_")
	name = reRuns.ReplaceAllString(name, "_")
	name = strings.ToLower(name)
	if name == "" || name == "_" {
		name = "audio"
	}
	if chunk >= 0 {
		name = fmt.Sprintf("%s_chunk_%d", name, chunk)
	}
	return name
}

// IsURL reports whether s looks like a remote media URL.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "http://")
}

// ReadURLList reads one URL per line, skipping blank lines and # comments.
func ReadURLList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open url list: %w", err)
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
		return nil, fmt.Errorf("read url list: %w", err)
	}
	return urls, nil
}
