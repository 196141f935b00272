package downloader

import "context"

// Result is the outcome of one download. Err is set on failure and the
// other fields may be partially filled.
type Result struct {
	URL   string
	Title string
	Path  string
	Err   error
}

// OK reports whether the download succeeded.
func (r Result) OK() bool { return r.Err == nil }

// Downloader fetches remote audio into a local directory.
type Downloader interface {
	Download(ctx context.Context, url, dir string) Result
}
