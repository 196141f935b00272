package downloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Download fetches the title of url, then extracts its best audio stream
// into dir as <formatted title>.<audio format>. Failures are logged and
// returned in Result.Err.
func (d *implDownloader) Download(ctx context.Context, url, dir string) Result {
	res := Result{URL: url}

	title, err := d.fetchTitle(ctx, url)
	if err != nil {
		res.Err = fmt.Errorf("fetch title: %w", err)
		d.logger.Error(ctx, "Failed to download %s: %v", url, res.Err)
		return res
	}
	res.Title = title

	name := FormatFilename(title, NoChunk)
	template := filepath.Join(dir, name+".%(ext)s")

	d.logger.Info(ctx, "Downloading audio: %s -> %s", url, name)

	args := []string{
		"--no-playlist",
		"-f", "bestaudio/best",
		"-x",
		"--audio-format", d.cfg.AudioFormat,
		"--audio-quality", d.cfg.AudioQuality,
		"-o", template,
		url,
	}
	if _, err := d.executor.Execute(ctx, d.cfg.BinaryPath, args...); err != nil {
		res.Err = fmt.Errorf("yt-dlp download: %w", err)
		d.logger.Error(ctx, "Failed to download %s: %v", url, res.Err)
		return res
	}

	path := filepath.Join(dir, name+"."+d.cfg.AudioFormat)
	if _, err := os.Stat(path); err != nil {
		res.Err = fmt.Errorf("downloaded file missing: %w", err)
		d.logger.Error(ctx, "Failed to download %s: %v", url, res.Err)
		return res
	}
	res.Path = path

	d.logger.Info(ctx, "Downloaded and converted to %s: %s", d.cfg.AudioFormat, path)
	return res
}

func (d *implDownloader) fetchTitle(ctx context.Context, url string) (string, error) {
	out, err := d.executor.Execute(ctx, d.cfg.BinaryPath, "--no-playlist", "--skip-download", "--print", "title", url)
	if err != nil {
		return "", err
	}
	title := strings.TrimSpace(out)
	if i := strings.IndexByte(title, '\n'); i >= 0 {
		title = title[:i]
	}
	if title == "" {
		return "", fmt.Errorf("empty title for %s", url)
	}
	return title, nil
}
