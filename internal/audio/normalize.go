package audio

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// ToWAV converts inputPath into a mono PCM WAV inside dir.
func (n *implNormalizer) ToWAV(ctx context.Context, inputPath, dir string) (string, error) {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	outPath := filepath.Join(dir, base+"_norm.wav")

	n.logger.Info(ctx, "Normalizing audio: %s", inputPath)

	// -vn drops any video stream; the rest pins the format the segmenter reads.
	args := []string{
		"-i", inputPath,
		"-vn",
		"-ar", strconv.Itoa(n.cfg.SampleRate),
		"-ac", strconv.Itoa(n.cfg.Channels),
		"-c:a", n.cfg.AudioCodec,
		"-threads", "0",
		"-y",
		outPath,
	}

	if _, err := n.executor.Execute(ctx, n.cfg.BinaryPath, args...); err != nil {
		return "", fmt.Errorf("ffmpeg normalize audio: %w", err)
	}

	n.logger.Debug(ctx, "Audio normalized: %s", outPath)
	return outPath, nil
}
