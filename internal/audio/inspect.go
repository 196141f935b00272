package audio

import (
	"errors"
	"fmt"
	"os"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// ErrNotWAV is returned by Inspect for files that are not PCM WAV.
var ErrNotWAV = errors.New("not a PCM wav file")

// Inspect reads the WAV header at path. An empty file resolves to a
// zero-duration Source rather than an error.
func Inspect(path string) (Source, error) {
	src := Source{ID: path, Path: path}

	f, err := os.Open(path)
	if err != nil {
		return src, fmt.Errorf("open audio: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return src, fmt.Errorf("stat audio: %w", err)
	}
	if info.Size() == 0 {
		return src, nil
	}

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return src, fmt.Errorf("inspect %s: %w", path, ErrNotWAV)
	}
	if dec.WavAudioFormat != 1 {
		return src, fmt.Errorf("inspect %s: audio format %d: %w", path, dec.WavAudioFormat, ErrNotWAV)
	}

	src.SampleRate = int(dec.SampleRate)
	src.Channels = int(dec.NumChans)
	src.BitDepth = int(dec.BitDepth)

	if err := dec.FwdToPCM(); err != nil {
		return src, fmt.Errorf("seek pcm chunk: %w", err)
	}
	frameSize := int64(src.Channels) * int64(src.BitDepth/8)
	if frameSize == 0 || src.SampleRate == 0 {
		return src, fmt.Errorf("inspect %s: invalid format header: %w", path, ErrNotWAV)
	}
	frames := dec.PCMLen() / frameSize
	src.Duration = time.Duration(frames) * time.Second / time.Duration(src.SampleRate)
	return src, nil
}

// pcm is a decoded interleaved sample buffer.
type pcm struct {
	data       []int
	channels   int
	sampleRate int
	bitDepth   int
}

func readPCM(path string) (*pcm, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open audio: %w", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("decode %s: %w", path, ErrNotWAV)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode pcm: %w", err)
	}

	p := &pcm{
		data:       buf.Data,
		channels:   int(dec.NumChans),
		sampleRate: int(dec.SampleRate),
		bitDepth:   int(dec.BitDepth),
	}
	if buf.Format != nil {
		p.channels = buf.Format.NumChannels
		p.sampleRate = buf.Format.SampleRate
	}
	if buf.SourceBitDepth > 0 {
		p.bitDepth = buf.SourceBitDepth
	}
	if p.channels <= 0 {
		p.channels = 1
	}
	return p, nil
}

func (p *pcm) frames() int {
	return len(p.data) / p.channels
}

func (p *pcm) duration() time.Duration {
	if p.sampleRate == 0 {
		return 0
	}
	return time.Duration(p.frames()) * time.Second / time.Duration(p.sampleRate)
}

// frameAt maps an offset to a frame index, clamped to the buffer.
func (p *pcm) frameAt(d time.Duration) int {
	n := int(int64(d) * int64(p.sampleRate) / int64(time.Second))
	if n < 0 {
		return 0
	}
	if n > p.frames() {
		return p.frames()
	}
	return n
}

// maxAmplitude is the full-scale value for the buffer's bit depth.
func (p *pcm) maxAmplitude() float64 {
	bits := p.bitDepth
	if bits <= 0 {
		bits = 16
	}
	return float64(int64(1) << (bits - 1))
}

// writeSpan encodes frames [from, to) of p as a WAV file at path.
func (p *pcm) writeSpan(path string, from, to time.Duration) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chunk: %w", err)
	}

	start, end := p.frameAt(from), p.frameAt(to)
	enc := wav.NewEncoder(f, p.sampleRate, p.bitDepth, p.channels, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: p.channels, SampleRate: p.sampleRate},
		Data:           p.data[start*p.channels : end*p.channels],
		SourceBitDepth: p.bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		f.Close()
		return fmt.Errorf("encode chunk: %w", err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("finalize chunk: %w", err)
	}
	return f.Close()
}
