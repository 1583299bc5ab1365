package audio

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

type decodeFunc func(r io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error)

// decoders maps lowercase file extensions to their decoder.
var decoders = map[string]decodeFunc{
	".wav": func(r io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) { return wav.Decode(r) },
	".ogg": vorbis.Decode,
	".mp3": mp3.Decode,
}

// Supported reports whether path has an extension the player can decode.
func Supported(path string) bool {
	_, ok := decoders[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Player decodes sound files and plays them through the speaker.
type Player struct {
	mu     sync.Mutex
	logger *slog.Logger

	// Volume control (0.0 to 1.0)
	volume float64

	// Speaker state, initialized with the rate of the first decoded sound
	initialized bool
	sampleRate  beep.SampleRate

	cacheMu sync.RWMutex
	cache   map[string]*beep.Buffer
}

// NewPlayer creates a new audio player.
func NewPlayer(logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.Default()
	}

	return &Player{
		logger:     logger,
		volume:     1.0,
		sampleRate: beep.SampleRate(44100),
		cache:      make(map[string]*beep.Buffer),
	}
}

// SetVolume sets the playback volume, clamped to [0, 1].
func (p *Player) SetVolume(volume float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = min(max(volume, 0), 1)
}

// Volume returns the current volume.
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// Play plays a sound file, decoding and caching it on first use.
func (p *Player) Play(path string) error {
	if path == "" {
		return nil
	}

	buffer, err := p.buffer(path)
	if err != nil {
		return err
	}
	p.play(buffer)
	return nil
}

// Preload decodes a sound file into the cache.
func (p *Player) Preload(path string) error {
	if path == "" {
		return nil
	}
	_, err := p.buffer(path)
	return err
}

// buffer returns the cached buffer for path, decoding it if needed.
func (p *Player) buffer(path string) (*beep.Buffer, error) {
	p.cacheMu.RLock()
	buffer, ok := p.cache[path]
	p.cacheMu.RUnlock()
	if ok {
		return buffer, nil
	}

	buffer, err := p.decode(path)
	if err != nil {
		return nil, err
	}

	p.cacheMu.Lock()
	p.cache[path] = buffer
	p.cacheMu.Unlock()

	p.logger.Debug("decoded sound", "path", path, "samples", buffer.Len())
	return buffer, nil
}

// decode reads a whole sound file into a buffer.
func (p *Player) decode(path string) (*beep.Buffer, error) {
	decoder, ok := decoders[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, fmt.Errorf("unsupported audio format: %s", filepath.Ext(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sound file: %w", err)
	}

	streamer, format, err := decoder(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to decode sound: %w", err)
	}
	defer func() { _ = streamer.Close() }()

	if err := p.ensureSpeaker(format.SampleRate); err != nil {
		return nil, err
	}

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	return buffer, nil
}

// ensureSpeaker initializes the speaker once.
func (p *Player) ensureSpeaker(rate beep.SampleRate) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	// 100ms buffer keeps latency low
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}

	p.sampleRate = rate
	p.initialized = true
	p.logger.Debug("speaker initialized", "sample_rate", rate)
	return nil
}

// play queues a buffered sound on the speaker.
func (p *Player) play(buffer *beep.Buffer) {
	p.mu.Lock()
	volume := p.volume
	rate := p.sampleRate
	p.mu.Unlock()

	var streamer beep.Streamer = buffer.Streamer(0, buffer.Len())

	if buffer.Format().SampleRate != rate {
		streamer = beep.Resample(4, buffer.Format().SampleRate, rate, streamer)
	}

	if volume < 1.0 {
		streamer = &effects.Volume{
			Streamer: streamer,
			Base:     2,
			Volume:   volumeToExponent(volume),
			Silent:   volume == 0,
		}
	}

	speaker.Play(streamer)
}

// Invalidate removes path from the cache so it is decoded again.
func (p *Player) Invalidate(path string) {
	p.cacheMu.Lock()
	defer p.cacheMu.Unlock()
	delete(p.cache, path)
}

// ClearCache removes all decoded sounds.
func (p *Player) ClearCache() {
	p.cacheMu.Lock()
	defer p.cacheMu.Unlock()
	p.cache = make(map[string]*beep.Buffer)
}

// Cached reports whether path has been decoded.
func (p *Player) Cached(path string) bool {
	p.cacheMu.RLock()
	defer p.cacheMu.RUnlock()
	_, ok := p.cache[path]
	return ok
}

// Close stops playback and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	if p.initialized {
		speaker.Close()
		p.initialized = false
	}
	p.mu.Unlock()

	p.ClearCache()
}

// volumeToExponent converts a linear volume in (0, 1] to the base-2 exponent
// used by effects.Volume, so 0.5 halves the amplitude.
func volumeToExponent(volume float64) float64 {
	if volume <= 0 {
		return -10
	}
	return math.Log2(volume)
}
