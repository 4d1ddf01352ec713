// Package assets loads sounds and other prototypes in the background. Lookups
// never block: a frame loop asks whether an asset is ready and carries on
// without it when it is not.
package assets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/wav"
)

// ErrUnknown is returned by Err for names that were never requested.
var ErrUnknown = errors.New("unknown asset")

type entry struct {
	done   chan struct{}
	buffer *beep.Buffer
	err    error
}

// Loader tracks named assets that finish loading asynchronously.
type Loader struct {
	fsys   fs.FS
	format beep.Format

	mu      sync.Mutex
	entries map[string]*entry
}

// NewLoader reads files from fsys. Decoded sounds are resampled to format's rate.
func NewLoader(fsys fs.FS, format beep.Format) *Loader {
	return &Loader{
		fsys:    fsys,
		format:  format,
		entries: make(map[string]*entry),
	}
}

// Format returns the format every sound buffer is stored in.
func (l *Loader) Format() beep.Format {
	return l.format
}

// Go runs load in the background and records its outcome under name.
// Requesting a name twice keeps the first request.
func (l *Loader) Go(name string, load func() error) {
	e, fresh := l.begin(name)
	if !fresh {
		return
	}
	go func() {
		defer close(e.done)
		e.err = load()
	}()
}

// LoadSound decodes the WAV file at path in the background.
func (l *Loader) LoadSound(name, path string) {
	e, fresh := l.begin(name)
	if !fresh {
		return
	}
	go func() {
		defer close(e.done)
		e.buffer, e.err = l.decode(path)
	}()
}

// Synthesize stores a sine tone of freq Hz lasting d under name. It is ready
// when Synthesize returns.
func (l *Loader) Synthesize(name string, freq float64, d time.Duration) error {
	e, fresh := l.begin(name)
	if !fresh {
		<-e.done
		return e.err
	}
	defer close(e.done)

	tone, err := generators.SineTone(l.format.SampleRate, freq)
	if err != nil {
		e.err = fmt.Errorf("synthesize %s: %w", name, err)
		return e.err
	}

	buffer := beep.NewBuffer(l.format)
	buffer.Append(&effects.Volume{
		Streamer: beep.Take(l.format.SampleRate.N(d), tone),
		Base:     2,
		Volume:   -2,
	})
	e.buffer = buffer
	return nil
}

func (l *Loader) begin(name string) (*entry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if e, ok := l.entries[name]; ok {
		return e, false
	}
	e := &entry{done: make(chan struct{})}
	l.entries[name] = e
	return e, true
}

func (l *Loader) decode(path string) (*beep.Buffer, error) {
	f, err := l.fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	streamer, format, err := wav.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	defer streamer.Close()

	var source beep.Streamer = streamer
	if format.SampleRate != l.format.SampleRate {
		source = beep.Resample(4, format.SampleRate, l.format.SampleRate, streamer)
	}

	buffer := beep.NewBuffer(l.format)
	buffer.Append(source)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return buffer, nil
}

func (l *Loader) lookup(name string) *entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.entries[name]
}

func loaded(e *entry) bool {
	select {
	case <-e.done:
		return true
	default:
		return false
	}
}

// Sound returns the buffer for name if it finished loading successfully.
func (l *Loader) Sound(name string) (*beep.Buffer, bool) {
	e := l.lookup(name)
	if e == nil || !loaded(e) || e.err != nil || e.buffer == nil {
		return nil, false
	}
	return e.buffer, true
}

// Ready reports whether name finished loading without error.
func (l *Loader) Ready(name string) bool {
	e := l.lookup(name)
	return e != nil && loaded(e) && e.err == nil
}

// Err returns the load error for name: nil while pending or after success,
// ErrUnknown if name was never requested.
func (l *Loader) Err(name string) error {
	e := l.lookup(name)
	if e == nil {
		return ErrUnknown
	}
	if !loaded(e) {
		return nil
	}
	return e.err
}

// Prototype returns a readiness handle for name.
func (l *Loader) Prototype(name string) Prototype {
	return Prototype{loader: l, name: name}
}

// Wait blocks until everything requested so far has finished or ctx is done.
// It returns the load errors joined together, or ctx's error.
func (l *Loader) Wait(ctx context.Context) error {
	l.mu.Lock()
	pending := make(map[string]*entry, len(l.entries))
	for name, e := range l.entries {
		pending[name] = e
	}
	l.mu.Unlock()

	var errs []error
	for _, e := range pending {
		select {
		case <-e.done:
			if e.err != nil {
				errs = append(errs, e.err)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return errors.Join(errs...)
}

// Prototype is a named asset that a frame loop can poll.
type Prototype struct {
	loader *Loader
	name   string
}

func (p Prototype) Ready() bool {
	return p.loader != nil && p.loader.Ready(p.name)
}

func (p Prototype) Name() string {
	return p.name
}
