package pipeline

import (
	"context"
	"sync"

	"github.com/rohith0110/Wikipedia-Graph/pkg/errors"
	"github.com/rohith0110/Wikipedia-Graph/pkg/graph"
)

// Surface is the rendering context bound to one layout: an open browser
// view, an encoded response buffer, a window. Close releases it.
type Surface interface {
	Layout() graph.Layout
	Close() error
}

// SurfaceFactory opens a surface for a freshly computed layout.
type SurfaceFactory func(ctx context.Context, l graph.Layout) (Surface, error)

// Session owns at most one surface at a time. Show releases the current
// surface before computing the next layout, so two surfaces never coexist;
// Close releases it on teardown.
//
// A Session is safe for concurrent use. Calls to Show are serialized.
type Session struct {
	runner *Runner
	open   SurfaceFactory

	mu      sync.Mutex
	current Surface
	last    *Result
	closed  bool
}

// NewSession returns a session backed by runner. A nil open uses
// [NewMemorySurface].
func NewSession(runner *Runner, open SurfaceFactory) *Session {
	if runner == nil {
		runner = NewRunner(nil, nil, nil)
	}
	if open == nil {
		open = func(_ context.Context, l graph.Layout) (Surface, error) {
			return NewMemorySurface(l)
		}
	}
	return &Session{runner: runner, open: open}
}

// Show releases the current surface, lays out elems and opens a surface for
// the result. On failure the session is left without a surface.
func (s *Session) Show(ctx context.Context, elems []graph.Element, opts Options) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, errors.New(errors.ErrCodeUnsupported, "session is closed")
	}
	if err := s.release(); err != nil {
		s.runner.Logger.Warn("release surface", "err", err)
	}

	result, err := s.runner.Execute(ctx, elems, opts)
	if err != nil {
		return nil, err
	}
	surface, err := s.open(ctx, result.Layout)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open surface")
	}
	s.current = surface
	s.last = result
	return result, nil
}

// Current returns the surface currently held, if any.
func (s *Session) Current() (Surface, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, s.current != nil
}

// Last returns the result that opened the current surface.
func (s *Session) Last() (*Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last, s.current != nil
}

// Close releases the current surface. Later calls to Show fail.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return s.release()
}

func (s *Session) release() error {
	if s.current == nil {
		return nil
	}
	err := s.current.Close()
	s.current = nil
	s.last = nil
	return err
}

// =============================================================================
// Memory Surface
// =============================================================================

// MemorySurface holds a layout and its encoded JSON. The layout service
// serves views from it.
type MemorySurface struct {
	mu     sync.RWMutex
	layout graph.Layout
	data   []byte
	closed bool
}

// NewMemorySurface encodes l once so that readers share the same bytes.
func NewMemorySurface(l graph.Layout) (*MemorySurface, error) {
	data, err := graph.MarshalLayout(l)
	if err != nil {
		return nil, err
	}
	return &MemorySurface{layout: l, data: data}, nil
}

func (m *MemorySurface) Layout() graph.Layout {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.layout
}

// Bytes returns the encoded layout, or nil once closed.
func (m *MemorySurface) Bytes() []byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data
}

// Closed reports whether Close has been called.
func (m *MemorySurface) Closed() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.closed
}

func (m *MemorySurface) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.data = nil
	m.layout = graph.Layout{}
	return nil
}

var _ Surface = (*MemorySurface)(nil)
