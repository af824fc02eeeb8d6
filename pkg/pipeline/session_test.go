package pipeline

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohith0110/Wikipedia-Graph/pkg/errors"
	"github.com/rohith0110/Wikipedia-Graph/pkg/graph"
)

// recorder logs surface lifecycle events in order.
type recorder struct {
	events []string
	opened int
}

type recordedSurface struct {
	id     int
	layout graph.Layout
	rec    *recorder
}

func (s *recordedSurface) Layout() graph.Layout { return s.layout }

func (s *recordedSurface) Close() error {
	s.rec.events = append(s.rec.events, fmt.Sprintf("close %d", s.id))
	return nil
}

func (r *recorder) open(_ context.Context, l graph.Layout) (Surface, error) {
	r.opened++
	r.events = append(r.events, fmt.Sprintf("open %d", r.opened))
	return &recordedSurface{id: r.opened, layout: l, rec: r}, nil
}

func TestSessionReleasesPriorSurface(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	s := NewSession(quietRunner(nil), rec.open)

	_, err := s.Show(ctx, clusteredElements(), Options{Seed: 1})
	require.NoError(t, err)
	res, err := s.Show(ctx, clusteredElements(), Options{Mode: "detail", Topic: "Go", Seed: 1})
	require.NoError(t, err)

	assert.Equal(t, []string{"open 1", "close 1", "open 2"}, rec.events)

	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "detail", cur.Layout().Mode)
	last, ok := s.Last()
	require.True(t, ok)
	assert.Equal(t, res.RunID, last.RunID)

	require.NoError(t, s.Close())
	assert.Equal(t, []string{"open 1", "close 1", "open 2", "close 2"}, rec.events)
	_, ok = s.Current()
	assert.False(t, ok)

	_, err = s.Show(ctx, clusteredElements(), Options{Seed: 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeUnsupported))
	assert.Equal(t, 2, rec.opened, "closed session must not open surfaces")
}

func TestSessionFailedShowLeavesNoSurface(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	s := NewSession(quietRunner(nil), rec.open)
	defer s.Close()

	_, err := s.Show(ctx, clusteredElements(), Options{Seed: 1})
	require.NoError(t, err)

	_, err = s.Show(ctx, clusteredElements(), Options{Mode: "detail"})
	require.Error(t, err)

	assert.Equal(t, []string{"open 1", "close 1"}, rec.events)
	_, ok := s.Current()
	assert.False(t, ok)
}

func TestMemorySurface(t *testing.T) {
	s := NewSession(quietRunner(nil), nil)
	_, err := s.Show(context.Background(), clusteredElements(), Options{Seed: 4})
	require.NoError(t, err)

	cur, ok := s.Current()
	require.True(t, ok)
	mem, ok := cur.(*MemorySurface)
	require.True(t, ok)

	l, err := graph.UnmarshalLayout(mem.Bytes())
	require.NoError(t, err)
	assert.Len(t, l.Nodes, 9)

	require.NoError(t, s.Close())
	assert.True(t, mem.Closed())
	assert.Nil(t, mem.Bytes())
}
