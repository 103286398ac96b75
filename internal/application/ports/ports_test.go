package ports_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/suministros-api/internal/application/ports"
	"github.com/jhoicas/suministros-api/pkg/logger"
)

type failingNotifier struct{ calls int }

func (f *failingNotifier) Notify(_ context.Context, _ ports.Event) error {
	f.calls++
	return errors.New("canal caído")
}

type fakeStore struct{ stored []ports.Upload }

func (s *fakeStore) Store(_ context.Context, u ports.Upload) (string, error) {
	s.stored = append(s.stored, u)
	return "/evidence/" + u.Filename, nil
}

func TestPublish_FallosSeRegistranYNoSePropagan(t *testing.T) {
	var buf bytes.Buffer
	n := &failingNotifier{}
	box := &ports.Outbox{}
	box.Add(ports.Event{Kind: ports.EventStockShortage, ItemID: "item-1"})
	box.Add(ports.Event{Kind: ports.EventSupplyRequestCreated, RequestID: "req-1"})

	ports.Publish(context.Background(), n, logger.NewWithWriter(&buf, "debug"), box)

	assert.Equal(t, 2, n.calls, "se intenta emitir cada evento aunque el anterior falle")
	assert.Contains(t, buf.String(), "no se pudo emitir la notificación")
	assert.False(t, box.Events()[0].OccurredAt.IsZero())
}

func TestResolveImage(t *testing.T) {
	store := &fakeStore{}

	ref, err := ports.ResolveImage(context.Background(), store, "http://img/previa.png", nil)
	require.NoError(t, err)
	assert.Equal(t, "http://img/previa.png", ref)
	assert.Empty(t, store.stored)

	ref, err = ports.ResolveImage(context.Background(), store, "", &ports.Upload{Filename: "foto.png", Data: []byte{1}})
	require.NoError(t, err)
	assert.Equal(t, "/evidence/foto.png", ref)
}
