package notify

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jhoicas/suministros-api/internal/application/ports"
	"github.com/jhoicas/suministros-api/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvent() ports.Event {
	return ports.Event{
		Kind:           ports.EventStockShortage,
		OrganizationID: "org-1",
		ItemID:         "it-1",
		ItemName:       "Guantes",
		Current:        1,
		Minimum:        3,
		OccurredAt:     time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// LogNotifier
// ──────────────────────────────────────────────────────────────────────────────

func TestLogNotifier_EscribeEventoComoJSON(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(logger.NewWithWriter(&buf, "info"))

	require.NoError(t, n.Notify(context.Background(), sampleEvent()))
	out := buf.String()
	assert.Contains(t, out, `"kind":"STOCK_SHORTAGE"`)
	assert.Contains(t, out, `"item_name":"Guantes"`)
	assert.Contains(t, out, `"component":"notify"`)
}

// ──────────────────────────────────────────────────────────────────────────────
// WebhookNotifier
// ──────────────────────────────────────────────────────────────────────────────

func TestWebhookNotifier_PublicaEvento(t *testing.T) {
	var got []byte
	var kind string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = io.ReadAll(r.Body)
		kind = r.Header.Get("x-event-kind")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	n := NewWebhookNotifier(srv.URL, time.Second)
	require.NoError(t, n.Notify(context.Background(), sampleEvent()))
	assert.Equal(t, ports.EventStockShortage, kind)
	assert.Contains(t, string(got), `"organization_id":"org-1"`)
}

func TestWebhookNotifier_ErrorSiRespuestaNo2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "caído", http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewWebhookNotifier(srv.URL, time.Second).Notify(context.Background(), sampleEvent())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

// ──────────────────────────────────────────────────────────────────────────────
// Multi
// ──────────────────────────────────────────────────────────────────────────────

type recorder struct {
	calls int
	err   error
}

func (r *recorder) Notify(context.Context, ports.Event) error {
	r.calls++
	return r.err
}

func TestMulti_IntentaTodosYAgregaErrores(t *testing.T) {
	boom := errors.New("smtp caído")
	a, b := &recorder{err: boom}, &recorder{}

	err := Multi{a, b}.Notify(context.Background(), sampleEvent())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, a.calls)
	assert.Equal(t, 1, b.calls)

	assert.NoError(t, Multi{b}.Notify(context.Background(), sampleEvent()))
}
