package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"job-board/internal/domain/job"
)

func newTestClient(h *Hub) *Client {
	return &Client{id: "test", hub: h, send: make(chan []byte, 4)}
}

func runHub(t *testing.T) *Hub {
	t.Helper()
	h := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	go h.Run(ctx)
	t.Cleanup(func() {
		cancel()
		<-h.Done()
	})
	return h
}

func TestHub_PublishReachesClients(t *testing.T) {
	h := runHub(t)
	c := newTestClient(h)
	h.Register(c)
	require.Eventually(t, func() bool { return h.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	evt := job.Event{Type: job.EventCreated, JobID: "abc", RefUserID: "u1", Timestamp: "2026-01-01T00:00:00Z"}
	require.NoError(t, h.Publish(context.Background(), evt))

	select {
	case msg := <-c.send:
		var got job.Event
		require.NoError(t, json.Unmarshal(msg, &got))
		assert.Equal(t, evt, got)
	case <-time.After(time.Second):
		t.Fatal("no message delivered")
	}
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	h := runHub(t)
	c := newTestClient(h)
	h.Register(c)
	require.Eventually(t, func() bool { return h.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	h.Unregister(c)
	require.Eventually(t, func() bool { return h.ClientCount() == 0 }, time.Second, 5*time.Millisecond)

	_, ok := <-c.send
	assert.False(t, ok)
}

func TestHub_NilIsNoop(t *testing.T) {
	var h *Hub
	assert.NoError(t, h.Publish(context.Background(), job.Event{}))
	assert.Equal(t, 0, h.ClientCount())
}

func TestHandler_CheckOrigin(t *testing.T) {
	req := func(origin string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/ws/jobs", nil)
		r.Header.Set("Origin", origin)
		return r
	}

	open := NewHandler(NewHub(nil), nil)
	assert.True(t, open.upgrader.CheckOrigin(req("https://anything.test")))

	strict := NewHandler(NewHub(nil), []string{" https://Board.test ", ""})
	assert.True(t, strict.upgrader.CheckOrigin(req("https://board.test")))
	assert.False(t, strict.upgrader.CheckOrigin(req("https://evil.test")))
}
