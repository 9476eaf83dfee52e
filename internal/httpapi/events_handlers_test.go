package httpapi

import (
	"bufio"
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"leadgen-engine/internal/events"
)

func TestEventsSSE(t *testing.T) {
	srv, d := testServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/events", nil)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, "text/event-stream", res.Header.Get("Content-Type"))

	sc := bufio.NewScanner(res.Body)

	// First frame is the ping envelope.
	var ping string
	for sc.Scan() {
		if strings.HasPrefix(sc.Text(), "data: ") {
			ping = strings.TrimPrefix(sc.Text(), "data: ")
			break
		}
	}
	require.Contains(t, ping, `"type":"ping"`)

	// A published run event reaches the subscriber.
	go func() {
		time.Sleep(50 * time.Millisecond)
		d.Hub.Publish(events.MakeEvent("run-1", "lead", 1, map[string]string{"domain": "acme.io"}))
	}()

	var got string
	for sc.Scan() {
		if strings.HasPrefix(sc.Text(), "data: ") {
			got = strings.TrimPrefix(sc.Text(), "data: ")
			break
		}
	}
	require.Contains(t, got, `"type":"lead"`)
	require.Contains(t, got, `"run_id":"run-1"`)
	require.Contains(t, got, "acme.io")
}
