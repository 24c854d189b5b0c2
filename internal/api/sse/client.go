package sse

import (
	"fmt"
	"net/http"
	"time"
)

const (
	// clientBufferSize is the number of messages buffered per client
	clientBufferSize = 16

	// keepaliveInterval is how often a comment line is written to hold
	// intermediaries open
	keepaliveInterval = 30 * time.Second
)

// Client is a single SSE connection watching one round
type Client struct {
	send chan []byte
}

// NewClient creates a new SSE client
func NewClient() *Client {
	return &Client{
		send: make(chan []byte, clientBufferSize),
	}
}

// ServeSSE streams hub messages to the HTTP response until the client
// disconnects or the hub closes. The final buffered messages are drained
// even when the hub closes the channel, so a finished event queued just
// before teardown still reaches the client.
func ServeSSE(w http.ResponseWriter, r *http.Request, hub *Hub) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return fmt.Errorf("streaming unsupported by response writer")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	client := NewClient()
	hub.Register(client)
	defer hub.Unregister(client)

	// Initial comment so the client sees the stream is live
	fmt.Fprintf(w, ": connected\n\n")
	flusher.Flush()

	keepalive := time.NewTicker(keepaliveInterval)
	defer keepalive.Stop()

	for {
		select {
		case msg, ok := <-client.send:
			if !ok {
				return nil
			}
			if _, err := w.Write(msg); err != nil {
				return err
			}
			flusher.Flush()
		case <-keepalive.C:
			if _, err := fmt.Fprintf(w, ": keepalive\n\n"); err != nil {
				return err
			}
			flusher.Flush()
		case <-r.Context().Done():
			return nil
		}
	}
}
