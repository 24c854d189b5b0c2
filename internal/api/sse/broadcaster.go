package sse

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/aborovsky/splashsoftware-fullstack-44/internal/events"
	"github.com/aborovsky/splashsoftware-fullstack-44/internal/model"
)

// eventPayload is the JSON body written on the data line of each SSE event
type eventPayload struct {
	RoundID   model.RoundID   `json:"round_id"`
	Sequence  int64           `json:"sequence"`
	State     model.RoundState `json:"state"`
	Timestamp string          `json:"timestamp"`
}

// Broadcaster forwards round lifecycle events from the bus to the SSE
// hub of the round they belong to. After a finished event it tears the
// hub down, which disconnects every remaining watcher.
type Broadcaster struct {
	bus     *events.Bus
	manager *HubManager
	logger  *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(bus *events.Bus, manager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		bus:     bus,
		manager: manager,
		logger:  logger.With(slog.String("component", "sse_broadcaster")),
	}
}

// Run consumes lifecycle events until the context is cancelled or the
// bus closes. It is meant to run on its own goroutine.
func (b *Broadcaster) Run(ctx context.Context) {
	sub := b.bus.Subscribe(events.DefaultBuffer,
		model.EventRoundCreated,
		model.EventRoundStarted,
		model.EventRoundFinished,
	)
	defer sub.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-sub.C:
			if !ok {
				return
			}
			b.dispatch(ev)
		}
	}
}

func (b *Broadcaster) dispatch(ev model.Event) {
	hub := b.manager.GetHub(ev.RoundID)
	if hub == nil {
		// Nobody ever subscribed to this round
		if ev.Type != model.EventRoundFinished {
			return
		}
		// Still drop any hub created between the check and now
		b.manager.RemoveHub(ev.RoundID)
		return
	}

	payload := eventPayload{
		RoundID:   ev.RoundID,
		Sequence:  ev.Sequence,
		State:     ev.State,
		Timestamp: ev.Timestamp.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	}
	data, err := json.Marshal(payload)
	if err != nil {
		b.logger.Error("cannot marshal sse payload", slog.String("error", err.Error()))
		return
	}

	hub.BroadcastEvent(string(ev.Type), string(data))

	if ev.Type == model.EventRoundFinished {
		b.manager.RemoveHub(ev.RoundID)
	}
}
