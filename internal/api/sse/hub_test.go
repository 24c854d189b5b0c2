package sse

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/aborovsky/splashsoftware-fullstack-44/internal/events"
	"github.com/aborovsky/splashsoftware-fullstack-44/internal/model"
	"github.com/aborovsky/splashsoftware-fullstack-44/internal/testutil"
)

type HubSuite struct {
	suite.Suite
	manager *HubManager
}

func TestHubSuite(t *testing.T) {
	suite.Run(t, new(HubSuite))
}

func (s *HubSuite) SetupTest() {
	s.manager = NewHubManager(testutil.NopLogger())
}

func (s *HubSuite) TestBroadcastReachesAllClients() {
	hub := s.manager.GetOrCreateHub("ROUND1")

	c1 := NewClient()
	c2 := NewClient()
	hub.Register(c1)
	hub.Register(c2)
	s.Equal(2, hub.ClientCount())

	hub.BroadcastEvent("round.started", `{"round_id":"ROUND1"}`)

	for _, c := range []*Client{c1, c2} {
		select {
		case msg := <-c.send:
			s.Contains(string(msg), "event: round.started")
			s.Contains(string(msg), `"round_id":"ROUND1"`)
		case <-time.After(time.Second):
			s.FailNow("client did not receive broadcast")
		}
	}
}

func (s *HubSuite) TestUnregisterClosesClient() {
	hub := s.manager.GetOrCreateHub("ROUND1")
	c := NewClient()
	hub.Register(c)

	hub.Unregister(c)

	_, ok := <-c.send
	s.False(ok)
	s.Equal(0, hub.ClientCount())
}

func (s *HubSuite) TestBufferedMessagesSurviveClose() {
	hub := s.manager.GetOrCreateHub("ROUND1")
	c := NewClient()
	hub.Register(c)

	hub.BroadcastEvent("round.finished", "{}")
	hub.Close()

	// The queued message drains before the close is observed
	msg, ok := <-c.send
	s.True(ok)
	s.Contains(string(msg), "round.finished")

	_, ok = <-c.send
	s.False(ok)
}

func (s *HubSuite) TestRegisterOnClosedHubClosesClient() {
	hub := s.manager.GetOrCreateHub("ROUND1")
	hub.Close()

	c := NewClient()
	hub.Register(c)

	_, ok := <-c.send
	s.False(ok)
}

func (s *HubSuite) TestGetOrCreateHubReusesExisting() {
	first := s.manager.GetOrCreateHub("ROUND1")
	second := s.manager.GetOrCreateHub("ROUND1")
	s.Same(first, second)
}

func (s *HubSuite) TestRemoveHubDisconnectsClients() {
	hub := s.manager.GetOrCreateHub("ROUND1")
	c := NewClient()
	hub.Register(c)

	s.manager.RemoveHub("ROUND1")

	_, ok := <-c.send
	s.False(ok)
	s.Nil(s.manager.GetHub("ROUND1"))
}

type BroadcasterSuite struct {
	suite.Suite
	bus     *events.Bus
	manager *HubManager
	cancel  context.CancelFunc
}

func TestBroadcasterSuite(t *testing.T) {
	suite.Run(t, new(BroadcasterSuite))
}

func (s *BroadcasterSuite) SetupTest() {
	logger := testutil.NopLogger()
	s.bus = events.NewBus(logger)
	s.manager = NewHubManager(logger)

	broadcaster := NewBroadcaster(s.bus, s.manager, logger)
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	go broadcaster.Run(ctx)

	// Wait for the broadcaster's subscription to land
	s.Eventually(func() bool {
		return s.bus.SubscriberCount() == 1
	}, time.Second, 5*time.Millisecond)
}

func (s *BroadcasterSuite) TearDownTest() {
	s.cancel()
	s.bus.Close()
}

func (s *BroadcasterSuite) publish(eventType model.EventType, state model.RoundState) {
	s.bus.Publish(model.Event{
		Type:      eventType,
		Timestamp: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		RoundID:   "ROUND1",
		Sequence:  1,
		State:     state,
	})
}

func (s *BroadcasterSuite) TestForwardsEventsToRoundHub() {
	hub := s.manager.GetOrCreateHub("ROUND1")
	c := NewClient()
	hub.Register(c)

	s.publish(model.EventRoundStarted, model.RoundStateStarted)

	select {
	case msg := <-c.send:
		text := string(msg)
		s.Contains(text, "event: round.started")
		s.Contains(text, `"round_id":"ROUND1"`)
		s.Contains(text, `"state":"started"`)
		s.Contains(text, `"sequence":1`)
	case <-time.After(time.Second):
		s.FailNow("client did not receive event")
	}
}

func (s *BroadcasterSuite) TestFinishedEventTearsDownHub() {
	hub := s.manager.GetOrCreateHub("ROUND1")
	c := NewClient()
	hub.Register(c)

	s.publish(model.EventRoundFinished, model.RoundStateFinished)

	// The finished event arrives, then the stream ends
	var got []string
	for msg := range c.send {
		got = append(got, string(msg))
	}
	s.Require().Len(got, 1)
	s.Contains(got[0], "round.finished")
	s.True(strings.Contains(got[0], `"state":"finished"`))

	s.Eventually(func() bool {
		return s.manager.GetHub("ROUND1") == nil
	}, time.Second, 5*time.Millisecond)
}

func (s *BroadcasterSuite) TestIgnoresRoundsWithoutWatchers() {
	// No hub exists; the event must be dropped without panicking
	s.publish(model.EventRoundCreated, model.RoundStateCreated)

	s.Eventually(func() bool {
		return s.manager.GetHub("ROUND1") == nil
	}, time.Second, 5*time.Millisecond)
}
