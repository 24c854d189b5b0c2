package events

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/aborovsky/splashsoftware-fullstack-44/internal/model"
	"github.com/aborovsky/splashsoftware-fullstack-44/internal/testutil"
)

type BusSuite struct {
	suite.Suite
	bus *Bus
}

func TestBusSuite(t *testing.T) {
	suite.Run(t, new(BusSuite))
}

func (s *BusSuite) SetupTest() {
	s.bus = NewBus(testutil.NopLogger())
}

func (s *BusSuite) TearDownTest() {
	s.bus.Close()
}

func (s *BusSuite) publish(eventType model.EventType, roundID string) {
	s.bus.Publish(model.Event{
		Type:      eventType,
		Timestamp: time.Now(),
		RoundID:   model.RoundID(roundID),
	})
}

func (s *BusSuite) receive(sub *Subscription) model.Event {
	select {
	case ev := <-sub.C:
		return ev
	case <-time.After(time.Second):
		s.FailNow("timed out waiting for event")
		return model.Event{}
	}
}

func (s *BusSuite) TestSubscriberReceivesMatchingEvents() {
	sub := s.bus.Subscribe(DefaultBuffer, model.EventRoundCreated)
	defer sub.Close()

	s.publish(model.EventRoundCreated, "ROUND1")

	ev := s.receive(sub)
	s.Equal(model.EventRoundCreated, ev.Type)
	s.Equal(model.RoundID("ROUND1"), ev.RoundID)
}

func (s *BusSuite) TestSubscriberFiltersOtherTypes() {
	sub := s.bus.Subscribe(DefaultBuffer, model.EventRoundFinished)
	defer sub.Close()

	s.publish(model.EventRoundCreated, "ROUND1")
	s.publish(model.EventRoundStarted, "ROUND1")
	s.publish(model.EventRoundFinished, "ROUND1")

	ev := s.receive(sub)
	s.Equal(model.EventRoundFinished, ev.Type)

	select {
	case extra, ok := <-sub.C:
		if ok {
			s.Failf("unexpected event", "got %s", extra.Type)
		}
	case <-time.After(50 * time.Millisecond):
	}
}

func (s *BusSuite) TestSubscriberWithNoTypesReceivesEverything() {
	sub := s.bus.Subscribe(DefaultBuffer)
	defer sub.Close()

	s.publish(model.EventRoundCreated, "ROUND1")
	s.publish(model.EventRoundStarted, "ROUND1")

	s.Equal(model.EventRoundCreated, s.receive(sub).Type)
	s.Equal(model.EventRoundStarted, s.receive(sub).Type)
}

func (s *BusSuite) TestMultipleSubscribersEachReceive() {
	sub1 := s.bus.Subscribe(DefaultBuffer, model.EventRoundStarted)
	defer sub1.Close()
	sub2 := s.bus.Subscribe(DefaultBuffer, model.EventRoundStarted)
	defer sub2.Close()

	s.publish(model.EventRoundStarted, "ROUND1")

	s.Equal(model.RoundID("ROUND1"), s.receive(sub1).RoundID)
	s.Equal(model.RoundID("ROUND1"), s.receive(sub2).RoundID)
}

func (s *BusSuite) TestPublishDropsWhenSubscriberIsFull() {
	sub := s.bus.Subscribe(1, model.EventRoundCreated)
	defer sub.Close()

	// Second publish must not block even though the buffer is full
	done := make(chan struct{})
	go func() {
		s.publish(model.EventRoundCreated, "ROUND1")
		s.publish(model.EventRoundCreated, "ROUND2")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		s.FailNow("publish blocked on a full subscriber")
	}

	s.Equal(model.RoundID("ROUND1"), s.receive(sub).RoundID)
}

func (s *BusSuite) TestQueuedSubscriptionDeliversEveryEventInOrder() {
	sub := s.bus.SubscribeQueued(model.EventRoundStarted)
	defer sub.Close()

	// Publish a burst far beyond any buffer before reading a single
	// event; nothing may be dropped
	const n = DefaultBuffer * 4
	done := make(chan struct{})
	go func() {
		for i := 0; i < n; i++ {
			s.publish(model.EventRoundStarted, fmt.Sprintf("ROUND%d", i))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		s.FailNow("publish blocked on a queued subscriber")
	}

	for i := 0; i < n; i++ {
		s.Equal(model.RoundID(fmt.Sprintf("ROUND%d", i)), s.receive(sub).RoundID)
	}
}

func (s *BusSuite) TestQueuedSubscriptionFiltersTypes() {
	sub := s.bus.SubscribeQueued(model.EventRoundStarted)
	defer sub.Close()

	s.publish(model.EventRoundCreated, "ROUND1")
	s.publish(model.EventRoundStarted, "ROUND1")

	s.Equal(model.EventRoundStarted, s.receive(sub).Type)
}

func (s *BusSuite) TestCloseEndsQueuedSubscription() {
	sub := s.bus.SubscribeQueued()

	s.bus.Close()

	select {
	case _, ok := <-sub.C:
		s.False(ok)
	case <-time.After(time.Second):
		s.FailNow("queued subscriber channel not closed")
	}
}

func (s *BusSuite) TestQueuedSubscriptionCloseUnregisters() {
	sub := s.bus.SubscribeQueued(model.EventRoundStarted)
	s.Equal(1, s.bus.SubscriberCount())

	sub.Close()
	s.Equal(0, s.bus.SubscriberCount())
}

func (s *BusSuite) TestCloseUnblocksSubscribers() {
	sub := s.bus.Subscribe(DefaultBuffer)

	s.bus.Close()

	select {
	case _, ok := <-sub.C:
		s.False(ok)
	case <-time.After(time.Second):
		s.FailNow("subscriber channel not closed")
	}
}

func (s *BusSuite) TestSubscriptionCloseUnregisters() {
	sub := s.bus.Subscribe(DefaultBuffer)
	s.Equal(1, s.bus.SubscriberCount())

	sub.Close()
	s.Equal(0, s.bus.SubscriberCount())
}
