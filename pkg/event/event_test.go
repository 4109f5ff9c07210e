// pkg/event/event_test.go
package event

import (
	"sync"
	"testing"
)

func TestBus_PublishReachesAllSubscribers(t *testing.T) {
	bus := NewEventBus()
	got := 0
	bus.Subscribe(BallHit, func(Event) { got++ })
	bus.Subscribe(BallHit, func(Event) { got++ })

	bus.Publish(NewBallHitEvent(nil, 0, 5))

	if got != 2 {
		t.Errorf("handlers invoked = %d, want 2", got)
	}
}

func TestBus_PublishOnlyMatchingType(t *testing.T) {
	bus := NewEventBus()
	hits, resets := 0, 0
	bus.Subscribe(BallHit, func(Event) { hits++ })
	bus.Subscribe(BallReset, func(Event) { resets++ })

	bus.Publish(NewBallHitEvent(nil, 0, 5))

	if hits != 1 || resets != 0 {
		t.Errorf("hits = %d resets = %d, want 1 and 0", hits, resets)
	}
}

func TestBus_PublishNoSubscribers_NoPanic(t *testing.T) {
	bus := NewEventBus()

	bus.Publish(NewBallInHoleEvent(nil, 3))
}

func TestSubscription_Cancel_RemovesOnlyItsHandler(t *testing.T) {
	bus := NewEventBus()
	first, second := 0, 0
	sub := bus.Subscribe(HoleStarted, func(Event) { first++ })
	bus.Subscribe(HoleStarted, func(Event) { second++ })

	sub.Cancel()
	bus.Publish(NewHoleEvent(HoleStarted, nil, 0))

	if first != 0 {
		t.Errorf("cancelled handler ran %d times", first)
	}
	if second != 1 {
		t.Errorf("surviving handler ran %d times, want 1", second)
	}
}

func TestSubscription_Cancel_Twice_NoPanic(t *testing.T) {
	bus := NewEventBus()
	sub := bus.Subscribe(HoleStarted, func(Event) {})

	sub.Cancel()
	sub.Cancel()
}

func TestBus_PublishIsSynchronous(t *testing.T) {
	bus := NewEventBus()
	done := false
	bus.Subscribe(HoleCompleted, func(Event) { done = true })

	bus.Publish(NewHoleEvent(HoleCompleted, nil, 0))

	if !done {
		t.Error("handler had not run when Publish returned")
	}
}

func TestBus_SubscribeDuringDispatch_NoDeadlock(t *testing.T) {
	bus := NewEventBus()
	nested := 0
	bus.Subscribe(HoleStarted, func(Event) {
		bus.Subscribe(HoleCompleted, func(Event) { nested++ })
	})

	bus.Publish(NewHoleEvent(HoleStarted, nil, 0))
	bus.Publish(NewHoleEvent(HoleCompleted, nil, 0))

	if nested != 1 {
		t.Errorf("nested handler ran %d times, want 1", nested)
	}
}

func TestBus_ConcurrentSubscribePublish(t *testing.T) {
	bus := NewEventBus()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			bus.Subscribe(BallHit, func(Event) {})
		}()
		go func() {
			defer wg.Done()
			bus.Publish(NewBallHitEvent(nil, 0, 1))
		}()
	}
	wg.Wait()
}

func TestEvents_CarryTheirPayloads(t *testing.T) {
	hit := NewBallHitEvent("src", 2, 7.5)
	if hit.GetType() != BallHit || hit.HoleIndex != 2 || hit.Power != 7.5 {
		t.Errorf("unexpected hit event %+v", hit)
	}
	if hit.GetSource() != "src" {
		t.Errorf("GetSource() = %v, want src", hit.GetSource())
	}

	pen := NewHazardPenaltyEvent(nil, 4, "water")
	if pen.GetType() != HazardPenalty || pen.Kind != "water" || pen.HoleIndex != 4 {
		t.Errorf("unexpected penalty event %+v", pen)
	}

	act := NewObstacleActivatedEvent(nil, "tp-1", "teleporter", nil, map[string]interface{}{"effect": "teleported"})
	if act.ObstacleID != "tp-1" || act.Effect["effect"] != "teleported" {
		t.Errorf("unexpected activation event %+v", act)
	}
}
