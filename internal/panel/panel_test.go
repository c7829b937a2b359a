package panel

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

func TestTriggerSuccess(t *testing.T) {
	c := New("weather", zerolog.Nop())

	snap := c.Trigger(context.Background(), func(ctx context.Context) (any, error) {
		return "payload", nil
	})

	if snap.Status != StatusSuccess {
		t.Fatalf("status = %q, want success", snap.Status)
	}
	if snap.Result != "payload" {
		t.Fatalf("result = %v", snap.Result)
	}
	if snap.Busy {
		t.Fatal("panel must not stay busy after a terminal state")
	}
}

func TestTriggerFailure(t *testing.T) {
	c := New("weather", zerolog.Nop())

	snap := c.Trigger(context.Background(), func(ctx context.Context) (any, error) {
		return nil, errors.New("city not found")
	})

	if snap.Status != StatusFailed {
		t.Fatalf("status = %q, want failed", snap.Status)
	}
	if snap.Error != "city not found" {
		t.Fatalf("error = %q", snap.Error)
	}
	if snap.Busy {
		t.Fatal("panel must not stay busy after a failure")
	}
}

func TestTriggerClearsPriorState(t *testing.T) {
	c := New("weather", zerolog.Nop())

	c.Trigger(context.Background(), func(ctx context.Context) (any, error) {
		return nil, errors.New("boom")
	})
	snap := c.Trigger(context.Background(), func(ctx context.Context) (any, error) {
		return 42, nil
	})

	if snap.Status != StatusSuccess || snap.Error != "" {
		t.Fatalf("prior error leaked into new result: %+v", snap)
	}
}

func TestTriggerRecoversFromTransportPanic(t *testing.T) {
	c := New("weather", zerolog.Nop())

	snap := c.Trigger(context.Background(), func(ctx context.Context) (any, error) {
		panic("bad decode")
	})

	if snap.Status != StatusFailed {
		t.Fatalf("status = %q, want failed after panic", snap.Status)
	}
	if snap.Busy {
		t.Fatal("panel must re-enable its trigger even when the transport panics")
	}
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	c := New("weather", zerolog.Nop())

	release := make(chan struct{})
	started := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.Trigger(context.Background(), func(ctx context.Context) (any, error) {
			close(started)
			<-release
			return "stale", nil
		})
	}()

	<-started
	snap := c.Trigger(context.Background(), func(ctx context.Context) (any, error) {
		return "fresh", nil
	})
	if snap.Result != "fresh" {
		t.Fatalf("second trigger result = %v", snap.Result)
	}

	// Let the superseded request complete; it must not overwrite the
	// newer state.
	close(release)
	wg.Wait()

	final := c.Snapshot()
	if final.Result != "fresh" {
		t.Fatalf("stale response overwrote newer state: %+v", final)
	}
}

func TestFailAndReset(t *testing.T) {
	c := New("history", zerolog.Nop())

	snap := c.Fail("no location")
	if snap.Status != StatusFailed || snap.Error != "no location" {
		t.Fatalf("Fail snapshot = %+v", snap)
	}

	snap = c.Reset()
	if snap.Status != StatusIdle || snap.Error != "" || snap.Result != nil {
		t.Fatalf("Reset snapshot = %+v", snap)
	}
}

func TestOnChangeSeesLoadingThenTerminal(t *testing.T) {
	c := New("weather", zerolog.Nop())

	var states []Status
	c.OnChange(func(s Snapshot) {
		states = append(states, s.Status)
	})

	c.Trigger(context.Background(), func(ctx context.Context) (any, error) {
		return nil, nil
	})

	if len(states) != 2 || states[0] != StatusLoading || states[1] != StatusSuccess {
		t.Fatalf("transitions = %v, want [loading success]", states)
	}
}
