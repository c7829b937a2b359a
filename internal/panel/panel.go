// Package panel implements the generic request/response lifecycle shared by
// every independently triggerable UI section: Idle -> Loading -> Success or
// Failed, re-triggerable from any terminal state.
package panel

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Status is the panel lifecycle state.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// Transport performs the panel's request and returns the payload to render.
type Transport func(ctx context.Context) (any, error)

// Snapshot is the panel state handed to the rendering boundary. Busy mirrors
// the disabled-control/busy-indicator side effect: true exactly while a
// request is in flight.
type Snapshot struct {
	Panel  string `json:"panel"`
	Status Status `json:"status"`
	Busy   bool   `json:"busy"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Controller is the per-panel state machine. Triggers are not retried and in-
// flight requests are not aborted; instead each trigger takes a monotonic
// token and a superseded request's late result is discarded rather than
// overwriting newer state.
type Controller struct {
	name   string
	logger zerolog.Logger

	mu       sync.Mutex
	status   Status
	result   any
	errMsg   string
	seq      uint64
	onChange func(Snapshot)
}

func New(name string, logger zerolog.Logger) *Controller {
	return &Controller{
		name:   name,
		status: StatusIdle,
		logger: logger.With().Str("component", "panel").Str("panel", name).Logger(),
	}
}

// OnChange registers the rendering hook invoked on every state transition.
func (c *Controller) OnChange(fn func(Snapshot)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = fn
}

// Trigger runs one request through the lifecycle and returns the resulting
// snapshot. The terminal transition always happens, even if the transport
// panics, so the trigger control is never left disabled.
func (c *Controller) Trigger(ctx context.Context, t Transport) Snapshot {
	token := c.begin()

	payload, err := func() (p any, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("transport panic: %v", r)
			}
		}()
		return t(ctx)
	}()

	return c.finish(token, payload, err)
}

// Fail moves the panel directly to Failed with the given message, superseding
// any in-flight request. Used for failures detected before a request is made.
func (c *Controller) Fail(message string) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	c.status = StatusFailed
	c.result = nil
	c.errMsg = message
	return c.emitLocked()
}

// Reset returns the panel to its empty Idle state, superseding any in-flight
// request.
func (c *Controller) Reset() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	c.status = StatusIdle
	c.result = nil
	c.errMsg = ""
	return c.emitLocked()
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	c.status = StatusLoading
	c.result = nil
	c.errMsg = ""
	c.emitLocked()
	return c.seq
}

func (c *Controller) finish(token uint64, payload any, err error) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	if token != c.seq {
		// A newer trigger superseded this request; its state stands.
		c.logger.Debug().Uint64("token", token).Msg("discarding stale response")
		return c.snapshotLocked()
	}

	if err != nil {
		c.status = StatusFailed
		c.errMsg = err.Error()
		c.logger.Warn().Err(err).Msg("panel request failed")
	} else {
		c.status = StatusSuccess
		c.result = payload
	}
	return c.emitLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		Panel:  c.name,
		Status: c.status,
		Busy:   c.status == StatusLoading,
		Result: c.result,
		Error:  c.errMsg,
	}
}

func (c *Controller) emitLocked() Snapshot {
	snap := c.snapshotLocked()
	if c.onChange != nil {
		c.onChange(snap)
	}
	return snap
}
